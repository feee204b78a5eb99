package auth

import (
	"context"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/identity"
)

type VerifiedAdmin struct {
	UID         string              `json:"uid"`
	Email       string              `json:"email"`
	Role        string              `json:"role"`
	Permissions []access.Permission `json:"permissions"`
	Tabs        []string            `json:"tabs"`
}

type AuthService interface {
	Verify(ctx context.Context, idToken string) (*VerifiedAdmin, error)
}

type AuthServiceImpl struct {
	verifier identity.Verifier
	resolver access.Resolver
}

func NewAuthService(verifier identity.Verifier, resolver access.Resolver) AuthService {
	return &AuthServiceImpl{verifier: verifier, resolver: resolver}
}

// Verify checks a sign-in token and that its subject may use the panel
func (s *AuthServiceImpl) Verify(ctx context.Context, idToken string) (*VerifiedAdmin, error) {
	if idToken == "" {
		return nil, apperr.New(apperr.InvalidArgument, "idToken is required")
	}
	id, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthenticated, "Invalid token", err)
	}

	grant, err := s.resolver.Resolve(ctx, id.UID)
	if err != nil {
		return nil, err
	}

	return &VerifiedAdmin{
		UID:         id.UID,
		Email:       id.Email,
		Role:        grant.Role,
		Permissions: grant.List(),
		Tabs:        grant.Tabs(),
	}, nil
}
