package identity

import (
	"context"
	"fmt"

	"amigo-admin/pkg/utils"
)

// DevVerifier accepts HS256 tokens minted by cmd/devtoken
type DevVerifier struct {
	secret []byte
}

func NewDevVerifier(secret string) *DevVerifier {
	return &DevVerifier{secret: []byte(secret)}
}

func (v *DevVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	claims, err := utils.ValidateDevToken(v.secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &Identity{
		UID:   claims.UID,
		Email: claims.Email,
		Claims: map[string]interface{}{
			"uid":   claims.UID,
			"email": claims.Email,
		},
	}, nil
}
