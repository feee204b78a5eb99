package admin

import (
	"context"
	"strings"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/database"

	"firebase.google.com/go/v4/auth"
)

// AccountProvisioner manages the sign-in accounts behind admin records
type AccountProvisioner interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	DeleteAccount(ctx context.Context, uid string) error
	SetDisabled(ctx context.Context, uid string, disabled bool) error
}

type FirebaseAccounts struct {
	client *auth.Client
}

func NewAccountProvisioner(fb *database.Firebase) AccountProvisioner {
	return &FirebaseAccounts{client: fb.Auth}
}

func (p *FirebaseAccounts) CreateAccount(ctx context.Context, email, password string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		EmailVerified(true)

	u, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return "", mapAuthError(err)
	}
	return u.UID, nil
}

func (p *FirebaseAccounts) DeleteAccount(ctx context.Context, uid string) error {
	return p.client.DeleteUser(ctx, uid)
}

func (p *FirebaseAccounts) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	_, err := p.client.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Disabled(disabled))
	return err
}

func mapAuthError(err error) error {
	if auth.IsEmailAlreadyExists(err) {
		return apperr.New(apperr.InvalidArgument, "An account with this email already exists")
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "email") && (strings.Contains(msg, "malformed") || strings.Contains(msg, "invalid")):
		return apperr.New(apperr.InvalidArgument, "Invalid email address")
	case strings.Contains(msg, "password"):
		return apperr.New(apperr.InvalidArgument, "Password is too weak. Must be at least 6 characters")
	}
	return apperr.Wrap(apperr.Unavailable, "Failed to create sign-in account", err)
}
