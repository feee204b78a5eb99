package identity

import (
	"context"
	"errors"
)

// LocalsKey is the fiber locals key holding the verified *Identity
const LocalsKey = "identity"

type contextKey struct{}

// ErrInvalidToken is returned by verifiers for any rejected credential
var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified caller of a request
type Identity struct {
	UID    string
	Email  string
	Claims map[string]interface{}
}

// Verifier turns a bearer credential into a verified identity
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

func WithContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	return id, ok && id != nil
}
