package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", New(Unauthenticated, "no token"), fiber.StatusUnauthorized},
		{"permission denied", New(PermissionDenied, "nope"), fiber.StatusForbidden},
		{"invalid argument", New(InvalidArgument, "bad"), fiber.StatusBadRequest},
		{"not found", New(NotFound, "missing"), fiber.StatusNotFound},
		{"unavailable", Wrap(Unavailable, "store down", errors.New("dial tcp")), fiber.StatusServiceUnavailable},
		{"wrapped kind survives fmt", fmt.Errorf("outer: %w", New(NotFound, "x")), fiber.StatusNotFound},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError},
		{"fiber error", fiber.NewError(fiber.StatusTeapot, "tea"), fiber.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestMessageHidesCause(t *testing.T) {
	err := Wrap(Unavailable, "Failed to load users", errors.New("rpc error: deadline exceeded"))

	assert.Equal(t, "Failed to load users", Message(err))
	assert.Contains(t, err.Error(), "deadline exceeded")
	assert.Equal(t, Unavailable, KindOf(err))
}
