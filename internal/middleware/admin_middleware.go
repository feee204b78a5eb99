package middleware

import (
	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin admits any active admin regardless of its permission tags
func RequireAdmin(resolver access.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := resolveGrant(c, resolver); err != nil {
			return apperr.Respond(c, err)
		}
		return c.Next()
	}
}

// OptionalGrant resolves the grant when the caller is an admin and carries
// on without one otherwise
func OptionalGrant(resolver access.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := resolveGrant(c, resolver); err != nil && apperr.KindOf(err) != apperr.PermissionDenied {
			return apperr.Respond(c, err)
		}
		return c.Next()
	}
}
