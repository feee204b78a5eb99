package middleware

import (
	"strings"

	"amigo-admin/internal/identity"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware verifies the bearer credential and injects the identity
// into fiber locals and the request context
func AuthMiddleware(verifier identity.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		id, err := verifier.Verify(c.UserContext(), strings.TrimSpace(token))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(identity.LocalsKey, id)
		c.SetUserContext(identity.WithContext(c.UserContext(), id))
		return c.Next()
	}
}

// CurrentIdentity returns the identity set by AuthMiddleware
func CurrentIdentity(c *fiber.Ctx) *identity.Identity {
	id, _ := c.Locals(identity.LocalsKey).(*identity.Identity)
	return id
}
