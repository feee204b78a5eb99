package middleware

import (
	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

// GrantLocalsKey holds the resolved *access.Grant
const GrantLocalsKey = "grant"

// RequirePermission resolves the caller's capability set once per request
// and rejects callers lacking perm
func RequirePermission(resolver access.Resolver, perm access.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		grant, err := resolveGrant(c, resolver)
		if err != nil {
			return apperr.Respond(c, err)
		}
		if !grant.Has(perm) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied: missing permission " + string(perm),
			})
		}
		return c.Next()
	}
}

// CurrentGrant returns the grant resolved earlier in the chain, if any
func CurrentGrant(c *fiber.Ctx) *access.Grant {
	grant, _ := c.Locals(GrantLocalsKey).(*access.Grant)
	return grant
}

func resolveGrant(c *fiber.Ctx, resolver access.Resolver) (*access.Grant, error) {
	if grant := CurrentGrant(c); grant != nil {
		return grant, nil
	}
	id := CurrentIdentity(c)
	if id == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Unauthorized")
	}
	grant, err := resolver.Resolve(c.UserContext(), id.UID)
	if err != nil {
		return nil, err
	}
	c.Locals(GrantLocalsKey, grant)
	return grant, nil
}
