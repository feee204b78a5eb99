package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/identity"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (*identity.Identity, error) {
	if token != "good" && token != "sub" {
		return nil, identity.ErrInvalidToken
	}
	return &identity.Identity{UID: "uid-" + token}, nil
}

type stubResolver struct{}

func (stubResolver) IsBootstrap(string) bool { return false }

func (stubResolver) Resolve(_ context.Context, uid string) (*access.Grant, error) {
	switch uid {
	case "uid-good":
		return &access.Grant{UID: uid, Role: access.RoleAdmin, Permissions: map[access.Permission]bool{access.PermissionManageChats: true}}, nil
	case "uid-sub":
		return &access.Grant{UID: uid, Role: access.RoleSubadmin, Permissions: map[access.Permission]bool{}}, nil
	}
	return nil, apperr.New(apperr.PermissionDenied, "Access denied. Admin privileges required.")
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", AuthMiddleware(stubVerifier{}), func(c *fiber.Ctx) error {
		ctxID, _ := identity.FromContext(c.UserContext())
		return c.JSON(fiber.Map{"uid": CurrentIdentity(c).UID, "ctx": ctxID.UID})
	})
	app.Get("/chats", AuthMiddleware(stubVerifier{}), RequirePermission(stubResolver{}, access.PermissionManageChats), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"grant": CurrentGrant(c).UID})
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"missing header", "", fiber.StatusUnauthorized, "Authorization header required"},
		{"not bearer", "Basic abc", fiber.StatusUnauthorized, "Invalid authorization header format"},
		{"empty bearer", "Bearer  ", fiber.StatusUnauthorized, "Invalid authorization header format"},
		{"rejected token", "Bearer bad", fiber.StatusUnauthorized, "Invalid token"},
		{"valid token", "Bearer good", fiber.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decode(t, resp.Body)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
			} else {
				assert.Equal(t, "uid-good", body["uid"])
				assert.Equal(t, "uid-good", body["ctx"])
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"holder passes", "good", fiber.StatusOK},
		{"admin without tag is forbidden", "sub", fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/chats", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func decode(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}
