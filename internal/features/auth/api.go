package auth

import (
	"time"

	"amigo-admin/internal/common/api"
	"amigo-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
}

func NewAuthApi(controller *AuthController) api.Route {
	return &AuthApi{controller: controller}
}

func (h *AuthApi) Setup(app *fiber.App) {
	// Unauthenticated, so limit per IP
	app.Post("/api/auth/verify", middleware.RateLimiter(20, time.Minute), h.controller.Verify)
}
