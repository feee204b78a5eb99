package auth

import (
	"amigo-admin/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Service AuthService
}

func NewAuthController(service AuthService) *AuthController {
	return &AuthController{Service: service}
}

type VerifyRequest struct {
	IDToken string `json:"idToken"`
}

// Verify godoc
// @Summary      Verify an admin sign-in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  VerifyRequest  true  "Firebase ID token"
// @Router       /api/auth/verify [post]
func (ctrl *AuthController) Verify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	admin, err := ctrl.Service.Verify(c.UserContext(), req.IDToken)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    admin,
	})
}
