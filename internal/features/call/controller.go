package call

import (
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/middleware"
	"amigo-admin/internal/validator"

	"github.com/gofiber/fiber/v2"
)

type CallController struct {
	service   TokenService
	validator *validator.Validator
}

func NewCallController(service TokenService, v *validator.Validator) *CallController {
	return &CallController{
		service:   service,
		validator: v,
	}
}

// IssueToken godoc
// @Summary      Issue an RTC token for a call channel
// @Tags         calls
// @Accept       json
// @Produce      json
// @Param        body  body  TokenRequest  true  "Channel, uid and role"
// @Success      200   {object}  TokenResponse
// @Router       /api/agora/token [post]
func (ctrl *CallController) IssueToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := ctrl.validator.Validate(req); err != nil {
		return apperr.Respond(c, err)
	}

	resp, err := ctrl.service.Issue(c.UserContext(), middleware.CurrentIdentity(c).UID, middleware.CurrentGrant(c), req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(resp)
}

func (ctrl *CallController) Status(c *fiber.Ctx) error {
	return c.JSON(ctrl.service.Status())
}
