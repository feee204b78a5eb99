package user

import (
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/middleware"
	"amigo-admin/internal/validator"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Service   UserService
	validator *validator.Validator
}

func NewUserController(service UserService, v *validator.Validator) *UserController {
	return &UserController{Service: service, validator: v}
}

// ListUsers godoc
// @Summary      List app users
// @Tags         users
// @Produce      json
// @Param        search  query  string  false  "Name or email substring"
// @Router       /api/users [get]
func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	users, err := ctrl.Service.ListUsers(c.UserContext(), c.Query("search"))
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
		"count":   len(users),
	})
}

func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	u, err := ctrl.Service.GetUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": u})
}

// UpdateRole godoc
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userId  path  string             true  "User id"
// @Param        body    body  UpdateRoleRequest  true  "New role"
// @Router       /api/users/{userId}/role [put]
func (ctrl *UserController) UpdateRole(c *fiber.Ctx) error {
	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := ctrl.validator.Validate(req); err != nil {
		return apperr.Respond(c, err)
	}

	uid := c.Params("userId")
	if err := ctrl.Service.UpdateRole(c.UserContext(), uid, req.Role, middleware.CurrentIdentity(c).UID); err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User role updated successfully",
		"userId":  uid,
		"role":    req.Role,
	})
}

func (ctrl *UserController) UpdateCallAccess(c *fiber.Ctx) error {
	var req UpdateCallAccessRequest
	if err := c.BodyParser(&req); err != nil || req.CallAccess == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "callAccess must be a boolean value",
		})
	}

	uid := c.Params("userId")
	if err := ctrl.Service.UpdateCallAccess(c.UserContext(), uid, *req.CallAccess, middleware.CurrentIdentity(c).UID); err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Call access updated successfully",
		"userId":     uid,
		"callAccess": *req.CallAccess,
	})
}

func (ctrl *UserController) ExportUsers(c *fiber.Ctx) error {
	data, filename, err := ctrl.Service.ExportUsers(c.UserContext())
	if err != nil {
		return apperr.Respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(filename)
	return c.Send(data)
}
