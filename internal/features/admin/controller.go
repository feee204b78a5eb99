package admin

import (
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/middleware"
	"amigo-admin/internal/validator"

	"github.com/gofiber/fiber/v2"
)

type AdminController struct {
	Service   AdminService
	validator *validator.Validator
}

func NewAdminController(service AdminService, v *validator.Validator) *AdminController {
	return &AdminController{Service: service, validator: v}
}

// ListAdmins godoc
// @Summary      List panel admins
// @Tags         admins
// @Produce      json
// @Router       /api/admins [get]
func (ctrl *AdminController) ListAdmins(c *fiber.Ctx) error {
	admins, err := ctrl.Service.ListAdmins(c.UserContext())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "admins": admins})
}

// CreateAdmin godoc
// @Summary      Create an admin account
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        body  body  CreateAdminRequest  true  "Admin"
// @Router       /api/admins [post]
func (ctrl *AdminController) CreateAdmin(c *fiber.Ctx) error {
	var req CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := ctrl.validator.Validate(req); err != nil {
		return apperr.Respond(c, err)
	}

	a, err := ctrl.Service.CreateAdmin(c.UserContext(), req, middleware.CurrentIdentity(c).UID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Admin created successfully",
		"admin":   a,
	})
}

func (ctrl *AdminController) UpdateAdmin(c *fiber.Ctx) error {
	var req UpdateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := ctrl.validator.Validate(req); err != nil {
		return apperr.Respond(c, err)
	}

	if err := ctrl.Service.UpdateAdmin(c.UserContext(), c.Params("adminId"), req, middleware.CurrentIdentity(c).UID); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Admin updated successfully"})
}

func (ctrl *AdminController) DeleteAdmin(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteAdmin(c.UserContext(), c.Params("adminId"), middleware.CurrentIdentity(c).UID); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Admin deleted successfully"})
}

func (ctrl *AdminController) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "isActive must be a boolean value",
		})
	}

	if err := ctrl.Service.SetStatus(c.UserContext(), c.Params("adminId"), *req.IsActive, middleware.CurrentIdentity(c).UID); err != nil {
		return apperr.Respond(c, err)
	}

	msg := "Admin deactivated successfully"
	if *req.IsActive {
		msg = "Admin activated successfully"
	}
	return c.JSON(fiber.Map{"success": true, "message": msg})
}

// MyPermissions describes the caller's own capability set
func (ctrl *AdminController) MyPermissions(c *fiber.Ctx) error {
	grant := middleware.CurrentGrant(c)
	return c.JSON(fiber.Map{
		"success":     true,
		"permissions": grant.List(),
		"role":        grant.Role,
		"isActive":    grant.Active,
		"bootstrap":   grant.Bootstrap,
		"tabs":        grant.Tabs(),
	})
}
