package inner_group

import (
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/middleware"
	"amigo-admin/internal/validator"

	"github.com/gofiber/fiber/v2"
)

type TemplateController struct {
	Service   TemplateService
	validator *validator.Validator
}

func NewTemplateController(service TemplateService, v *validator.Validator) *TemplateController {
	return &TemplateController{Service: service, validator: v}
}

func (ctrl *TemplateController) List(c *fiber.Ctx) error {
	templates, err := ctrl.Service.List(c.UserContext(), middleware.CurrentGrant(c))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"innerGroups": templates,
	})
}

// Create godoc
// @Summary      Create a standalone inner group
// @Tags         inner-groups
// @Accept       json
// @Produce      json
// @Param        body  body  TemplateRequest  true  "Inner group"
// @Router       /api/inner-groups [post]
func (ctrl *TemplateController) Create(c *fiber.Ctx) error {
	var req TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := ctrl.validator.Validate(req); err != nil {
		return apperr.Respond(c, err)
	}

	t, err := ctrl.Service.Create(c.UserContext(), req, middleware.CurrentIdentity(c).UID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"message":      "Standalone inner group created successfully",
		"innerGroupId": t.ID,
		"innerGroup":   t,
	})
}

func (ctrl *TemplateController) Update(c *fiber.Ctx) error {
	var req TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := ctrl.validator.Validate(req); err != nil {
		return apperr.Respond(c, err)
	}

	if err := ctrl.Service.Update(c.UserContext(), middleware.CurrentGrant(c), c.Params("id"), req); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Standalone inner group updated successfully",
	})
}

func (ctrl *TemplateController) Delete(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), middleware.CurrentGrant(c), c.Params("id")); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Standalone inner group deleted successfully",
	})
}

// Apply godoc
// @Summary      Copy a standalone inner group into groups
// @Tags         inner-groups
// @Accept       json
// @Produce      json
// @Param        id    path  string        true  "Inner group id"
// @Param        body  body  ApplyRequest  true  "Targets"
// @Router       /api/inner-groups/{id}/apply [post]
func (ctrl *TemplateController) Apply(c *fiber.Ctx) error {
	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := ctrl.Service.Apply(c.UserContext(), middleware.CurrentGrant(c), c.Params("id"), req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"added":   result.Added,
		"skipped": result.Skipped,
		"failed":  result.Failed,
	})
}
