package group

import (
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/middleware"
	"amigo-admin/internal/validator"

	"github.com/gofiber/fiber/v2"
)

type GroupController struct {
	Service   GroupService
	validator *validator.Validator
}

func NewGroupController(service GroupService, v *validator.Validator) *GroupController {
	return &GroupController{Service: service, validator: v}
}

// ListGroups godoc
// @Summary      List groups visible to the caller
// @Tags         groups
// @Produce      json
// @Router       /api/groups [get]
func (ctrl *GroupController) ListGroups(c *fiber.Ctx) error {
	groups, err := ctrl.Service.ListGroups(c.UserContext(), middleware.CurrentGrant(c))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"groups":  groups,
		"count":   len(groups),
	})
}

// CreateGroup godoc
// @Summary      Create a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        body  body  CreateGroupRequest  true  "Group"
// @Router       /api/groups [post]
func (ctrl *GroupController) CreateGroup(c *fiber.Ctx) error {
	var req CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := ctrl.validator.Validate(req); err != nil {
		return apperr.Respond(c, err)
	}

	g, err := ctrl.Service.CreateGroup(c.UserContext(), req, middleware.CurrentIdentity(c).UID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Group created successfully",
		"group":   g,
	})
}

// DeleteGroup accepts the id as a path segment or as ?groupId=
func (ctrl *GroupController) DeleteGroup(c *fiber.Ctx) error {
	groupID := c.Params("groupId")
	if groupID == "" {
		groupID = c.Query("groupId")
	}
	if err := ctrl.Service.DeleteGroup(c.UserContext(), middleware.CurrentGrant(c), groupID); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Group deleted successfully",
		"groupId": groupID,
	})
}

func (ctrl *GroupController) AddMember(c *fiber.Ctx) error {
	var req AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := ctrl.validator.Validate(req); err != nil {
		return apperr.Respond(c, err)
	}

	groupID := c.Params("groupId")
	if err := ctrl.Service.AddMember(c.UserContext(), groupID, req.UserID); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Member added successfully",
		"groupId": groupID,
		"userId":  req.UserID,
	})
}

func (ctrl *GroupController) RemoveMember(c *fiber.Ctx) error {
	groupID, userID := c.Params("groupId"), c.Params("userId")
	if err := ctrl.Service.RemoveMember(c.UserContext(), groupID, userID); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Member removed successfully",
		"groupId": groupID,
		"userId":  userID,
	})
}

// AddInnerGroup godoc
// @Summary      Add a time-boxed inner group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        groupId  path  string             true  "Group id"
// @Param        body     body  InnerGroupRequest  true  "Inner group"
// @Router       /api/groups/{groupId}/inner-groups [post]
func (ctrl *GroupController) AddInnerGroup(c *fiber.Ctx) error {
	var req InnerGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := ctrl.validator.Validate(req); err != nil {
		return apperr.Respond(c, err)
	}

	ig, err := ctrl.Service.AddInnerGroup(c.UserContext(), c.Params("groupId"), req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"message":    "Inner group created successfully",
		"innerGroup": ig,
	})
}

func (ctrl *GroupController) ReplaceInnerGroups(c *fiber.Ctx) error {
	var req ReplaceInnerGroupsRequest
	if err := c.BodyParser(&req); err != nil || req.InnerGroups == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "innerGroups must be an array",
		})
	}
	if err := ctrl.validator.Validate(req); err != nil {
		return apperr.Respond(c, err)
	}

	groups, err := ctrl.Service.ReplaceInnerGroups(c.UserContext(), c.Params("groupId"), req.InnerGroups)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Inner groups updated successfully",
		"innerGroups": groups,
	})
}
