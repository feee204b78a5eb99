package notification

import (
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/middleware"
	"amigo-admin/internal/validator"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	service   NotificationService
	validator *validator.Validator
}

func NewNotificationController(service NotificationService, v *validator.Validator) *NotificationController {
	return &NotificationController{
		service:   service,
		validator: v,
	}
}

// SendBulk godoc
// @Summary      Send a push notification to many users
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body  BulkRequest  true  "Recipients and payload"
// @Router       /api/notifications/send-bulk [post]
func (ctrl *NotificationController) SendBulk(c *fiber.Ctx) error {
	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: userIds (array), notification",
		})
	}
	if err := ctrl.validator.Validate(req); err != nil {
		return apperr.Respond(c, err)
	}

	outcome, err := ctrl.service.SendBulk(c.UserContext(), middleware.CurrentIdentity(c).UID, req)
	if err != nil {
		return apperr.Respond(c, err)
	}

	resp := fiber.Map{
		"success":         true,
		"totalUsers":      outcome.TotalUsers,
		"successfulSends": outcome.SuccessfulSends,
		"failedSends":     outcome.FailedSends,
		"results":         outcome.Results,
		"sentCount":       outcome.SentCount,
	}
	if outcome.Message != "" {
		resp["message"] = outcome.Message
	}
	return c.JSON(resp)
}

// Send godoc
// @Summary      Send a push notification to one user or device token
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body  SendRequest  true  "Target and payload"
// @Router       /api/notifications/send [post]
func (ctrl *NotificationController) Send(c *fiber.Ctx) error {
	var req SendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: to, notification",
		})
	}
	if err := ctrl.validator.Validate(req); err != nil {
		return apperr.Respond(c, err)
	}

	caller := Caller{UID: middleware.CurrentIdentity(c).UID, Grant: middleware.CurrentGrant(c)}
	messageID, err := ctrl.service.Send(c.UserContext(), caller, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"messageId": messageID,
	})
}

// ListLogs godoc
// @Summary      Notification log, newest first
// @Tags         notifications
// @Produce      json
// @Param        limit   query  int     false  "Max entries (default 50, max 500)"
// @Param        status  query  string  false  "success, error, bulk_success or bulk_error"
// @Param        sentBy  query  string  false  "Sender uid"
// @Success      200     {array}  LogEntry
// @Router       /api/notifications/logs [get]
func (ctrl *NotificationController) ListLogs(c *fiber.Ctx) error {
	logs, err := ctrl.service.ListLogs(c.UserContext(), logQuery(c))
	if err != nil {
		return apperr.Respond(c, err)
	}
	// the panel reads a bare array
	if logs == nil {
		logs = []LogEntry{}
	}
	return c.JSON(logs)
}

func (ctrl *NotificationController) ExportLogs(c *fiber.Ctx) error {
	data, filename, err := ctrl.service.ExportLogs(c.UserContext(), logQuery(c))
	if err != nil {
		return apperr.Respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(filename)
	return c.Send(data)
}

func logQuery(c *fiber.Ctx) LogQuery {
	return LogQuery{
		Limit:  c.QueryInt("limit", defaultLogLimit),
		Status: c.Query("status"),
		SentBy: c.Query("sentBy"),
	}
}
