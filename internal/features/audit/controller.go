package audit

import (
	"strconv"

	"amigo-admin/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

// ListLogs godoc
// @Summary      List admin audit entries
// @Tags         audit
// @Produce      json
// @Param        page       query  int     false  "Page"
// @Param        limit      query  int     false  "Page size"
// @Param        module     query  string  false  "Module"
// @Param        record_id  query  string  false  "Record id"
// @Router       /api/audit-logs [get]
func (ctrl *AuditController) ListLogs(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filters := map[string]interface{}{
		"module":    c.Query("module"),
		"record_id": c.Query("record_id"),
		"actor_id":  c.Query("actor_id"),
	}

	logs, err := ctrl.Service.ListLogs(c.UserContext(), filters, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.Paginated[models.AuditLog]{Items: logs, Page: page, Limit: limit})
}
