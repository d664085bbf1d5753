package export

import (
	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	Service ExportService
}

func NewExportController(service ExportService) *ExportController {
	return &ExportController{Service: service}
}

// ExportCases godoc
// @Summary Push case snapshots to the reporting warehouse
// @Tags export
// @Produce json
// @Router /api/export/cases [post]
func (ctrl *ExportController) ExportCases(c *fiber.Ctx) error {
	count, err := ctrl.Service.ExportCases(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":    err.Error(),
			"exported": count,
		})
	}
	return c.JSON(fiber.Map{"exported": count})
}
