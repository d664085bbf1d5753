package casefile

import (
	"github.com/gofiber/fiber/v2"
)

type CaseController struct {
	Service CaseService
}

func NewCaseController(service CaseService) *CaseController {
	return &CaseController{Service: service}
}

// CreateCase godoc
// @Summary Open a new case
// @Tags cases
// @Accept json
// @Produce json
// @Param case body Case true "Case"
// @Success 201 {object} Case
// @Router /api/cases [post]
func (ctrl *CaseController) CreateCase(c *fiber.Ctx) error {
	var cs Case
	if err := c.BodyParser(&cs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.Create(c.UserContext(), &cs); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(cs)
}

func (ctrl *CaseController) GetCase(c *fiber.Ctx) error {
	cs, err := ctrl.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Case not found"})
	}
	return c.JSON(cs)
}

func (ctrl *CaseController) ListCases(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 20))

	cases, total, err := ctrl.Service.List(c.UserContext(), c.Query("status"), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"data": cases, "total": total, "page": page, "limit": limit})
}

func (ctrl *CaseController) UpdateCase(c *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.Update(c.UserContext(), c.Params("id"), updates); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// ChangeStatus godoc
// @Summary Change case status
// @Description Sets the case status and fires the status_changed automation event
// @Tags cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param body body map[string]string true "{\"status\": \"escalated\"}"
// @Success 200 {object} map[string]interface{}
// @Router /api/cases/{id}/status [patch]
func (ctrl *CaseController) ChangeStatus(c *fiber.Ctx) error {
	var body struct {
		Status CaseStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status is required"})
	}

	if err := ctrl.Service.ChangeStatus(c.UserContext(), c.Params("id"), body.Status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": body.Status})
}

func (ctrl *CaseController) DeleteCase(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
