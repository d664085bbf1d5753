package autoaction

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AutoActionController struct {
	Service AutoActionService
}

func NewAutoActionController(service AutoActionService) *AutoActionController {
	return &AutoActionController{Service: service}
}

// ListRules godoc
// @Summary List auto action rules for the centre
// @Tags auto-actions
// @Produce json
// @Success 200 {array} Rule
// @Router /api/auto-actions [get]
func (ctrl *AutoActionController) ListRules(c *fiber.Ctx) error {
	rules, err := ctrl.Service.ListRules(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rules)
}

// CreateRule godoc
// @Summary Create an auto action rule
// @Tags auto-actions
// @Accept json
// @Produce json
// @Param rule body Rule true "Rule"
// @Success 201 {object} Rule
// @Router /api/auto-actions [post]
func (ctrl *AutoActionController) CreateRule(c *fiber.Ctx) error {
	var rule Rule
	if err := c.BodyParser(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.CreateRule(c.UserContext(), &rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(rule)
}

func (ctrl *AutoActionController) UpdateRule(c *fiber.Ctx) error {
	oid, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rule id"})
	}

	var rule Rule
	if err := c.BodyParser(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	rule.ID = oid

	if err := ctrl.Service.UpdateRule(c.UserContext(), &rule); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rule)
}

func (ctrl *AutoActionController) EnableRule(c *fiber.Ctx) error {
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.EnableRule(c.UserContext(), c.Params("id"), body.Active); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Rule updated", "active": body.Active})
}

func (ctrl *AutoActionController) DeleteRule(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteRule(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetLogs godoc
// @Summary Paginated execution history with rule and case context
// @Tags auto-actions
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Router /api/auto-actions/logs [get]
func (ctrl *AutoActionController) GetLogs(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	entries, total, err := ctrl.Service.GetLogs(c.UserContext(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"data":  entries,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Trigger godoc
// @Summary Fire a trigger event through the rule engine
// @Tags auto-actions
// @Accept json
// @Produce json
// @Param input body TriggerContext true "Trigger"
// @Success 200 {object} DispatchResult
// @Failure 400 {object} map[string]string
// @Router /api/auto-actions/trigger [post]
func (ctrl *AutoActionController) Trigger(c *fiber.Ctx) error {
	var tc TriggerContext
	if err := c.BodyParser(&tc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if tc.Event == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "event is required"})
	}

	// rule and action failures are data in the result, not HTTP errors
	result, err := ctrl.Service.Trigger(c.UserContext(), &tc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}
