package client

import (
	"github.com/gofiber/fiber/v2"
)

type ClientController struct {
	Service ClientService
}

func NewClientController(service ClientService) *ClientController {
	return &ClientController{Service: service}
}

// CreateClient godoc
// @Summary Register a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body Client true "Client"
// @Success 201 {object} Client
// @Router /api/clients [post]
func (ctrl *ClientController) CreateClient(c *fiber.Ctx) error {
	var client Client
	if err := c.BodyParser(&client); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.Create(c.UserContext(), &client); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetClient godoc
// @Summary Get a client by id
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} Client
// @Router /api/clients/{id} [get]
func (ctrl *ClientController) GetClient(c *fiber.Ctx) error {
	client, err := ctrl.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	}
	return c.JSON(client)
}

// ListClients godoc
// @Summary List clients for the caller's centre
// @Tags clients
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} map[string]interface{}
// @Router /api/clients [get]
func (ctrl *ClientController) ListClients(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 20))

	clients, total, err := ctrl.Service.List(c.UserContext(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"data": clients, "total": total, "page": page, "limit": limit})
}

func (ctrl *ClientController) UpdateClient(c *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.Update(c.UserContext(), c.Params("id"), updates); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

func (ctrl *ClientController) DeleteClient(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
