package client

import (
	"go-casework/internal/common/api"
	"go-casework/internal/config"
	"go-casework/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ClientApi struct {
	controller *ClientController
	config     *config.Config
}

func NewClientApi(controller *ClientController, config *config.Config) api.Route {
	return &ClientApi{controller: controller, config: config}
}

func (h *ClientApi) Setup(app *fiber.App) {
	group := app.Group("/api/clients", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.ListClients)
	group.Get("/:id", h.controller.GetClient)
	group.Post("/", h.controller.CreateClient)
	group.Put("/:id", h.controller.UpdateClient)
	group.Delete("/:id", h.controller.DeleteClient)
}
