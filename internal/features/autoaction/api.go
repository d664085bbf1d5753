package autoaction

import (
	"go-casework/internal/common/api"
	"go-casework/internal/config"
	"go-casework/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AutoActionApi struct {
	controller *AutoActionController
	config     *config.Config
}

func NewAutoActionApi(controller *AutoActionController, config *config.Config) api.Route {
	return &AutoActionApi{controller: controller, config: config}
}

func (h *AutoActionApi) Setup(app *fiber.App) {
	group := app.Group("/api/auto-actions", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.ListRules)
	group.Post("/", h.controller.CreateRule)
	group.Get("/logs", h.controller.GetLogs)
	group.Post("/trigger", h.controller.Trigger)
	group.Put("/:id", h.controller.UpdateRule)
	group.Patch("/:id/enable", h.controller.EnableRule)
	group.Delete("/:id", h.controller.DeleteRule)
}
