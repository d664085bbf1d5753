package casefile

import (
	"go-casework/internal/common/api"
	"go-casework/internal/config"
	"go-casework/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CaseApi struct {
	controller *CaseController
	config     *config.Config
}

func NewCaseApi(controller *CaseController, config *config.Config) api.Route {
	return &CaseApi{controller: controller, config: config}
}

func (h *CaseApi) Setup(app *fiber.App) {
	group := app.Group("/api/cases", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.ListCases)
	group.Get("/:id", h.controller.GetCase)
	group.Post("/", h.controller.CreateCase)
	group.Put("/:id", h.controller.UpdateCase)
	group.Patch("/:id/status", h.controller.ChangeStatus)
	group.Delete("/:id", h.controller.DeleteCase)
}
