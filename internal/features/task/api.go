package task

import (
	"go-casework/internal/common/api"
	"go-casework/internal/config"
	"go-casework/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TaskApi struct {
	controller *TaskController
	config     *config.Config
}

func NewTaskApi(controller *TaskController, config *config.Config) api.Route {
	return &TaskApi{controller: controller, config: config}
}

func (h *TaskApi) Setup(app *fiber.App) {
	group := app.Group("/api/tasks", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", h.controller.CreateTask)
	group.Get("/case/:caseId", h.controller.ListByCase)
	group.Patch("/:id/status", h.controller.UpdateStatus)
	group.Delete("/:id", h.controller.DeleteTask)
}
