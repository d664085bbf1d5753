package note

import (
	"go-casework/internal/common/api"
	"go-casework/internal/config"
	"go-casework/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NoteApi struct {
	controller *NoteController
	config     *config.Config
}

func NewNoteApi(controller *NoteController, config *config.Config) api.Route {
	return &NoteApi{controller: controller, config: config}
}

func (h *NoteApi) Setup(app *fiber.App) {
	group := app.Group("/api/notes", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", h.controller.CreateNote)
	group.Get("/case/:caseId", h.controller.ListByCase)
	group.Delete("/:id", h.controller.DeleteNote)
}
