package document

import (
	"go-casework/internal/common/api"
	"go-casework/internal/config"
	"go-casework/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DocumentApi struct {
	controller *DocumentController
	config     *config.Config
}

func NewDocumentApi(controller *DocumentController, config *config.Config) api.Route {
	return &DocumentApi{controller: controller, config: config}
}

func (h *DocumentApi) Setup(app *fiber.App) {
	group := app.Group("/api/documents", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", h.controller.UploadDocument)
	group.Get("/case/:caseId", h.controller.ListByCase)
	group.Get("/:id", h.controller.DownloadDocument)
	group.Delete("/:id", h.controller.DeleteDocument)
}
