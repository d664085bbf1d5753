package messaging

import (
	"go-casework/internal/common/api"
	"go-casework/internal/config"
	"go-casework/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MessagingApi struct {
	controller *MessagingController
	config     *config.Config
}

func NewMessagingApi(controller *MessagingController, config *config.Config) api.Route {
	return &MessagingApi{controller: controller, config: config}
}

func (h *MessagingApi) Setup(app *fiber.App) {
	group := app.Group("/api/messages", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/sms", h.controller.SendSMS)
	group.Post("/email", h.controller.SendEmail)
	group.Get("/case/:caseId", h.controller.ListByCase)
}
