package appointment

import (
	"go-casework/internal/common/api"
	"go-casework/internal/config"
	"go-casework/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AppointmentApi struct {
	controller *AppointmentController
	config     *config.Config
}

func NewAppointmentApi(controller *AppointmentController, config *config.Config) api.Route {
	return &AppointmentApi{controller: controller, config: config}
}

func (h *AppointmentApi) Setup(app *fiber.App) {
	group := app.Group("/api/appointments", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", h.controller.CreateAppointment)
	group.Get("/case/:caseId", h.controller.ListByCase)
	group.Patch("/:id/status", h.controller.UpdateStatus)
	group.Delete("/:id", h.controller.DeleteAppointment)
}
