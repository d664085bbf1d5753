package user

import (
	"go-casework/internal/common/api"
	"go-casework/internal/config"
	"go-casework/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
}

func NewUserApi(controller *UserController, config *config.Config) api.Route {
	return &UserApi{controller: controller, config: config}
}

func (h *UserApi) Setup(app *fiber.App) {
	group := app.Group("/api/users", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", h.controller.CreateUser)
	group.Get("/", h.controller.ListUsers)
	group.Get("/:id", h.controller.GetUser)
	group.Put("/:id", h.controller.UpdateUser)
	group.Delete("/:id", h.controller.DeleteUser)
}
