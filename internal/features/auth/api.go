package auth

import (
	"go-casework/internal/common/api"
	"go-casework/internal/config"
	"go-casework/internal/middleware"
	"go-casework/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
}

func NewAuthApi(controller *AuthController, config *config.Config) api.Route {
	return &AuthApi{controller: controller, config: config}
}

func (h *AuthApi) Setup(app *fiber.App) {
	// public routes
	app.Post("/api/register", h.controller.Register)
	app.Post("/api/login", h.controller.Login)

	app.Get("/api/me", middleware.AuthMiddleware(h.config.SkipAuth), h.me)
}

func (h *AuthApi) me(c *fiber.Ctx) error {
	return c.JSON(c.Locals(utils.UserClaimsKey))
}
