package system

import (
	"github.com/gofiber/fiber/v2"
)

type DebugController struct{}

func NewDebugController() *DebugController {
	return &DebugController{}
}

// GetCurrentUser godoc
// @Summary      Get current user info
// @Description  Get the current user's info from JWT
// @Tags         debug
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/debug/me [get]
func (c *DebugController) GetCurrentUser(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"user_id": ctx.Locals("userID"),
		"roles":   ctx.Locals("roles"),
		"message": "This is your current JWT token data",
	})
}
