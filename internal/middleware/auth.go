package middleware

import (
	"context"

	common_models "go-casework/internal/common/models"
	"go-casework/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates JWT tokens and injects user claims plus the
// caller's centre id into the request context.
func AuthMiddleware(skipAuth bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			// Inject dummy context for dev
			dummyClaims := &utils.UserClaims{
				UserID:   "dev-admin-id",
				CentreID: "000000000000000000000000",
				Roles:    []string{"admin"},
			}
			return injectClaims(c, dummyClaims)
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := utils.ValidateToken(authHeader[7:])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		return injectClaims(c, claims)
	}
}

func injectClaims(c *fiber.Ctx, claims *utils.UserClaims) error {
	c.Locals(utils.UserClaimsKey, claims)
	c.Locals("userID", claims.UserID)
	c.Locals("roles", claims.Roles)

	ctx := context.WithValue(c.UserContext(), utils.UserClaimsKey, claims)
	ctx = context.WithValue(ctx, common_models.CentreIDKey, claims.CentreID)
	c.SetUserContext(ctx)

	return c.Next()
}
