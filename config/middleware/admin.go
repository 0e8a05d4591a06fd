package middleware

import (
	"github.com/gofiber/fiber/v2"

	"visitor-management/models"
)

// RoleMiddleware lets the request through only for the listed roles.
// It must run after AuthMiddleware.
func RoleMiddleware(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := CurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated or session data is corrupt"})
		}

		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied for your role"})
	}
}

func AdminMiddleware() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin)
}
