package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/models"
	"visitor-management/pkg/apperror"
)

// ClaimsKey is the fiber.Ctx Locals key holding the caller's *models.Claims.
const ClaimsKey = "user"

type TokenValidator interface {
	ValidateToken(token string) (*models.Claims, error)
}

// AccountLoader returns the stored account behind a token.
type AccountLoader interface {
	Me(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// AuthMiddleware validates the bearer token and then the account it names.
// Role, name and email come from the stored account, not from the token.
func AuthMiddleware(tokens TokenValidator, accounts AccountLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header is required"})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header format must be Bearer <token>"})
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := accounts.Me(c.UserContext(), claims.UserID)
		if apperror.KindOf(err) == apperror.KindNotFound || (err == nil && user == nil) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Account no longer exists"})
		}
		if err != nil {
			return err
		}
		if !user.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account is deactivated"})
		}

		c.Locals(ClaimsKey, &models.Claims{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Role:   user.Role,
		})
		return c.Next()
	}
}

// CurrentUser returns the claims stored by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) (*models.Claims, bool) {
	claims, ok := c.Locals(ClaimsKey).(*models.Claims)
	return claims, ok && claims != nil
}
