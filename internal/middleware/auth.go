package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/service/auth"
)

const userContextKey = "user"

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		user, err := authService.GetUserByID(c.Context(), claims.UserID)
		if err != nil || user == nil {
			return Unauthorized("User not found")
		}

		c.Locals(userContextKey, user)

		return c.Next()
	}
}

// CurrentUser returns the authenticated user resolved by AuthRequired.
// Handlers call this once and pass the user explicitly into services.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(userContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
