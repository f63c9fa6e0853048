package middleware

import (
	"github.com/gofiber/fiber/v2"

	"feedback-backend/internal/domain"
)

// RequireRole gates a route on the closed role set.
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return Forbidden("Insufficient permissions for this operation")
	}
}
