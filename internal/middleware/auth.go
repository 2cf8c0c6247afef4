package middleware

import (
	"github.com/emlakpress/contentd/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// AdminOnly guards mutating endpoints behind a shared admin API key supplied
// in the X-API-Key header. An empty configured key disables the guard (local
// development).
func AdminOnly(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if adminKey == "" {
			return c.Next()
		}

		apiKey := c.Get("X-API-Key")
		if apiKey == "" {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("admin access attempt without API key")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "API key is required",
			})
		}

		if apiKey != adminKey {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("unauthorized admin access attempt")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"code":    "FORBIDDEN",
				"message": "admin access required",
			})
		}

		return c.Next()
	}
}
