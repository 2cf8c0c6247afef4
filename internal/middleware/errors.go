package middleware

import (
	"github.com/emlakpress/contentd/internal/apperrors"
	"github.com/emlakpress/contentd/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// ErrorHandler translates taxonomy errors into the JSON envelope. Raw causes
// of unknown errors are logged but never rendered into responses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	code := apperrors.Code(err)
	message := apperrors.PublicMessage(err)
	if e, ok := err.(*fiber.Error); ok {
		status = e.Code
		code = "HTTP_ERROR"
		message = e.Message
	}

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Msg("request failed")

	resp := fiber.Map{
		"success":   false,
		"requestId": requestID(c),
		"code":      code,
		"message":   message,
	}
	if apperrors.Is(err, apperrors.KindPersistence) || apperrors.Is(err, apperrors.KindGeneration) {
		resp["retryable"] = true
	}

	return c.Status(status).JSON(resp)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}
