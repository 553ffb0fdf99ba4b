package logger

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"

	appLogger "kompetensi_backend/internals/helpers/logger"
)

const LocRequestID = "reqid"

// LoggerMiddleware: request-id + timeout context + satu baris log per request.
func LoggerMiddleware(log *appLogger.Logger, timeout time.Duration) fiber.Handler {
	if log == nil {
		log = appLogger.Nop()
	}
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUID()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals(LocRequestID, id)

		if timeout > 0 {
			// HTTP timeout guard (selaras dengan statement_timeout di DB)
			ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
			defer cancel()
			c.SetUserContext(ctx)
		}

		start := time.Now()
		err := c.Next()
		if err != nil {
			// biar status di log = status yang dikirim ErrorHandler
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		zl := log.Zerolog()
		ev := zl.Info()
		switch {
		case status >= 500:
			ev = zl.Error()
		case status >= 400:
			ev = zl.Warn()
		}
		ev.Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}
