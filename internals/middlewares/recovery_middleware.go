package middlewares

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"kompetensi_backend/internals/helpers/logger"
)

// RecoveryMiddleware menangkap panic; stack trace ke log, response 500 lewat ErrorHandler.
func RecoveryMiddleware(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Errorf(fmt.Errorf("panic: %v", e), "recovered %s %s\n%s", c.Method(), c.Path(), debug.Stack())
		},
	})
}
