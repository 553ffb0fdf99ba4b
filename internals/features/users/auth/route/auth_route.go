// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	controller "kompetensi_backend/internals/features/users/auth/controller"
	rateLimiter "kompetensi_backend/internals/middlewares"
)

// AuthRoutes: login publik (rate limited); logout di belakang requireAuth.
func AuthRoutes(r fiber.Router, ctl *controller.AuthController, requireAuth fiber.Handler) {
	baseAuth := r.Group("/auth")

	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	baseAuth.Post("/logout", requireAuth, ctl.Logout)
}
