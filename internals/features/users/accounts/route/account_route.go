// file: internals/features/users/accounts/route/account_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"kompetensi_backend/internals/features/users/accounts/controller"
	"kompetensi_backend/internals/features/users/accounts/service"
)

// Dipasang di belakang AuthMiddleware.
func AccountRoutes(r fiber.Router, svc *service.Service) {
	ctl := controller.NewAccountController(svc)

	me := r.Group("/accounts/me")
	me.Get("/", ctl.Me)                     // GET /api/accounts/me
	me.Put("/password", ctl.UpdatePassword) // PUT /api/accounts/me/password
}
