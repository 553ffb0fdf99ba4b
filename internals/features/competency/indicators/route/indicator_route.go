// file: internals/features/competency/indicators/route/indicator_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"kompetensi_backend/internals/features/competency/indicators/controller"
	"kompetensi_backend/internals/features/competency/indicators/service"
)

func IndicatorRoutes(r fiber.Router, svc *service.Service) {
	ctl := controller.NewIndicatorController(svc)

	g := r.Group("/indicators")
	g.Get("/", ctl.List)             // GET    /api/indicators?q=&competency_id=
	g.Get("/active", ctl.ListActive) // GET    /api/indicators/active
	g.Get("/:id", ctl.Get)           // GET    /api/indicators/:id
	g.Post("/", ctl.Create)          // POST   /api/indicators
	g.Patch("/:id", ctl.Update)      // PATCH  /api/indicators/:id
	g.Delete("/:id", ctl.Delete)     // DELETE /api/indicators/:id
}
