// file: internals/features/organization/subdirectorats/route/subdirectorat_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"kompetensi_backend/internals/features/organization/subdirectorats/controller"
	"kompetensi_backend/internals/features/organization/subdirectorats/service"
)

/*
Mount contoh: SubdirectoratRoutes(api, svc)
*/
func SubdirectoratRoutes(r fiber.Router, svc *service.Service) {
	ctl := controller.NewSubdirectoratController(svc)

	g := r.Group("/subdirectorats")
	g.Get("/", ctl.List)             // GET    /api/subdirectorats?q=
	g.Get("/active", ctl.ListActive) // GET    /api/subdirectorats/active
	g.Get("/:id", ctl.Get)           // GET    /api/subdirectorats/:id
	g.Post("/", ctl.Create)          // POST   /api/subdirectorats
	g.Patch("/:id", ctl.Update)      // PATCH  /api/subdirectorats/:id
	g.Delete("/:id", ctl.Delete)     // DELETE /api/subdirectorats/:id
}
