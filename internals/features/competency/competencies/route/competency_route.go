// file: internals/features/competency/competencies/route/competency_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"kompetensi_backend/internals/features/competency/competencies/controller"
	"kompetensi_backend/internals/features/competency/competencies/service"
)

/*
Mount contoh: CompetencyRoutes(api, svc)
*/
func CompetencyRoutes(r fiber.Router, svc *service.Service) {
	ctl := controller.NewCompetencyController(svc)

	g := r.Group("/competencies")
	g.Get("/", ctl.List)             // GET    /api/competencies?q=
	g.Get("/active", ctl.ListActive) // GET    /api/competencies/active
	g.Get("/:id", ctl.Get)           // GET    /api/competencies/:id
	g.Post("/", ctl.Create)          // POST   /api/competencies
	g.Patch("/:id", ctl.Update)      // PATCH  /api/competencies/:id
	g.Delete("/:id", ctl.Delete)     // DELETE /api/competencies/:id
}
