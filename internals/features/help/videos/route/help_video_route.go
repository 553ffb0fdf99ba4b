// file: internals/features/help/videos/route/help_video_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"kompetensi_backend/internals/features/help/videos/controller"
	"kompetensi_backend/internals/features/help/videos/service"
)

func HelpVideoRoutes(r fiber.Router, svc *service.Service) {
	ctl := controller.NewHelpVideoController(svc)

	g := r.Group("/help/videos")
	g.Get("/", ctl.List)         // GET    /api/help/videos?q=
	g.Get("/:id", ctl.Get)       // GET    /api/help/videos/:id
	g.Post("/", ctl.Create)      // POST   /api/help/videos
	g.Patch("/:id", ctl.Update)  // PATCH  /api/help/videos/:id
	g.Delete("/:id", ctl.Delete) // DELETE /api/help/videos/:id
}
