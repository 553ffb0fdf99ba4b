// file: internals/features/help/documents/route/help_document_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"kompetensi_backend/internals/features/help/documents/controller"
	"kompetensi_backend/internals/features/help/documents/service"
)

func HelpDocumentRoutes(r fiber.Router, svc *service.Service) {
	ctl := controller.NewHelpDocumentController(svc)

	g := r.Group("/help/documents")
	g.Get("/", ctl.List)         // GET    /api/help/documents?q=
	g.Get("/:id", ctl.Get)       // GET    /api/help/documents/:id
	g.Post("/", ctl.Create)      // POST   /api/help/documents (multipart)
	g.Patch("/:id", ctl.Update)  // PATCH  /api/help/documents/:id (multipart/JSON)
	g.Delete("/:id", ctl.Delete) // DELETE /api/help/documents/:id
}
