package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kompetensi_backend/internals/configs"
	docRoute "kompetensi_backend/internals/features/help/documents/route"
	docService "kompetensi_backend/internals/features/help/documents/service"
	videoRoute "kompetensi_backend/internals/features/help/videos/route"
	videoService "kompetensi_backend/internals/features/help/videos/service"
	"kompetensi_backend/internals/helpers/logger"
	"kompetensi_backend/internals/helpers/storage"
)

func HelpRoutes(r fiber.Router, db *gorm.DB, store storage.ObjectStorage, cfg configs.HelpConfig, log *logger.Logger) {
	docRoute.HelpDocumentRoutes(r, docService.New(db, store, cfg, log))
	videoRoute.HelpVideoRoutes(r, videoService.New(db, store, cfg, log))
}
