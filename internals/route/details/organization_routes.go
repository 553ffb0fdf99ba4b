package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kompetensi_backend/internals/configs"
	subdirRoute "kompetensi_backend/internals/features/organization/subdirectorats/route"
	subdirService "kompetensi_backend/internals/features/organization/subdirectorats/service"
	accountRoute "kompetensi_backend/internals/features/users/accounts/route"
	accountService "kompetensi_backend/internals/features/users/accounts/service"
	"kompetensi_backend/internals/helpers/logger"
)

func OrganizationRoutes(r fiber.Router, db *gorm.DB, log *logger.Logger) *subdirService.Service {
	svc := subdirService.New(db, log)
	subdirRoute.SubdirectoratRoutes(r, svc)
	return svc
}

func AccountRoutes(r fiber.Router, db *gorm.DB, subdirs accountService.SubdirectoratDirectory, cfg configs.AppConfig, log *logger.Logger) {
	svc := accountService.New(db, subdirs, accountService.Options{PasswordMinLen: cfg.PasswordMinLen}, log)
	accountRoute.AccountRoutes(r, svc)
}
