// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kompetensi_backend/internals/configs"
	"kompetensi_backend/internals/helpers/logger"
	"kompetensi_backend/internals/helpers/storage"
	authMiddleware "kompetensi_backend/internals/middlewares/auth"
	rateLimiter "kompetensi_backend/internals/middlewares"
	routeDetails "kompetensi_backend/internals/route/details"
)

// Deps dibangun sekali di main lalu diteruskan ke semua route.
type Deps struct {
	DB      *gorm.DB
	Store   storage.ObjectStorage
	Config  configs.AppConfig
	Log     *logger.Logger
	Started time.Time
}

func SetupRoutes(app *fiber.App, d Deps) {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Started.IsZero() {
		d.Started = time.Now()
	}
	log := d.Log.With("component", "routes")

	log.Info("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d)

	api := app.Group("/api", rateLimiter.GlobalRateLimiter())

	// ===================== AUTH =====================
	log.Info("[INFO] Setting up AuthRoutes...")
	authSvc := routeDetails.AuthRoutes(api, d.DB, d.Config, d.Log)

	// ===================== PRIVATE (butuh sesi) =====================
	private := api.Group("", authMiddleware.AuthMiddleware(authSvc, d.Log))

	log.Info("[INFO] Mounting Organization & Account routes...")
	subdirs := routeDetails.OrganizationRoutes(private, d.DB, d.Log)
	routeDetails.AccountRoutes(private, d.DB, subdirs, d.Config, d.Log)

	log.Info("[INFO] Mounting Competency routes...")
	routeDetails.CompetencyRoutes(private, d.DB, d.Config, d.Log)

	log.Info("[INFO] Mounting Help routes...")
	routeDetails.HelpRoutes(private, d.DB, d.Store, d.Config.Help, d.Log)
}
