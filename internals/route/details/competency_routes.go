package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kompetensi_backend/internals/configs"
	competencyRoute "kompetensi_backend/internals/features/competency/competencies/route"
	competencyService "kompetensi_backend/internals/features/competency/competencies/service"
	indicatorRoute "kompetensi_backend/internals/features/competency/indicators/route"
	indicatorService "kompetensi_backend/internals/features/competency/indicators/service"
	"kompetensi_backend/internals/helpers/logger"
)

// CompetencyRoutes: kompetensi + indikator (indikator lookup nama lewat service kompetensi).
func CompetencyRoutes(r fiber.Router, db *gorm.DB, cfg configs.AppConfig, log *logger.Logger) {
	comps := competencyService.New(db, log)
	competencyRoute.CompetencyRoutes(r, comps)

	inds := indicatorService.New(db, comps, indicatorService.Options{
		StrictCompetencyRef: cfg.StrictCompetencyRef,
	}, log)
	indicatorRoute.IndicatorRoutes(r, inds)
}
