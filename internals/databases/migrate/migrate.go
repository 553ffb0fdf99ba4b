// Package migrate mendaftar semua model yang di-AutoMigrate saat start.
package migrate

import (
	"github.com/juju/errors"
	"gorm.io/gorm"

	competencyModel "kompetensi_backend/internals/features/competency/competencies/model"
	indicatorModel "kompetensi_backend/internals/features/competency/indicators/model"
	helpDocModel "kompetensi_backend/internals/features/help/documents/model"
	helpVideoModel "kompetensi_backend/internals/features/help/videos/model"
	subdirModel "kompetensi_backend/internals/features/organization/subdirectorats/model"
	accountModel "kompetensi_backend/internals/features/users/accounts/model"
	authModel "kompetensi_backend/internals/features/users/auth/model"
	"kompetensi_backend/internals/helpers/logger"
)

// Models: urutan = urutan create table.
func Models() []interface{} {
	return []interface{}{
		&subdirModel.SubdirectoratModel{},
		&accountModel.AccountModel{},
		&authModel.TokenBlacklist{},
		&competencyModel.CompetencyModel{},
		&indicatorModel.IndicatorModel{},
		&helpDocModel.HelpDocumentModel{},
		&helpVideoModel.HelpVideoModel{},
	}
}

func AutoMigrate(db *gorm.DB, log *logger.Logger) error {
	models := Models()
	if err := db.AutoMigrate(models...); err != nil {
		return errors.Annotate(err, "auto migrate")
	}
	log.Infof("✅ AutoMigrate selesai (%d tabel)", len(models))
	return nil
}
