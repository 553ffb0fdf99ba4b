package competency

import (
	"context"
	"os"

	"github.com/bytedance/sonic"
	"github.com/juju/errors"
	"gorm.io/gorm"

	competencyModel "kompetensi_backend/internals/features/competency/competencies/model"
	indicatorModel "kompetensi_backend/internals/features/competency/indicators/model"
	"kompetensi_backend/internals/helpers/logger"
)

type IndicatorSeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Statement   string `json:"statement"`
}

type CompetencySeed struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	IsActive    *bool           `json:"is_active"`
	Indicators  []IndicatorSeed `json:"indicators"`
}

// SeedCompetenciesFromJSON: kompetensi + indikatornya. Kompetensi yang sudah
// ada (berdasarkan nama) dilewati beserta indikatornya.
func SeedCompetenciesFromJSON(ctx context.Context, db *gorm.DB, filePath string, log *logger.Logger) (int, error) {
	log.Infof("📥 Membaca file kompetensi: %s", filePath)
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return 0, errors.Annotatef(err, "read %s", filePath)
	}
	var inputs []CompetencySeed
	if err := sonic.Unmarshal(raw, &inputs); err != nil {
		return 0, errors.Annotatef(err, "decode %s", filePath)
	}

	inserted := 0
	for _, in := range inputs {
		var n int64
		if err := db.WithContext(ctx).Unscoped().Model(&competencyModel.CompetencyModel{}).
			Where("competency_name = ?", in.Name).Count(&n).Error; err != nil {
			return inserted, errors.Annotate(err, "check competency")
		}
		if n > 0 {
			log.Debugf("ℹ️ Kompetensi '%s' sudah ada, dilewati.", in.Name)
			continue
		}

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			comp := competencyModel.CompetencyModel{
				CompetencyName:        in.Name,
				CompetencyDescription: in.Description,
				CompetencyIsActive:    in.IsActive == nil || *in.IsActive,
			}
			if err := tx.Create(&comp).Error; err != nil {
				return err
			}
			for _, ind := range in.Indicators {
				desc := ind.Description
				if desc == "" {
					desc = ind.Statement
				}
				row := indicatorModel.IndicatorModel{
					IndicatorCompetencyID: comp.CompetencyID,
					IndicatorName:         ind.Name,
					IndicatorDescription:  desc,
					IndicatorIsActive:     true,
				}
				if ind.Statement != "" {
					s := ind.Statement
					row.IndicatorStatementText = &s
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return inserted, errors.Annotatef(err, "insert competency %q", in.Name)
		}
		inserted++
	}
	log.Infof("✅ Kompetensi: %d baru dari %d data", inserted, len(inputs))
	return inserted, nil
}
