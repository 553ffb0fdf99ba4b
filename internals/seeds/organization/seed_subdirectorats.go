package organization

import (
	"context"
	"os"

	"github.com/bytedance/sonic"
	"github.com/juju/errors"
	"gorm.io/gorm"

	"kompetensi_backend/internals/features/organization/subdirectorats/model"
	"kompetensi_backend/internals/helpers/logger"
)

type SubdirectoratSeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// SeedSubdirectoratsFromJSON: skip kalau nama sudah ada (termasuk yang soft delete).
func SeedSubdirectoratsFromJSON(ctx context.Context, db *gorm.DB, filePath string, log *logger.Logger) (int, error) {
	log.Infof("📥 Membaca file subdirektorat: %s", filePath)
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return 0, errors.Annotatef(err, "read %s", filePath)
	}
	var inputs []SubdirectoratSeed
	if err := sonic.Unmarshal(raw, &inputs); err != nil {
		return 0, errors.Annotatef(err, "decode %s", filePath)
	}

	inserted := 0
	for _, in := range inputs {
		var n int64
		if err := db.WithContext(ctx).Unscoped().Model(&model.SubdirectoratModel{}).
			Where("subdirectorat_name = ?", in.Name).Count(&n).Error; err != nil {
			return inserted, errors.Annotate(err, "check subdirectorat")
		}
		if n > 0 {
			log.Debugf("ℹ️ Subdirektorat '%s' sudah ada, dilewati.", in.Name)
			continue
		}
		row := model.SubdirectoratModel{
			SubdirectoratName:        in.Name,
			SubdirectoratDescription: in.Description,
			SubdirectoratIsActive:    in.IsActive == nil || *in.IsActive,
		}
		if err := db.WithContext(ctx).Create(&row).Error; err != nil {
			return inserted, errors.Annotatef(err, "insert subdirectorat %q", in.Name)
		}
		inserted++
	}
	log.Infof("✅ Subdirektorat: %d baru dari %d data", inserted, len(inputs))
	return inserted, nil
}
