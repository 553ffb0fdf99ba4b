package seeds

import (
	"context"
	"path/filepath"

	"gorm.io/gorm"

	"kompetensi_backend/internals/helpers/logger"
	"kompetensi_backend/internals/seeds/accounts"
	"kompetensi_backend/internals/seeds/competency"
	"kompetensi_backend/internals/seeds/organization"
)

// RunAllSeeds menjalankan seeder JSON berurutan (subdirektorat dulu karena
// dirujuk akun). Aman dipanggil berulang.
func RunAllSeeds(ctx context.Context, db *gorm.DB, dir string, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("component", "seed")

	if _, err := organization.SeedSubdirectoratsFromJSON(ctx, db, filepath.Join(dir, "subdirectorats.json"), log); err != nil {
		return err
	}
	if _, err := competency.SeedCompetenciesFromJSON(ctx, db, filepath.Join(dir, "competencies.json"), log); err != nil {
		return err
	}
	if _, err := accounts.SeedAccountsFromJSON(ctx, db, filepath.Join(dir, "accounts.json"), log); err != nil {
		return err
	}
	return nil
}
