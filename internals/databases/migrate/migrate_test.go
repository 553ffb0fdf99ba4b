package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "kompetensi_backend/internals/databases"
	"kompetensi_backend/internals/helpers/logger"
)

func TestAutoMigrateCreatesAllTables(t *testing.T) {
	db := database.NewTestDB(t)
	require.NoError(t, AutoMigrate(db, logger.Nop()))

	for _, table := range []string{
		"subdirectorats", "accounts", "token_blacklist", "competencies",
		"indicators", "help_documents", "help_videos",
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// idempotent
	require.NoError(t, AutoMigrate(db, logger.Nop()))
}
