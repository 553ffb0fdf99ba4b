package seeds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	database "kompetensi_backend/internals/databases"
	"kompetensi_backend/internals/databases/migrate"
	indicatorModel "kompetensi_backend/internals/features/competency/indicators/model"
	accountModel "kompetensi_backend/internals/features/users/accounts/model"
)

func TestRunAllSeedsIsIdempotent(t *testing.T) {
	db := database.NewTestDB(t, migrate.Models()...)
	ctx := context.Background()

	require.NoError(t, RunAllSeeds(ctx, db, "data", nil))
	require.NoError(t, RunAllSeeds(ctx, db, "data", nil))

	var admin accountModel.AccountModel
	require.NoError(t, db.Where("account_nrp = ?", "00000001").First(&admin).Error)
	assert.Equal(t, "ADMIN", admin.AccountPositionType)
	assert.True(t, admin.AccountIsActive)
	require.NotNil(t, admin.AccountSubdirectoratID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.AccountPassword), []byte("admin12345")))

	var accounts, indicators int64
	require.NoError(t, db.Model(&accountModel.AccountModel{}).Count(&accounts).Error)
	require.NoError(t, db.Model(&indicatorModel.IndicatorModel{}).Count(&indicators).Error)
	assert.Equal(t, int64(1), accounts)
	assert.Equal(t, int64(3), indicators)
}

func TestRunAllSeedsMissingFile(t *testing.T) {
	db := database.NewTestDB(t, migrate.Models()...)
	assert.Error(t, RunAllSeeds(context.Background(), db, "tidak-ada", nil))
}
