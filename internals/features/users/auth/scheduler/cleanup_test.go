package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kompetensi_backend/internals/databases"
	authModel "kompetensi_backend/internals/features/users/auth/model"
	authRepo "kompetensi_backend/internals/features/users/auth/repository"
	"kompetensi_backend/internals/helpers/logger"
)

func TestRunBlacklistCleanupRemovesOnlyExpired(t *testing.T) {
	db := database.NewTestDB(t, &authModel.TokenBlacklist{})
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, authRepo.BlacklistToken(ctx, db, "lama", now.Add(-time.Hour)))
	require.NoError(t, authRepo.BlacklistToken(ctx, db, "baru", now.Add(time.Hour)))

	n, err := RunBlacklistCleanup(ctx, db, logger.Nop(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	ok, err := authRepo.IsBlacklisted(ctx, db, "baru", now)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = authRepo.IsBlacklisted(ctx, db, "lama", now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStartBlacklistCleanupSchedulerRunsOnceAndRegisters(t *testing.T) {
	db := database.NewTestDB(t, &authModel.TokenBlacklist{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	now := time.Now().UTC()

	require.NoError(t, authRepo.BlacklistToken(ctx, db, "lama", now.Add(-time.Hour)))

	c, err := StartBlacklistCleanupScheduler(ctx, db, time.Hour, logger.Nop())
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
	assert.WithinDuration(t, time.Now().Add(time.Hour), c.Entries()[0].Next, time.Minute)

	var n int64
	require.NoError(t, db.Model(&authModel.TokenBlacklist{}).Count(&n).Error)
	assert.Zero(t, n)
}
