package scheduler

import (
	"context"
	"time"

	"github.com/juju/errors"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authRepo "kompetensi_backend/internals/features/users/auth/repository"
	"kompetensi_backend/internals/helpers/logger"
)

// RunBlacklistCleanup sekali jalan; dipakai scheduler dan test.
func RunBlacklistCleanup(ctx context.Context, db *gorm.DB, log *logger.Logger, now time.Time) (int64, error) {
	n, err := authRepo.CleanupExpiredBlacklist(ctx, db, now)
	if err != nil {
		log.Errorf(err, "[CLEANUP] gagal hapus token_blacklist")
		return 0, err
	}
	if n > 0 {
		log.Infof("[CLEANUP] %d token kadaluarsa dihapus", n)
	} else {
		log.Debugf("[CLEANUP] tidak ada token yang memenuhi syarat dihapus")
	}
	return n, nil
}

// StartBlacklistCleanupScheduler: sekali saat start, lalu "@every interval" di cron
// sampai ctx selesai.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB, interval time.Duration, log *logger.Logger) (*cron.Cron, error) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if log == nil {
		log = logger.Nop()
	}
	cl := cron.PrintfLogger(log.Zerolog())
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	spec := "@every " + interval.String()
	if _, err := c.AddFunc(spec, func() {
		_, _ = RunBlacklistCleanup(ctx, db, log, time.Now())
	}); err != nil {
		return nil, errors.Annotatef(err, "add blacklist cleanup schedule %q", spec)
	}

	_, _ = RunBlacklistCleanup(ctx, db, log, time.Now())
	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}
