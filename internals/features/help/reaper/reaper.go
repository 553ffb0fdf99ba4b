// Package reaper membersihkan object yatim di bucket bantuan: file yang
// sudah ter-upload tapi tidak dirujuk row mana pun (insert gagal, hapus file
// gagal, dsb). Row entity soft-delete tidak pernah disentuh.
package reaper

import (
	"context"
	"time"

	"github.com/juju/errors"
	"github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"kompetensi_backend/internals/configs"
	"kompetensi_backend/internals/features/help/assets"
	"kompetensi_backend/internals/helpers/logger"
	"kompetensi_backend/internals/helpers/storage"
)

const (
	defaultGrace    = 24 * time.Hour
	defaultSchedule = "15 2 * * *"
	runTimeout      = 4 * time.Minute
)

// kolom yang menyimpan object key
type refSource struct{ Table, Col string }

var refSources = []refSource{
	{Table: "help_documents", Col: "help_document_file_path"},
	{Table: "help_videos", Col: "help_video_thumbnail_path"},
}

type Result struct {
	Scanned int
	Orphans []string
	Removed int
	DryRun  bool
}

type Reaper struct {
	db    *gorm.DB
	store storage.ObjectStorage
	cfg   configs.ReaperConfig
	log   *logger.Logger
	now   func() time.Time
}

func New(db *gorm.DB, store storage.ObjectStorage, cfg configs.ReaperConfig, log *logger.Logger) *Reaper {
	if cfg.Grace <= 0 {
		cfg.Grace = defaultGrace
	}
	if cfg.Schedule == "" {
		cfg.Schedule = defaultSchedule
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Reaper{db: db, store: store, cfg: cfg, log: log.With("component", "orphan_reaper"), now: time.Now}
}

// RunOnce: list object di folder bantuan → buang yang masih dirujuk atau
// masih dalam masa tenggang → hapus sisanya (atau hanya log kalau dry run).
func (r *Reaper) RunOnce(ctx context.Context) (Result, error) {
	res := Result{DryRun: r.cfg.DryRun}

	refs, err := r.referencedKeys(ctx)
	if err != nil {
		// tanpa daftar rujukan semua object terlihat yatim, jangan lanjut
		return res, err
	}

	threshold := r.now().Add(-r.cfg.Grace)
	for _, folder := range assets.Folders {
		objs, err := r.store.List(ctx, folder+"/")
		if err != nil {
			return res, errors.Annotatef(err, "list %s", folder)
		}
		for _, o := range objs {
			res.Scanned++
			if _, ok := refs[o.Key]; ok {
				continue
			}
			if o.LastModified.After(threshold) {
				continue
			}
			res.Orphans = append(res.Orphans, o.Key)
		}
	}

	if len(res.Orphans) == 0 {
		r.log.Debugf("[REAPER] tidak ada object yatim (scanned=%d)", res.Scanned)
		return res, nil
	}
	if r.cfg.DryRun {
		r.log.Infof("[REAPER] DRY-RUN akan menghapus %d/%d object: %v", len(res.Orphans), res.Scanned, res.Orphans)
		return res, nil
	}
	if err := r.store.Remove(ctx, res.Orphans...); err != nil {
		return res, errors.Annotate(err, "remove orphans")
	}
	res.Removed = len(res.Orphans)
	r.log.Infof("[REAPER] %d object yatim dihapus (scanned=%d)", res.Removed, res.Scanned)
	return res, nil
}

func (r *Reaper) referencedKeys(ctx context.Context) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	for _, src := range refSources {
		col := pq.QuoteIdentifier(src.Col)
		q := "SELECT " + col + " FROM " + pq.QuoteIdentifier(src.Table) + " WHERE " + col + " IS NOT NULL"

		var keys []string
		if err := r.db.WithContext(ctx).Raw(q).Scan(&keys).Error; err != nil {
			return nil, errors.Annotatef(err, "load references from %s", src.Table)
		}
		for _, k := range keys {
			out[k] = struct{}{}
		}
	}
	return out, nil
}

// Start mendaftarkan job cron (skip kalau run sebelumnya belum selesai) dan
// menghentikannya saat ctx selesai.
func (r *Reaper) Start(ctx context.Context) (*cron.Cron, error) {
	cl := cron.PrintfLogger(r.log.Zerolog())
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	_, err := c.AddFunc(r.cfg.Schedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()
		if _, err := r.RunOnce(runCtx); err != nil {
			r.log.Errorf(err, "[REAPER] run gagal")
		}
	})
	if err != nil {
		return nil, errors.Annotatef(err, "add reaper schedule %q", r.cfg.Schedule)
	}

	r.log.Infof("[REAPER] started schedule=%q grace=%s dryRun=%v", r.cfg.Schedule, r.cfg.Grace, r.cfg.DryRun)
	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}
