// file: internals/features/help/videos/service/help_video_service.go
package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"gorm.io/gorm"

	"kompetensi_backend/internals/configs"
	"kompetensi_backend/internals/features/help/assets"
	"kompetensi_backend/internals/features/help/videos/dto"
	m "kompetensi_backend/internals/features/help/videos/model"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
	helperAuth "kompetensi_backend/internals/helpers/auth"
	"kompetensi_backend/internals/helpers/logger"
	"kompetensi_backend/internals/helpers/storage"
)

type Service struct {
	db       *gorm.DB
	store    storage.ObjectStorage
	maxBytes int64
	webp     storage.WebPOptions
	log      *logger.Logger
	now      func() time.Time
}

func New(db *gorm.DB, store storage.ObjectStorage, cfg configs.HelpConfig, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		db:       db,
		store:    store,
		maxBytes: assets.MaxBytes(cfg.MaxFileMB),
		webp:     storage.WebPOptions{MaxW: cfg.ThumbnailMaxW, MaxH: cfg.ThumbnailMaxH, Quality: cfg.ThumbnailQ},
		log:      log.With("service", "help_video"),
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context, search string) ([]m.HelpVideoModel, error) {
	tx := s.db.WithContext(ctx).Model(&m.HelpVideoModel{})
	if kw := strings.ToLower(strings.TrimSpace(search)); kw != "" {
		like := helper.LikeContains(kw)
		tx = tx.Where(`LOWER(help_video_title) LIKE ? ESCAPE '\' OR LOWER(help_video_description) LIKE ? ESCAPE '\'`, like, like)
	}
	var rows []m.HelpVideoModel
	if err := tx.Order("help_video_created_at DESC").Find(&rows).Error; err != nil {
		return nil, errors.Annotate(err, "list help videos")
	}
	return rows, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (m.HelpVideoModel, error) {
	var row m.HelpVideoModel
	err := s.db.WithContext(ctx).Where("help_video_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, apperr.NotFoundf("Video bantuan tidak ditemukan")
	}
	if err != nil {
		return row, errors.Annotate(err, "get help video")
	}
	return row, nil
}

// Create: thumbnail (opsional) di-convert ke WebP dan di-upload sebelum insert.
func (s *Service) Create(ctx context.Context, sess helperAuth.Session, req dto.CreateHelpVideoRequest, thumb *storage.Upload) (m.HelpVideoModel, error) {
	req.Normalize()
	if !sess.Valid() {
		return m.HelpVideoModel{}, apperr.Unauthorizedf("Sesi tidak ditemukan, silakan login")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return m.HelpVideoModel{}, err
	}

	row := req.ToModel(sess.AccountID)
	var key string
	if thumb != nil {
		k, url, err := s.uploadThumbnail(ctx, thumb)
		if err != nil {
			return m.HelpVideoModel{}, err
		}
		key = k
		row.HelpVideoThumbnailPath = &k
		row.HelpVideoThumbnailURL = &url
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		assets.RemoveQuietly(ctx, s.store, s.log, key)
		return m.HelpVideoModel{}, errors.Annotate(err, "insert help video")
	}
	return row, nil
}

// Update: thumbnail baru menggantikan yang lama; RemoveThumbnail mengosongkan.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateHelpVideoRequest, thumb *storage.Upload) (m.HelpVideoModel, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return m.HelpVideoModel{}, err
	}
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return cur, err
	}

	cols := req.Columns()
	var newKey string
	switch {
	case thumb != nil:
		k, url, err := s.uploadThumbnail(ctx, thumb)
		if err != nil {
			return cur, err
		}
		newKey = k
		cols["help_video_thumbnail_path"] = k
		cols["help_video_thumbnail_url"] = url
	case req.RemoveThumbnail:
		cols["help_video_thumbnail_path"] = nil
		cols["help_video_thumbnail_url"] = nil
	}
	cols["help_video_updated_at"] = s.now().UTC()

	res := s.db.WithContext(ctx).Model(&m.HelpVideoModel{}).
		Where("help_video_id = ?", id).
		Updates(cols)
	if res.Error != nil || res.RowsAffected == 0 {
		assets.RemoveQuietly(ctx, s.store, s.log, newKey)
		if res.Error != nil {
			return cur, errors.Annotate(res.Error, "update help video")
		}
		return cur, apperr.NotFoundf("Video bantuan tidak ditemukan")
	}

	if (thumb != nil || req.RemoveThumbnail) && cur.HelpVideoThumbnailPath != nil && *cur.HelpVideoThumbnailPath != newKey {
		assets.RemoveQuietly(ctx, s.store, s.log, *cur.HelpVideoThumbnailPath)
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (m.HelpVideoModel, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return cur, err
	}
	res := s.db.WithContext(ctx).Where("help_video_id = ?", id).Delete(&m.HelpVideoModel{})
	if res.Error != nil {
		return cur, errors.Annotate(res.Error, "delete help video")
	}
	if res.RowsAffected == 0 {
		return cur, apperr.NotFoundf("Video bantuan tidak ditemukan")
	}
	if cur.HelpVideoThumbnailPath != nil {
		assets.RemoveQuietly(ctx, s.store, s.log, *cur.HelpVideoThumbnailPath)
	}
	return cur, nil
}

// uploadThumbnail: cek ukuran → decode+fit → WebP → thumbnails/<key>.webp
func (s *Service) uploadThumbnail(ctx context.Context, thumb *storage.Upload) (string, string, error) {
	if err := assets.CheckSize(thumb, s.maxBytes); err != nil {
		return "", "", err
	}
	raw, err := io.ReadAll(io.LimitReader(thumb.Body, s.maxBytes+1))
	if err != nil {
		return "", "", errors.Annotate(err, "read thumbnail")
	}
	if int64(len(raw)) > s.maxBytes {
		return "", "", assets.CheckSize(&storage.Upload{Filename: thumb.Filename, Size: int64(len(raw))}, s.maxBytes)
	}
	out, err := storage.ConvertToWebP(raw, thumb.Filename, s.webp)
	if err != nil {
		return "", "", apperr.FieldErrors{}.Add("thumbnail", "gambar tidak valid (pakai jpg/png/webp)")
	}

	if err := s.store.EnsureBucket(ctx); err != nil {
		return "", "", errors.Annotate(err, "ensure bucket")
	}
	key := storage.GenerateObjectKey(assets.FolderThumbnails, storage.WebPName(thumb.Filename), s.now().UTC())
	err = s.store.Upload(ctx, key, bytes.NewReader(out), int64(len(out)), storage.UploadOptions{
		ContentType:  "image/webp",
		CacheControl: storage.DefaultCacheControl,
	})
	if err != nil {
		return "", "", errors.Annotate(err, "upload thumbnail")
	}
	return key, s.store.PublicURL(key), nil
}
