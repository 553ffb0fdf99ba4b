// file: internals/features/help/documents/service/help_document_service.go
package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kompetensi_backend/internals/configs"
	"kompetensi_backend/internals/constants"
	"kompetensi_backend/internals/features/help/assets"
	"kompetensi_backend/internals/features/help/documents/dto"
	m "kompetensi_backend/internals/features/help/documents/model"
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
	allowed  []string
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
		allowed:  cfg.AllowedDocTypes,
		log:      log.With("service", "help_document"),
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context, search string) ([]m.HelpDocumentModel, error) {
	tx := s.db.WithContext(ctx).Model(&m.HelpDocumentModel{})
	if kw := strings.ToLower(strings.TrimSpace(search)); kw != "" {
		like := helper.LikeContains(kw)
		tx = tx.Where(`LOWER(help_document_title) LIKE ? ESCAPE '\' OR LOWER(help_document_description) LIKE ? ESCAPE '\'`, like, like)
	}
	var rows []m.HelpDocumentModel
	if err := tx.Order("help_document_created_at DESC").Find(&rows).Error; err != nil {
		return nil, errors.Annotate(err, "list help documents")
	}
	return rows, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (m.HelpDocumentModel, error) {
	var row m.HelpDocumentModel
	err := s.db.WithContext(ctx).Where("help_document_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, apperr.NotFoundf("Dokumen bantuan tidak ditemukan")
	}
	if err != nil {
		return row, errors.Annotate(err, "get help document")
	}
	return row, nil
}

// Create: validasi → ensure bucket → upload → public URL → insert.
// Insert gagal → file yang baru di-upload dihapus best-effort.
func (s *Service) Create(ctx context.Context, sess helperAuth.Session, req dto.CreateHelpDocumentRequest, file *storage.Upload) (m.HelpDocumentModel, error) {
	req.Normalize()
	if !sess.Valid() {
		return m.HelpDocumentModel{}, apperr.Unauthorizedf("Sesi tidak ditemukan, silakan login")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return m.HelpDocumentModel{}, err
	}
	if err := s.checkFile(file); err != nil {
		return m.HelpDocumentModel{}, err
	}

	stored, err := s.upload(ctx, file)
	if err != nil {
		return m.HelpDocumentModel{}, err
	}

	row := m.HelpDocumentModel{
		HelpDocumentTitle:       req.Title,
		HelpDocumentDescription: req.Description,
		HelpDocumentCreatedBy:   sess.AccountID,
	}
	stored.apply(&row)

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		assets.RemoveQuietly(ctx, s.store, s.log, stored.key)
		return m.HelpDocumentModel{}, errors.Annotate(err, "insert help document")
	}
	s.log.Infof("dokumen bantuan %s dibuat (%s, %d byte)", row.HelpDocumentID, stored.key, stored.size)
	return row, nil
}

// Update: patch judul/deskripsi; file baru → upload baru, update row, hapus file lama.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateHelpDocumentRequest, file *storage.Upload) (m.HelpDocumentModel, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return m.HelpDocumentModel{}, err
	}
	if file != nil {
		if err := s.checkFile(file); err != nil {
			return m.HelpDocumentModel{}, err
		}
	}

	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return cur, err
	}

	cols := req.Columns()
	var stored *storedFile
	if file != nil {
		if stored, err = s.upload(ctx, file); err != nil {
			return cur, err
		}
		stored.columns(cols)
	}
	cols["help_document_updated_at"] = s.now().UTC()

	res := s.db.WithContext(ctx).Model(&m.HelpDocumentModel{}).
		Where("help_document_id = ?", id).
		Updates(cols)
	if res.Error != nil || res.RowsAffected == 0 {
		if stored != nil {
			assets.RemoveQuietly(ctx, s.store, s.log, stored.key)
		}
		if res.Error != nil {
			return cur, errors.Annotate(res.Error, "update help document")
		}
		return cur, apperr.NotFoundf("Dokumen bantuan tidak ditemukan")
	}

	if stored != nil && cur.HelpDocumentFilePath != stored.key {
		assets.RemoveQuietly(ctx, s.store, s.log, cur.HelpDocumentFilePath)
	}
	return s.GetByID(ctx, id)
}

// Delete: hard delete tanpa syarat, lalu hapus file best-effort.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (m.HelpDocumentModel, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return cur, err
	}
	res := s.db.WithContext(ctx).Where("help_document_id = ?", id).Delete(&m.HelpDocumentModel{})
	if res.Error != nil {
		return cur, errors.Annotate(res.Error, "delete help document")
	}
	if res.RowsAffected == 0 {
		return cur, apperr.NotFoundf("Dokumen bantuan tidak ditemukan")
	}
	assets.RemoveQuietly(ctx, s.store, s.log, cur.HelpDocumentFilePath)
	return cur, nil
}

func (s *Service) checkFile(file *storage.Upload) error {
	if file == nil || file.Size <= 0 {
		return apperr.FieldErrors{}.Add("file", "wajib diisi")
	}
	if err := assets.CheckSize(file, s.maxBytes); err != nil {
		return err
	}
	if !constants.IsAllowedExt(file.Filename, s.allowed) {
		return apperr.FieldErrors{}.Add("file", "tipe file tidak diizinkan ("+strings.Join(s.allowed, ", ")+")")
	}
	return nil
}

type storedFile struct {
	key         string
	url         string
	name        string
	size        int64
	contentType string
	meta        datatypes.JSONMap
}

func (f *storedFile) apply(row *m.HelpDocumentModel) {
	row.HelpDocumentFileURL = f.url
	row.HelpDocumentFilePath = f.key
	row.HelpDocumentFileName = f.name
	row.HelpDocumentFileSize = f.size
	row.HelpDocumentFileType = f.contentType
	row.HelpDocumentStorageMeta = f.meta
}

func (f *storedFile) columns(cols map[string]any) {
	cols["help_document_file_url"] = f.url
	cols["help_document_file_path"] = f.key
	cols["help_document_file_name"] = f.name
	cols["help_document_file_size"] = f.size
	cols["help_document_file_type"] = f.contentType
	cols["help_document_storage_meta"] = f.meta
}

func (s *Service) upload(ctx context.Context, file *storage.Upload) (*storedFile, error) {
	if err := s.store.EnsureBucket(ctx); err != nil {
		return nil, errors.Annotate(err, "ensure bucket")
	}
	ct := file.ContentType
	if ct == "" || ct == "application/octet-stream" {
		if ct = constants.ContentTypeFromExt(file.Filename); ct == "" {
			ct = storage.DetectContentType(file.Filename, nil)
		}
	}
	key := storage.GenerateObjectKey(assets.FolderDocuments, file.Filename, s.now().UTC())
	err := s.store.Upload(ctx, key, file.Body, file.Size, storage.UploadOptions{
		ContentType:  ct,
		CacheControl: storage.DefaultCacheControl,
		Upsert:       false,
	})
	if err != nil {
		return nil, errors.Annotate(err, "upload help document")
	}
	return &storedFile{
		key:         key,
		url:         s.store.PublicURL(key),
		name:        filepath.Base(strings.TrimSpace(file.Filename)),
		size:        file.Size,
		contentType: ct,
		meta:        assets.StorageMeta(s.store, key),
	}, nil
}
