// file: internals/features/organization/subdirectorats/service/subdirectorat_service.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"gorm.io/gorm"

	"kompetensi_backend/internals/features/organization/subdirectorats/dto"
	m "kompetensi_backend/internals/features/organization/subdirectorats/model"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
	"kompetensi_backend/internals/helpers/logger"
)

type ListQuery struct {
	Search string
}

type Service struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func New(db *gorm.DB, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{db: db, log: log.With("service", "subdirectorat"), now: time.Now}
}

// ListActive: is_active = true dan belum soft delete.
func (s *Service) ListActive(ctx context.Context) ([]m.SubdirectoratModel, error) {
	var rows []m.SubdirectoratModel
	err := s.db.WithContext(ctx).
		Where("subdirectorat_is_active = ?", true).
		Order("subdirectorat_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Annotate(err, "list active subdirectorats")
	}
	return rows, nil
}

// ListAll: semua yang belum soft delete, opsional pencarian substring.
func (s *Service) ListAll(ctx context.Context, q ListQuery) ([]m.SubdirectoratModel, error) {
	tx := s.db.WithContext(ctx).Model(&m.SubdirectoratModel{})
	if kw := strings.ToLower(strings.TrimSpace(q.Search)); kw != "" {
		like := helper.LikeContains(kw)
		tx = tx.Where(`LOWER(subdirectorat_name) LIKE ? ESCAPE '\' OR LOWER(subdirectorat_description) LIKE ? ESCAPE '\'`, like, like)
	}
	var rows []m.SubdirectoratModel
	if err := tx.Order("subdirectorat_created_at DESC").Find(&rows).Error; err != nil {
		return nil, errors.Annotate(err, "list subdirectorats")
	}
	return rows, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (m.SubdirectoratModel, error) {
	var row m.SubdirectoratModel
	err := s.db.WithContext(ctx).Where("subdirectorat_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, apperr.NotFoundf("Subdirektorat tidak ditemukan")
	}
	if err != nil {
		return row, errors.Annotate(err, "get subdirectorat")
	}
	return row, nil
}

// NamesByIDs dipakai akun untuk menampilkan nama subdirektorat (yang belum soft delete).
// id yang tidak ketemu tidak ada di map (referensi menggantung).
func (s *Service) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []m.SubdirectoratModel
	err := s.db.WithContext(ctx).
		Select("subdirectorat_id", "subdirectorat_name").
		Where("subdirectorat_id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Annotate(err, "resolve subdirectorat names")
	}
	for _, r := range rows {
		out[r.SubdirectoratID] = r.SubdirectoratName
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, req dto.CreateSubdirectoratRequest) (m.SubdirectoratModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return m.SubdirectoratModel{}, err
	}
	row := req.ToModel()
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return m.SubdirectoratModel{}, errors.Annotate(err, "create subdirectorat")
	}
	s.log.Infof("subdirectorat created id=%s", row.SubdirectoratID)
	return row, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSubdirectoratRequest) (m.SubdirectoratModel, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return m.SubdirectoratModel{}, err
	}

	var out m.SubdirectoratModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subdirectorat_id = ?", id).First(&out).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("Subdirektorat tidak ditemukan")
			}
			return errors.Annotate(err, "load subdirectorat")
		}
		if req.IsEmpty() {
			return nil
		}
		cols := req.Columns()
		cols["subdirectorat_updated_at"] = s.now()
		if err := tx.Model(&out).Updates(cols).Error; err != nil {
			return errors.Annotate(err, "update subdirectorat")
		}
		return tx.Where("subdirectorat_id = ?", id).First(&out).Error
	})
	if err != nil {
		return m.SubdirectoratModel{}, err
	}
	return out, nil
}

// SoftDelete hanya boleh untuk record non-aktif; record aktif → PolicyViolation, tidak ada write.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) (m.SubdirectoratModel, error) {
	var out m.SubdirectoratModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.now()
		res := tx.Model(&m.SubdirectoratModel{}).
			Where("subdirectorat_id = ? AND subdirectorat_is_active = ?", id, false).
			Updates(map[string]any{
				"subdirectorat_is_active":  false,
				"subdirectorat_deleted_at": now,
				"subdirectorat_updated_at": now,
			})
		if res.Error != nil {
			return errors.Annotate(res.Error, "soft delete subdirectorat")
		}
		if res.RowsAffected == 0 {
			var cur m.SubdirectoratModel
			if err := tx.Where("subdirectorat_id = ?", id).First(&cur).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFoundf("Subdirektorat tidak ditemukan")
				}
				return errors.Annotate(err, "load subdirectorat")
			}
			return apperr.PolicyViolationf(apperr.MsgDeleteActive)
		}
		return tx.Unscoped().Where("subdirectorat_id = ?", id).First(&out).Error
	})
	if err != nil {
		return m.SubdirectoratModel{}, err
	}
	s.log.Infof("subdirectorat soft-deleted id=%s", id)
	return out, nil
}
