// file: internals/features/competency/competencies/service/competency_service.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"gorm.io/gorm"

	"kompetensi_backend/internals/features/competency/competencies/dto"
	m "kompetensi_backend/internals/features/competency/competencies/model"
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
	return &Service{db: db, log: log.With("service", "competency"), now: time.Now}
}

// ListActive: is_active = true dan belum soft delete.
func (s *Service) ListActive(ctx context.Context) ([]m.CompetencyModel, error) {
	var rows []m.CompetencyModel
	err := s.db.WithContext(ctx).
		Where("competency_is_active = ?", true).
		Order("competency_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Annotate(err, "list active competencies")
	}
	return rows, nil
}

// ListAll: semua yang belum soft delete, opsional pencarian substring.
func (s *Service) ListAll(ctx context.Context, q ListQuery) ([]m.CompetencyModel, error) {
	tx := s.db.WithContext(ctx).Model(&m.CompetencyModel{})
	if kw := strings.ToLower(strings.TrimSpace(q.Search)); kw != "" {
		like := helper.LikeContains(kw)
		tx = tx.Where(`LOWER(competency_name) LIKE ? ESCAPE '\' OR LOWER(competency_description) LIKE ? ESCAPE '\'`, like, like)
	}
	var rows []m.CompetencyModel
	if err := tx.Order("competency_created_at DESC").Find(&rows).Error; err != nil {
		return nil, errors.Annotate(err, "list competencies")
	}
	return rows, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (m.CompetencyModel, error) {
	var row m.CompetencyModel
	err := s.db.WithContext(ctx).Where("competency_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, apperr.NotFoundf("Kompetensi tidak ditemukan")
	}
	if err != nil {
		return row, errors.Annotate(err, "get competency")
	}
	return row, nil
}

// Exists dipakai service indikator untuk referensi ketat.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := s.db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM competencies WHERE competency_id = ? AND competency_deleted_at IS NULL)", id).
		Scan(&ok).Error
	if err != nil {
		return false, errors.Annotate(err, "check competency")
	}
	return ok, nil
}

// NamesByIDs memetakan id → nama untuk kompetensi yang belum soft delete.
// id yang tidak ketemu tidak ada di map (referensi menggantung).
func (s *Service) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []m.CompetencyModel
	err := s.db.WithContext(ctx).
		Select("competency_id", "competency_name").
		Where("competency_id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Annotate(err, "resolve competency names")
	}
	for _, r := range rows {
		out[r.CompetencyID] = r.CompetencyName
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, req dto.CreateCompetencyRequest) (m.CompetencyModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return m.CompetencyModel{}, err
	}
	row := req.ToModel()
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return m.CompetencyModel{}, errors.Annotate(err, "create competency")
	}
	s.log.Infof("competency created id=%s", row.CompetencyID)
	return row, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCompetencyRequest) (m.CompetencyModel, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return m.CompetencyModel{}, err
	}

	var out m.CompetencyModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("competency_id = ?", id).First(&out).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("Kompetensi tidak ditemukan")
			}
			return errors.Annotate(err, "load competency")
		}
		if req.IsEmpty() {
			return nil
		}
		cols := req.Columns()
		cols["competency_updated_at"] = s.now()
		if err := tx.Model(&out).Updates(cols).Error; err != nil {
			return errors.Annotate(err, "update competency")
		}
		return tx.Where("competency_id = ?", id).First(&out).Error
	})
	if err != nil {
		return m.CompetencyModel{}, err
	}
	return out, nil
}

// SoftDelete hanya boleh untuk record non-aktif; record aktif → PolicyViolation, tidak ada write.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) (m.CompetencyModel, error) {
	var out m.CompetencyModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.now()
		res := tx.Model(&m.CompetencyModel{}).
			Where("competency_id = ? AND competency_is_active = ?", id, false).
			Updates(map[string]any{
				"competency_is_active":  false,
				"competency_deleted_at": now,
				"competency_updated_at": now,
			})
		if res.Error != nil {
			return errors.Annotate(res.Error, "soft delete competency")
		}
		if res.RowsAffected == 0 {
			var cur m.CompetencyModel
			if err := tx.Where("competency_id = ?", id).First(&cur).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFoundf("Kompetensi tidak ditemukan")
				}
				return errors.Annotate(err, "load competency")
			}
			return apperr.PolicyViolationf(apperr.MsgDeleteActive)
		}
		return tx.Unscoped().Where("competency_id = ?", id).First(&out).Error
	})
	if err != nil {
		return m.CompetencyModel{}, err
	}
	s.log.Infof("competency soft-deleted id=%s", id)
	return out, nil
}
