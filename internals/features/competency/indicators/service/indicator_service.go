// file: internals/features/competency/indicators/service/indicator_service.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"gorm.io/gorm"

	"kompetensi_backend/internals/features/competency/indicators/dto"
	m "kompetensi_backend/internals/features/competency/indicators/model"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
	"kompetensi_backend/internals/helpers/logger"
)

// CompetencyDirectory adalah bagian service kompetensi yang dipakai indikator.
type CompetencyDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type ListQuery struct {
	Search       string
	CompetencyID *uuid.UUID
}

type Options struct {
	// StrictCompetencyRef: tolak competency_id yang tidak ada / sudah dihapus.
	StrictCompetencyRef bool
}

type Service struct {
	db    *gorm.DB
	comps CompetencyDirectory
	opt   Options
	log   *logger.Logger
	now   func() time.Time
}

func New(db *gorm.DB, comps CompetencyDirectory, opt Options, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{db: db, comps: comps, opt: opt, log: log.With("service", "indicator"), now: time.Now}
}

func (s *Service) ListActive(ctx context.Context) ([]m.IndicatorModel, error) {
	var rows []m.IndicatorModel
	err := s.db.WithContext(ctx).
		Where("indicator_is_active = ?", true).
		Order("indicator_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Annotate(err, "list active indicators")
	}
	return rows, nil
}

func (s *Service) ListAll(ctx context.Context, q ListQuery) ([]m.IndicatorModel, error) {
	tx := s.db.WithContext(ctx).Model(&m.IndicatorModel{})
	if q.CompetencyID != nil {
		tx = tx.Where("indicator_competency_id = ?", *q.CompetencyID)
	}
	if kw := strings.ToLower(strings.TrimSpace(q.Search)); kw != "" {
		like := helper.LikeContains(kw)
		tx = tx.Where(`LOWER(indicator_name) LIKE ? ESCAPE '\' OR LOWER(indicator_description) LIKE ? ESCAPE '\' OR LOWER(COALESCE(indicator_statement_text, '')) LIKE ? ESCAPE '\'`,
			like, like, like)
	}
	var rows []m.IndicatorModel
	if err := tx.Order("indicator_created_at DESC").Find(&rows).Error; err != nil {
		return nil, errors.Annotate(err, "list indicators")
	}
	return rows, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (m.IndicatorModel, error) {
	var row m.IndicatorModel
	err := s.db.WithContext(ctx).Where("indicator_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, apperr.NotFoundf("Indikator tidak ditemukan")
	}
	if err != nil {
		return row, errors.Annotate(err, "get indicator")
	}
	return row, nil
}

func (s *Service) Create(ctx context.Context, req dto.CreateIndicatorRequest) (m.IndicatorModel, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return m.IndicatorModel{}, err
	}
	if err := s.checkCompetency(ctx, req.CompetencyID); err != nil {
		return m.IndicatorModel{}, err
	}
	row := req.ToModel()
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return m.IndicatorModel{}, errors.Annotate(err, "create indicator")
	}
	s.log.Infof("indicator created id=%s competency=%s", row.IndicatorID, row.IndicatorCompetencyID)
	return row, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateIndicatorRequest) (m.IndicatorModel, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return m.IndicatorModel{}, err
	}
	if req.CompetencyID.Present && req.CompetencyID.Value != nil {
		if err := s.checkCompetency(ctx, *req.CompetencyID.Value); err != nil {
			return m.IndicatorModel{}, err
		}
	}

	var out m.IndicatorModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("indicator_id = ?", id).First(&out).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("Indikator tidak ditemukan")
			}
			return errors.Annotate(err, "load indicator")
		}
		if req.IsEmpty() {
			return nil
		}
		cols := req.Columns()
		cols["indicator_updated_at"] = s.now()
		if err := tx.Model(&out).Updates(cols).Error; err != nil {
			return errors.Annotate(err, "update indicator")
		}
		return tx.Where("indicator_id = ?", id).First(&out).Error
	})
	if err != nil {
		return m.IndicatorModel{}, err
	}
	return out, nil
}

func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) (m.IndicatorModel, error) {
	var out m.IndicatorModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.now()
		res := tx.Model(&m.IndicatorModel{}).
			Where("indicator_id = ? AND indicator_is_active = ?", id, false).
			Updates(map[string]any{
				"indicator_is_active":  false,
				"indicator_deleted_at": now,
				"indicator_updated_at": now,
			})
		if res.Error != nil {
			return errors.Annotate(res.Error, "soft delete indicator")
		}
		if res.RowsAffected == 0 {
			var cur m.IndicatorModel
			if err := tx.Where("indicator_id = ?", id).First(&cur).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFoundf("Indikator tidak ditemukan")
				}
				return errors.Annotate(err, "load indicator")
			}
			return apperr.PolicyViolationf(apperr.MsgDeleteActive)
		}
		return tx.Unscoped().Where("indicator_id = ?", id).First(&out).Error
	})
	if err != nil {
		return m.IndicatorModel{}, err
	}
	s.log.Infof("indicator soft-deleted id=%s", id)
	return out, nil
}

// CompetencyNames mengambil nama kompetensi untuk baris-baris indikator.
func (s *Service) CompetencyNames(ctx context.Context, rows ...m.IndicatorModel) (map[uuid.UUID]string, error) {
	if s.comps == nil {
		return map[uuid.UUID]string{}, nil
	}
	seen := make(map[uuid.UUID]struct{}, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.IndicatorCompetencyID]; ok {
			continue
		}
		seen[r.IndicatorCompetencyID] = struct{}{}
		ids = append(ids, r.IndicatorCompetencyID)
	}
	return s.comps.NamesByIDs(ctx, ids)
}

func (s *Service) checkCompetency(ctx context.Context, id uuid.UUID) error {
	if !s.opt.StrictCompetencyRef || s.comps == nil {
		return nil
	}
	ok, err := s.comps.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.FieldErrors{}.Add("indicator_competency_id", "kompetensi tidak ditemukan")
	}
	return nil
}
