package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "kompetensi_backend/internals/features/competency/indicators/model"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
)

/* =========================================================
   CREATE
   ========================================================= */

type CreateIndicatorRequest struct {
	CompetencyID  uuid.UUID `json:"indicator_competency_id" validate:"required"`
	Name          string    `json:"indicator_name"          validate:"required,max=200"`
	Description   string    `json:"indicator_description"   validate:"required"`
	StatementText *string   `json:"indicator_statement_text"`
	IsActive      *bool     `json:"indicator_is_active"`
}

func (r *CreateIndicatorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.StatementText = trimPtr(r.StatementText)
}

func (r CreateIndicatorRequest) Validate() error {
	return helper.ValidateStruct(r)
}

func (r CreateIndicatorRequest) ToModel() m.IndicatorModel {
	mm := m.IndicatorModel{
		IndicatorCompetencyID:  r.CompetencyID,
		IndicatorName:          r.Name,
		IndicatorDescription:   r.Description,
		IndicatorStatementText: r.StatementText,
		IndicatorIsActive:      true,
	}
	if r.IsActive != nil {
		mm.IndicatorIsActive = *r.IsActive
	}
	return mm
}

/* =========================================================
   UPDATE (PATCH)
   ========================================================= */

type UpdateIndicatorRequest struct {
	CompetencyID  helper.PatchField[uuid.UUID] `json:"indicator_competency_id"`
	Name          helper.PatchField[string]    `json:"indicator_name"`
	Description   helper.PatchField[string]    `json:"indicator_description"`
	StatementText helper.PatchField[string]    `json:"indicator_statement_text"`
	IsActive      helper.PatchField[bool]      `json:"indicator_is_active"`
}

func (p *UpdateIndicatorRequest) Normalize() {
	p.Name.Value = trimPtr(p.Name.Value)
	p.Description.Value = trimPtr(p.Description.Value)
	p.StatementText.Value = trimPtr(p.StatementText.Value)
}

func (p UpdateIndicatorRequest) Validate() error {
	fe := apperr.FieldErrors{}
	if p.CompetencyID.Present && (p.CompetencyID.Value == nil || *p.CompetencyID.Value == uuid.Nil) {
		fe.Add("indicator_competency_id", "wajib diisi")
	}
	if p.Name.Present && (p.Name.Value == nil || *p.Name.Value == "") {
		fe.Add("indicator_name", "wajib diisi")
	}
	if p.Name.Value != nil && len(*p.Name.Value) > 200 {
		fe.Add("indicator_name", "maksimal 200 karakter")
	}
	if p.Description.Present && (p.Description.Value == nil || *p.Description.Value == "") {
		fe.Add("indicator_description", "wajib diisi")
	}
	if p.IsActive.Present && p.IsActive.Value == nil {
		fe.Add("indicator_is_active", "tidak boleh null")
	}
	return fe.Err()
}

func (p UpdateIndicatorRequest) IsEmpty() bool {
	return !p.CompetencyID.Present && !p.Name.Present && !p.Description.Present &&
		!p.StatementText.Present && !p.IsActive.Present
}

func (p UpdateIndicatorRequest) Columns() map[string]any {
	cols := map[string]any{}
	if p.CompetencyID.Present && p.CompetencyID.Value != nil {
		cols["indicator_competency_id"] = *p.CompetencyID.Value
	}
	if p.Name.Present && p.Name.Value != nil {
		cols["indicator_name"] = *p.Name.Value
	}
	if p.Description.Present && p.Description.Value != nil {
		cols["indicator_description"] = *p.Description.Value
	}
	// statement boleh di-null-kan
	if p.StatementText.Present {
		if p.StatementText.Value == nil {
			cols["indicator_statement_text"] = nil
		} else {
			cols["indicator_statement_text"] = *p.StatementText.Value
		}
	}
	if p.IsActive.Present && p.IsActive.Value != nil {
		cols["indicator_is_active"] = *p.IsActive.Value
	}
	return cols
}

/* =========================================================
   RESPONSE
   ========================================================= */

type IndicatorResponse struct {
	IndicatorID             uuid.UUID  `json:"indicator_id"`
	IndicatorCompetencyID   uuid.UUID  `json:"indicator_competency_id"`
	IndicatorCompetencyName *string    `json:"indicator_competency_name"`
	IndicatorName           string     `json:"indicator_name"`
	IndicatorDescription    string     `json:"indicator_description"`
	IndicatorStatementText  *string    `json:"indicator_statement_text,omitempty"`
	IndicatorIsActive       bool       `json:"indicator_is_active"`
	IndicatorCreatedAt      time.Time  `json:"indicator_created_at"`
	IndicatorUpdatedAt      time.Time  `json:"indicator_updated_at"`
	IndicatorDeletedAt      *time.Time `json:"indicator_deleted_at,omitempty"`
}

// FromIndicatorModel: names = hasil lookup kompetensi; tidak ketemu → null.
func FromIndicatorModel(mo m.IndicatorModel, names map[uuid.UUID]string) IndicatorResponse {
	var name *string
	if n, ok := names[mo.IndicatorCompetencyID]; ok {
		name = &n
	}
	var deletedAt *time.Time
	if mo.IndicatorDeletedAt.Valid {
		t := mo.IndicatorDeletedAt.Time
		deletedAt = &t
	}
	return IndicatorResponse{
		IndicatorID:             mo.IndicatorID,
		IndicatorCompetencyID:   mo.IndicatorCompetencyID,
		IndicatorCompetencyName: name,
		IndicatorName:           mo.IndicatorName,
		IndicatorDescription:    mo.IndicatorDescription,
		IndicatorStatementText:  mo.IndicatorStatementText,
		IndicatorIsActive:       mo.IndicatorIsActive,
		IndicatorCreatedAt:      mo.IndicatorCreatedAt,
		IndicatorUpdatedAt:      mo.IndicatorUpdatedAt,
		IndicatorDeletedAt:      deletedAt,
	}
}

func FromIndicatorModels(rows []m.IndicatorModel, names map[uuid.UUID]string) []IndicatorResponse {
	out := make([]IndicatorResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromIndicatorModel(r, names))
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
