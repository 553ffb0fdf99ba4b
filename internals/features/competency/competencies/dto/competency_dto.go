package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "kompetensi_backend/internals/features/competency/competencies/model"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
)

/* =========================================================
   CREATE
   ========================================================= */

type CreateCompetencyRequest struct {
	Name        string `json:"competency_name"        validate:"required,max=200"`
	Description string `json:"competency_description" validate:"required"`
	IsActive    *bool  `json:"competency_is_active"`
}

func (r *CreateCompetencyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

// ToModel: is_active default true
func (r CreateCompetencyRequest) ToModel() m.CompetencyModel {
	mm := m.CompetencyModel{
		CompetencyName:        r.Name,
		CompetencyDescription: r.Description,
		CompetencyIsActive:    true,
	}
	if r.IsActive != nil {
		mm.CompetencyIsActive = *r.IsActive
	}
	return mm
}

/* =========================================================
   UPDATE (PATCH): tri-state
   ========================================================= */

type UpdateCompetencyRequest struct {
	Name        helper.PatchField[string] `json:"competency_name"`
	Description helper.PatchField[string] `json:"competency_description"`
	IsActive    helper.PatchField[bool]   `json:"competency_is_active"`
}

func (p *UpdateCompetencyRequest) Normalize() {
	if p.Name.Present && p.Name.Value != nil {
		v := strings.TrimSpace(*p.Name.Value)
		p.Name.Value = &v
	}
	if p.Description.Present && p.Description.Value != nil {
		v := strings.TrimSpace(*p.Description.Value)
		p.Description.Value = &v
	}
}

// Validate: field wajib tidak boleh dikosongkan lewat patch.
func (p UpdateCompetencyRequest) Validate() error {
	fe := apperr.FieldErrors{}
	if p.Name.Present && (p.Name.Value == nil || *p.Name.Value == "") {
		fe.Add("competency_name", "wajib diisi")
	}
	if p.Name.Value != nil && len(*p.Name.Value) > 200 {
		fe.Add("competency_name", "maksimal 200 karakter")
	}
	if p.Description.Present && (p.Description.Value == nil || *p.Description.Value == "") {
		fe.Add("competency_description", "wajib diisi")
	}
	if p.IsActive.Present && p.IsActive.Value == nil {
		fe.Add("competency_is_active", "tidak boleh null")
	}
	return fe.Err()
}

func (p UpdateCompetencyRequest) IsEmpty() bool {
	return !p.Name.Present && !p.Description.Present && !p.IsActive.Present
}

// Columns: hanya kolom yang dikirim (dipakai Updates(map)).
func (p UpdateCompetencyRequest) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name.Present && p.Name.Value != nil {
		cols["competency_name"] = *p.Name.Value
	}
	if p.Description.Present && p.Description.Value != nil {
		cols["competency_description"] = *p.Description.Value
	}
	if p.IsActive.Present && p.IsActive.Value != nil {
		cols["competency_is_active"] = *p.IsActive.Value
	}
	return cols
}

/* =========================================================
   RESPONSE
   ========================================================= */

type CompetencyResponse struct {
	CompetencyID          uuid.UUID  `json:"competency_id"`
	CompetencyName        string     `json:"competency_name"`
	CompetencyDescription string     `json:"competency_description"`
	CompetencyIsActive    bool       `json:"competency_is_active"`
	CompetencyCreatedAt   time.Time  `json:"competency_created_at"`
	CompetencyUpdatedAt   time.Time  `json:"competency_updated_at"`
	CompetencyDeletedAt   *time.Time `json:"competency_deleted_at,omitempty"`
}

func FromCompetencyModel(mo m.CompetencyModel) CompetencyResponse {
	var deletedAt *time.Time
	if mo.CompetencyDeletedAt.Valid {
		t := mo.CompetencyDeletedAt.Time
		deletedAt = &t
	}
	return CompetencyResponse{
		CompetencyID:          mo.CompetencyID,
		CompetencyName:        mo.CompetencyName,
		CompetencyDescription: mo.CompetencyDescription,
		CompetencyIsActive:    mo.CompetencyIsActive,
		CompetencyCreatedAt:   mo.CompetencyCreatedAt,
		CompetencyUpdatedAt:   mo.CompetencyUpdatedAt,
		CompetencyDeletedAt:   deletedAt,
	}
}

func FromCompetencyModels(rows []m.CompetencyModel) []CompetencyResponse {
	out := make([]CompetencyResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromCompetencyModel(r))
	}
	return out
}

// Dropdown ringkas untuk picker kompetensi di form indikator.
type CompetencyOption struct {
	CompetencyID   uuid.UUID `json:"competency_id"`
	CompetencyName string    `json:"competency_name"`
}

func ToCompetencyOptions(rows []m.CompetencyModel) []CompetencyOption {
	out := make([]CompetencyOption, 0, len(rows))
	for _, r := range rows {
		out = append(out, CompetencyOption{CompetencyID: r.CompetencyID, CompetencyName: r.CompetencyName})
	}
	return out
}
