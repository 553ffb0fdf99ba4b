package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "kompetensi_backend/internals/features/organization/subdirectorats/model"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
)

/* =========================================================
   CREATE
   ========================================================= */

type CreateSubdirectoratRequest struct {
	Name        string `json:"subdirectorat_name"        validate:"required,max=200"`
	Description string `json:"subdirectorat_description" validate:"required"`
	IsActive    *bool  `json:"subdirectorat_is_active"`
}

func (r *CreateSubdirectoratRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

// ToModel: is_active default true
func (r CreateSubdirectoratRequest) ToModel() m.SubdirectoratModel {
	mm := m.SubdirectoratModel{
		SubdirectoratName:        r.Name,
		SubdirectoratDescription: r.Description,
		SubdirectoratIsActive:    true,
	}
	if r.IsActive != nil {
		mm.SubdirectoratIsActive = *r.IsActive
	}
	return mm
}

/* =========================================================
   UPDATE (PATCH): tri-state
   ========================================================= */

type UpdateSubdirectoratRequest struct {
	Name        helper.PatchField[string] `json:"subdirectorat_name"`
	Description helper.PatchField[string] `json:"subdirectorat_description"`
	IsActive    helper.PatchField[bool]   `json:"subdirectorat_is_active"`
}

func (p *UpdateSubdirectoratRequest) Normalize() {
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
func (p UpdateSubdirectoratRequest) Validate() error {
	fe := apperr.FieldErrors{}
	if p.Name.Present && (p.Name.Value == nil || *p.Name.Value == "") {
		fe.Add("subdirectorat_name", "wajib diisi")
	}
	if p.Name.Value != nil && len(*p.Name.Value) > 200 {
		fe.Add("subdirectorat_name", "maksimal 200 karakter")
	}
	if p.Description.Present && (p.Description.Value == nil || *p.Description.Value == "") {
		fe.Add("subdirectorat_description", "wajib diisi")
	}
	if p.IsActive.Present && p.IsActive.Value == nil {
		fe.Add("subdirectorat_is_active", "tidak boleh null")
	}
	return fe.Err()
}

func (p UpdateSubdirectoratRequest) IsEmpty() bool {
	return !p.Name.Present && !p.Description.Present && !p.IsActive.Present
}

// Columns: hanya kolom yang dikirim (dipakai Updates(map)).
func (p UpdateSubdirectoratRequest) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name.Present && p.Name.Value != nil {
		cols["subdirectorat_name"] = *p.Name.Value
	}
	if p.Description.Present && p.Description.Value != nil {
		cols["subdirectorat_description"] = *p.Description.Value
	}
	if p.IsActive.Present && p.IsActive.Value != nil {
		cols["subdirectorat_is_active"] = *p.IsActive.Value
	}
	return cols
}

/* =========================================================
   RESPONSE
   ========================================================= */

type SubdirectoratResponse struct {
	SubdirectoratID          uuid.UUID  `json:"subdirectorat_id"`
	SubdirectoratName        string     `json:"subdirectorat_name"`
	SubdirectoratDescription string     `json:"subdirectorat_description"`
	SubdirectoratIsActive    bool       `json:"subdirectorat_is_active"`
	SubdirectoratCreatedAt   time.Time  `json:"subdirectorat_created_at"`
	SubdirectoratUpdatedAt   time.Time  `json:"subdirectorat_updated_at"`
	SubdirectoratDeletedAt   *time.Time `json:"subdirectorat_deleted_at,omitempty"`
}

func FromSubdirectoratModel(mo m.SubdirectoratModel) SubdirectoratResponse {
	var deletedAt *time.Time
	if mo.SubdirectoratDeletedAt.Valid {
		t := mo.SubdirectoratDeletedAt.Time
		deletedAt = &t
	}
	return SubdirectoratResponse{
		SubdirectoratID:          mo.SubdirectoratID,
		SubdirectoratName:        mo.SubdirectoratName,
		SubdirectoratDescription: mo.SubdirectoratDescription,
		SubdirectoratIsActive:    mo.SubdirectoratIsActive,
		SubdirectoratCreatedAt:   mo.SubdirectoratCreatedAt,
		SubdirectoratUpdatedAt:   mo.SubdirectoratUpdatedAt,
		SubdirectoratDeletedAt:   deletedAt,
	}
}

func FromSubdirectoratModels(rows []m.SubdirectoratModel) []SubdirectoratResponse {
	out := make([]SubdirectoratResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromSubdirectoratModel(r))
	}
	return out
}

// Dropdown ringkas untuk picker subdirektorat di form akun.
type SubdirectoratOption struct {
	SubdirectoratID   uuid.UUID `json:"subdirectorat_id"`
	SubdirectoratName string    `json:"subdirectorat_name"`
}

func ToSubdirectoratOptions(rows []m.SubdirectoratModel) []SubdirectoratOption {
	out := make([]SubdirectoratOption, 0, len(rows))
	for _, r := range rows {
		out = append(out, SubdirectoratOption{SubdirectoratID: r.SubdirectoratID, SubdirectoratName: r.SubdirectoratName})
	}
	return out
}
