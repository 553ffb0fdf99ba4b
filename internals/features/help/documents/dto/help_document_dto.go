package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "kompetensi_backend/internals/features/help/documents/model"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
)

type CreateHelpDocumentRequest struct {
	Title       string `json:"help_document_title"       form:"help_document_title"       validate:"required,max=200"`
	Description string `json:"help_document_description" form:"help_document_description" validate:"required"`
}

func (r *CreateHelpDocumentRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

// PATCH multipart: file opsional, dikirim terpisah ke service.
type UpdateHelpDocumentRequest struct {
	Title       helper.PatchField[string] `json:"help_document_title"`
	Description helper.PatchField[string] `json:"help_document_description"`
}

func (p *UpdateHelpDocumentRequest) Normalize() {
	if p.Title.Value != nil {
		v := strings.TrimSpace(*p.Title.Value)
		p.Title.Value = &v
	}
	if p.Description.Value != nil {
		v := strings.TrimSpace(*p.Description.Value)
		p.Description.Value = &v
	}
}

func (p UpdateHelpDocumentRequest) Validate() error {
	fe := apperr.FieldErrors{}
	if p.Title.Present && (p.Title.Value == nil || *p.Title.Value == "") {
		fe.Add("help_document_title", "wajib diisi")
	}
	if p.Title.Value != nil && len(*p.Title.Value) > 200 {
		fe.Add("help_document_title", "maksimal 200 karakter")
	}
	if p.Description.Present && (p.Description.Value == nil || *p.Description.Value == "") {
		fe.Add("help_document_description", "wajib diisi")
	}
	return fe.Err()
}

func (p UpdateHelpDocumentRequest) Columns() map[string]any {
	cols := map[string]any{}
	if p.Title.Value != nil {
		cols["help_document_title"] = *p.Title.Value
	}
	if p.Description.Value != nil {
		cols["help_document_description"] = *p.Description.Value
	}
	return cols
}

type HelpDocumentResponse struct {
	HelpDocumentID          uuid.UUID `json:"help_document_id"`
	HelpDocumentTitle       string    `json:"help_document_title"`
	HelpDocumentDescription string    `json:"help_document_description"`
	HelpDocumentFileURL     string    `json:"help_document_file_url"`
	HelpDocumentFileName    string    `json:"help_document_file_name"`
	HelpDocumentFileSize    int64     `json:"help_document_file_size"`
	HelpDocumentFileType    string    `json:"help_document_file_type"`
	HelpDocumentCreatedBy   uuid.UUID `json:"help_document_created_by"`
	HelpDocumentCreatedAt   time.Time `json:"help_document_created_at"`
	HelpDocumentUpdatedAt   time.Time `json:"help_document_updated_at"`
}

func FromHelpDocumentModel(mo m.HelpDocumentModel) HelpDocumentResponse {
	return HelpDocumentResponse{
		HelpDocumentID:          mo.HelpDocumentID,
		HelpDocumentTitle:       mo.HelpDocumentTitle,
		HelpDocumentDescription: mo.HelpDocumentDescription,
		HelpDocumentFileURL:     mo.HelpDocumentFileURL,
		HelpDocumentFileName:    mo.HelpDocumentFileName,
		HelpDocumentFileSize:    mo.HelpDocumentFileSize,
		HelpDocumentFileType:    mo.HelpDocumentFileType,
		HelpDocumentCreatedBy:   mo.HelpDocumentCreatedBy,
		HelpDocumentCreatedAt:   mo.HelpDocumentCreatedAt,
		HelpDocumentUpdatedAt:   mo.HelpDocumentUpdatedAt,
	}
}

func FromHelpDocumentModels(rows []m.HelpDocumentModel) []HelpDocumentResponse {
	out := make([]HelpDocumentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromHelpDocumentModel(r))
	}
	return out
}
