package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "kompetensi_backend/internals/features/help/videos/model"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
)

type CreateHelpVideoRequest struct {
	Title       string  `json:"help_video_title"       form:"help_video_title"       validate:"required,max=200"`
	Description string  `json:"help_video_description" form:"help_video_description" validate:"required"`
	VideoURL    string  `json:"help_video_url"         form:"help_video_url"         validate:"required,http_url"`
	Duration    *string `json:"help_video_duration"    form:"help_video_duration"    validate:"omitempty,max=20"`
}

func (r *CreateHelpVideoRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.VideoURL = strings.TrimSpace(r.VideoURL)
	r.Duration = trimPtr(r.Duration)
}

func (r CreateHelpVideoRequest) ToModel(createdBy uuid.UUID) m.HelpVideoModel {
	return m.HelpVideoModel{
		HelpVideoTitle:       r.Title,
		HelpVideoDescription: r.Description,
		HelpVideoURL:         r.VideoURL,
		HelpVideoDuration:    r.Duration,
		HelpVideoCreatedBy:   createdBy,
	}
}

type UpdateHelpVideoRequest struct {
	Title       helper.PatchField[string] `json:"help_video_title"`
	Description helper.PatchField[string] `json:"help_video_description"`
	VideoURL    helper.PatchField[string] `json:"help_video_url"`
	Duration    helper.PatchField[string] `json:"help_video_duration"`

	// true → thumbnail lama dihapus tanpa pengganti
	RemoveThumbnail bool `json:"remove_thumbnail"`
}

func (p *UpdateHelpVideoRequest) Normalize() {
	for _, f := range []*helper.PatchField[string]{&p.Title, &p.Description, &p.VideoURL} {
		if f.Value != nil {
			v := strings.TrimSpace(*f.Value)
			f.Value = &v
		}
	}
	// durasi kosong = hapus
	if p.Duration.Present {
		p.Duration.Value = trimPtr(p.Duration.Value)
	}
}

func (p UpdateHelpVideoRequest) Validate() error {
	fe := apperr.FieldErrors{}
	if p.Title.Present && (p.Title.Value == nil || *p.Title.Value == "") {
		fe.Add("help_video_title", "wajib diisi")
	}
	if p.Title.Value != nil && len(*p.Title.Value) > 200 {
		fe.Add("help_video_title", "maksimal 200 karakter")
	}
	if p.Description.Present && (p.Description.Value == nil || *p.Description.Value == "") {
		fe.Add("help_video_description", "wajib diisi")
	}
	if p.VideoURL.Present {
		switch {
		case p.VideoURL.Value == nil || *p.VideoURL.Value == "":
			fe.Add("help_video_url", "wajib diisi")
		case helper.Validator().Var(*p.VideoURL.Value, "http_url") != nil:
			fe.Add("help_video_url", "harus URL yang valid")
		}
	}
	if p.Duration.Value != nil && len(*p.Duration.Value) > 20 {
		fe.Add("help_video_duration", "maksimal 20 karakter")
	}
	return fe.Err()
}

func (p UpdateHelpVideoRequest) Columns() map[string]any {
	cols := map[string]any{}
	if p.Title.Value != nil {
		cols["help_video_title"] = *p.Title.Value
	}
	if p.Description.Value != nil {
		cols["help_video_description"] = *p.Description.Value
	}
	if p.VideoURL.Value != nil {
		cols["help_video_url"] = *p.VideoURL.Value
	}
	if p.Duration.Present {
		cols["help_video_duration"] = p.Duration.Value
	}
	return cols
}

type HelpVideoResponse struct {
	HelpVideoID           uuid.UUID `json:"help_video_id"`
	HelpVideoTitle        string    `json:"help_video_title"`
	HelpVideoDescription  string    `json:"help_video_description"`
	HelpVideoURL          string    `json:"help_video_url"`
	HelpVideoThumbnailURL *string   `json:"help_video_thumbnail_url"`
	HelpVideoDuration     *string   `json:"help_video_duration"`
	HelpVideoCreatedBy    uuid.UUID `json:"help_video_created_by"`
	HelpVideoCreatedAt    time.Time `json:"help_video_created_at"`
	HelpVideoUpdatedAt    time.Time `json:"help_video_updated_at"`
}

func FromHelpVideoModel(mo m.HelpVideoModel) HelpVideoResponse {
	return HelpVideoResponse{
		HelpVideoID:           mo.HelpVideoID,
		HelpVideoTitle:        mo.HelpVideoTitle,
		HelpVideoDescription:  mo.HelpVideoDescription,
		HelpVideoURL:          mo.HelpVideoURL,
		HelpVideoThumbnailURL: mo.HelpVideoThumbnailURL,
		HelpVideoDuration:     mo.HelpVideoDuration,
		HelpVideoCreatedBy:    mo.HelpVideoCreatedBy,
		HelpVideoCreatedAt:    mo.HelpVideoCreatedAt,
		HelpVideoUpdatedAt:    mo.HelpVideoUpdatedAt,
	}
}

func FromHelpVideoModels(rows []m.HelpVideoModel) []HelpVideoResponse {
	out := make([]HelpVideoResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromHelpVideoModel(r))
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
