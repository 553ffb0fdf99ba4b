// file: internals/features/help/videos/model/help_video_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HelpVideoModel: video bantuan (link eksternal + thumbnail opsional). Hard delete.
type HelpVideoModel struct {
	HelpVideoID uuid.UUID `gorm:"type:uuid;primaryKey;column:help_video_id" json:"help_video_id"`

	HelpVideoTitle       string `gorm:"type:varchar(200);not null;column:help_video_title" json:"help_video_title"`
	HelpVideoDescription string `gorm:"type:text;not null;column:help_video_description"   json:"help_video_description"`
	HelpVideoURL         string `gorm:"type:text;not null;column:help_video_url"           json:"help_video_url"`

	HelpVideoThumbnailURL  *string `gorm:"type:text;column:help_video_thumbnail_url"        json:"help_video_thumbnail_url"`
	HelpVideoThumbnailPath *string `gorm:"type:text;index;column:help_video_thumbnail_path" json:"help_video_thumbnail_path"`

	// teks bebas, mis. "12:30"
	HelpVideoDuration *string `gorm:"type:varchar(20);column:help_video_duration" json:"help_video_duration"`

	HelpVideoCreatedBy uuid.UUID `gorm:"type:uuid;not null;index;column:help_video_created_by" json:"help_video_created_by"`
	HelpVideoCreatedAt time.Time `gorm:"not null;autoCreateTime;column:help_video_created_at"  json:"help_video_created_at"`
	HelpVideoUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:help_video_updated_at"  json:"help_video_updated_at"`
}

func (HelpVideoModel) TableName() string { return "help_videos" }

func (m *HelpVideoModel) BeforeCreate(tx *gorm.DB) error {
	if m.HelpVideoID == uuid.Nil {
		m.HelpVideoID = uuid.New()
	}
	return nil
}
