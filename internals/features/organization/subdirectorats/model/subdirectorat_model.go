// file: internals/features/organization/subdirectorats/model/subdirectorat_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubdirectoratModel struct {
	SubdirectoratID uuid.UUID `gorm:"type:uuid;primaryKey;column:subdirectorat_id" json:"subdirectorat_id"`

	SubdirectoratName        string `gorm:"type:varchar(200);not null;column:subdirectorat_name"  json:"subdirectorat_name"`
	SubdirectoratDescription string `gorm:"type:text;not null;column:subdirectorat_description"   json:"subdirectorat_description"`

	// Status & audit
	SubdirectoratIsActive  bool           `gorm:"not null;index;column:subdirectorat_is_active"     json:"subdirectorat_is_active"`
	SubdirectoratCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:subdirectorat_created_at" json:"subdirectorat_created_at"`
	SubdirectoratUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:subdirectorat_updated_at" json:"subdirectorat_updated_at"`
	SubdirectoratDeletedAt gorm.DeletedAt `gorm:"column:subdirectorat_deleted_at;index"             json:"subdirectorat_deleted_at,omitempty"`
}

func (SubdirectoratModel) TableName() string { return "subdirectorats" }

func (m *SubdirectoratModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubdirectoratID == uuid.Nil {
		m.SubdirectoratID = uuid.New()
	}
	return nil
}
