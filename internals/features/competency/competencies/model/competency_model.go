// file: internals/features/competency/competencies/model/competency_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompetencyModel struct {
	CompetencyID uuid.UUID `gorm:"type:uuid;primaryKey;column:competency_id" json:"competency_id"`

	CompetencyName        string `gorm:"type:varchar(200);not null;column:competency_name"  json:"competency_name"`
	CompetencyDescription string `gorm:"type:text;not null;column:competency_description"   json:"competency_description"`

	// Status & audit
	CompetencyIsActive  bool           `gorm:"not null;index;column:competency_is_active"     json:"competency_is_active"`
	CompetencyCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:competency_created_at" json:"competency_created_at"`
	CompetencyUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:competency_updated_at" json:"competency_updated_at"`
	CompetencyDeletedAt gorm.DeletedAt `gorm:"column:competency_deleted_at;index"             json:"competency_deleted_at,omitempty"`
}

func (CompetencyModel) TableName() string { return "competencies" }

// id dibuat di aplikasi (bukan gen_random_uuid()) supaya sama di postgres & sqlite
func (m *CompetencyModel) BeforeCreate(tx *gorm.DB) error {
	if m.CompetencyID == uuid.Nil {
		m.CompetencyID = uuid.New()
	}
	return nil
}
