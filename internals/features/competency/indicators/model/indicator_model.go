// file: internals/features/competency/indicators/model/indicator_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IndicatorModel struct {
	IndicatorID uuid.UUID `gorm:"type:uuid;primaryKey;column:indicator_id" json:"indicator_id"`

	// referensi lunak ke competencies.competency_id (tanpa FK constraint)
	IndicatorCompetencyID uuid.UUID `gorm:"type:uuid;not null;index;column:indicator_competency_id" json:"indicator_competency_id"`

	IndicatorName          string  `gorm:"type:varchar(200);not null;column:indicator_name"  json:"indicator_name"`
	IndicatorDescription   string  `gorm:"type:text;not null;column:indicator_description"   json:"indicator_description"`
	IndicatorStatementText *string `gorm:"type:text;column:indicator_statement_text"         json:"indicator_statement_text,omitempty"`

	IndicatorIsActive  bool           `gorm:"not null;index;column:indicator_is_active"            json:"indicator_is_active"`
	IndicatorCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:indicator_created_at"  json:"indicator_created_at"`
	IndicatorUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:indicator_updated_at"  json:"indicator_updated_at"`
	IndicatorDeletedAt gorm.DeletedAt `gorm:"column:indicator_deleted_at;index"                    json:"indicator_deleted_at,omitempty"`
}

func (IndicatorModel) TableName() string { return "indicators" }

func (m *IndicatorModel) BeforeCreate(tx *gorm.DB) error {
	if m.IndicatorID == uuid.Nil {
		m.IndicatorID = uuid.New()
	}
	return nil
}
