// file: internals/features/users/accounts/model/account_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountPositionType: salah satu constants.PositionTypes
type AccountModel struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey;column:account_id" json:"account_id"`

	AccountName            string     `gorm:"type:varchar(150);not null;column:account_name"          json:"account_name"`
	AccountNRP             string     `gorm:"type:varchar(50);not null;uniqueIndex;column:account_nrp" json:"account_nrp"`
	AccountRank            *string    `gorm:"type:varchar(100);column:account_rank"                    json:"account_rank,omitempty"`
	AccountPosition        *string    `gorm:"type:varchar(150);column:account_position"                json:"account_position,omitempty"`
	AccountPositionType    string     `gorm:"type:varchar(30);not null;column:account_position_type"   json:"account_position_type"`
	AccountSubdirectoratID *uuid.UUID `gorm:"type:uuid;index;column:account_subdirectorat_id" json:"account_subdirectorat_id,omitempty"`
	AccountSupervisorID    *uuid.UUID `gorm:"type:uuid;index;column:account_supervisor_id"    json:"account_supervisor_id,omitempty"`

	// write-only (bcrypt)
	AccountPassword string `gorm:"type:varchar(255);not null;column:account_password" json:"-"`

	AccountIsActive  bool           `gorm:"not null;column:account_is_active"                 json:"account_is_active"`
	AccountCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:account_created_at" json:"account_created_at"`
	AccountUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:account_updated_at" json:"account_updated_at"`
	AccountDeletedAt gorm.DeletedAt `gorm:"column:account_deleted_at;index"                   json:"account_deleted_at,omitempty"`
}

func (AccountModel) TableName() string { return "accounts" }

func (m *AccountModel) BeforeCreate(tx *gorm.DB) error {
	if m.AccountID == uuid.Nil {
		m.AccountID = uuid.New()
	}
	return nil
}
