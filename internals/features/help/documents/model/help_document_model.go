// file: internals/features/help/documents/model/help_document_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HelpDocumentModel: dokumen bantuan. Hard delete (tidak ada deleted_at).
type HelpDocumentModel struct {
	HelpDocumentID uuid.UUID `gorm:"type:uuid;primaryKey;column:help_document_id" json:"help_document_id"`

	HelpDocumentTitle       string `gorm:"type:varchar(200);not null;column:help_document_title"  json:"help_document_title"`
	HelpDocumentDescription string `gorm:"type:text;not null;column:help_document_description"     json:"help_document_description"`

	// File di bucket
	HelpDocumentFileURL  string `gorm:"type:text;not null;column:help_document_file_url"          json:"help_document_file_url"`
	HelpDocumentFilePath string `gorm:"type:text;not null;index;column:help_document_file_path"   json:"help_document_file_path"`
	HelpDocumentFileName string `gorm:"type:varchar(255);not null;column:help_document_file_name" json:"help_document_file_name"`
	HelpDocumentFileSize int64  `gorm:"not null;column:help_document_file_size"                   json:"help_document_file_size"`
	HelpDocumentFileType string `gorm:"type:varchar(150);not null;column:help_document_file_type" json:"help_document_file_type"`

	// {"driver": "...", "bucket": "...", "key": "..."}
	HelpDocumentStorageMeta datatypes.JSONMap `gorm:"column:help_document_storage_meta" json:"help_document_storage_meta,omitempty"`

	HelpDocumentCreatedBy uuid.UUID `gorm:"type:uuid;not null;index;column:help_document_created_by" json:"help_document_created_by"`
	HelpDocumentCreatedAt time.Time `gorm:"not null;autoCreateTime;column:help_document_created_at"  json:"help_document_created_at"`
	HelpDocumentUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:help_document_updated_at"  json:"help_document_updated_at"`
}

func (HelpDocumentModel) TableName() string { return "help_documents" }

func (m *HelpDocumentModel) BeforeCreate(tx *gorm.DB) error {
	if m.HelpDocumentID == uuid.Nil {
		m.HelpDocumentID = uuid.New()
	}
	return nil
}
