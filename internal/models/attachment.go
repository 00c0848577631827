package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileType is the kind of file forwarded to the API flow
type FileType string

const (
	FileTypeDocument FileType = "document"
	FileTypePhoto    FileType = "photo"
	FileTypeAudio    FileType = "audio"
	FileTypeVideo    FileType = "video"
)

// FileAttachment is a file submitted alongside an API-created company.
// Rows are written once and never updated or deleted.
type FileAttachment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	FileURL   string    `gorm:"type:text;not null" json:"file_url"`
	FileType  FileType  `gorm:"type:text;not null" json:"file_type"`
	Caption   *string   `gorm:"type:text" json:"caption,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationship
	Company Company `gorm:"foreignKey:CompanyID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (FileAttachment) TableName() string {
	return "file_attachments"
}

// BeforeCreate sets UUID before creating
func (f *FileAttachment) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
