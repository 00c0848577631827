package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents a registered company record
type Company struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"type:text;not null" json:"name"`
	TaxID         string    `gorm:"type:text;index" json:"tax_id"`
	Phone         string    `gorm:"type:text" json:"phone"`
	ContactPerson string    `gorm:"type:text" json:"contact_person"`
	Email         string    `gorm:"type:text;index" json:"email"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (Company) TableName() string {
	return "companies"
}

// BeforeCreate sets UUID before creating
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
