package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Link is a call-to-action button shown on a company profile.
type Link struct {
	AdditionalButtonTitle string `json:"additionalButtonTitle" validate:"required"`
	AdditionalButtonLink  string `json:"additionalButtonLink" validate:"required,url"`
}

// Company is the public profile owned by a co user. CompanyID is that
// user's ID.
type Company struct {
	ID                    string            `json:"id" gorm:"type:char(36);primaryKey"`
	CompanyID             string            `json:"companyID" gorm:"type:char(36);uniqueIndex;not null"`
	Name                  string            `json:"name" gorm:"size:255;not null"`
	Description           string            `json:"description" gorm:"type:text;not null"`
	AdditionalInformation string            `json:"additionalInformation" gorm:"type:text"`
	Email                 string            `json:"email,omitempty" gorm:"size:255"`
	Sector                string            `json:"sector,omitempty" gorm:"size:255"`
	Links                 []Link            `json:"links" gorm:"serializer:json;type:json"`
	Documents             []CompanyDocument `json:"documents" gorm:"foreignKey:CompanyID;references:CompanyID"`
	CreatedAt             time.Time         `json:"createdAt"`
	UpdatedAt             time.Time         `json:"updatedAt"`
}

// BeforeCreate sets the UUID before creating the record.
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CompanyDocument is a file attached to a company profile. URL is filled
// with a presigned link on read and never persisted.
type CompanyDocument struct {
	ID         string    `json:"id" gorm:"type:char(36);primaryKey"`
	CompanyID  string    `json:"companyID" gorm:"type:char(36);index;not null"`
	FileName   string    `json:"fileName" gorm:"size:255;not null"`
	StorageKey string    `json:"-" gorm:"size:512;not null"`
	URL        string    `json:"url,omitempty" gorm:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BeforeCreate sets the UUID before creating the record.
func (d *CompanyDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
