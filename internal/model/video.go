package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video is an external video link published by a company.
type Video struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	URL       string    `json:"url" gorm:"size:1024;not null"`
	CompanyID string    `json:"companyID" gorm:"type:char(36);index;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate sets the UUID before creating the record.
func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
