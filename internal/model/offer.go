package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offer is a job posting published by a company.
type Offer struct {
	ID            string    `json:"id" gorm:"type:char(36);primaryKey"`
	Position      string    `json:"position" gorm:"size:255;not null;index"`
	WorkplaceType string    `json:"workplaceType" gorm:"size:64;index"`
	Location      string    `json:"location" gorm:"size:255;not null;index"`
	JobType       string    `json:"jobType" gorm:"size:64;index"`
	Description   string    `json:"description" gorm:"type:text;not null"`
	CompanyID     string    `json:"companyID" gorm:"type:char(36);index;not null"`
	CompanyName   string    `json:"companyName" gorm:"size:255"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BeforeCreate sets the UUID before creating the record.
func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OfferFilter narrows an offer search. Empty fields match everything.
type OfferFilter struct {
	Position      string
	Location      string
	JobType       string
	WorkplaceType string
}
