package model

import "time"

// CompanyFiles tracks the banner and poster blobs of a company. Banner and
// Poster are presigned on read.
type CompanyFiles struct {
	CompanyID string    `json:"companyID" gorm:"type:char(36);primaryKey"`
	BannerKey string    `json:"-" gorm:"size:512"`
	PosterKey string    `json:"-" gorm:"size:512"`
	Banner    string    `json:"banner,omitempty" gorm:"-"`
	Poster    string    `json:"poster,omitempty" gorm:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}
