package model

import "time"

// Stand holds the virtual stand and receptionist assets of a company,
// keyed by the standId generated for its co user.
type Stand struct {
	StandID   string    `json:"standID" gorm:"type:char(36);primaryKey"`
	CompanyID string    `json:"companyID" gorm:"type:char(36);index;not null"`
	URLStand  string    `json:"urlStand" gorm:"column:url_stand;size:1024;not null"`
	URLRecep  string    `json:"urlRecep" gorm:"column:url_recep;size:1024;not null"`
	UpdatedAt time.Time `json:"updatedAt"`
}
