package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of access levels a user can hold.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCompany Role = "co"
	RoleVisitor Role = "visitor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCompany, RoleVisitor:
		return true
	}
	return false
}

// User is the identity record used for login and as the owner key of every
// company-scoped entity.
type User struct {
	ID           string     `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string     `json:"name" gorm:"size:255;not null;index"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role       `json:"role" gorm:"size:20;not null;index"`
	Company      string     `json:"company,omitempty" gorm:"size:255"`
	CIF          string     `json:"cif,omitempty" gorm:"column:cif;size:32"`
	StandID      string     `json:"standId,omitempty" gorm:"size:36;index"`
	DNI          string     `json:"dni,omitempty" gorm:"column:dni;size:32"`
	Studies      string     `json:"studies,omitempty" gorm:"size:255"`
	Information  bool       `json:"information" gorm:"default:false"`
	LastLogout   *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BeforeCreate sets the UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
