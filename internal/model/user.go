package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of permission levels a user can hold within
// their company.
type Role string

const (
	RoleMasterAdmin Role = "MASTER_ADMIN"
	RoleManager     Role = "MANAGER"
	RoleAgent       Role = "AGENT"
	RoleSupport     Role = "SUPPORT"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleMasterAdmin, RoleManager, RoleAgent, RoleSupport:
		return true
	}
	return false
}

// User represents an account scoped to exactly one company. The same
// email may exist under several companies as distinct accounts, so
// uniqueness is enforced on (email, company_id).
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"type:varchar(100);not null;uniqueIndex:idx_user_email_company"`
	Password  string         `json:"-" gorm:"type:varchar(255);not null"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	CompanyID uint           `json:"company_id" gorm:"not null;index;uniqueIndex:idx_user_email_company"`
	Role      Role           `json:"role" gorm:"type:varchar(20);not null;default:'AGENT'"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Company Company `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
}
