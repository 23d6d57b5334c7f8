package model

import (
	"time"

	"gorm.io/gorm"
)

// Lead statuses
const (
	LeadStatusNew        = "NEW"
	LeadStatusInProgress = "IN_PROGRESS"
	LeadStatusDone       = "DONE"
)

// ValidLeadStatus reports whether s is one of the known lead statuses.
func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusInProgress, LeadStatusDone:
		return true
	}
	return false
}

// Lead represents inbound interest from an anonymous storefront
// visitor. Creation is public; reads and updates are tenant-scoped.
type Lead struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CompanyID  uint           `json:"company_id" gorm:"not null;index"`
	PropertyID uint           `json:"property_id" gorm:"not null;index"`
	Name       string         `json:"name" gorm:"type:varchar(100);not null"`
	Contact    string         `json:"contact" gorm:"type:varchar(100);not null"`
	Status     string         `json:"status" gorm:"type:varchar(20);default:'NEW'"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Property Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
