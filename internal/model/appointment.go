package model

import (
	"time"

	"gorm.io/gorm"
)

// Appointment statuses
const (
	AppointmentStatusPending   = "PENDING"
	AppointmentStatusConfirmed = "CONFIRMED"
	AppointmentStatusCanceled  = "CANCELED"
	AppointmentStatusDone      = "DONE"
)

// Appointment represents a scheduled property viewing. Slot
// exclusivity is enforced by the handlers rather than a unique index:
// a canceled appointment frees its slot for re-booking, which a plain
// composite index on (company_id, property_id, scheduled_at) cannot
// express.
type Appointment struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CompanyID   uint           `json:"company_id" gorm:"not null;index:idx_appt_slot"`
	AgentID     uint           `json:"agent_id" gorm:"not null;index"`
	PropertyID  uint           `json:"property_id" gorm:"not null;index:idx_appt_slot"`
	ClientID    uint           `json:"client_id" gorm:"not null;index"`
	ScheduledAt time.Time      `json:"scheduled_at" gorm:"not null;index:idx_appt_slot"`
	Status      string         `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Property Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Client   Client   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Agent    User     `json:"agent,omitempty" gorm:"foreignKey:AgentID"`
}
