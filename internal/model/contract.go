package model

import (
	"time"

	"gorm.io/gorm"
)

// Contract types
const (
	ContractTypeSale   = "SALE"
	ContractTypeRental = "RENTAL"
)

// Contract statuses
const (
	ContractStatusDraft             = "DRAFT"
	ContractStatusAwaitingSignature = "AWAITING_SIGNATURE"
	ContractStatusSigned            = "SIGNED"
	ContractStatusFinalized         = "FINALIZED"
	ContractStatusCanceled          = "CANCELED"
)

// Contract represents a sale or rental contract between the agency,
// a client and a property.
type Contract struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CompanyID  uint           `json:"company_id" gorm:"not null;index"`
	AgentID    uint           `json:"agent_id" gorm:"not null;index"`
	PropertyID uint           `json:"property_id" gorm:"not null;index"`
	ClientID   uint           `json:"client_id" gorm:"not null;index"`
	Type       string         `json:"type" gorm:"type:varchar(20);not null"`
	TotalValue float64        `json:"total_value" gorm:"not null"`
	Notes      string         `json:"notes" gorm:"type:text"`
	Status     string         `json:"status" gorm:"type:varchar(30);not null;default:'DRAFT'"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Property Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Client   Client   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Agent    User     `json:"agent,omitempty" gorm:"foreignKey:AgentID"`
}
