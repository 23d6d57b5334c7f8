package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Negotiation types
const (
	NegotiationTypeSale   = "SALE"
	NegotiationTypeRental = "RENTAL"
)

// Negotiation statuses, roughly the stages of a deal pipeline.
const (
	NegotiationStatusProspecting    = "PROSPECTING"
	NegotiationStatusVisit          = "VISIT"
	NegotiationStatusProposal       = "PROPOSAL"
	NegotiationStatusDocumentReview = "DOCUMENT_REVIEW"
	NegotiationStatusContractReview = "CONTRACT_REVIEW"
	NegotiationStatusSigned         = "SIGNED"
	NegotiationStatusClosed         = "CLOSED"
	NegotiationStatusLost           = "LOST"
	NegotiationStatusCanceled       = "CANCELED"
)

// ValidNegotiationStatus reports whether s is a known pipeline stage.
func ValidNegotiationStatus(s string) bool {
	switch s {
	case NegotiationStatusProspecting, NegotiationStatusVisit, NegotiationStatusProposal,
		NegotiationStatusDocumentReview, NegotiationStatusContractReview,
		NegotiationStatusSigned, NegotiationStatusClosed,
		NegotiationStatusLost, NegotiationStatusCanceled:
		return true
	}
	return false
}

// HistoryEntry is one event on a negotiation timeline.
type HistoryEntry struct {
	At          time.Time `json:"at"`
	Description string    `json:"description"`
	UserName    string    `json:"user_name"`
}

// History is the append-only negotiation timeline, stored as a jsonb
// column.
type History []HistoryEntry

// Value implements driver.Valuer for gorm.
func (h History) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for gorm.
func (h *History) Scan(value interface{}) error {
	if value == nil {
		*h = History{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported history column type %T", value)
	}
	return json.Unmarshal(data, h)
}

// Negotiation represents an ongoing sale or rental deal for a
// property. The rent fields only apply to RENTAL negotiations.
type Negotiation struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CompanyID   uint           `json:"company_id" gorm:"not null;index"`
	PropertyID  uint           `json:"property_id" gorm:"not null;index"`
	ClientID    uint           `json:"client_id" gorm:"not null;index"`
	Type        string         `json:"type" gorm:"type:varchar(20);not null"`
	Status      string         `json:"status" gorm:"type:varchar(30);not null;default:'PROPOSAL'"`
	AgreedValue float64        `json:"agreed_value" gorm:"not null;default:0"`
	ClosedAt    *time.Time     `json:"closed_at,omitempty"`
	RentStart   *time.Time     `json:"rent_start,omitempty"`
	RentEnd     *time.Time     `json:"rent_end,omitempty"`
	RentDueDay  int            `json:"rent_due_day,omitempty"`
	Notes       string         `json:"notes" gorm:"type:text"`
	History     History        `json:"history" gorm:"type:jsonb;default:'[]'"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Property Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Client   Client   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}
