package model

import (
	"time"

	"gorm.io/gorm"
)

// Client statuses
const (
	ClientStatusActive   = "ACTIVE"
	ClientStatusInactive = "INACTIVE"
)

// Client represents a person the agency buys from, sells to or rents
// to. Document and email are unique per company, not globally.
type Client struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CompanyID uint           `json:"company_id" gorm:"not null;index;uniqueIndex:idx_client_doc_company;uniqueIndex:idx_client_email_company"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Document  string         `json:"document" gorm:"type:varchar(14);not null;uniqueIndex:idx_client_doc_company"`
	Phone     string         `json:"phone" gorm:"type:varchar(20)"`
	Email     string         `json:"email" gorm:"type:varchar(100);not null;uniqueIndex:idx_client_email_company"`
	Status    string         `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`
	Profile   string         `json:"profile" gorm:"type:varchar(50);default:'BUYER_SELLER'"`
	Notes     string         `json:"notes" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
