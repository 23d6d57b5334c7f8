package model

import (
	"time"

	"gorm.io/gorm"
)

// Company represents a real-estate agency. It is the unit of data
// isolation: every other entity carries a CompanyID foreign key.
type Company struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	TaxID     string         `json:"tax_id" gorm:"type:varchar(14);uniqueIndex;not null"`
	Name      string         `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Phone     string         `json:"phone" gorm:"type:varchar(20)"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
