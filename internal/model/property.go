package model

import (
	"time"

	"gorm.io/gorm"
)

// Property types
const (
	PropertyTypeHouse      = "HOUSE"
	PropertyTypeApartment  = "APARTMENT"
	PropertyTypeLand       = "LAND"
	PropertyTypeCommercial = "COMMERCIAL"
)

// ValidPropertyType reports whether t is one of the known property types.
func ValidPropertyType(t string) bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeApartment, PropertyTypeLand, PropertyTypeCommercial:
		return true
	}
	return false
}

// Property represents a listed property owned by a company.
type Property struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CompanyID uint           `json:"company_id" gorm:"not null;index"`
	Title     string         `json:"title" gorm:"type:varchar(150);not null"`
	Type      string         `json:"type" gorm:"type:varchar(20);not null"`
	Address   string         `json:"address" gorm:"type:text;not null"`
	Price     float64        `json:"price" gorm:"not null"`
	Available bool           `json:"available" gorm:"default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
