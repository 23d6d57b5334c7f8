package auth

import (
	"context"
	"fmt"
	"regexp"

	"realestate-api/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var taxIDPattern = regexp.MustCompile(`^\d{14}$`)

// RegisterMasterInput carries the landing-page registration form:
// the new company plus its first master admin account.
type RegisterMasterInput struct {
	TaxID       string `json:"tax_id"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
	AdminName   string `json:"admin_full_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// RegisterMasterResult reports the ids created by a successful
// registration.
type RegisterMasterResult struct {
	CompanyID uint
	UserID    uint
}

// RegisterMaster creates a company and its master admin account in a
// single transaction. Both inserts succeed or neither persists; a
// duplicate tax id or email aborts the whole registration.
//
// Email uniqueness is checked globally here, not per company: the
// master account anchors company support and recovery flows, and two
// master accounts under one email would make those ambiguous.
func RegisterMaster(ctx context.Context, db *gorm.DB, input RegisterMasterInput) (*RegisterMasterResult, error) {
	if err := validateRegisterMaster(input); err != nil {
		return nil, err
	}

	var result RegisterMasterResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Company{}).Where("tax_id = ?", input.TaxID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateTaxID
		}

		if err := tx.Model(&model.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		company := model.Company{
			TaxID:  input.TaxID,
			Name:   input.CompanyName,
			Phone:  input.Phone,
			Active: true,
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		user := model.User{
			Email:     input.Email,
			Password:  string(hashed),
			Name:      input.AdminName,
			CompanyID: company.ID,
			Role:      model.RoleMasterAdmin,
			Active:    true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		result.CompanyID = company.ID
		result.UserID = user.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func validateRegisterMaster(input RegisterMasterInput) error {
	if !taxIDPattern.MatchString(input.TaxID) {
		return fmt.Errorf("%w: tax id must be exactly 14 digits", ErrValidation)
	}
	if input.CompanyName == "" {
		return fmt.Errorf("%w: company name is required", ErrValidation)
	}
	if input.AdminName == "" {
		return fmt.Errorf("%w: admin full name is required", ErrValidation)
	}
	if input.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if len(input.Password) < 6 {
		return fmt.Errorf("%w: password must have at least 6 characters", ErrValidation)
	}
	return nil
}
