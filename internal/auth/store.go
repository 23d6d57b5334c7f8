package auth

import (
	"context"

	"realestate-api/internal/model"

	"gorm.io/gorm"
)

// Store is the credential and company lookup surface the resolver
// needs. Kept small so tests can fake it.
type Store interface {
	// FindActiveUsersByEmail returns every active account holding the
	// email, across all companies. Email uniqueness is per company, so
	// this can legitimately return more than one row.
	FindActiveUsersByEmail(ctx context.Context, email string) ([]model.User, error)

	// FindActiveCompaniesByIDs returns the active companies among ids.
	FindActiveCompaniesByIDs(ctx context.Context, ids []uint) ([]model.Company, error)
}

// GormStore implements Store on the shared gorm connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindActiveUsersByEmail(ctx context.Context, email string) ([]model.User, error) {
	var users []model.User
	result := s.db.WithContext(ctx).
		Where("email = ? AND active = ?", email, true).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *GormStore) FindActiveCompaniesByIDs(ctx context.Context, ids []uint) ([]model.Company, error) {
	var companies []model.Company
	result := s.db.WithContext(ctx).
		Where("id IN ? AND active = ?", ids, true).
		Find(&companies)
	if result.Error != nil {
		return nil, result.Error
	}
	return companies, nil
}
