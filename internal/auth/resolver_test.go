package auth

import (
	"context"
	"fmt"
	"testing"

	"realestate-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeStore struct {
	users     []model.User
	companies []model.Company
}

func (s *fakeStore) FindActiveUsersByEmail(_ context.Context, email string) ([]model.User, error) {
	var out []model.User
	for _, u := range s.users {
		if u.Email == email && u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeStore) FindActiveCompaniesByIDs(_ context.Context, ids []uint) ([]model.Company, error) {
	var out []model.Company
	for _, c := range s.companies {
		if !c.Active {
			continue
		}
		for _, id := range ids {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

type fakeIssuer struct {
	lastUserID    uint
	lastEmail     string
	lastRole      string
	lastCompanyID uint
}

func (f *fakeIssuer) GenerateToken(userID uint, email, role string, companyID uint) (string, error) {
	f.lastUserID = userID
	f.lastEmail = email
	f.lastRole = role
	f.lastCompanyID = companyID
	return fmt.Sprintf("token-%d-%d", userID, companyID), nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func newTestResolver(t *testing.T) (*Resolver, *fakeStore, *fakeIssuer) {
	t.Helper()
	hash := hashPassword(t, "secret123")
	store := &fakeStore{
		users: []model.User{
			{ID: 1, Email: "ana@example.com", Password: hash, CompanyID: 10, Role: model.RoleAgent, Active: true},
			{ID: 2, Email: "ana@example.com", Password: hash, CompanyID: 20, Role: model.RoleManager, Active: true},
		},
		companies: []model.Company{
			{ID: 10, Name: "Imobiliaria Sol", Active: true},
			{ID: 20, Name: "Imobiliaria Lua", Active: true},
		},
	}
	issuer := &fakeIssuer{}
	return NewResolver(store, issuer), store, issuer
}

func TestLoginReturnsSelectionListWhenNoCompanyChosen(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	result, err := resolver.Login(context.Background(), "ana@example.com", "secret123", nil)
	require.NoError(t, err)

	assert.True(t, result.RequiresSelection)
	assert.Empty(t, result.Token)
	require.Len(t, result.Companies, 2)
	assert.Equal(t, uint(10), result.Companies[0].ID)
	assert.Equal(t, "Imobiliaria Sol", result.Companies[0].Name)
	assert.Equal(t, uint(20), result.Companies[1].ID)
}

func TestLoginSingleAccountStillRequiresSelection(t *testing.T) {
	hash := hashPassword(t, "secret123")
	store := &fakeStore{
		users: []model.User{
			{ID: 1, Email: "solo@example.com", Password: hash, CompanyID: 10, Role: model.RoleAgent, Active: true},
		},
		companies: []model.Company{{ID: 10, Name: "Imobiliaria Sol", Active: true}},
	}
	resolver := NewResolver(store, &fakeIssuer{})

	result, err := resolver.Login(context.Background(), "solo@example.com", "secret123", nil)
	require.NoError(t, err)

	assert.True(t, result.RequiresSelection)
	require.Len(t, result.Companies, 1)
}

func TestLoginWithSelectorIssuesToken(t *testing.T) {
	resolver, _, issuer := newTestResolver(t)

	companyID := uint(20)
	result, err := resolver.Login(context.Background(), "ana@example.com", "secret123", &companyID)
	require.NoError(t, err)

	assert.False(t, result.RequiresSelection)
	assert.Equal(t, "token-2-20", result.Token)
	require.NotNil(t, result.User)
	assert.Equal(t, uint(2), result.User.ID)
	assert.Equal(t, model.RoleManager, result.User.Role)

	assert.Equal(t, uint(2), issuer.lastUserID)
	assert.Equal(t, "ana@example.com", issuer.lastEmail)
	assert.Equal(t, string(model.RoleManager), issuer.lastRole)
	assert.Equal(t, uint(20), issuer.lastCompanyID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	resolver, _, _ := newTestResolver(t)
	wrongCompany := uint(99)

	cases := []struct {
		name      string
		email     string
		password  string
		companyID *uint
	}{
		{"unknown email", "nobody@example.com", "secret123", nil},
		{"wrong password", "ana@example.com", "wrong", nil},
		{"wrong company selector", "ana@example.com", "secret123", &wrongCompany},
		{"empty email", "", "secret123", nil},
		{"empty password", "ana@example.com", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := resolver.Login(context.Background(), tc.email, tc.password, tc.companyID)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLoginInactiveUserIsIgnored(t *testing.T) {
	hash := hashPassword(t, "secret123")
	store := &fakeStore{
		users: []model.User{
			{ID: 1, Email: "off@example.com", Password: hash, CompanyID: 10, Active: false},
		},
		companies: []model.Company{{ID: 10, Name: "Imobiliaria Sol", Active: true}},
	}
	resolver := NewResolver(store, &fakeIssuer{})

	result, err := resolver.Login(context.Background(), "off@example.com", "secret123", nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDeactivatedCompanyBlocksSelection(t *testing.T) {
	hash := hashPassword(t, "secret123")
	store := &fakeStore{
		users: []model.User{
			{ID: 1, Email: "ana@example.com", Password: hash, CompanyID: 10, Active: true},
		},
		companies: []model.Company{{ID: 10, Name: "Imobiliaria Sol", Active: false}},
	}
	resolver := NewResolver(store, &fakeIssuer{})

	result, err := resolver.Login(context.Background(), "ana@example.com", "secret123", nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDifferentPasswordsPerCompany(t *testing.T) {
	// The same email can hold independent credentials under different
	// companies; only the account whose password matches is selectable.
	store := &fakeStore{
		users: []model.User{
			{ID: 1, Email: "ana@example.com", Password: hashPassword(t, "password-a"), CompanyID: 10, Active: true},
			{ID: 2, Email: "ana@example.com", Password: hashPassword(t, "password-b"), CompanyID: 20, Active: true},
		},
		companies: []model.Company{
			{ID: 10, Name: "Imobiliaria Sol", Active: true},
			{ID: 20, Name: "Imobiliaria Lua", Active: true},
		},
	}
	resolver := NewResolver(store, &fakeIssuer{})

	result, err := resolver.Login(context.Background(), "ana@example.com", "password-b", nil)
	require.NoError(t, err)
	require.Len(t, result.Companies, 1)
	assert.Equal(t, uint(20), result.Companies[0].ID)

	// Selecting the company whose password did not match must fail.
	companyID := uint(10)
	_, err = resolver.Login(context.Background(), "ana@example.com", "password-b", &companyID)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
