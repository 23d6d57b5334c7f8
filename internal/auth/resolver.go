package auth

import (
	"context"

	"realestate-api/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs bearer tokens for a resolved account.
type TokenIssuer interface {
	GenerateToken(userID uint, email, role string, companyID uint) (string, error)
}

// CompanyOption is one entry of the company selection list returned
// when credentials match accounts in more than zero companies and no
// selector was supplied. Only id and display name are exposed.
type CompanyOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// LoginResult is the outcome of a successful credential resolution:
// either a token, or a selection list the client must answer with a
// follow-up login carrying a company id.
type LoginResult struct {
	RequiresSelection bool
	Companies         []CompanyOption
	Token             string
	User              *model.User
}

// Resolver turns (email, password, optional company selector) into an
// authorization decision. One email can hold accounts in several
// companies, so the password is checked against every candidate and
// the company choice is deferred to the caller when ambiguous.
type Resolver struct {
	store  Store
	tokens TokenIssuer
}

// NewResolver creates a Resolver over the given store and token issuer.
func NewResolver(store Store, tokens TokenIssuer) *Resolver {
	return &Resolver{store: store, tokens: tokens}
}

// Login resolves the credentials. companyID selects among matched
// accounts; when nil and at least one account matched, a selection
// list is returned instead of a token.
func (r *Resolver) Login(ctx context.Context, email, password string, companyID *uint) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	candidates, err := r.store.FindActiveUsersByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// Verify the password against every candidate; the same email can
	// hold different passwords under different companies.
	var matched []model.User
	for _, u := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
			matched = append(matched, u)
		}
	}

	if len(matched) == 0 {
		return nil, ErrInvalidCredentials
	}

	if companyID == nil {
		return r.selectionResult(ctx, matched)
	}

	// The selector must point at a password-verified account. A wrong
	// selector fails the same way as a wrong password.
	for _, u := range matched {
		if u.CompanyID == *companyID {
			return r.issueToken(u)
		}
	}
	return nil, ErrInvalidCredentials
}

func (r *Resolver) selectionResult(ctx context.Context, matched []model.User) (*LoginResult, error) {
	ids := make([]uint, 0, len(matched))
	for _, u := range matched {
		ids = append(ids, u.CompanyID)
	}

	companies, err := r.store.FindActiveCompaniesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		// Accounts whose company was deactivated cannot log in.
		return nil, ErrInvalidCredentials
	}

	options := make([]CompanyOption, 0, len(companies))
	for _, c := range companies {
		options = append(options, CompanyOption{ID: c.ID, Name: c.Name})
	}

	return &LoginResult{
		RequiresSelection: true,
		Companies:         options,
	}, nil
}

func (r *Resolver) issueToken(u model.User) (*LoginResult, error) {
	token, err := r.tokens.GenerateToken(u.ID, u.Email, string(u.Role), u.CompanyID)
	if err != nil {
		return nil, err
	}
	user := u
	return &LoginResult{Token: token, User: &user}, nil
}
