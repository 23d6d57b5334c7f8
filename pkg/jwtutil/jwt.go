package jwtutil

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"realestate-api/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

// UserClaims represents the JWT claims carried by every issued token.
// The company id travels as a plain decimal string under "empresaId"
// and the role under "perfil"; the user id is the registered subject.
type UserClaims struct {
	Email     string `json:"email"`
	Role      string `json:"perfil"`
	CompanyID string `json:"empresaId"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a numeric user id.
func (c *UserClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim %q: %w", c.Subject, err)
	}
	return uint(id), nil
}

// CompanyIDUint parses the empresaId claim back into a numeric company id.
func (c *UserClaims) CompanyIDUint() (uint, error) {
	id, err := strconv.ParseUint(c.CompanyID, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid empresaId claim %q: %w", c.CompanyID, err)
	}
	return uint(id), nil
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	config *config.JWTConfig
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(cfg *config.JWTConfig) *JWTUtil {
	return &JWTUtil{
		config: cfg,
	}
}

// GenerateToken creates a signed token for the given user identity.
// Expiry is fixed at issuance; there is no refresh mechanism.
func (j *JWTUtil) GenerateToken(userID uint, email, role string, companyID uint) (string, error) {
	if j.config == nil {
		return "", errors.New("JWT configuration not provided")
	}

	now := time.Now()
	claims := UserClaims{
		Email:     email,
		Role:      role,
		CompanyID: strconv.FormatUint(uint64(companyID), 10),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(j.config.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken validates and parses the JWT token
func (j *JWTUtil) ValidateToken(tokenString string) (*UserClaims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&UserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
