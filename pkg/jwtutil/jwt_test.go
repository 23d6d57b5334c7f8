package jwtutil

import (
	"testing"
	"time"

	"realestate-api/pkg/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTUtil(hours int) *JWTUtil {
	return NewJWTUtil(&config.JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: hours,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	util := testJWTUtil(12)

	token, err := util.GenerateToken(42, "ana@example.com", "MANAGER", 7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "MANAGER", claims.Role)
	assert.Equal(t, "7", claims.CompanyID)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	companyID, err := claims.CompanyIDUint()
	require.NoError(t, err)
	assert.Equal(t, uint(7), companyID)
}

func TestTokenExpiry(t *testing.T) {
	util := testJWTUtil(12)

	token, err := util.GenerateToken(1, "a@example.com", "AGENT", 1)
	require.NoError(t, err)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)

	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 11*time.Hour)
	assert.LessOrEqual(t, remaining, 12*time.Hour)
}

func TestExpiredTokenRejected(t *testing.T) {
	// Negative expiration produces an already-expired token.
	util := testJWTUtil(-1)

	token, err := util.GenerateToken(1, "a@example.com", "AGENT", 1)
	require.NoError(t, err)

	_, err = util.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenSignedWithDifferentKeyRejected(t *testing.T) {
	token, err := testJWTUtil(12).GenerateToken(1, "a@example.com", "AGENT", 1)
	require.NoError(t, err)

	other := NewJWTUtil(&config.JWTConfig{SigningKey: "another-key", ExpirationHours: 12})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestUnsignedTokenRejected(t *testing.T) {
	util := testJWTUtil(12)

	// alg=none must never validate, regardless of payload.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, UserClaims{
		Email:     "a@example.com",
		Role:      "MASTER_ADMIN",
		CompanyID: "1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = util.ValidateToken(token)
	assert.Error(t, err)
}

func TestMalformedClaimsParsing(t *testing.T) {
	claims := &UserClaims{
		CompanyID: "not-a-number",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "not-a-number",
		},
	}

	_, err := claims.UserID()
	assert.Error(t, err)

	_, err = claims.CompanyIDUint()
	assert.Error(t, err)
}
