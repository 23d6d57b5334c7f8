package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"realestate-api/internal/model"
	"realestate-api/pkg/config"
	"realestate-api/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest(t *testing.T, util *jwtutil.JWTUtil, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := AuthMiddleware(util)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c, reached
}

func newTestUtil() *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(&config.JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: 1,
	})
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rec, _, reached := testRequest(t, newTestUtil(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		rec, _, reached := testRequest(t, newTestUtil(), header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.False(t, reached)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	rec, _, reached := testRequest(t, newTestUtil(), "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddlewareWrongKeyToken(t *testing.T) {
	other := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "another-key", ExpirationHours: 1})
	token, err := other.GenerateToken(1, "a@example.com", "AGENT", 1)
	require.NoError(t, err)

	rec, _, reached := testRequest(t, newTestUtil(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddlewareValidTokenStashesIdentity(t *testing.T) {
	util := newTestUtil()
	token, err := util.GenerateToken(42, "ana@example.com", "MANAGER", 7)
	require.NoError(t, err)

	rec, c, reached := testRequest(t, util, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	assert.Equal(t, uint(42), c.Get("user_id"))
	assert.Equal(t, "ana@example.com", c.Get("email"))
	assert.Equal(t, uint(7), c.Get("company_id"))
	assert.Equal(t, model.RoleManager, c.Get("role"))
}
