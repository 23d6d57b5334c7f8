package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"realestate-api/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithRole(t *testing.T, role interface{}, allowed ...model.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/properties/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}

	reached := false
	handler := RequireRoles(allowed...)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, reached
}

func TestRequireRolesAllowsMember(t *testing.T) {
	rec, reached := runWithRole(t, model.RoleManager, model.RoleMasterAdmin, model.RoleManager)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestRequireRolesDeniesNonMember(t *testing.T) {
	rec, reached := runWithRole(t, model.RoleAgent, model.RoleMasterAdmin, model.RoleManager)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestRequireRolesEmptyListAllowsAnyAuthenticated(t *testing.T) {
	rec, reached := runWithRole(t, model.RoleSupport)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestRequireRolesMissingRoleIsUnauthorized(t *testing.T) {
	rec, reached := runWithRole(t, nil, model.RoleMasterAdmin)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}
