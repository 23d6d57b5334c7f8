package handler

import (
	"fmt"
	"net/http"
	"testing"

	"realestate-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteUserRemovesRow(t *testing.T) {
	db := setupTestDB(t)

	user := model.User{
		Email:     "agent@example.com",
		Password:  "irrelevant-hash",
		Name:      "Ana",
		CompanyID: 1,
		Role:      model.RoleAgent,
		Active:    true,
	}
	require.NoError(t, db.Create(&user).Error)

	c, rec := authedContext(t, http.MethodDelete, "/api/users/1", "", 1, 2)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(user.ID))
	require.NoError(t, DeleteUser(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	// Hard delete: the row is gone even past the soft-delete filter,
	// unlike deactivation via Active=false.
	var count int64
	db.Unscoped().Model(&model.User{}).Where("id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
