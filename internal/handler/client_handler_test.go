package handler

import (
	"fmt"
	"net/http"
	"testing"

	"realestate-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateClientPreservesOmittedFields(t *testing.T) {
	db := setupTestDB(t)

	client := model.Client{
		CompanyID: 1,
		Name:      "Bia",
		Document:  "12345678901",
		Phone:     "11999990000",
		Email:     "bia@example.com",
		Status:    model.ClientStatusActive,
		Profile:   "BUYER_SELLER",
		Notes:     "prefers mornings",
	}
	require.NoError(t, db.Create(&client).Error)

	// A partial update naming only one field must leave the rest alone.
	c, rec := authedContext(t, http.MethodPatch, "/api/clients/1",
		`{"name":"Bia Silva"}`, 1, 1)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(client.ID))
	require.NoError(t, UpdateClient(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var reloaded model.Client
	require.NoError(t, db.First(&reloaded, client.ID).Error)
	assert.Equal(t, "Bia Silva", reloaded.Name)
	assert.Equal(t, "11999990000", reloaded.Phone)
	assert.Equal(t, "prefers mornings", reloaded.Notes)
	assert.Equal(t, "bia@example.com", reloaded.Email)
}

func TestUpdateClientCrossCompanyNotFound(t *testing.T) {
	db := setupTestDB(t)

	client := model.Client{
		CompanyID: 1,
		Name:      "Bia",
		Document:  "12345678901",
		Email:     "bia@example.com",
	}
	require.NoError(t, db.Create(&client).Error)

	c, rec := authedContext(t, http.MethodPatch, "/api/clients/1",
		`{"name":"Bia Silva"}`, 2, 1)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(client.ID))
	require.NoError(t, UpdateClient(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
