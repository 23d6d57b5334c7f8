package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"realestate-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedViewingFixtures(t *testing.T, db *gorm.DB) (model.Property, model.Client) {
	t.Helper()

	company := model.Company{TaxID: "12345678000199", Name: "Imobiliaria Sol", Active: true}
	require.NoError(t, db.Create(&company).Error)

	property := model.Property{
		CompanyID: company.ID,
		Title:     "Casa no centro",
		Type:      model.PropertyTypeHouse,
		Address:   "Rua das Flores 100",
		Price:     450000,
	}
	require.NoError(t, db.Create(&property).Error)

	client := model.Client{
		CompanyID: company.ID,
		Name:      "Bia Silva",
		Document:  "12345678901",
		Email:     "bia@example.com",
		Status:    model.ClientStatusActive,
	}
	require.NoError(t, db.Create(&client).Error)

	return property, client
}

func TestCreateAppointmentRejectsLiveSlotConflict(t *testing.T) {
	db := setupTestDB(t)
	property, client := seedViewingFixtures(t, db)

	slot := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&model.Appointment{
		CompanyID:   property.CompanyID,
		AgentID:     1,
		PropertyID:  property.ID,
		ClientID:    client.ID,
		ScheduledAt: slot,
		Status:      model.AppointmentStatusPending,
	}).Error)

	c, rec := authedContext(t, http.MethodPost, "/api/appointments",
		`{"property_id":1,"client_id":1,"scheduled_at":"2026-09-01T10:00:00Z"}`,
		property.CompanyID, 1)
	require.NoError(t, CreateAppointment(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateAppointmentCanceledSlotIsFree(t *testing.T) {
	db := setupTestDB(t)
	property, client := seedViewingFixtures(t, db)

	// A canceled viewing must not block the slot for re-booking.
	slot := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&model.Appointment{
		CompanyID:   property.CompanyID,
		AgentID:     1,
		PropertyID:  property.ID,
		ClientID:    client.ID,
		ScheduledAt: slot,
		Status:      model.AppointmentStatusCanceled,
	}).Error)

	c, rec := authedContext(t, http.MethodPost, "/api/appointments",
		`{"property_id":1,"client_id":1,"scheduled_at":"2026-09-01T10:00:00Z"}`,
		property.CompanyID, 1)
	require.NoError(t, CreateAppointment(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var count int64
	db.Model(&model.Appointment{}).
		Where("property_id = ? AND status != ?", property.ID, model.AppointmentStatusCanceled).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateAppointmentRescheduleOntoCanceledSlot(t *testing.T) {
	db := setupTestDB(t)
	property, client := seedViewingFixtures(t, db)

	canceledSlot := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&model.Appointment{
		CompanyID:   property.CompanyID,
		AgentID:     1,
		PropertyID:  property.ID,
		ClientID:    client.ID,
		ScheduledAt: canceledSlot,
		Status:      model.AppointmentStatusCanceled,
	}).Error)

	moved := model.Appointment{
		CompanyID:   property.CompanyID,
		AgentID:     1,
		PropertyID:  property.ID,
		ClientID:    client.ID,
		ScheduledAt: canceledSlot.Add(2 * time.Hour),
		Status:      model.AppointmentStatusPending,
	}
	require.NoError(t, db.Create(&moved).Error)

	c, rec := authedContext(t, http.MethodPatch, "/api/appointments/"+fmt.Sprint(moved.ID),
		`{"scheduled_at":"2026-09-01T10:00:00Z"}`,
		property.CompanyID, 1)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(moved.ID))
	require.NoError(t, UpdateAppointment(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var reloaded model.Appointment
	require.NoError(t, db.First(&reloaded, moved.ID).Error)
	assert.True(t, reloaded.ScheduledAt.Equal(canceledSlot))
}

func TestCreateAppointmentForeignPropertyNotFound(t *testing.T) {
	db := setupTestDB(t)
	property, client := seedViewingFixtures(t, db)
	_ = client

	otherCompany := property.CompanyID + 1
	c, rec := authedContext(t, http.MethodPost, "/api/appointments",
		`{"property_id":1,"client_id":1,"scheduled_at":"2026-09-01T10:00:00Z"}`,
		otherCompany, 1)
	require.NoError(t, CreateAppointment(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
