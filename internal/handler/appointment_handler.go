package handler

import (
	"net/http"
	"strconv"
	"time"

	"realestate-api/internal/model"
	"realestate-api/pkg/database"
	"realestate-api/pkg/logger"
	"realestate-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AppointmentRequest defines the structure for appointment creation/update requests
type AppointmentRequest struct {
	PropertyID  uint       `json:"property_id"`
	ClientID    uint       `json:"client_id"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      string     `json:"status"`
}

// CreateAppointment schedules a property viewing. The agent is always
// the authenticated caller, never taken from the request body.
func CreateAppointment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("appointment", "create")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req AppointmentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.PropertyID == 0 || req.ClientID == 0 || req.ScheduledAt == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id, client_id and scheduled_at are required"})
	}

	db := database.GetDB()

	// Referenced records must belong to the caller's company. A record
	// from another tenant gets the same answer as a missing one.
	var property model.Property
	if result := db.Where("id = ? AND company_id = ?", req.PropertyID, cid).First(&property); result.Error != nil {
		log.Warn("Property not found for appointment", zap.Uint("property_id", req.PropertyID), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}
	var client model.Client
	if result := db.Where("id = ? AND company_id = ?", req.ClientID, cid).First(&client); result.Error != nil {
		log.Warn("Client not found for appointment", zap.Uint("client_id", req.ClientID), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}

	// One live viewing per property per time slot; a canceled
	// appointment frees the slot.
	var count int64
	db.Model(&model.Appointment{}).
		Where("company_id = ? AND property_id = ? AND scheduled_at = ? AND status != ?",
			cid, req.PropertyID, *req.ScheduledAt, model.AppointmentStatusCanceled).
		Count(&count)
	if count > 0 {
		log.Warn("Appointment slot already taken",
			zap.Uint("property_id", req.PropertyID),
			zap.Time("scheduled_at", *req.ScheduledAt))
		return c.JSON(http.StatusConflict, echo.Map{"error": "an appointment for this property already exists at this time"})
	}

	appointment := model.Appointment{
		CompanyID:   cid,
		AgentID:     uid,
		PropertyID:  req.PropertyID,
		ClientID:    req.ClientID,
		ScheduledAt: *req.ScheduledAt,
		Status:      model.AppointmentStatusPending,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := db.Create(&appointment); result.Error != nil {
		log.Error("Failed to create appointment", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create appointment"})
	}

	log.Info("Appointment created",
		zap.Uint("id", appointment.ID),
		zap.Uint("property_id", appointment.PropertyID),
		zap.Uint("agent_id", appointment.AgentID),
		zap.Uint("company_id", appointment.CompanyID))
	return c.JSON(http.StatusCreated, appointment)
}

// GetAppointment retrieves an appointment by ID for the caller's company
func GetAppointment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("appointment", "get")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var appointment model.Appointment
	result := database.GetDB().
		Preload("Property").Preload("Client").
		Where("id = ? AND company_id = ?", id, cid).
		First(&appointment)
	if result.Error != nil {
		log.Warn("Appointment not found", zap.Uint64("appointment_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
	}

	return c.JSON(http.StatusOK, appointment)
}

// ListAppointments retrieves appointments of the caller's company with
// optional status, agent and property filters.
func ListAppointments(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("appointment", "list")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	query := database.GetDB().Where("company_id = ?", cid)

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if agent := c.QueryParam("agent_id"); agent != "" {
		if v, err := strconv.ParseUint(agent, 10, 32); err == nil {
			query = query.Where("agent_id = ?", v)
		}
	}
	if property := c.QueryParam("property_id"); property != "" {
		if v, err := strconv.ParseUint(property, 10, 32); err == nil {
			query = query.Where("property_id = ?", v)
		}
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var appointments []model.Appointment
	if result := query.Order("scheduled_at desc").Find(&appointments); result.Error != nil {
		log.Error("Failed to retrieve appointments", zap.Uint("company_id", cid), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve appointments"})
	}

	return c.JSON(http.StatusOK, appointments)
}

// UpdateAppointment reschedules an appointment or moves it through its
// status lifecycle.
func UpdateAppointment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("appointment", "update")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment ID"})
	}

	var req AppointmentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	db := database.GetDB()

	var appointment model.Appointment
	result := db.Where("id = ? AND company_id = ?", id, cid).First(&appointment)
	if result.Error != nil {
		log.Warn("Appointment not found for update", zap.Uint64("appointment_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
	}

	if req.Status != "" {
		switch req.Status {
		case model.AppointmentStatusPending, model.AppointmentStatusConfirmed,
			model.AppointmentStatusCanceled, model.AppointmentStatusDone:
			appointment.Status = req.Status
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
	}
	if req.ScheduledAt != nil && !req.ScheduledAt.Equal(appointment.ScheduledAt) {
		var count int64
		db.Model(&model.Appointment{}).
			Where("company_id = ? AND property_id = ? AND scheduled_at = ? AND id != ? AND status != ?",
				cid, appointment.PropertyID, *req.ScheduledAt, id, model.AppointmentStatusCanceled).
			Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "an appointment for this property already exists at this time"})
		}
		appointment.ScheduledAt = *req.ScheduledAt
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := db.Save(&appointment); result.Error != nil {
		log.Error("Failed to update appointment", zap.Uint64("appointment_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update appointment"})
	}

	log.Info("Appointment updated",
		zap.Uint("id", appointment.ID),
		zap.String("status", appointment.Status),
		zap.Uint("company_id", cid))
	return c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment handles deleting an appointment of the caller's company
func DeleteAppointment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("appointment", "delete")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment ID"})
	}

	var appointment model.Appointment
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&appointment)
	if result.Error != nil {
		log.Warn("Appointment not found for deletion", zap.Uint64("appointment_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&appointment); result.Error != nil {
		log.Error("Failed to delete appointment", zap.Uint64("appointment_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete appointment"})
	}

	log.Info("Appointment deleted", zap.Uint64("appointment_id", id), zap.Uint("company_id", cid))
	return c.JSON(http.StatusOK, echo.Map{"message": "appointment deleted successfully"})
}
