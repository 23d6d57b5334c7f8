package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"realestate-api/internal/model"
	"realestate-api/pkg/database"
	"realestate-api/pkg/logger"
	"realestate-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NegotiationRequest defines the structure for negotiation creation requests
type NegotiationRequest struct {
	PropertyID  uint       `json:"property_id"`
	ClientID    uint       `json:"client_id"`
	Type        string     `json:"type"`
	AgreedValue float64    `json:"agreed_value"`
	RentStart   *time.Time `json:"rent_start,omitempty"`
	RentEnd     *time.Time `json:"rent_end,omitempty"`
	RentDueDay  int        `json:"rent_due_day,omitempty"`
	Notes       string     `json:"notes"`
}

// callerEmail returns the authenticated email stashed by AuthMiddleware.
func callerEmail(c echo.Context) string {
	email, _ := c.Get("email").(string)
	return email
}

// CreateNegotiation opens a deal on a property. The timeline starts
// with an automatic entry recording who registered it.
func CreateNegotiation(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("negotiation", "create")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req NegotiationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	req.Type = strings.ToUpper(req.Type)
	if req.PropertyID == 0 || req.ClientID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id and client_id are required"})
	}
	if req.Type != model.NegotiationTypeSale && req.Type != model.NegotiationTypeRental {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid negotiation type"})
	}
	if req.RentDueDay != 0 && (req.RentDueDay < 1 || req.RentDueDay > 31) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rent due day must be between 1 and 31"})
	}

	db := database.GetDB()

	var property model.Property
	if result := db.Where("id = ? AND company_id = ?", req.PropertyID, cid).First(&property); result.Error != nil {
		log.Warn("Property not found for negotiation", zap.Uint("property_id", req.PropertyID), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}
	var client model.Client
	if result := db.Where("id = ? AND company_id = ?", req.ClientID, cid).First(&client); result.Error != nil {
		log.Warn("Client not found for negotiation", zap.Uint("client_id", req.ClientID), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}

	negotiation := model.Negotiation{
		CompanyID:   cid,
		PropertyID:  req.PropertyID,
		ClientID:    req.ClientID,
		Type:        req.Type,
		Status:      model.NegotiationStatusProposal,
		AgreedValue: req.AgreedValue,
		RentStart:   req.RentStart,
		RentEnd:     req.RentEnd,
		RentDueDay:  req.RentDueDay,
		Notes:       req.Notes,
		History: model.History{{
			At:          time.Now(),
			Description: "negotiation registered",
			UserName:    callerEmail(c),
		}},
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := db.Create(&negotiation); result.Error != nil {
		log.Error("Failed to create negotiation", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create negotiation"})
	}

	log.Info("Negotiation created",
		zap.Uint("id", negotiation.ID),
		zap.String("type", negotiation.Type),
		zap.Uint("company_id", negotiation.CompanyID))
	return c.JSON(http.StatusCreated, negotiation)
}

// GetNegotiation retrieves a negotiation by ID for the caller's company
func GetNegotiation(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("negotiation", "get")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid negotiation ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var negotiation model.Negotiation
	result := database.GetDB().
		Preload("Property").Preload("Client").
		Where("id = ? AND company_id = ?", id, cid).
		First(&negotiation)
	if result.Error != nil {
		log.Warn("Negotiation not found", zap.Uint64("negotiation_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "negotiation not found"})
	}

	return c.JSON(http.StatusOK, negotiation)
}

// ListNegotiations retrieves negotiations of the caller's company,
// most recently touched first.
func ListNegotiations(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("negotiation", "list")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	query := database.GetDB().
		Preload("Property").Preload("Client").
		Where("company_id = ?", cid)

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if t := strings.ToUpper(c.QueryParam("type")); t != "" {
		query = query.Where("type = ?", t)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var negotiations []model.Negotiation
	if result := query.Order("updated_at desc").Find(&negotiations); result.Error != nil {
		log.Error("Failed to retrieve negotiations", zap.Uint("company_id", cid), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve negotiations"})
	}

	return c.JSON(http.StatusOK, negotiations)
}

// UpdateNegotiationStatus moves a negotiation through the pipeline.
// Reaching SIGNED or CLOSED stamps the closing time and takes the
// property off the market.
func UpdateNegotiationStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("negotiation", "update_status")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid negotiation ID"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	req.Status = strings.ToUpper(req.Status)
	if !model.ValidNegotiationStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	db := database.GetDB()

	var negotiation model.Negotiation
	result := db.Where("id = ? AND company_id = ?", id, cid).First(&negotiation)
	if result.Error != nil {
		log.Warn("Negotiation not found for status update", zap.Uint64("negotiation_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "negotiation not found"})
	}

	previous := negotiation.Status
	negotiation.Status = req.Status
	negotiation.History = append(negotiation.History, model.HistoryEntry{
		At:          time.Now(),
		Description: "status changed from " + previous + " to " + req.Status,
		UserName:    callerEmail(c),
	})

	if req.Status == model.NegotiationStatusSigned || req.Status == model.NegotiationStatusClosed {
		now := time.Now()
		negotiation.ClosedAt = &now
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := db.Save(&negotiation); result.Error != nil {
		log.Error("Failed to update negotiation status", zap.Uint64("negotiation_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update negotiation"})
	}

	// A signed or closed deal takes the property off the market.
	if req.Status == model.NegotiationStatusSigned || req.Status == model.NegotiationStatusClosed {
		if result := db.Model(&model.Property{}).
			Where("id = ? AND company_id = ?", negotiation.PropertyID, cid).
			Update("available", false); result.Error != nil {
			log.Error("Failed to mark property unavailable",
				zap.Uint("property_id", negotiation.PropertyID),
				zap.Error(result.Error))
		}
	}

	log.Info("Negotiation status updated",
		zap.Uint("id", negotiation.ID),
		zap.String("from", previous),
		zap.String("to", negotiation.Status),
		zap.Uint("company_id", cid))
	return c.JSON(http.StatusOK, negotiation)
}

// AddNegotiationHistory appends a free-form entry to the timeline.
func AddNegotiationHistory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("negotiation", "add_history")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid negotiation ID"})
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "description is required"})
	}

	var negotiation model.Negotiation
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&negotiation)
	if result.Error != nil {
		log.Warn("Negotiation not found for history entry", zap.Uint64("negotiation_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "negotiation not found"})
	}

	negotiation.History = append(negotiation.History, model.HistoryEntry{
		At:          time.Now(),
		Description: req.Description,
		UserName:    callerEmail(c),
	})

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&negotiation); result.Error != nil {
		log.Error("Failed to append negotiation history", zap.Uint64("negotiation_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update negotiation"})
	}

	log.Info("Negotiation history appended",
		zap.Uint("id", negotiation.ID),
		zap.Uint("company_id", cid))
	return c.JSON(http.StatusOK, negotiation)
}
