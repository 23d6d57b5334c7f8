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

// LeadRequest defines the structure for public lead submissions.
type LeadRequest struct {
	CompanyID  uint   `json:"company_id"`
	PropertyID uint   `json:"property_id"`
	Name       string `json:"name"`
	Contact    string `json:"contact"`
}

// CreateLead accepts an inbound lead from the public storefront. No
// authentication: the body names the target company, which must be
// active and must own the referenced property.
func CreateLead(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("lead", "create")

	var req LeadRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.CompanyID == 0 || req.PropertyID == 0 || req.Name == "" || req.Contact == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "company_id, property_id, name and contact are required"})
	}

	db := database.GetDB()

	var company model.Company
	if result := db.Where("id = ? AND active = ?", req.CompanyID, true).First(&company); result.Error != nil {
		log.Warn("Lead rejected: company not found or inactive", zap.Uint("company_id", req.CompanyID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
	}

	var property model.Property
	if result := db.Where("id = ? AND company_id = ?", req.PropertyID, req.CompanyID).First(&property); result.Error != nil {
		log.Warn("Lead rejected: property not found for company",
			zap.Uint("property_id", req.PropertyID),
			zap.Uint("company_id", req.CompanyID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}

	lead := model.Lead{
		CompanyID:  req.CompanyID,
		PropertyID: req.PropertyID,
		Name:       req.Name,
		Contact:    req.Contact,
		Status:     model.LeadStatusNew,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := db.Create(&lead); result.Error != nil {
		log.Error("Failed to create lead", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create lead"})
	}

	log.Info("Lead created",
		zap.Uint("id", lead.ID),
		zap.Uint("property_id", lead.PropertyID),
		zap.Uint("company_id", lead.CompanyID))
	return c.JSON(http.StatusCreated, lead)
}

// ListLeads retrieves leads of the caller's company, newest first, with
// the referenced property preloaded.
func ListLeads(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("lead", "list")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	query := database.GetDB().Preload("Property").Where("company_id = ?", cid)

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var leads []model.Lead
	if result := query.Order("created_at desc").Find(&leads); result.Error != nil {
		log.Error("Failed to retrieve leads", zap.Uint("company_id", cid), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve leads"})
	}

	return c.JSON(http.StatusOK, leads)
}

// UpdateLeadStatus moves a lead through its triage lifecycle.
func UpdateLeadStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("lead", "update_status")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lead ID"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if !model.ValidLeadStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	var lead model.Lead
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&lead)
	if result.Error != nil {
		log.Warn("Lead not found for status update", zap.Uint64("lead_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lead not found"})
	}

	lead.Status = req.Status

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&lead); result.Error != nil {
		log.Error("Failed to update lead status", zap.Uint64("lead_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update lead"})
	}

	log.Info("Lead status updated",
		zap.Uint("id", lead.ID),
		zap.String("status", lead.Status),
		zap.Uint("company_id", cid))
	return c.JSON(http.StatusOK, lead)
}
