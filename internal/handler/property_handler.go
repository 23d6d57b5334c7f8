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

// PropertyRequest defines the structure for property creation/update requests
type PropertyRequest struct {
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	Address   string  `json:"address"`
	Price     float64 `json:"price"`
	Available *bool   `json:"available,omitempty"`
}

// CreateProperty creates a new property listing for the caller's company.
func CreateProperty(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("property", "create")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	req.Type = strings.ToUpper(req.Type)
	if req.Title == "" || req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and address are required"})
	}
	if !model.ValidPropertyType(req.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property type"})
	}
	if req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be positive"})
	}

	property := model.Property{
		CompanyID: cid,
		Title:     req.Title,
		Type:      req.Type,
		Address:   req.Address,
		Price:     req.Price,
	}
	if req.Available != nil {
		property.Available = *req.Available
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&property); result.Error != nil {
		log.Error("Failed to create property", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create property"})
	}

	log.Info("Property created",
		zap.Uint("id", property.ID),
		zap.String("title", property.Title),
		zap.Uint("company_id", property.CompanyID))
	return c.JSON(http.StatusCreated, property)
}

// GetProperty retrieves a property by ID for the caller's company
func GetProperty(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("property", "get")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var property model.Property
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&property)
	if result.Error != nil {
		log.Warn("Property not found", zap.Uint64("property_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}

	return c.JSON(http.StatusOK, property)
}

// ListProperties retrieves properties of the caller's company with
// optional type and availability filters.
func ListProperties(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("property", "list")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	query := database.GetDB().Where("company_id = ?", cid)

	if t := strings.ToUpper(c.QueryParam("type")); t != "" {
		query = query.Where("type = ?", t)
	}
	if available := c.QueryParam("available"); available != "" {
		if v, err := strconv.ParseBool(available); err == nil {
			query = query.Where("available = ?", v)
		}
	}
	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR address ILIKE ?", like, like)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var properties []model.Property
	if result := query.Order("created_at desc").Find(&properties); result.Error != nil {
		log.Error("Failed to retrieve properties", zap.Uint("company_id", cid), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve properties"})
	}

	return c.JSON(http.StatusOK, properties)
}

// UpdateProperty updates an existing property of the caller's company
func UpdateProperty(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("property", "update")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property ID"})
	}

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var property model.Property
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&property)
	if result.Error != nil {
		log.Warn("Property not found for update", zap.Uint64("property_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}

	if req.Title != "" {
		property.Title = req.Title
	}
	if req.Type != "" {
		t := strings.ToUpper(req.Type)
		if !model.ValidPropertyType(t) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property type"})
		}
		property.Type = t
	}
	if req.Address != "" {
		property.Address = req.Address
	}
	if req.Price > 0 {
		property.Price = req.Price
	}
	if req.Available != nil {
		property.Available = *req.Available
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&property); result.Error != nil {
		log.Error("Failed to update property", zap.Uint64("property_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update property"})
	}

	log.Info("Property updated", zap.Uint("id", property.ID), zap.Uint("company_id", cid))
	return c.JSON(http.StatusOK, property)
}

// DeleteProperty handles deleting a property of the caller's company
func DeleteProperty(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("property", "delete")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property ID"})
	}

	var property model.Property
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&property)
	if result.Error != nil {
		log.Warn("Property not found for deletion", zap.Uint64("property_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&property); result.Error != nil {
		log.Error("Failed to delete property", zap.Uint64("property_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete property"})
	}

	log.Info("Property deleted", zap.Uint64("property_id", id), zap.Uint("company_id", cid))
	return c.JSON(http.StatusOK, echo.Map{"message": "property deleted successfully"})
}
