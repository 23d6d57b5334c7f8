package handler

import (
	"net/http"
	"regexp"
	"strconv"
	"time"

	"realestate-api/internal/model"
	"realestate-api/pkg/database"
	"realestate-api/pkg/logger"
	"realestate-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var companyTaxIDPattern = regexp.MustCompile(`^\d{14}$`)

// CompanyRequest defines the structure for company creation/update requests
type CompanyRequest struct {
	TaxID  string `json:"tax_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Active bool   `json:"active"`
}

// CreateCompany creates a new company. Companies are not tenant-scoped:
// only master admins reach this handler.
func CreateCompany(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("company", "create")

	var req CompanyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if !companyTaxIDPattern.MatchString(req.TaxID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tax id must be exactly 14 digits"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	// Tax id and name are globally unique: they identify the tenant.
	var count int64
	database.GetDB().Model(&model.Company{}).
		Where("tax_id = ? OR name = ?", req.TaxID, req.Name).
		Count(&count)
	if count > 0 {
		log.Warn("Company with this tax id or name already exists",
			zap.String("tax_id", req.TaxID),
			zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{"error": "a company with this tax id or name already exists"})
	}

	company := model.Company{
		TaxID:  req.TaxID,
		Name:   req.Name,
		Phone:  req.Phone,
		Active: true,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&company); result.Error != nil {
		log.Error("Failed to create company", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create company"})
	}

	log.Info("Company created",
		zap.Uint("id", company.ID),
		zap.String("name", company.Name))
	return c.JSON(http.StatusCreated, company)
}

// GetCompany retrieves a company by ID
func GetCompany(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("company", "get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var company model.Company
	if result := database.GetDB().First(&company, id); result.Error != nil {
		log.Warn("Company not found", zap.Uint64("company_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
	}

	return c.JSON(http.StatusOK, company)
}

// ListCompanies retrieves all companies
func ListCompanies(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("company", "list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var companies []model.Company
	if result := database.GetDB().Order("created_at desc").Find(&companies); result.Error != nil {
		log.Error("Failed to retrieve companies", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve companies"})
	}

	return c.JSON(http.StatusOK, companies)
}

// UpdateCompany updates an existing company
func UpdateCompany(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("company", "update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company ID"})
	}

	var req CompanyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var company model.Company
	if result := database.GetDB().First(&company, id); result.Error != nil {
		log.Warn("Company not found for update", zap.Uint64("company_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
	}

	if req.TaxID != "" && req.TaxID != company.TaxID {
		if !companyTaxIDPattern.MatchString(req.TaxID) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tax id must be exactly 14 digits"})
		}
		var count int64
		database.GetDB().Model(&model.Company{}).
			Where("tax_id = ? AND id != ?", req.TaxID, id).
			Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a company with this tax id already exists"})
		}
		company.TaxID = req.TaxID
	}

	if req.Name != "" && req.Name != company.Name {
		var count int64
		database.GetDB().Model(&model.Company{}).
			Where("name = ? AND id != ?", req.Name, id).
			Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a company with this name already exists"})
		}
		company.Name = req.Name
	}

	company.Phone = req.Phone
	company.Active = req.Active

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&company); result.Error != nil {
		log.Error("Failed to update company", zap.Uint64("company_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update company"})
	}

	log.Info("Company updated", zap.Uint("id", company.ID), zap.String("name", company.Name))
	return c.JSON(http.StatusOK, company)
}

// DeleteCompany handles deleting a company (soft delete)
func DeleteCompany(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("company", "delete")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company ID"})
	}

	var company model.Company
	if result := database.GetDB().First(&company, id); result.Error != nil {
		log.Warn("Company not found for deletion", zap.Uint64("company_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&company); result.Error != nil {
		log.Error("Failed to delete company", zap.Uint64("company_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete company"})
	}

	log.Info("Company deleted", zap.Uint64("company_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "company deleted successfully"})
}
