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

// ClientRequest defines the structure for client creation/update requests
type ClientRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	Profile  string `json:"profile"`
	Notes    string `json:"notes"`
}

// CreateClient creates a new client for the caller's company.
func CreateClient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("client", "create")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" || req.Document == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, document and email are required"})
	}
	if req.Status == "" {
		req.Status = model.ClientStatusActive
	}
	if req.Status != model.ClientStatusActive && req.Status != model.ClientStatusInactive {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if req.Profile == "" {
		req.Profile = "BUYER_SELLER"
	}

	// Document and email are unique within the company only.
	var count int64
	database.GetDB().Model(&model.Client{}).
		Where("(document = ? OR email = ?) AND company_id = ?", req.Document, req.Email, cid).
		Count(&count)
	if count > 0 {
		log.Warn("Client with this document or email already exists for this company",
			zap.String("document", req.Document),
			zap.Uint("company_id", cid))
		return c.JSON(http.StatusConflict, echo.Map{"error": "a client with this document or email already exists for this company"})
	}

	client := model.Client{
		CompanyID: cid,
		Name:      req.Name,
		Document:  req.Document,
		Phone:     req.Phone,
		Email:     req.Email,
		Status:    req.Status,
		Profile:   req.Profile,
		Notes:     req.Notes,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&client); result.Error != nil {
		log.Error("Failed to create client", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create client"})
	}

	log.Info("Client created",
		zap.Uint("id", client.ID),
		zap.String("name", client.Name),
		zap.Uint("company_id", client.CompanyID))
	return c.JSON(http.StatusCreated, client)
}

// GetClient retrieves a client by ID for the caller's company
func GetClient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("client", "get")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var client model.Client
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&client)
	if result.Error != nil {
		log.Warn("Client not found", zap.Uint64("client_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}

	return c.JSON(http.StatusOK, client)
}

// ListClients retrieves clients of the caller's company, optionally
// filtered by a case-insensitive substring search and an exact status.
func ListClients(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("client", "list")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	query := database.GetDB().Where("company_id = ?", cid)

	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"name ILIKE ? OR document ILIKE ? OR email ILIKE ? OR phone ILIKE ? OR profile ILIKE ? OR notes ILIKE ?",
			like, like, like, like, like, like,
		)
	}

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var clients []model.Client
	if result := query.Order("created_at desc").Find(&clients); result.Error != nil {
		log.Error("Failed to retrieve clients", zap.Uint("company_id", cid), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve clients"})
	}

	return c.JSON(http.StatusOK, clients)
}

// UpdateClient updates an existing client of the caller's company
func UpdateClient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("client", "update")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client ID"})
	}

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var client model.Client
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&client)
	if result.Error != nil {
		log.Warn("Client not found for update", zap.Uint64("client_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}

	if req.Document != "" && req.Document != client.Document {
		var count int64
		database.GetDB().Model(&model.Client{}).
			Where("document = ? AND id != ? AND company_id = ?", req.Document, id, cid).
			Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a client with this document already exists for this company"})
		}
		client.Document = req.Document
	}
	if req.Email != "" && req.Email != client.Email {
		var count int64
		database.GetDB().Model(&model.Client{}).
			Where("email = ? AND id != ? AND company_id = ?", req.Email, id, cid).
			Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a client with this email already exists for this company"})
		}
		client.Email = req.Email
	}
	if req.Name != "" {
		client.Name = req.Name
	}
	if req.Status != "" {
		if req.Status != model.ClientStatusActive && req.Status != model.ClientStatusInactive {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		client.Status = req.Status
	}
	if req.Profile != "" {
		client.Profile = req.Profile
	}
	if req.Phone != "" {
		client.Phone = req.Phone
	}
	if req.Notes != "" {
		client.Notes = req.Notes
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&client); result.Error != nil {
		log.Error("Failed to update client", zap.Uint64("client_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update client"})
	}

	log.Info("Client updated", zap.Uint("id", client.ID), zap.Uint("company_id", cid))
	return c.JSON(http.StatusOK, client)
}

// DeleteClient handles deleting a client of the caller's company
func DeleteClient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("client", "delete")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client ID"})
	}

	var client model.Client
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&client)
	if result.Error != nil {
		log.Warn("Client not found for deletion", zap.Uint64("client_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&client); result.Error != nil {
		log.Error("Failed to delete client", zap.Uint64("client_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete client"})
	}

	log.Info("Client deleted", zap.Uint64("client_id", id), zap.Uint("company_id", cid))
	return c.JSON(http.StatusOK, echo.Map{"message": "client deleted successfully"})
}
