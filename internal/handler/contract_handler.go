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

// ContractRequest defines the structure for contract creation/update requests
type ContractRequest struct {
	PropertyID uint    `json:"property_id"`
	ClientID   uint    `json:"client_id"`
	Type       string  `json:"type"`
	TotalValue float64 `json:"total_value"`
	Notes      string  `json:"notes"`
	Status     string  `json:"status"`
}

func validContractStatus(s string) bool {
	switch s {
	case model.ContractStatusDraft, model.ContractStatusAwaitingSignature,
		model.ContractStatusSigned, model.ContractStatusFinalized,
		model.ContractStatusCanceled:
		return true
	}
	return false
}

// CreateContract drafts a sale or rental contract. The agent is the
// authenticated caller.
func CreateContract(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("contract", "create")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req ContractRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	req.Type = strings.ToUpper(req.Type)
	if req.PropertyID == 0 || req.ClientID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id and client_id are required"})
	}
	if req.Type != model.ContractTypeSale && req.Type != model.ContractTypeRental {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract type"})
	}
	if req.TotalValue <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total value must be positive"})
	}

	db := database.GetDB()

	var property model.Property
	if result := db.Where("id = ? AND company_id = ?", req.PropertyID, cid).First(&property); result.Error != nil {
		log.Warn("Property not found for contract", zap.Uint("property_id", req.PropertyID), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}
	var client model.Client
	if result := db.Where("id = ? AND company_id = ?", req.ClientID, cid).First(&client); result.Error != nil {
		log.Warn("Client not found for contract", zap.Uint("client_id", req.ClientID), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}

	contract := model.Contract{
		CompanyID:  cid,
		AgentID:    uid,
		PropertyID: req.PropertyID,
		ClientID:   req.ClientID,
		Type:       req.Type,
		TotalValue: req.TotalValue,
		Notes:      req.Notes,
		Status:     model.ContractStatusDraft,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := db.Create(&contract); result.Error != nil {
		log.Error("Failed to create contract", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create contract"})
	}

	log.Info("Contract created",
		zap.Uint("id", contract.ID),
		zap.String("type", contract.Type),
		zap.Uint("company_id", contract.CompanyID))
	return c.JSON(http.StatusCreated, contract)
}

// GetContract retrieves a contract by ID for the caller's company
func GetContract(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("contract", "get")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var contract model.Contract
	result := database.GetDB().
		Preload("Property").Preload("Client").
		Where("id = ? AND company_id = ?", id, cid).
		First(&contract)
	if result.Error != nil {
		log.Warn("Contract not found", zap.Uint64("contract_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
	}

	return c.JSON(http.StatusOK, contract)
}

// ListContracts retrieves contracts of the caller's company with
// optional status and type filters.
func ListContracts(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("contract", "list")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	query := database.GetDB().Where("company_id = ?", cid)

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if t := strings.ToUpper(c.QueryParam("type")); t != "" {
		query = query.Where("type = ?", t)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var contracts []model.Contract
	if result := query.Order("created_at desc").Find(&contracts); result.Error != nil {
		log.Error("Failed to retrieve contracts", zap.Uint("company_id", cid), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve contracts"})
	}

	return c.JSON(http.StatusOK, contracts)
}

// UpdateContract updates an existing contract's value, notes or status.
func UpdateContract(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("contract", "update")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract ID"})
	}

	var req ContractRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var contract model.Contract
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&contract)
	if result.Error != nil {
		log.Warn("Contract not found for update", zap.Uint64("contract_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
	}

	if req.Status != "" {
		if !validContractStatus(req.Status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		contract.Status = req.Status
	}
	if req.TotalValue > 0 {
		contract.TotalValue = req.TotalValue
	}
	if req.Notes != "" {
		contract.Notes = req.Notes
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&contract); result.Error != nil {
		log.Error("Failed to update contract", zap.Uint64("contract_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update contract"})
	}

	log.Info("Contract updated",
		zap.Uint("id", contract.ID),
		zap.String("status", contract.Status),
		zap.Uint("company_id", cid))
	return c.JSON(http.StatusOK, contract)
}

// DeleteContract handles deleting a contract of the caller's company
func DeleteContract(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("contract", "delete")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract ID"})
	}

	var contract model.Contract
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&contract)
	if result.Error != nil {
		log.Warn("Contract not found for deletion", zap.Uint64("contract_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&contract); result.Error != nil {
		log.Error("Failed to delete contract", zap.Uint64("contract_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete contract"})
	}

	log.Info("Contract deleted", zap.Uint64("contract_id", id), zap.Uint("company_id", cid))
	return c.JSON(http.StatusOK, echo.Map{"message": "contract deleted successfully"})
}
