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
	"golang.org/x/crypto/bcrypt"
)

// UserRequest defines the structure for user creation/update requests
type UserRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password,omitempty"`
	Name     string     `json:"name"`
	Role     model.Role `json:"role"`
	Active   *bool      `json:"active,omitempty"`
}

// CreateUser creates a new user account inside the caller's company.
func CreateUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "create")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Email == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and name are required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must have at least 6 characters"})
	}
	if req.Role == "" {
		req.Role = model.RoleAgent
	}
	if !model.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}

	// Email is unique per company; the same address may exist under
	// another company as a separate account.
	var count int64
	database.GetDB().Model(&model.User{}).
		Where("email = ? AND company_id = ?", req.Email, cid).
		Count(&count)
	if count > 0 {
		log.Warn("Email already registered for this company",
			zap.String("email", req.Email),
			zap.Uint("company_id", cid))
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered for this company"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}

	user := model.User{
		Email:     req.Email,
		Password:  string(hashed),
		Name:      req.Name,
		CompanyID: cid,
		Role:      req.Role,
		Active:    true,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&user); result.Error != nil {
		log.Error("Failed to create user", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}

	log.Info("User created",
		zap.Uint("id", user.ID),
		zap.String("email", user.Email),
		zap.Uint("company_id", user.CompanyID))
	return c.JSON(http.StatusCreated, user)
}

// GetUser retrieves a user by ID within the caller's company
func GetUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "get")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&user)
	if result.Error != nil {
		// Same answer whether the id does not exist or belongs to
		// another company.
		log.Warn("User not found", zap.Uint64("user_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, user)
}

// ListUsers retrieves all users of the caller's company
func ListUsers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "list")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	query := database.GetDB().Where("company_id = ?", cid)

	active := c.QueryParam("active")
	if active != "" {
		if v, err := strconv.ParseBool(active); err == nil {
			query = query.Where("active = ?", v)
		}
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var users []model.User
	if result := query.Order("created_at desc").Find(&users); result.Error != nil {
		log.Error("Failed to retrieve users", zap.Uint("company_id", cid), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve users"})
	}

	return c.JSON(http.StatusOK, users)
}

// UpdateUser updates a user's profile, role or active flag. Setting
// Active to false is the audited way of disabling an account.
func UpdateUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "update")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var user model.User
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&user)
	if result.Error != nil {
		log.Warn("User not found for update", zap.Uint64("user_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		if !model.ValidRole(req.Role) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
		}
		user.Role = req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != "" {
		if len(req.Password) < 6 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must have at least 6 characters"})
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
		}
		user.Password = string(hashed)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&user); result.Error != nil {
		log.Error("Failed to update user", zap.Uint64("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
	}

	log.Info("User updated",
		zap.Uint("id", user.ID),
		zap.String("role", string(user.Role)),
		zap.Bool("active", user.Active))
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user account from the caller's company.
func DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "delete")

	cid, ok := companyID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	var user model.User
	result := database.GetDB().Where("id = ? AND company_id = ?", id, cid).First(&user)
	if result.Error != nil {
		log.Warn("User not found for deletion", zap.Uint64("user_id", id), zap.Uint("company_id", cid))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	// Deactivation via Active=false is the audited path; this endpoint
	// removes the row outright.
	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Unscoped().Delete(&user); result.Error != nil {
		log.Error("Failed to delete user", zap.Uint64("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete user"})
	}

	log.Info("User deleted", zap.Uint64("user_id", id), zap.Uint("company_id", cid))
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted successfully"})
}
