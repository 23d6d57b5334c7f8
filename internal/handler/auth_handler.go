package handler

import (
	"errors"
	"net/http"
	"time"

	"realestate-api/internal/auth"
	"realestate-api/pkg/database"
	"realestate-api/pkg/jwtutil"
	"realestate-api/pkg/logger"
	"realestate-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Login resolves credentials into either a company selection list or a
// signed token. The same email may hold accounts in several companies,
// so the first call typically comes without a company_id and is
// answered with the list; the second call carries the chosen id.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	// Parse request
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		CompanyID *uint  `json:"company_id,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	result, err := resolver.Login(c.Request().Context(), req.Email, req.Password, req.CompanyID)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Deliberately generic: does not reveal whether the email,
			// password or company selector was the wrong part.
			log.Warn("Login failed", zap.String("email", req.Email))
			prometheus.RecordAuthError("login_failure")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		log.Error("Login resolution failed", zap.Error(err))
		prometheus.RecordAuthError("internal_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	if result.RequiresSelection {
		prometheus.CompanySelectionCounter.Inc()
		log.Info("Login requires company selection",
			zap.String("email", req.Email),
			zap.Int("companies", len(result.Companies)))
		return c.JSON(http.StatusOK, echo.Map{
			"requiresSelection": true,
			"companies":         result.Companies,
		})
	}

	prometheus.RecordTokenIssued()
	log.Info("User logged in",
		zap.String("email", result.User.Email),
		zap.Uint("company_id", result.User.CompanyID),
		zap.String("role", string(result.User.Role)))

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": result.Token,
	})
}

// RegisterMaster creates a company and its first master admin account
// from the public landing page.
func RegisterMaster(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterMasterCounter.Inc()

	var input auth.RegisterMasterInput
	if err := c.Bind(&input); err != nil {
		log.Error("Failed to parse master registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result, err := auth.RegisterMaster(c.Request().Context(), database.GetDB(), input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			log.Warn("Master registration rejected", zap.Error(err))
			prometheus.RecordAuthError("invalid_registration")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, auth.ErrDuplicateTaxID), errors.Is(err, auth.ErrDuplicateEmail):
			log.Warn("Master registration conflict", zap.Error(err))
			prometheus.RecordAuthError("registration_conflict")
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		default:
			log.Error("Master registration failed", zap.Error(err))
			prometheus.RecordAuthError("registration_failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
		}
	}

	log.Info("Company and master admin registered",
		zap.Uint("company_id", result.CompanyID),
		zap.Uint("user_id", result.UserID))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Company and master admin created successfully",
		"company_id": result.CompanyID,
		"user_id":    result.UserID,
	})
}

// Profile echoes the authenticated identity back from the claims.
func Profile(c echo.Context) error {
	claims, ok := c.Get("claims").(*jwtutil.UserClaims)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user_id":    claims.Subject,
		"email":      claims.Email,
		"role":       claims.Role,
		"company_id": claims.CompanyID,
	})
}

// MetricsHandler exposes the Prometheus registry.
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
