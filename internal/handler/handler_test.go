package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"realestate-api/internal/model"
	"realestate-api/pkg/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB points the shared connection at a fresh in-memory
// database. One connection only, so every query sees the same schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Company{},
		&model.User{},
		&model.Client{},
		&model.Property{},
		&model.Appointment{},
	))

	database.DB = db
	return db
}

// authedContext builds an echo context the way AuthMiddleware leaves
// it for the handlers under test.
func authedContext(t *testing.T, method, target, body string, companyID, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("company_id", companyID)
	c.Set("user_id", userID)
	c.Set("email", "ana@example.com")
	c.Set("role", model.RoleAgent)
	return c, rec
}
