package handler

import (
	"realestate-api/internal/auth"
	"realestate-api/pkg/database"
	"realestate-api/pkg/jwtutil"

	"github.com/labstack/echo/v4"
)

var resolver *auth.Resolver

// Init wires the handler package to its collaborators. Must run after
// the database is initialized and before any route is served.
func Init(jwt *jwtutil.JWTUtil) {
	resolver = auth.NewResolver(auth.NewGormStore(database.GetDB()), jwt)
}

// companyID returns the authenticated company id stashed by AuthMiddleware.
func companyID(c echo.Context) (uint, bool) {
	id, ok := c.Get("company_id").(uint)
	return id, ok
}

// userID returns the authenticated user id stashed by AuthMiddleware.
func userID(c echo.Context) (uint, bool) {
	id, ok := c.Get("user_id").(uint)
	return id, ok
}
