package middleware

import (
	"net/http"

	"realestate-api/internal/model"
	"realestate-api/pkg/logger"
	"realestate-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequireRoles permits the request only when the authenticated role is
// in the allow-list. An empty allow-list means any authenticated
// identity may pass; token validity itself is AuthMiddleware's job.
// Denial is a 403, distinct from the 401 of a failed authentication.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(roles) == 0 {
				return next(c)
			}

			role, ok := c.Get("role").(model.Role)
			if !ok {
				logger.FromContext(c).Error("Role missing from context; is AuthMiddleware installed?")
				prometheus.RecordAuthError("role_missing")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			logger.FromContext(c).Warn("Operation denied by role",
				zap.String("role", string(role)),
				zap.String("path", c.Path()))
			prometheus.RecordAuthError("role_denied")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions for this operation"})
		}
	}
}
