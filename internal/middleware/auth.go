package middleware

import (
	"net/http"

	"carcrm/internal/model"
	"carcrm/pkg/database"
	"carcrm/pkg/jwtutil"
	"carcrm/pkg/logger"
	"carcrm/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context keys set by SessionAuth for downstream handlers.
const (
	AdminIDKey    = "admin_id"
	AdminEmailKey = "admin_email"
)

var cookieName = "crcrm_session"

// SetCookieName overrides the session cookie name read by the
// middleware. Called once at startup from configuration.
func SetCookieName(name string) {
	if name != "" {
		cookieName = name
	}
}

// CookieName returns the session cookie name.
func CookieName() string {
	return cookieName
}

// SessionAuth validates the session cookie and re-confirms the admin
// record still exists and is not soft-deleted. Stale tokens for
// removed admins are rejected even if not yet expired.
func SessionAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		cookie, err := c.Cookie(cookieName)
		if err != nil || cookie.Value == "" {
			log.Debug("Missing session cookie")
			prometheus.RecordAuthError("missing_session")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}

		claims, err := jwtutil.ValidateToken(cookie.Value)
		if err != nil {
			log.Debug("Invalid session token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}

		var admin model.Admin
		result := database.GetDB().
			Where("id = ? AND email = ? AND deleted = ?", claims.AdminID, claims.Email, false).
			First(&admin)
		if result.Error != nil {
			log.Warn("Session token for unknown or removed admin",
				zap.Uint("admin_id", claims.AdminID))
			prometheus.RecordAuthError("stale_session")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}

		c.Set(AdminIDKey, admin.ID)
		c.Set(AdminEmailKey, admin.Email)

		return next(c)
	}
}
