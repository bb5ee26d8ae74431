package handler

import (
	"net/http"
	"strings"
	"time"

	"carcrm/internal/middleware"
	"carcrm/internal/model"
	"carcrm/pkg/config"
	"carcrm/pkg/database"
	"carcrm/pkg/jwtutil"
	"carcrm/pkg/logger"
	"carcrm/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var cfg *config.Config

// InitHandlers wires the loaded configuration into the handler package
func InitHandlers(c *config.Config) {
	cfg = c
}

// sessionCookie builds the session cookie carrying the signed token.
// Secure is only set in production so local development over plain
// HTTP keeps working.
func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(jwtutil.Expiry().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   cfg != nil && cfg.IsProduction(),
	}
}

// clearedSessionCookie expires the session cookie immediately.
func clearedSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   cfg != nil && cfg.IsProduction(),
	}
}

// Login authenticates an admin and sets the session cookie. Wrong
// email and wrong password produce the identical response so the
// failing field is never revealed.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_login")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	defer prometheus.TrackDBOperation("query")(time.Now())
	var admin model.Admin
	result := database.GetDB().Where("email = ? AND deleted = ?", email, false).First(&admin)
	if result.Error != nil {
		log.Warn("Login failed, admin not found", zap.String("email", email))
		prometheus.RecordAuthError("admin_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Login failed, wrong password", zap.String("email", email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	token, err := jwtutil.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		log.Error("Failed to generate session token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	c.SetCookie(sessionCookie(token))
	prometheus.IncreaseActiveTokens()

	log.Info("Admin logged in", zap.String("email", admin.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"admin": echo.Map{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
		},
	})
}

// Logout clears the session cookie.
func Logout(c echo.Context) error {
	c.SetCookie(clearedSessionCookie())
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ChangePassword re-verifies the old password, stores a new hash and
// reissues the session cookie. Tokens issued before the change stay
// valid until they expire.
func ChangePassword(c echo.Context) error {
	log := logger.FromContext(c)
	adminID := c.Get(middleware.AdminIDKey).(uint)

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse change-password request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "old password and new password are required"})
	}

	if len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new password must be at least 6 characters"})
	}

	var admin model.Admin
	result := database.GetDB().Where("id = ? AND deleted = ?", adminID, false).First(&admin)
	if result.Error != nil {
		log.Error("Admin not found for password change", zap.Uint("admin_id", adminID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "admin not found"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.OldPassword)); err != nil {
		log.Warn("Password change rejected, old password incorrect", zap.Uint("admin_id", adminID))
		prometheus.RecordAuthError("invalid_old_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "old password is incorrect"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash new password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to change password"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Model(&admin).Update("password_hash", string(hash)).Error; err != nil {
		log.Error("Failed to store new password hash", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to change password"})
	}

	token, err := jwtutil.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		log.Error("Failed to reissue session token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	c.SetCookie(sessionCookie(token))

	log.Info("Admin changed password", zap.Uint("admin_id", admin.ID))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Me returns the authenticated admin's profile.
func Me(c echo.Context) error {
	log := logger.FromContext(c)
	adminID := c.Get(middleware.AdminIDKey).(uint)

	var admin model.Admin
	result := database.GetDB().Where("id = ? AND deleted = ?", adminID, false).First(&admin)
	if result.Error != nil {
		log.Error("Admin not found", zap.Uint("admin_id", adminID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "admin not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":    admin.ID,
		"email": admin.Email,
		"name":  admin.Name,
	})
}

// MetricsHandler exposes the Prometheus metrics endpoint
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
