package handler

import (
	"net/http"
	"time"

	"carcrm/internal/model"
	"carcrm/internal/whatsapp"
	"carcrm/pkg/database"
	"carcrm/pkg/logger"
	"carcrm/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// WaLinkRequest defines the structure for wa.me link requests
type WaLinkRequest struct {
	Phone         string  `json:"phone"`
	Body          string  `json:"body"`
	RecipientID   *uint   `json:"recipientId"`
	RecipientType *string `json:"recipientType"`
}

// CreateWaLink normalizes the destination number, builds the wa.me
// deep link and records it in the message log. The log write is best
// effort: its failure is reported as a warning, never as the primary
// failure.
func CreateWaLink(c echo.Context) error {
	log := logger.FromContext(c)

	var req WaLinkRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid wa-link request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "receiver phone number is required"})
	}

	if req.RecipientType != nil && !model.ValidRecipientType(*req.RecipientType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipient type"})
	}

	normalized, err := whatsapp.NormalizePhone(req.Phone, cfg.WhatsApp.DefaultCountryCode)
	if err != nil {
		log.Warn("Unnormalizable receiver phone", zap.String("phone", req.Phone))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid receiver phone number"})
	}

	message := req.Body
	if message == "" {
		message = cfg.WhatsApp.DefaultMessage
	}

	waLink := whatsapp.BuildLink(normalized, message)
	prometheus.WaLinkCounter.Inc()

	entry := model.MessageLog{
		Phone:         normalized,
		Body:          message,
		WaLink:        waLink,
		RecipientID:   req.RecipientID,
		RecipientType: req.RecipientType,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&entry); result.Error != nil {
		log.Error("Failed to write message log", zap.Error(result.Error))
		return c.JSON(http.StatusOK, echo.Map{
			"waLink":        waLink,
			"receiverPhone": normalized,
			"warning":       "link generated but message log write failed",
		})
	}

	log.Info("WhatsApp link generated",
		zap.Uint("message_log_id", entry.ID),
		zap.String("phone", normalized))
	return c.JSON(http.StatusOK, echo.Map{
		"waLink":        waLink,
		"messageLogId":  entry.ID,
		"receiverPhone": normalized,
	})
}
