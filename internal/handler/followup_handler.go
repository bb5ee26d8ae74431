package handler

import (
	"net/http"
	"time"

	"carcrm/internal/model"
	"carcrm/pkg/database"
	"carcrm/pkg/logger"
	"carcrm/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FollowUpRequest defines the structure for follow-up creation
// requests. Any subset of the four references may be set.
type FollowUpRequest struct {
	LeadID      *uint      `json:"leadId"`
	BuyerID     *uint      `json:"buyerId"`
	SellerID    *uint      `json:"sellerId"`
	CarID       *uint      `json:"carId"`
	Type        string     `json:"type"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Notes       *string    `json:"notes"`
}

// FollowUpUpdateRequest carries a partial patch; nil fields are left
// untouched. Completion state is only changed through the dedicated
// complete action.
type FollowUpUpdateRequest struct {
	LeadID      *uint      `json:"leadId"`
	BuyerID     *uint      `json:"buyerId"`
	SellerID    *uint      `json:"sellerId"`
	CarID       *uint      `json:"carId"`
	Type        *string    `json:"type"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Notes       *string    `json:"notes"`
}

// dayBounds returns the start (inclusive) and end (exclusive) of the
// local calendar day containing now.
func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// scheduleRange translates a list filter into a scheduled_at window.
// From is inclusive and to is exclusive, so a follow-up scheduled
// exactly at now is pending, never overdue.
func scheduleRange(filter string, now time.Time) (from, to *time.Time, incompleteOnly bool) {
	switch filter {
	case "today":
		start, end := dayBounds(now)
		return &start, &end, true
	case "pending":
		return &now, nil, true
	case "overdue":
		return nil, &now, true
	default:
		return nil, nil, false
	}
}

// ListFollowUps handles retrieving follow-ups ordered by schedule
// time, with today/pending/overdue/all filtering
func ListFollowUps(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Where("deleted = ?", false)

	filter := c.QueryParam("filter")
	from, to, incompleteOnly := scheduleRange(filter, time.Now())
	if incompleteOnly {
		query = query.Where("completed = ?", false)
	}
	if from != nil {
		query = query.Where("scheduled_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("scheduled_at < ?", *to)
	}

	var followups []model.FollowUp
	result := query.Order("scheduled_at ASC").Find(&followups)
	if result.Error != nil {
		log.Error("Failed to list follow-ups", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve follow-ups"})
	}

	return c.JSON(http.StatusOK, followups)
}

// GetFollowUp handles retrieving a single follow-up by ID
func GetFollowUp(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var followup model.FollowUp
	result := database.GetDB().Where("id = ? AND deleted = ?", id, false).First(&followup)
	if result.Error != nil {
		log.Debug("Follow-up not found", zap.Uint("followup_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "follow-up not found"})
	}

	return c.JSON(http.StatusOK, followup)
}

// CreateFollowUp handles creating a new follow-up
func CreateFollowUp(c echo.Context) error {
	log := logger.FromContext(c)

	var req FollowUpRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid follow-up request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Type == "" || req.ScheduledAt == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type and scheduledAt are required"})
	}

	followup := model.FollowUp{
		LeadID:      req.LeadID,
		BuyerID:     req.BuyerID,
		SellerID:    req.SellerID,
		CarID:       req.CarID,
		Type:        req.Type,
		ScheduledAt: *req.ScheduledAt,
		Notes:       req.Notes,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&followup); result.Error != nil {
		log.Error("Failed to create follow-up", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create follow-up"})
	}

	prometheus.RecordEntityOperation("followup", "create")
	log.Info("Follow-up created",
		zap.Uint("followup_id", followup.ID),
		zap.Time("scheduled_at", followup.ScheduledAt))
	return c.JSON(http.StatusCreated, followup)
}

// UpdateFollowUp handles a partial patch of an existing follow-up
func UpdateFollowUp(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req FollowUpUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid follow-up update data", zap.Uint("followup_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var followup model.FollowUp
	result := database.GetDB().Where("id = ? AND deleted = ?", id, false).First(&followup)
	if result.Error != nil {
		log.Debug("Follow-up not found for update", zap.Uint("followup_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "follow-up not found"})
	}

	updates := map[string]interface{}{}
	setOptionalRef(updates, "lead_id", req.LeadID)
	setOptionalRef(updates, "buyer_id", req.BuyerID)
	setOptionalRef(updates, "seller_id", req.SellerID)
	setOptionalRef(updates, "car_id", req.CarID)
	setOptional(updates, "notes", req.Notes)
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.ScheduledAt != nil {
		updates["scheduled_at"] = *req.ScheduledAt
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update")(time.Now())
		if err := database.GetDB().Model(&model.FollowUp{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			log.Error("Failed to update follow-up", zap.Uint("followup_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update follow-up"})
		}
	}

	if err := database.GetDB().First(&followup, id).Error; err != nil {
		log.Error("Failed to reload follow-up", zap.Uint("followup_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update follow-up"})
	}

	prometheus.RecordEntityOperation("followup", "update")
	return c.JSON(http.StatusOK, followup)
}

// CompleteFollowUp marks a follow-up done and stamps the completion
// time. Completing an already-completed follow-up silently reaffirms
// it, refreshing completedAt.
func CompleteFollowUp(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var followup model.FollowUp
	result := database.GetDB().Where("id = ? AND deleted = ?", id, false).First(&followup)
	if result.Error != nil {
		log.Debug("Follow-up not found for completion", zap.Uint("followup_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "follow-up not found"})
	}

	now := time.Now().UTC()
	defer prometheus.TrackDBOperation("update")(time.Now())
	err := database.GetDB().Model(&model.FollowUp{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": now,
		}).Error
	if err != nil {
		log.Error("Failed to complete follow-up", zap.Uint("followup_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to complete follow-up"})
	}

	if err := database.GetDB().First(&followup, id).Error; err != nil {
		log.Error("Failed to reload follow-up", zap.Uint("followup_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to complete follow-up"})
	}

	prometheus.RecordEntityOperation("followup", "complete")
	log.Info("Follow-up completed", zap.Uint("followup_id", id))
	return c.JSON(http.StatusOK, followup)
}

// DeleteFollowUp handles soft-deleting a follow-up
func DeleteFollowUp(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := database.GetDB().Model(&model.FollowUp{}).Where("id = ?", id).Update("deleted", true)
	if result.Error != nil {
		log.Error("Failed to delete follow-up", zap.Uint("followup_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete follow-up"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "follow-up not found"})
	}

	prometheus.RecordEntityOperation("followup", "delete")
	log.Info("Follow-up deleted", zap.Uint("followup_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
