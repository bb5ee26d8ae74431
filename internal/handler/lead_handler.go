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
	"gorm.io/gorm"
)

// LeadRequest defines the structure for lead creation requests.
// Buyer and car ids are soft references; dangling ids are tolerated.
type LeadRequest struct {
	BuyerID *uint      `json:"buyerId"`
	CarID   *uint      `json:"carId"`
	Source  *string    `json:"source"`
	Status  string     `json:"status"`
	Tags    model.Tags `json:"tags"`
	Notes   *string    `json:"notes"`
}

// LeadUpdateRequest carries a partial patch; nil fields are left
// untouched.
type LeadUpdateRequest struct {
	BuyerID         *uint       `json:"buyerId"`
	CarID           *uint       `json:"carId"`
	Source          *string     `json:"source"`
	Status          *string     `json:"status"`
	Tags            *model.Tags `json:"tags"`
	Notes           *string     `json:"notes"`
	IncrementVisits bool        `json:"incrementVisits"`
}

// ListLeads handles retrieving all non-deleted leads with an optional
// status filter
func ListLeads(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Where("deleted = ?", false)

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var leads []model.Lead
	result := query.Order("created_at DESC").Find(&leads)
	if result.Error != nil {
		log.Error("Failed to list leads", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve leads"})
	}

	return c.JSON(http.StatusOK, leads)
}

// GetLead handles retrieving a single lead by ID
func GetLead(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var lead model.Lead
	result := database.GetDB().Where("id = ? AND deleted = ?", id, false).First(&lead)
	if result.Error != nil {
		log.Debug("Lead not found", zap.Uint("lead_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lead not found"})
	}

	return c.JSON(http.StatusOK, lead)
}

// CreateLead handles creating a new lead; status defaults to new
func CreateLead(c echo.Context) error {
	log := logger.FromContext(c)

	var req LeadRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid lead request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	status := req.Status
	if status == "" {
		status = model.LeadStatusNew
	}
	if !model.ValidLeadStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	lead := model.Lead{
		BuyerID: req.BuyerID,
		CarID:   req.CarID,
		Source:  req.Source,
		Status:  status,
		Tags:    req.Tags,
		Notes:   req.Notes,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&lead); result.Error != nil {
		log.Error("Failed to create lead", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create lead"})
	}

	prometheus.RecordEntityOperation("lead", "create")
	log.Info("Lead created", zap.Uint("lead_id", lead.ID), zap.String("status", lead.Status))
	return c.JSON(http.StatusCreated, lead)
}

// UpdateLead handles a partial patch of an existing lead; the visit
// counter increment is an atomic SQL expression
func UpdateLead(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req LeadUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid lead update data", zap.Uint("lead_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var lead model.Lead
	result := database.GetDB().Where("id = ? AND deleted = ?", id, false).First(&lead)
	if result.Error != nil {
		log.Debug("Lead not found for update", zap.Uint("lead_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lead not found"})
	}

	if req.Status != nil && !model.ValidLeadStatus(*req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	updates := map[string]interface{}{}
	setOptionalRef(updates, "buyer_id", req.BuyerID)
	setOptionalRef(updates, "car_id", req.CarID)
	setOptional(updates, "source", req.Source)
	setOptional(updates, "notes", req.Notes)
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.IncrementVisits {
		updates["visits_count"] = gorm.Expr("visits_count + 1")
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update")(time.Now())
		if err := database.GetDB().Model(&model.Lead{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			log.Error("Failed to update lead", zap.Uint("lead_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update lead"})
		}
	}

	if err := database.GetDB().First(&lead, id).Error; err != nil {
		log.Error("Failed to reload lead", zap.Uint("lead_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update lead"})
	}

	prometheus.RecordEntityOperation("lead", "update")
	return c.JSON(http.StatusOK, lead)
}

// DeleteLead handles soft-deleting a lead
func DeleteLead(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := database.GetDB().Model(&model.Lead{}).Where("id = ?", id).Update("deleted", true)
	if result.Error != nil {
		log.Error("Failed to delete lead", zap.Uint("lead_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete lead"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lead not found"})
	}

	prometheus.RecordEntityOperation("lead", "delete")
	log.Info("Lead deleted", zap.Uint("lead_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
