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

// BuyerRequest defines the structure for buyer creation requests
type BuyerRequest struct {
	Name        string             `json:"name"`
	Phone       string             `json:"phone"`
	Email       *string            `json:"email"`
	Address     *string            `json:"address"`
	Preferences *model.Preferences `json:"preferences"`
	Notes       *string            `json:"notes"`
}

// BuyerUpdateRequest carries a partial patch; nil fields are left
// untouched.
type BuyerUpdateRequest struct {
	Name            *string            `json:"name"`
	Phone           *string            `json:"phone"`
	Email           *string            `json:"email"`
	Address         *string            `json:"address"`
	Preferences     *model.Preferences `json:"preferences"`
	Notes           *string            `json:"notes"`
	IncrementVisits bool               `json:"incrementVisits"`
}

// ListBuyers handles retrieving all non-deleted buyers with optional
// free-text search over name, phone and email
func ListBuyers(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Where("deleted = ?", false)

	if q := c.QueryParam("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var buyers []model.Buyer
	result := query.Order("created_at DESC").Find(&buyers)
	if result.Error != nil {
		log.Error("Failed to list buyers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve buyers"})
	}

	return c.JSON(http.StatusOK, buyers)
}

// GetBuyer handles retrieving a single buyer by ID
func GetBuyer(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var buyer model.Buyer
	result := database.GetDB().Where("id = ? AND deleted = ?", id, false).First(&buyer)
	if result.Error != nil {
		log.Debug("Buyer not found", zap.Uint("buyer_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "buyer not found"})
	}

	return c.JSON(http.StatusOK, buyer)
}

// CreateBuyer handles creating a new buyer
func CreateBuyer(c echo.Context) error {
	log := logger.FromContext(c)

	var req BuyerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid buyer request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and phone are required"})
	}

	buyer := model.Buyer{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Preferences: req.Preferences,
		Notes:       req.Notes,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&buyer); result.Error != nil {
		log.Error("Failed to create buyer", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create buyer"})
	}

	prometheus.RecordEntityOperation("buyer", "create")
	log.Info("Buyer created", zap.Uint("buyer_id", buyer.ID), zap.String("name", buyer.Name))
	return c.JSON(http.StatusCreated, buyer)
}

// UpdateBuyer handles a partial patch of an existing buyer. The visit
// counter increment is an atomic SQL expression so concurrent
// increments never lose an update.
func UpdateBuyer(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req BuyerUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid buyer update data", zap.Uint("buyer_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var buyer model.Buyer
	result := database.GetDB().Where("id = ? AND deleted = ?", id, false).First(&buyer)
	if result.Error != nil {
		log.Debug("Buyer not found for update", zap.Uint("buyer_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "buyer not found"})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	setOptional(updates, "email", req.Email)
	setOptional(updates, "address", req.Address)
	setOptional(updates, "notes", req.Notes)
	if req.Preferences != nil {
		updates["preferences"] = req.Preferences
	}
	if req.IncrementVisits {
		updates["visits_count"] = gorm.Expr("visits_count + 1")
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update")(time.Now())
		if err := database.GetDB().Model(&model.Buyer{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			log.Error("Failed to update buyer", zap.Uint("buyer_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update buyer"})
		}
	}

	if err := database.GetDB().First(&buyer, id).Error; err != nil {
		log.Error("Failed to reload buyer", zap.Uint("buyer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update buyer"})
	}

	prometheus.RecordEntityOperation("buyer", "update")
	return c.JSON(http.StatusOK, buyer)
}

// DeleteBuyer handles soft-deleting a buyer; deleting an already
// deleted record is not an error
func DeleteBuyer(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := database.GetDB().Model(&model.Buyer{}).Where("id = ?", id).Update("deleted", true)
	if result.Error != nil {
		log.Error("Failed to delete buyer", zap.Uint("buyer_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete buyer"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "buyer not found"})
	}

	prometheus.RecordEntityOperation("buyer", "delete")
	log.Info("Buyer deleted", zap.Uint("buyer_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
