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

// SellerRequest defines the structure for seller creation requests
type SellerRequest struct {
	Name       string            `json:"name"`
	Phone      string            `json:"phone"`
	Email      *string           `json:"email"`
	Address    *string           `json:"address"`
	CarDetails *model.CarDetails `json:"carDetails"`
	Notes      *string           `json:"notes"`
}

// SellerUpdateRequest carries a partial patch; nil fields are left
// untouched.
type SellerUpdateRequest struct {
	Name       *string           `json:"name"`
	Phone      *string           `json:"phone"`
	Email      *string           `json:"email"`
	Address    *string           `json:"address"`
	CarDetails *model.CarDetails `json:"carDetails"`
	Notes      *string           `json:"notes"`
}

// ListSellers handles retrieving all non-deleted sellers with optional
// free-text search over name, phone and email
func ListSellers(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Where("deleted = ?", false)

	if q := c.QueryParam("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var sellers []model.Seller
	result := query.Order("created_at DESC").Find(&sellers)
	if result.Error != nil {
		log.Error("Failed to list sellers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve sellers"})
	}

	return c.JSON(http.StatusOK, sellers)
}

// GetSeller handles retrieving a single seller by ID
func GetSeller(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var seller model.Seller
	result := database.GetDB().Where("id = ? AND deleted = ?", id, false).First(&seller)
	if result.Error != nil {
		log.Debug("Seller not found", zap.Uint("seller_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seller not found"})
	}

	return c.JSON(http.StatusOK, seller)
}

// CreateSeller handles creating a new seller. When the request carries
// car details with at least a brand and a positive price, a linked Car
// record is created after the seller write succeeds. The two writes
// are independent: a failed car write reports a warning on an
// otherwise-successful response and the seller is never rolled back.
func CreateSeller(c echo.Context) error {
	log := logger.FromContext(c)

	var req SellerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid seller request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and phone are required"})
	}

	seller := model.Seller{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		CarDetails: req.CarDetails,
		Notes:      req.Notes,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&seller); result.Error != nil {
		log.Error("Failed to create seller", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seller"})
	}

	prometheus.RecordEntityOperation("seller", "create")
	log.Info("Seller created", zap.Uint("seller_id", seller.ID), zap.String("name", seller.Name))

	if !req.CarDetails.HasCar() {
		return c.JSON(http.StatusCreated, seller)
	}

	car, err := createCarFromDetails(req.CarDetails, seller.ID)
	if err != nil {
		// Best effort: the seller write already succeeded and is
		// returned to the caller regardless of the car outcome.
		log.Error("Failed to create car for seller",
			zap.Uint("seller_id", seller.ID),
			zap.Error(err))
		return c.JSON(http.StatusCreated, echo.Map{
			"seller":           seller,
			"carCreationError": err.Error(),
		})
	}

	prometheus.RecordEntityOperation("car", "create")
	log.Info("Car created from seller details",
		zap.Uint("seller_id", seller.ID),
		zap.Uint("car_id", car.ID))
	return c.JSON(http.StatusCreated, echo.Map{
		"seller": seller,
		"createdCar": echo.Map{
			"id":    car.ID,
			"brand": car.Brand,
			"model": car.Model,
			"price": car.Price,
		},
	})
}

// createCarFromDetails seeds a Car from seller-supplied details. The
// model falls back to the brand when absent, matching how walk-in
// sellers describe their vehicle.
func createCarFromDetails(d *model.CarDetails, sellerID uint) (*model.Car, error) {
	carModel := d.Model
	if carModel == "" {
		carModel = d.Brand
	}

	car := model.Car{
		Brand:        d.Brand,
		Model:        carModel,
		Year:         d.Year,
		Registration: d.Registration,
		VIN:          d.VIN,
		Mileage:      d.Mileage,
		Price:        d.Price,
		Status:       model.CarStatusAvailable,
		Color:        d.Color,
		FuelType:     d.FuelType,
		Transmission: d.Transmission,
		SellerID:     &sellerID,
		PriceHistory: model.PriceHistory{{Price: d.Price, Date: time.Now().UTC()}},
	}

	if result := database.GetDB().Create(&car); result.Error != nil {
		return nil, result.Error
	}
	return &car, nil
}

// UpdateSeller handles a partial patch of an existing seller
func UpdateSeller(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req SellerUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid seller update data", zap.Uint("seller_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var seller model.Seller
	result := database.GetDB().Where("id = ? AND deleted = ?", id, false).First(&seller)
	if result.Error != nil {
		log.Debug("Seller not found for update", zap.Uint("seller_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seller not found"})
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
	if req.CarDetails != nil {
		updates["car_details"] = req.CarDetails
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update")(time.Now())
		if err := database.GetDB().Model(&model.Seller{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			log.Error("Failed to update seller", zap.Uint("seller_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update seller"})
		}
	}

	if err := database.GetDB().First(&seller, id).Error; err != nil {
		log.Error("Failed to reload seller", zap.Uint("seller_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update seller"})
	}

	prometheus.RecordEntityOperation("seller", "update")
	return c.JSON(http.StatusOK, seller)
}

// DeleteSeller handles soft-deleting a seller
func DeleteSeller(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := database.GetDB().Model(&model.Seller{}).Where("id = ?", id).Update("deleted", true)
	if result.Error != nil {
		log.Error("Failed to delete seller", zap.Uint("seller_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete seller"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seller not found"})
	}

	prometheus.RecordEntityOperation("seller", "delete")
	log.Info("Seller deleted", zap.Uint("seller_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
