package handler

import (
	"encoding/json"
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

// CarRequest defines the structure for car creation requests
type CarRequest struct {
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Year         *int     `json:"year"`
	Registration *string  `json:"registration"`
	VIN          *string  `json:"vin"`
	Mileage      *int     `json:"mileage"`
	Price        *float64 `json:"price"`
	Status       string   `json:"status"`
	Color        *string  `json:"color"`
	FuelType     *string  `json:"fuelType"`
	Transmission *string  `json:"transmission"`
	Notes        *string  `json:"notes"`
	SellerID     *uint    `json:"sellerId"`
}

// CarUpdateRequest carries a partial patch; nil fields are left
// untouched. PriceNotes annotates the price-history entry written when
// Price is present.
type CarUpdateRequest struct {
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year"`
	Registration *string  `json:"registration"`
	VIN          *string  `json:"vin"`
	Mileage      *int     `json:"mileage"`
	Price        *float64 `json:"price"`
	PriceNotes   *string  `json:"priceNotes"`
	Status       *string  `json:"status"`
	Color        *string  `json:"color"`
	FuelType     *string  `json:"fuelType"`
	Transmission *string  `json:"transmission"`
	Notes        *string  `json:"notes"`
	SellerID     *uint    `json:"sellerId"`
}

// ListCars handles retrieving all non-deleted cars with optional
// brand/model substring and status filters
func ListCars(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Where("deleted = ?", false)

	if brand := c.QueryParam("brand"); brand != "" {
		query = query.Where("brand ILIKE ?", "%"+brand+"%")
	}
	if carModel := c.QueryParam("model"); carModel != "" {
		query = query.Where("model ILIKE ?", "%"+carModel+"%")
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var cars []model.Car
	result := query.Order("created_at DESC").Find(&cars)
	if result.Error != nil {
		log.Error("Failed to list cars", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve cars"})
	}

	return c.JSON(http.StatusOK, cars)
}

// GetCar handles retrieving a single car by ID
func GetCar(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var car model.Car
	result := database.GetDB().Where("id = ? AND deleted = ?", id, false).First(&car)
	if result.Error != nil {
		log.Debug("Car not found", zap.Uint("car_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
	}

	return c.JSON(http.StatusOK, car)
}

// CreateCar handles creating a new car and seeds its price history
// with the initial price
func CreateCar(c echo.Context) error {
	log := logger.FromContext(c)

	var req CarRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid car request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Brand == "" || req.Model == "" || req.Price == nil || *req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "brand, model and price are required"})
	}

	status := req.Status
	if status == "" {
		status = model.CarStatusAvailable
	}
	if !model.ValidCarStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	car := model.Car{
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Registration: req.Registration,
		VIN:          req.VIN,
		Mileage:      req.Mileage,
		Price:        *req.Price,
		Status:       status,
		Color:        req.Color,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Notes:        req.Notes,
		SellerID:     req.SellerID,
		PriceHistory: model.PriceHistory{{Price: *req.Price, Date: time.Now().UTC()}},
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&car); result.Error != nil {
		log.Error("Failed to create car",
			zap.String("brand", req.Brand),
			zap.String("model", req.Model),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create car"})
	}

	prometheus.RecordEntityOperation("car", "create")
	log.Info("Car created",
		zap.Uint("car_id", car.ID),
		zap.String("brand", car.Brand),
		zap.Float64("price", car.Price))
	return c.JSON(http.StatusCreated, car)
}

// UpdateCar handles a partial patch of an existing car. A price change
// appends a server-timestamped entry to the price history with an
// atomic JSONB concatenation; prior entries are never mutated.
func UpdateCar(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req CarUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid car update data", zap.Uint("car_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var car model.Car
	result := database.GetDB().Where("id = ? AND deleted = ?", id, false).First(&car)
	if result.Error != nil {
		log.Debug("Car not found for update", zap.Uint("car_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
	}

	if req.Status != nil && !model.ValidCarStatus(*req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	updates := map[string]interface{}{}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.Year != nil {
		if *req.Year == 0 {
			updates["year"] = nil
		} else {
			updates["year"] = *req.Year
		}
	}
	if req.Mileage != nil {
		if *req.Mileage == 0 {
			updates["mileage"] = nil
		} else {
			updates["mileage"] = *req.Mileage
		}
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	setOptional(updates, "registration", req.Registration)
	setOptional(updates, "vin", req.VIN)
	setOptional(updates, "color", req.Color)
	setOptional(updates, "fuel_type", req.FuelType)
	setOptional(updates, "transmission", req.Transmission)
	setOptional(updates, "notes", req.Notes)
	setOptionalRef(updates, "seller_id", req.SellerID)

	if req.Price != nil {
		entry := model.PriceEntry{Price: *req.Price, Date: time.Now().UTC(), Notes: req.PriceNotes}
		appended, err := json.Marshal(model.PriceHistory{entry})
		if err != nil {
			log.Error("Failed to encode price history entry", zap.Uint("car_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update car"})
		}
		updates["price"] = *req.Price
		updates["price_history"] = gorm.Expr("price_history || ?::jsonb", string(appended))

		log.Info("Car price change",
			zap.Uint("car_id", id),
			zap.Float64("old_price", car.Price),
			zap.Float64("new_price", *req.Price))
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update")(time.Now())
		if err := database.GetDB().Model(&model.Car{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			log.Error("Failed to update car", zap.Uint("car_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update car"})
		}
	}

	if err := database.GetDB().First(&car, id).Error; err != nil {
		log.Error("Failed to reload car", zap.Uint("car_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update car"})
	}

	prometheus.RecordEntityOperation("car", "update")
	return c.JSON(http.StatusOK, car)
}

// DeleteCar handles soft-deleting a car
func DeleteCar(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := database.GetDB().Model(&model.Car{}).Where("id = ?", id).Update("deleted", true)
	if result.Error != nil {
		log.Error("Failed to delete car", zap.Uint("car_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete car"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
	}

	prometheus.RecordEntityOperation("car", "delete")
	log.Info("Car deleted", zap.Uint("car_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
