package handler

import (
	"fmt"
	"net/http"
	"time"

	"carcrm/internal/export"
	"carcrm/internal/model"
	"carcrm/pkg/database"
	"carcrm/pkg/logger"
	"carcrm/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Fixed column lists per exportable entity type.
var (
	buyerExportHeaders  = []string{"id", "name", "phone", "email", "address", "visitsCount", "notes", "createdAt"}
	sellerExportHeaders = []string{"id", "name", "phone", "email", "address", "notes", "createdAt"}
	carExportHeaders    = []string{"id", "brand", "model", "year", "registration", "price", "status", "color", "fuelType", "transmission", "mileage", "createdAt"}
	leadExportHeaders   = []string{"id", "buyerId", "carId", "source", "status", "visitsCount", "notes", "createdAt"}
)

// ExportCSV renders a full non-deleted collection as a CSV attachment.
// The type parameter is restricted to a fixed allow-list.
func ExportCSV(c echo.Context) error {
	log := logger.FromContext(c)

	exportType := c.QueryParam("type")
	switch exportType {
	case "buyers", "sellers", "cars", "leads":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid type, must be one of: buyers, sellers, cars, leads"})
	}

	var headers []string
	var rows [][]interface{}

	query := database.GetDB().Where("deleted = ?", false).Order("created_at DESC")

	switch exportType {
	case "buyers":
		var buyers []model.Buyer
		if result := query.Find(&buyers); result.Error != nil {
			log.Error("Failed to fetch buyers for export", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to export data"})
		}
		headers = buyerExportHeaders
		for _, b := range buyers {
			rows = append(rows, []interface{}{b.ID, b.Name, b.Phone, b.Email, b.Address, b.VisitsCount, b.Notes, b.CreatedAt})
		}

	case "sellers":
		var sellers []model.Seller
		if result := query.Find(&sellers); result.Error != nil {
			log.Error("Failed to fetch sellers for export", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to export data"})
		}
		headers = sellerExportHeaders
		for _, s := range sellers {
			rows = append(rows, []interface{}{s.ID, s.Name, s.Phone, s.Email, s.Address, s.Notes, s.CreatedAt})
		}

	case "cars":
		var cars []model.Car
		if result := query.Find(&cars); result.Error != nil {
			log.Error("Failed to fetch cars for export", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to export data"})
		}
		headers = carExportHeaders
		for _, car := range cars {
			rows = append(rows, []interface{}{car.ID, car.Brand, car.Model, car.Year, car.Registration, car.Price, car.Status, car.Color, car.FuelType, car.Transmission, car.Mileage, car.CreatedAt})
		}

	case "leads":
		var leads []model.Lead
		if result := query.Find(&leads); result.Error != nil {
			log.Error("Failed to fetch leads for export", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to export data"})
		}
		headers = leadExportHeaders
		for _, l := range leads {
			rows = append(rows, []interface{}{l.ID, l.BuyerID, l.CarID, l.Source, l.Status, l.VisitsCount, l.Notes, l.CreatedAt})
		}
	}

	csv := export.Render(headers, rows)
	filename := export.Filename(exportType, time.Now())

	prometheus.RecordExport(exportType)
	log.Info("CSV export generated",
		zap.String("type", exportType),
		zap.Int("rows", len(rows)))

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}
