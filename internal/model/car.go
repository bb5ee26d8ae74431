package model

import (
	"database/sql/driver"
	"time"
)

// Car status values.
const (
	CarStatusAvailable   = "available"
	CarStatusSold        = "sold"
	CarStatusReserved    = "reserved"
	CarStatusMaintenance = "maintenance"
)

// ValidCarStatus reports whether s is a known car status.
func ValidCarStatus(s string) bool {
	switch s {
	case CarStatusAvailable, CarStatusSold, CarStatusReserved, CarStatusMaintenance:
		return true
	}
	return false
}

// PriceEntry is one record in a car's price history. Date is always
// the server-side write time, never user supplied.
type PriceEntry struct {
	Price float64   `json:"price"`
	Date  time.Time `json:"date"`
	Notes *string   `json:"notes,omitempty"`
}

// PriceHistory is the append-only chronological log of price changes,
// stored as a JSONB array. Entries are never mutated or removed.
type PriceHistory []PriceEntry

func (h PriceHistory) Value() (driver.Value, error) {
	if h == nil {
		h = PriceHistory{}
	}
	return jsonbValue(h)
}

func (h *PriceHistory) Scan(value interface{}) error {
	return jsonbScan(value, h)
}

// Car represents a vehicle in inventory.
type Car struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Brand        string       `json:"brand" gorm:"type:varchar(100);not null"`
	Model        string       `json:"model" gorm:"type:varchar(100);not null"`
	Year         *int         `json:"year,omitempty"`
	Registration *string      `json:"registration,omitempty" gorm:"type:varchar(50)"`
	VIN          *string      `json:"vin,omitempty" gorm:"type:varchar(50);column:vin"`
	Mileage      *int         `json:"mileage,omitempty"`
	Price        float64      `json:"price" gorm:"not null"`
	Status       string       `json:"status" gorm:"type:varchar(20);default:available;index"`
	Color        *string      `json:"color,omitempty" gorm:"type:varchar(50)"`
	FuelType     *string      `json:"fuelType,omitempty" gorm:"type:varchar(50)"`
	Transmission *string      `json:"transmission,omitempty" gorm:"type:varchar(50)"`
	Notes        *string      `json:"notes,omitempty" gorm:"type:text"`
	SellerID     *uint        `json:"sellerId,omitempty" gorm:"index"`
	PriceHistory PriceHistory `json:"priceHistory" gorm:"type:jsonb"`
	Deleted      bool         `json:"deleted" gorm:"index;default:false"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
