package model

import (
	"database/sql/driver"
	"time"
)

// CarDetails is the free-form vehicle description captured when a
// seller is registered. It is persisted exactly as received and, when
// it carries at least a brand and a positive price, also seeds a Car
// record. It is never kept in sync with that Car afterwards.
type CarDetails struct {
	Brand        string   `json:"brand,omitempty"`
	Model        string   `json:"model,omitempty"`
	Year         *int     `json:"year,omitempty"`
	Price        float64  `json:"price,omitempty"`
	Mileage      *int     `json:"mileage,omitempty"`
	Registration *string  `json:"registration,omitempty"`
	VIN          *string  `json:"vin,omitempty"`
	Color        *string  `json:"color,omitempty"`
	FuelType     *string  `json:"fuelType,omitempty"`
	Transmission *string  `json:"transmission,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

func (d CarDetails) Value() (driver.Value, error) {
	return jsonbValue(d)
}

func (d *CarDetails) Scan(value interface{}) error {
	return jsonbScan(value, d)
}

// HasCar reports whether the details are complete enough to create a
// linked Car record.
func (d *CarDetails) HasCar() bool {
	return d != nil && d.Brand != "" && d.Price > 0
}

// Seller represents a person offering a car for sale.
type Seller struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	Name       string      `json:"name" gorm:"type:varchar(255);not null"`
	Phone      string      `json:"phone" gorm:"type:varchar(50);not null"`
	Email      *string     `json:"email,omitempty" gorm:"type:varchar(255)"`
	Address    *string     `json:"address,omitempty" gorm:"type:text"`
	CarDetails *CarDetails `json:"carDetails,omitempty" gorm:"type:jsonb"`
	Notes      *string     `json:"notes,omitempty" gorm:"type:text"`
	Deleted    bool        `json:"deleted" gorm:"index;default:false"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
