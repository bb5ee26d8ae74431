package model

import (
	"database/sql/driver"
	"time"
)

// Preferences captures what a buyer is looking for. Stored as a JSONB
// document; every field is optional.
type Preferences struct {
	Brand        *string  `json:"brand,omitempty"`
	Model        *string  `json:"model,omitempty"`
	YearMin      *int     `json:"yearMin,omitempty"`
	YearMax      *int     `json:"yearMax,omitempty"`
	PriceMin     *float64 `json:"priceMin,omitempty"`
	PriceMax     *float64 `json:"priceMax,omitempty"`
	Color        *string  `json:"color,omitempty"`
	FuelType     *string  `json:"fuelType,omitempty"`
	Transmission *string  `json:"transmission,omitempty"`
	MaxMileage   *int     `json:"maxMileage,omitempty"`
}

func (p Preferences) Value() (driver.Value, error) {
	return jsonbValue(p)
}

func (p *Preferences) Scan(value interface{}) error {
	return jsonbScan(value, p)
}

// Buyer represents a prospective car buyer.
type Buyer struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"type:varchar(255);not null"`
	Phone       string       `json:"phone" gorm:"type:varchar(50);not null"`
	Email       *string      `json:"email,omitempty" gorm:"type:varchar(255)"`
	Address     *string      `json:"address,omitempty" gorm:"type:text"`
	Preferences *Preferences `json:"preferences,omitempty" gorm:"type:jsonb"`
	VisitsCount int          `json:"visitsCount" gorm:"default:0"`
	Notes       *string      `json:"notes,omitempty" gorm:"type:text"`
	Deleted     bool         `json:"deleted" gorm:"index;default:false"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
