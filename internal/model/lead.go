package model

import (
	"database/sql/driver"
	"time"
)

// Lead status values.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// ValidLeadStatus reports whether s is a known lead status.
func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// Tags is a set of free-text labels stored as a JSONB array.
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	return jsonbValue(t)
}

func (t *Tags) Scan(value interface{}) error {
	return jsonbScan(value, t)
}

// Lead represents a tracked sales opportunity. BuyerID and CarID are
// soft references; a dangling id is tolerated.
type Lead struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	BuyerID     *uint     `json:"buyerId,omitempty" gorm:"index"`
	CarID       *uint     `json:"carId,omitempty" gorm:"index"`
	Source      *string   `json:"source,omitempty" gorm:"type:varchar(100)"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:new;index"`
	Tags        Tags      `json:"tags" gorm:"type:jsonb"`
	VisitsCount int       `json:"visitsCount" gorm:"default:0"`
	Notes       *string   `json:"notes,omitempty" gorm:"type:text"`
	Deleted     bool      `json:"deleted" gorm:"index;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
