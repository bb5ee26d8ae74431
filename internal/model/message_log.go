package model

import (
	"time"
)

// MessageLog recipient types.
const (
	RecipientTypeBuyer  = "buyer"
	RecipientTypeSeller = "seller"
	RecipientTypeLead   = "lead"
)

// ValidRecipientType reports whether s is a known recipient type.
func ValidRecipientType(s string) bool {
	switch s {
	case RecipientTypeBuyer, RecipientTypeSeller, RecipientTypeLead:
		return true
	}
	return false
}

// MessageLog is the append-only audit trail of generated WhatsApp
// links. A failed write never blocks the wa-link response.
type MessageLog struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Phone         string    `json:"phone" gorm:"type:varchar(50);not null"`
	Body          string    `json:"body" gorm:"type:text"`
	WaLink        string    `json:"waLink" gorm:"type:text"`
	RecipientID   *uint     `json:"recipientId,omitempty"`
	RecipientType *string   `json:"recipientType,omitempty" gorm:"type:varchar(20)"`
	Deleted       bool      `json:"deleted" gorm:"index;default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
