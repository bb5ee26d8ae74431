package model

import (
	"time"
)

// FollowUp is a scheduled contact or action linked to any combination
// of Lead, Buyer, Seller and Car. Completed transitions false to true
// through the dedicated complete action only.
type FollowUp struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	LeadID      *uint      `json:"leadId,omitempty" gorm:"index"`
	BuyerID     *uint      `json:"buyerId,omitempty" gorm:"index"`
	SellerID    *uint      `json:"sellerId,omitempty" gorm:"index"`
	CarID       *uint      `json:"carId,omitempty" gorm:"index"`
	Type        string     `json:"type" gorm:"type:varchar(100);not null"`
	ScheduledAt time.Time  `json:"scheduledAt" gorm:"index;not null"`
	Notes       *string    `json:"notes,omitempty" gorm:"type:text"`
	Completed   bool       `json:"completed" gorm:"default:false;index"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Deleted     bool       `json:"deleted" gorm:"index;default:false"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
