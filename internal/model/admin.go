package model

import (
	"time"
)

// Admin represents an authenticated CRM administrator. There are no
// roles; every admin has full read/write access.
type Admin struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"`
	Name         string    `json:"name" gorm:"type:varchar(255)"`
	Deleted      bool      `json:"deleted" gorm:"index;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
