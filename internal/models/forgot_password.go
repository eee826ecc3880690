package models

import (
	"time"

	"gorm.io/gorm"
)

// ForgotPassword is a single-use one-time code for password recovery.
type ForgotPassword struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Token     string         `json:"-" gorm:"size:6;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
