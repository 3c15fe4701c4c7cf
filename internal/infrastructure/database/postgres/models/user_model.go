package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for principals.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"size:150;not null;uniqueIndex"`
	Email        string    `gorm:"size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	IsStaff      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
