package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAnalyst = "analyst"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Role         string `gorm:"default:'analyst'"`
	TokenVersion int    `gorm:"default:1"`
	LastLoginAt  time.Time
}
