package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account owner (a fitness business operator).
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password     string         `gorm:"size:255" json:"-"` // bcrypt hash; empty for hosted-auth users
	Email        string         `gorm:"size:255" json:"email"`
	BusinessName string         `gorm:"size:200" json:"business_name"`
	Role         string         `gorm:"size:50;default:user" json:"role"`        // admin, user
	AuthType     string         `gorm:"size:20;default:local" json:"auth_type"`  // local, hosted
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	LastLogin    *time.Time     `json:"last_login"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
