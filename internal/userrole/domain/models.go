package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

type UserRole struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    string       `gorm:"uniqueIndex:idx_user_role;not null" json:"user_id"`
	Role      string       `gorm:"uniqueIndex:idx_user_role;not null" json:"role"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (UserRole) TableName() string { return "user_roles" }

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor:
		return true
	}
	return false
}
