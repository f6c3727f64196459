package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, role *UserRole) error
	Delete(ctx context.Context, db *gorm.DB, userID, role string) (bool, error)
	Exists(ctx context.Context, db *gorm.DB, userID, role string) (bool, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID string) ([]*UserRole, error)
}
