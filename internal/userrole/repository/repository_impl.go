package repository

import (
	"context"

	"github.com/kolahope/kolahope/internal/userrole/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, role *domain.UserRole) error {
	return db.WithContext(ctx).Create(role).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, userID, role string) (bool, error) {
	tx := db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&domain.UserRole{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *repo) Exists(ctx context.Context, db *gorm.DB, userID, role string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID string) ([]*domain.UserRole, error) {
	var roles []*domain.UserRole
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}
