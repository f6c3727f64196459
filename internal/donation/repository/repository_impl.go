package repository

import (
	"context"

	"github.com/kolahope/kolahope/internal/donation/domain"
	"github.com/kolahope/kolahope/pkg/db/option"
	"github.com/kolahope/kolahope/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, donation *domain.Donation) error {
	return db.WithContext(ctx).Create(donation).Error
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*domain.Donation, error) {
	var donation domain.Donation
	err := db.WithContext(ctx).
		Where("payment_reference = ?", reference).
		Limit(1).
		Find(&donation).Error
	if err != nil {
		return nil, err
	}
	if donation.ID == 0 {
		return nil, nil
	}
	return &donation, nil
}

// TransitionStatus only matches rows still in pending. RowsAffected == 0
// means the reference is unknown or the row already reached a terminal
// status; re-running a verification is then a no-op.
func (r *repo) TransitionStatus(ctx context.Context, db *gorm.DB, reference, status string) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE donations SET payment_status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE payment_reference = ? AND payment_status = ?`,
		status,
		reference,
		domain.StatusPending,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) MarkReconciled(ctx context.Context, db *gorm.DB, reference string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE donations SET reconciled = TRUE, updated_at = CURRENT_TIMESTAMP WHERE payment_reference = ?`,
		reference,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListDonationFilter, page pagination.Pagination) ([]*domain.Donation, error) {
	var donations []*domain.Donation
	stmt := db.WithContext(ctx).Model(&domain.Donation{})
	if filter.Status != "" {
		stmt = stmt.Where("payment_status = ?", filter.Status)
	}
	if filter.ProgramID != "" {
		stmt = stmt.Where("program_id = ?", filter.ProgramID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *repo) ListCompletedRecent(ctx context.Context, db *gorm.DB, limit int) ([]*domain.Donation, error) {
	var donations []*domain.Donation
	err := db.WithContext(ctx).
		Where("payment_status = ?", domain.StatusCompleted).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *repo) ReferenceExists(ctx context.Context, db *gorm.DB, reference string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Donation{}).
		Where("payment_reference = ?", reference).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
