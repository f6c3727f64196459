package domain

import (
	"context"

	"github.com/kolahope/kolahope/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, donation *Donation) error
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Donation, error)

	// TransitionStatus moves a donation out of pending into the given
	// terminal status. It returns false when no pending row matched,
	// either because the reference is unknown or because the row already
	// reached a terminal status.
	TransitionStatus(ctx context.Context, db *gorm.DB, reference, status string) (bool, error)

	MarkReconciled(ctx context.Context, db *gorm.DB, reference string) error
	List(ctx context.Context, db *gorm.DB, filter ListDonationFilter, page pagination.Pagination) ([]*Donation, error)
	ListCompletedRecent(ctx context.Context, db *gorm.DB, limit int) ([]*Donation, error)
	ReferenceExists(ctx context.Context, db *gorm.DB, reference string) (bool, error)
}
