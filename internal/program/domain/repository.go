package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, program *Program) error
	Update(ctx context.Context, db *gorm.DB, program *Program) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Program, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Program, error)
	List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*Program, error)

	// IncrementRaised advances the cached total with a single atomic
	// UPDATE so concurrent verifications cannot lose updates.
	IncrementRaised(ctx context.Context, db *gorm.DB, id snowflake.ID, amount int64) error

	// RecomputeRaised rebuilds the cached total from the donation
	// ledger, the authoritative source.
	RecomputeRaised(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
