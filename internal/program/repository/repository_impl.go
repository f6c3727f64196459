package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/kolahope/kolahope/internal/program/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, program *domain.Program) error {
	return db.WithContext(ctx).Create(program).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, program *domain.Program) error {
	return db.WithContext(ctx).Save(program).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Program, error) {
	var program domain.Program
	err := db.WithContext(ctx).Raw(
		`SELECT id, title, slug, description, image_url, goal, raised, is_active, created_at, updated_at
		 FROM programs WHERE id = ?`,
		id,
	).Scan(&program).Error
	if err != nil {
		return nil, err
	}
	if program.ID == 0 {
		return nil, nil
	}
	return &program, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Program, error) {
	var program domain.Program
	err := db.WithContext(ctx).Raw(
		`SELECT id, title, slug, description, image_url, goal, raised, is_active, created_at, updated_at
		 FROM programs WHERE slug = ?`,
		slug,
	).Scan(&program).Error
	if err != nil {
		return nil, err
	}
	if program.ID == 0 {
		return nil, nil
	}
	return &program, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*domain.Program, error) {
	var programs []*domain.Program
	stmt := db.WithContext(ctx).Model(&domain.Program{})
	if activeOnly {
		stmt = stmt.Where("is_active = ?", true)
	}
	err := stmt.Order("created_at asc, id asc").Find(&programs).Error
	if err != nil {
		return nil, err
	}
	return programs, nil
}

func (r *repo) IncrementRaised(ctx context.Context, db *gorm.DB, id snowflake.ID, amount int64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE programs SET raised = raised + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		amount,
		id,
	).Error
}

func (r *repo) RecomputeRaised(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0) FROM donations WHERE program_id = ? AND payment_status = ?`,
		id,
		"completed",
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
