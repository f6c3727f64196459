package domain

import (
	"context"
	"errors"
)

type CreateProgramRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Goal        int64  `json:"goal"`
}

type UpdateProgramRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Goal        *int64  `json:"goal,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateProgramRequest) (Program, error)
	Update(ctx context.Context, id string, req UpdateProgramRequest) (Program, error)
	GetBySlug(ctx context.Context, slug string) (Program, error)
	List(ctx context.Context, activeOnly bool) ([]Program, error)

	// ResyncRaised recomputes every program's cached total from the
	// ledger and returns how many rows were corrected.
	ResyncRaised(ctx context.Context) (int, error)
}

var (
	ErrInvalidTitle = errors.New("invalid_title")
	ErrInvalidGoal  = errors.New("invalid_goal")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
