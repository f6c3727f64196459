package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/kolahope/kolahope/internal/program/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("program.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProgramRequest) (domain.Program, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Program{}, domain.ErrInvalidTitle
	}
	if req.Goal < 0 {
		return domain.Program{}, domain.ErrInvalidGoal
	}

	now := time.Now().UTC()
	program := domain.Program{
		ID:          s.genID.Generate(),
		Title:       title,
		Slug:        slug.Make(title),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Goal:        req.Goal,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &program); err != nil {
		return domain.Program{}, err
	}

	return program, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateProgramRequest) (domain.Program, error) {
	programID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Program{}, domain.ErrInvalidID
	}

	program, err := s.repo.FindByID(ctx, s.db, programID)
	if err != nil {
		return domain.Program{}, err
	}
	if program == nil {
		return domain.Program{}, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Program{}, domain.ErrInvalidTitle
		}
		program.Title = title
		program.Slug = slug.Make(title)
	}
	if req.Description != nil {
		program.Description = strings.TrimSpace(*req.Description)
	}
	if req.ImageURL != nil {
		program.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.Goal != nil {
		if *req.Goal < 0 {
			return domain.Program{}, domain.ErrInvalidGoal
		}
		program.Goal = *req.Goal
	}
	if req.IsActive != nil {
		program.IsActive = *req.IsActive
	}
	program.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, program); err != nil {
		return domain.Program{}, err
	}

	return *program, nil
}

func (s *Service) GetBySlug(ctx context.Context, rawSlug string) (domain.Program, error) {
	rawSlug = strings.TrimSpace(rawSlug)
	if rawSlug == "" {
		return domain.Program{}, domain.ErrInvalidID
	}

	program, err := s.repo.FindBySlug(ctx, s.db, rawSlug)
	if err != nil {
		return domain.Program{}, err
	}
	if program == nil {
		return domain.Program{}, domain.ErrNotFound
	}
	return *program, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.Program, error) {
	items, err := s.repo.List(ctx, s.db, activeOnly)
	if err != nil {
		return nil, err
	}

	programs := make([]domain.Program, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		programs = append(programs, *item)
	}
	return programs, nil
}

func (s *Service) ResyncRaised(ctx context.Context) (int, error) {
	items, err := s.repo.List(ctx, s.db, false)
	if err != nil {
		return 0, err
	}

	corrected := 0
	for _, program := range items {
		if program == nil {
			continue
		}
		actual, err := s.repo.RecomputeRaised(ctx, s.db, program.ID)
		if err != nil {
			return corrected, err
		}
		if actual == program.Raised {
			continue
		}

		s.log.Warn("program raised total drifted from ledger",
			zap.String("program_id", program.ID.String()),
			zap.Int64("cached", program.Raised),
			zap.Int64("ledger", actual),
		)
		program.Raised = actual
		program.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, s.db, program); err != nil {
			return corrected, err
		}
		corrected++
	}

	return corrected, nil
}
