package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kolahope/kolahope/internal/userrole/domain"
	"github.com/kolahope/kolahope/pkg/db"
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
		log:   p.Log.Named("userrole.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) HasRole(ctx context.Context, userID, role string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, nil
	}
	return s.repo.Exists(ctx, s.db, userID, role)
}

func (s *Service) Grant(ctx context.Context, userID, role string) (domain.UserRole, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.UserRole{}, domain.ErrInvalidUser
	}
	if !domain.ValidRole(role) {
		return domain.UserRole{}, domain.ErrInvalidRole
	}

	grant := domain.UserRole{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &grant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Granting an already-held role is a no-op.
			s.log.Debug("role already granted",
				zap.String("user_id", userID),
				zap.String("role", role),
			)
			return grant, nil
		}
		return domain.UserRole{}, err
	}

	s.log.Info("role granted",
		zap.String("user_id", userID),
		zap.String("role", role),
	)
	return grant, nil
}

func (s *Service) Revoke(ctx context.Context, userID, role string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrInvalidUser
	}
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}

	deleted, err := s.repo.Delete(ctx, s.db, userID, role)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}

	s.log.Info("role revoked",
		zap.String("user_id", userID),
		zap.String("role", role),
	)
	return nil
}

func (s *Service) ListRoles(ctx context.Context, userID string) ([]domain.UserRole, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrInvalidUser
	}

	items, err := s.repo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	roles := make([]domain.UserRole, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		roles = append(roles, *item)
	}
	return roles, nil
}
