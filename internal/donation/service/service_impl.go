package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kolahope/kolahope/internal/config"
	"github.com/kolahope/kolahope/internal/donation/domain"
	programdomain "github.com/kolahope/kolahope/internal/program/domain"
	"github.com/kolahope/kolahope/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Site        *config.SiteConfigHolder
	Repo        domain.Repository
	ProgramRepo programdomain.Repository
	Gateway     domain.Gateway
	Notifier    domain.Notifier `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	site        *config.SiteConfigHolder
	repo        domain.Repository
	programRepo programdomain.Repository
	gateway     domain.Gateway
	notifier    domain.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("donation.service"),
		genID:       p.GenID,
		site:        p.Site,
		repo:        p.Repo,
		programRepo: p.ProgramRepo,
		gateway:     p.Gateway,
		notifier:    p.Notifier,
	}
}

func (s *Service) Initialize(ctx context.Context, req domain.InitializeRequest) (domain.InitializeResponse, error) {
	site := s.site.Get()

	if req.Amount <= 0 {
		return domain.InitializeResponse{}, domain.ErrAmountRequired
	}
	if req.Amount < site.MinDonation {
		return domain.InitializeResponse{}, domain.ErrAmountBelowFloor
	}

	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		return domain.InitializeResponse{}, domain.ErrInvalidEmail
	}

	var programID *snowflake.ID
	if req.ProgramID != nil && strings.TrimSpace(*req.ProgramID) != "" {
		parsed, err := snowflake.ParseString(strings.TrimSpace(*req.ProgramID))
		if err != nil {
			return domain.InitializeResponse{}, domain.ErrInvalidProgram
		}
		programID = &parsed
	}

	metadata := map[string]any{
		"donor_name":   valueOr(req.Name, "Anonymous"),
		"donor_phone":  valueOr(req.Phone, ""),
		"message":      valueOr(req.Message, ""),
		"is_anonymous": req.IsAnonymous,
	}
	if programID != nil {
		metadata["program_id"] = programID.String()
	}

	session, err := s.gateway.InitializeTransaction(ctx, domain.GatewayInitRequest{
		AmountMinor: req.Amount * 100,
		Email:       email,
		Currency:    site.Currency,
		Metadata:    metadata,
	})
	if err != nil {
		return domain.InitializeResponse{}, err
	}

	now := time.Now().UTC()
	donation := domain.Donation{
		ID:               s.genID.Generate(),
		Amount:           req.Amount,
		DonorEmail:       email,
		DonorName:        trimmed(req.Name),
		DonorPhone:       trimmed(req.Phone),
		IsAnonymous:      req.IsAnonymous,
		ProgramID:        programID,
		PaymentReference: session.Reference,
		PaymentStatus:    domain.StatusPending,
		Message:          trimmed(req.Message),
		Metadata:         datatypes.JSONMap(metadata),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// Best effort: a bookkeeping failure must not block the donor from
	// paying. The orphaned gateway transaction is picked up later by the
	// reconciliation job.
	if err := s.repo.Insert(ctx, s.db, &donation); err != nil {
		s.log.Warn("pending donation insert failed, checkout continues",
			zap.String("reference", session.Reference),
			zap.Error(err),
		)
	}

	return domain.InitializeResponse{
		AuthorizationURL: session.AuthorizationURL,
		Reference:        session.Reference,
	}, nil
}

func (s *Service) Verify(ctx context.Context, req domain.VerifyRequest) (domain.VerifyResponse, error) {
	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		return domain.VerifyResponse{}, domain.ErrMissingReference
	}

	tx, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return domain.VerifyResponse{}, err
	}

	if !tx.Success() {
		transitioned, err := s.repo.TransitionStatus(ctx, s.db, reference, domain.StatusFailed)
		if err != nil {
			return domain.VerifyResponse{}, errors.Join(domain.ErrPersistence, err)
		}
		if !transitioned {
			s.logMissedTransition(ctx, reference, domain.StatusFailed)
		}
		return domain.VerifyResponse{Status: "failed", Message: "Payment verification failed"}, nil
	}

	var completed *domain.Donation
	err = s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		transitioned, err := s.repo.TransitionStatus(ctx, dbtx, reference, domain.StatusCompleted)
		if err != nil {
			return err
		}
		if !transitioned {
			// Either unknown reference or an already-terminal row; the
			// aggregate must not be credited again.
			return nil
		}

		donation, err := s.repo.FindByReference(ctx, dbtx, reference)
		if err != nil {
			return err
		}
		if donation == nil {
			return nil
		}
		if donation.ProgramID != nil {
			if err := s.programRepo.IncrementRaised(ctx, dbtx, *donation.ProgramID, donation.Amount); err != nil {
				return err
			}
		}
		completed = donation
		return nil
	})
	if err != nil {
		// Money was collected; surfacing a retryable error beats
		// silently dropping the completed-payment write.
		return domain.VerifyResponse{}, errors.Join(domain.ErrPersistence, err)
	}

	if completed == nil {
		s.logMissedTransition(ctx, reference, domain.StatusCompleted)
	} else if s.notifier != nil {
		s.notifier.DonationReceived(ctx, *completed)
	}

	return domain.VerifyResponse{Status: "success", Message: "Payment verified"}, nil
}

func (s *Service) List(ctx context.Context, req domain.ListDonationRequest) (domain.ListDonationResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	filter := domain.ListDonationFilter{
		Status:    strings.TrimSpace(req.Status),
		ProgramID: strings.TrimSpace(req.ProgramID),
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListDonationResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(donation *domain.Donation) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        donation.ID.String(),
			CreatedAt: donation.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	donations := make([]domain.Donation, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		donations = append(donations, *item)
	}

	resp := domain.ListDonationResponse{Donations: donations}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) RecentPublic(ctx context.Context, limit int) ([]domain.PublicView, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	items, err := s.repo.ListCompletedRecent(ctx, s.db, limit)
	if err != nil {
		return nil, err
	}

	views := make([]domain.PublicView, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		views = append(views, item.Public())
	}
	return views, nil
}

func (s *Service) logMissedTransition(ctx context.Context, reference, status string) {
	exists, err := s.repo.ReferenceExists(ctx, s.db, reference)
	if err != nil {
		s.log.Warn("ledger lookup failed after missed transition",
			zap.String("reference", reference),
			zap.Error(err),
		)
		return
	}
	if !exists {
		// The best-effort insert during initialization was lost; the
		// reconciliation job will materialize this reference.
		s.log.Warn("verified reference has no ledger row",
			zap.String("reference", reference),
			zap.String("gateway_verdict", status),
		)
		return
	}
	s.log.Debug("repeated verification observed terminal donation",
		zap.String("reference", reference),
		zap.String("gateway_verdict", status),
	)
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}

func valueOr(value *string, def string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return def
	}
	return strings.TrimSpace(*value)
}
