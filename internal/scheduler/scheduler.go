// Package scheduler runs the background maintenance jobs: recovering
// settled gateway transactions that never made it into the donation
// ledger, and resyncing cached program totals against that ledger.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kolahope/kolahope/internal/clock"
	"github.com/kolahope/kolahope/internal/config"
	donationdomain "github.com/kolahope/kolahope/internal/donation/domain"
	obscontext "github.com/kolahope/kolahope/internal/observability/context"
	programdomain "github.com/kolahope/kolahope/internal/program/domain"
	"github.com/kolahope/kolahope/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("scheduler: missing dependency")

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Site         *config.SiteConfigHolder
	DonationSvc  donationdomain.Service
	DonationRepo donationdomain.Repository
	ProgramSvc   programdomain.Service
	Gateway      donationdomain.Gateway `optional:"true"`
	Limiter      *ratelimit.PublicLimiter
	GenID        *snowflake.Node
	Clock        clock.Clock
	Config       Config `optional:"true"`
}

type Scheduler struct {
	db           *gorm.DB
	log          *zap.Logger
	cfg          Config
	site         *config.SiteConfigHolder
	donationSvc  donationdomain.Service
	donationRepo donationdomain.Repository
	programSvc   programdomain.Service
	gateway      donationdomain.Gateway
	limiter      *ratelimit.PublicLimiter
	genID        *snowflake.Node
	clock        clock.Clock

	runsSinceResync int
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.Site == nil || p.DonationSvc == nil || p.DonationRepo == nil || p.ProgramSvc == nil || p.Limiter == nil || p.GenID == nil || p.Clock == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:           p.DB,
		log:          p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:          p.Config.withDefaults(),
		site:         p.Site,
		donationSvc:  p.DonationSvc,
		donationRepo: p.DonationRepo,
		programSvc:   p.ProgramSvc,
		gateway:      p.Gateway,
		limiter:      p.Limiter,
		genID:        p.GenID,
		clock:        p.Clock,
	}, nil
}

func (s *Scheduler) runJob(
	parent context.Context,
	name string,
	timeout time.Duration,
	fn func(ctx context.Context) error,
) error {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	ctx = obscontext.WithActor(ctx, "system", "scheduler")
	log := s.log.With(zap.String("job", name))

	token, acquired, err := s.limiter.TryLockJob(ctx, name, s.cfg.LockTTL)
	if err != nil {
		log.Warn("job lock acquisition failed", zap.Error(err))
		return nil
	}
	if !acquired {
		log.Debug("job already running elsewhere, skipping")
		return nil
	}
	defer func() {
		if err := s.limiter.ReleaseJob(context.WithoutCancel(ctx), name, token); err != nil {
			log.Warn("job lock release failed", zap.Error(err))
		}
	}()

	start := s.clock.Now()
	err = fn(ctx)
	log.Debug("job finished", zap.Duration("elapsed", time.Since(start)))

	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn("job timed out",
			zap.Duration("timeout", timeout),
			zap.Error(err),
		)
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

// RunOnce executes one scheduler pass. Reconciliation runs every pass;
// the aggregate resync runs every ResyncEvery-th pass since it is a
// full-table sweep.
func (s *Scheduler) RunOnce(parent context.Context) error {
	var err error

	err = errors.Join(err, s.runJob(parent, "reconcile_gateway", s.cfg.ReconcileTimeout, s.ReconcileGatewayJob))

	s.runsSinceResync++
	if s.runsSinceResync >= s.cfg.ResyncEvery {
		s.runsSinceResync = 0
		err = errors.Join(err, s.runJob(parent, "resync_raised", s.cfg.ResyncTimeout, s.ResyncRaisedJob))
	}

	return err
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
