package scheduler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	donationdomain "github.com/kolahope/kolahope/internal/donation/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ReconcileGatewayJob sweeps recent gateway transactions and repairs
// the ledger. A settled transaction with no donation row is rebuilt
// from the gateway's checkout metadata; a row stuck in pending is
// pushed through the normal verification path, which credits the
// program aggregate exactly once.
func (s *Scheduler) ReconcileGatewayJob(ctx context.Context) error {
	if s.gateway == nil {
		s.log.Debug("payment gateway not configured, skipping reconciliation")
		return nil
	}

	site := s.site.Get()
	lookback := time.Duration(site.Reconciliation.LookbackHours) * time.Hour
	since := s.clock.Now().Add(-lookback)

	txns, err := s.gateway.ListTransactions(ctx, since, site.Reconciliation.BatchSize)
	if err != nil {
		return err
	}

	var (
		errs      error
		recovered int
		completed int
	)
	for _, txn := range txns {
		if !txn.Success() || strings.TrimSpace(txn.Reference) == "" {
			continue
		}

		exists, err := s.donationRepo.ReferenceExists(ctx, s.db, txn.Reference)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		if !exists {
			donation := s.rebuildFromGateway(txn)
			if err := s.donationRepo.Insert(ctx, s.db, &donation); err != nil {
				s.log.Warn("orphaned transaction insert failed",
					zap.String("reference", txn.Reference),
					zap.Error(err),
				)
				errs = errors.Join(errs, err)
				continue
			}
			recovered++
		}

		if _, err := s.donationSvc.Verify(ctx, donationdomain.VerifyRequest{Reference: txn.Reference}); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		completed++

		if !exists {
			if err := s.donationRepo.MarkReconciled(ctx, s.db, txn.Reference); err != nil {
				errs = errors.Join(errs, err)
			}
		}
	}

	if recovered > 0 {
		s.log.Info("reconciliation recovered orphaned transactions",
			zap.Int("recovered", recovered),
			zap.Int("verified", completed),
			zap.Time("since", since),
		)
	}
	return errs
}

// rebuildFromGateway reconstructs a pending donation row from the
// checkout metadata attached at initialization. Fields the metadata
// does not carry fall back to what the gateway reports.
func (s *Scheduler) rebuildFromGateway(txn donationdomain.GatewayTransaction) donationdomain.Donation {
	now := s.clock.Now()
	donation := donationdomain.Donation{
		ID:               s.genID.Generate(),
		Amount:           txn.AmountMinor / 100,
		DonorEmail:       txn.CustomerEmail,
		PaymentReference: txn.Reference,
		PaymentStatus:    donationdomain.StatusPending,
		Metadata:         datatypes.JSONMap(txn.Metadata),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if name := metaString(txn.Metadata, "donor_name"); name != "" && name != "Anonymous" {
		donation.DonorName = &name
	}
	if phone := metaString(txn.Metadata, "donor_phone"); phone != "" {
		donation.DonorPhone = &phone
	}
	if message := metaString(txn.Metadata, "message"); message != "" {
		donation.Message = &message
	}
	if anon, ok := txn.Metadata["is_anonymous"].(bool); ok {
		donation.IsAnonymous = anon
	}
	if raw := metaString(txn.Metadata, "program_id"); raw != "" {
		if programID, err := snowflake.ParseString(raw); err == nil {
			donation.ProgramID = &programID
		}
	}
	return donation
}

func metaString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	value, _ := metadata[key].(string)
	return strings.TrimSpace(value)
}

// ResyncRaisedJob rebuilds every program's cached raised total from the
// completed-donation ledger, correcting any drift.
func (s *Scheduler) ResyncRaisedJob(ctx context.Context) error {
	corrected, err := s.programSvc.ResyncRaised(ctx)
	if err != nil {
		return err
	}
	if corrected > 0 {
		s.log.Info("program totals resynced", zap.Int("corrected", corrected))
	}
	return nil
}
