package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kolahope/kolahope/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const (
	keyCheckoutIP = "checkout:ip:%s"
	keyLeadIP     = "lead:ip:%s"
	keyJobLock    = "jobs:lock:%s"

	// Per-IP budget for checkout initialize/verify. Verification
	// retries are expected, so the checkout bucket is roomier.
	checkoutRate  = 0.5
	checkoutBurst = 10

	// Per-IP budget for public form submissions.
	leadRate  = 0.1
	leadBurst = 5
)

// PublicLimiter throttles the unauthenticated endpoints per client IP.
// It is disabled (all requests allowed) when no redis address is
// configured.
type PublicLimiter struct {
	enabled bool
	bucket  *TokenBucket
	locker  *Locker
}

func NewPublicLimiter(cfg config.Config) *PublicLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return &PublicLimiter{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})

	return &PublicLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		locker:  NewLocker(client),
	}
}

func (l *PublicLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *PublicLimiter) AllowCheckout(ctx context.Context, clientIP string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyCheckoutIP, strings.TrimSpace(clientIP)), checkoutRate, checkoutBurst)
}

func (l *PublicLimiter) AllowLead(ctx context.Context, clientIP string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyLeadIP, strings.TrimSpace(clientIP)), leadRate, leadBurst)
}

// TryLockJob acquires the single-flight lock for a named scheduled job.
// When the limiter is disabled the lock always succeeds, which is the
// right behavior for single-replica deployments.
func (l *PublicLimiter) TryLockJob(ctx context.Context, job string, ttl time.Duration) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}
	return l.locker.TryLock(ctx, fmt.Sprintf(keyJobLock, job), ttl)
}

func (l *PublicLimiter) ReleaseJob(ctx context.Context, job, token string) error {
	if !l.Enabled() {
		return nil
	}
	return l.locker.Release(ctx, fmt.Sprintf(keyJobLock, job), token)
}
