package scheduler

import "time"

// Config controls scheduler intervals and per-job timeouts. Lookback
// window and batch size for reconciliation come from the hot-reloadable
// site config so they can be tuned without a restart.
type Config struct {
	RunInterval      time.Duration
	ReconcileTimeout time.Duration
	ResyncTimeout    time.Duration
	ResyncEvery      int
	LockTTL          time.Duration
}

func DefaultConfig() Config {
	return Config{
		RunInterval:      15 * time.Minute,
		ReconcileTimeout: 2 * time.Minute,
		ResyncTimeout:    time.Minute,
		ResyncEvery:      4,
		LockTTL:          5 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.ReconcileTimeout <= 0 {
		c.ReconcileTimeout = defaults.ReconcileTimeout
	}
	if c.ResyncTimeout <= 0 {
		c.ResyncTimeout = defaults.ResyncTimeout
	}
	if c.ResyncEvery <= 0 {
		c.ResyncEvery = defaults.ResyncEvery
	}
	if c.LockTTL <= 0 {
		c.LockTTL = defaults.LockTTL
	}
	return c
}
