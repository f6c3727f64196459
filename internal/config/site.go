package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// SiteConfig holds operational knobs editable without a redeploy:
// who receives admin notifications, the donation floor enforced before
// calling the gateway, and the bank-transfer fallback shown to donors
// when checkout initialization fails.
type SiteConfig struct {
	OrganizationName string       `mapstructure:"organizationName"`
	AdminEmails      []string     `mapstructure:"adminEmails"`
	MinDonation      int64        `mapstructure:"minDonation"`
	Currency         string       `mapstructure:"currency"`
	BankTransfer     BankTransfer `mapstructure:"bankTransfer"`
	Reconciliation   Reconcile    `mapstructure:"reconciliation"`
}

type BankTransfer struct {
	BankName      string `mapstructure:"bankName" json:"bank_name"`
	AccountName   string `mapstructure:"accountName" json:"account_name"`
	AccountNumber string `mapstructure:"accountNumber" json:"account_number"`
}

type Reconcile struct {
	LookbackHours int `mapstructure:"lookbackHours"`
	BatchSize     int `mapstructure:"batchSize"`
}

func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		OrganizationName: "Kola Hope Initiative",
		AdminEmails:      []string{},
		MinDonation:      100,
		Currency:         "NGN",
		Reconciliation: Reconcile{
			LookbackHours: 24,
			BatchSize:     50,
		},
	}
}

type SiteConfigHolder struct {
	current atomic.Value // holds SiteConfig
}

func NewSiteConfigHolder() (*SiteConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("site")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/kolahope/config")
	v.AddConfigPath("/etc/kolahope")
	v.AddConfigPath(".")

	v.SetEnvPrefix("KOLAHOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultSiteConfig()
	v.SetDefault("site.organizationName", defaults.OrganizationName)
	v.SetDefault("site.minDonation", defaults.MinDonation)
	v.SetDefault("site.currency", defaults.Currency)
	v.SetDefault("site.reconciliation.lookbackHours", defaults.Reconciliation.LookbackHours)
	v.SetDefault("site.reconciliation.batchSize", defaults.Reconciliation.BatchSize)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg SiteConfig
	if err := v.UnmarshalKey("site", &cfg); err != nil {
		return nil, err
	}
	if err := validateSiteConfig(cfg); err != nil {
		return nil, err
	}

	holder := &SiteConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated SiteConfig
		if err := v.UnmarshalKey("site", &updated); err != nil {
			log.Printf("[site-config] reload failed: %v", err)
			return
		}
		if err := validateSiteConfig(updated); err != nil {
			log.Printf("[site-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[site-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticSiteConfigHolder wraps a fixed config, used by tests.
func NewStaticSiteConfigHolder(cfg SiteConfig) *SiteConfigHolder {
	holder := &SiteConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *SiteConfigHolder) Get() SiteConfig {
	return h.current.Load().(SiteConfig)
}

func validateSiteConfig(cfg SiteConfig) error {
	if cfg.MinDonation <= 0 {
		return errors.New("site.minDonation must be positive")
	}
	if strings.TrimSpace(cfg.Currency) == "" {
		return errors.New("site.currency cannot be empty")
	}
	return nil
}
