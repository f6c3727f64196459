package email

import (
	"github.com/kolahope/kolahope/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.email",
	fx.Provide(NewFromConfig),
)

// NewFromConfig prefers the Resend HTTP API, falls back to SMTP, and
// drops mail when neither is configured.
func NewFromConfig(cfg config.Config, site *config.SiteConfigHolder, log *zap.Logger) Provider {
	if cfg.ResendAPIKey != "" {
		return NewResend(ResendConfig{
			APIKey:   cfg.ResendAPIKey,
			From:     "onboarding@resend.dev",
			FromName: site.Get().OrganizationName,
		})
	}
	if cfg.SMTPHost != "" {
		return NewSMTP(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	}
	log.Warn("no email provider configured, notifications will be dropped")
	return &NoOpProvider{}
}
