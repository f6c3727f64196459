package paystack

import (
	"github.com/kolahope/kolahope/internal/config"
	"github.com/kolahope/kolahope/internal/donation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.paystack",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config, log *zap.Logger) domain.Gateway {
	return NewClient(Config{
		SecretKey: cfg.PaystackSecretKey,
		BaseURL:   cfg.PaystackBaseURL,
	}, log)
}
