package notification

import (
	donationdomain "github.com/kolahope/kolahope/internal/donation/domain"
	leadsdomain "github.com/kolahope/kolahope/internal/leads/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("notification",
	fx.Provide(
		NewDispatcher,
		func(d *Dispatcher) donationdomain.Notifier { return d },
		func(d *Dispatcher) leadsdomain.Notifier { return d },
	),
)
