package leads

import (
	"github.com/kolahope/kolahope/internal/leads/repository"
	"github.com/kolahope/kolahope/internal/leads/service"
	"go.uber.org/fx"
)

var Module = fx.Module("leads.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
