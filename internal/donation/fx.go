package donation

import (
	"github.com/kolahope/kolahope/internal/donation/repository"
	"github.com/kolahope/kolahope/internal/donation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("donation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
