package content

import (
	"github.com/kolahope/kolahope/internal/content/repository"
	"github.com/kolahope/kolahope/internal/content/service"
	"go.uber.org/fx"
)

var Module = fx.Module("content.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
