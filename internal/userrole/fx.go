package userrole

import (
	"github.com/kolahope/kolahope/internal/userrole/repository"
	"github.com/kolahope/kolahope/internal/userrole/service"
	"go.uber.org/fx"
)

var Module = fx.Module("userrole.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
