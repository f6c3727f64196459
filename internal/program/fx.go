package program

import (
	"github.com/kolahope/kolahope/internal/program/repository"
	"github.com/kolahope/kolahope/internal/program/service"
	"go.uber.org/fx"
)

var Module = fx.Module("program.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
