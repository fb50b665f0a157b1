//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/colony/internal/app"
	"github.com/zeusync/colony/internal/config"
)

func InitializeRuntime(cfg config.Config) (*app.Runtime, func(), error) {
	wire.Build(RuntimeSet)
	return nil, nil, nil
}
