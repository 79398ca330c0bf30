//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"rankd/internal"
	"rankd/internal/controllers"
	"rankd/internal/providers"
	"rankd/internal/ranking"
	"rankd/internal/services"
	"rankd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewEventSink,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		ranking.NewZstdCompressor,
		services.NewRankingService,
		ranking.NewFileManager,
		ranking.NewScheduler,
		controllers.NewApiController,
		controllers.NewAdminController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
