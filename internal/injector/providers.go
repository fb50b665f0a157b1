package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/colony/internal/app"
	"github.com/zeusync/colony/internal/config"
	"github.com/zeusync/colony/internal/core/events/bus"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/rooms"
	"github.com/zeusync/colony/internal/core/stats"
	"github.com/zeusync/colony/internal/core/world/simworld"
	"github.com/zeusync/colony/internal/persistence/sqlitestore"
	"github.com/zeusync/colony/internal/server"
)

var RuntimeSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	ProvideGame,
	ProvideTracker,
	ProvideBot,
	ProvideStore,
	ProvideFeed,
	app.NewBoard,
	app.NewRuntime,
)

func ProvideLogger(cfg config.Config) log.Log {
	return log.New(log.ParseLevel(cfg.LogLevel), log.WithEncoding(cfg.LogEncoding))
}

func ProvideBus() bus.EventBus { return bus.New() }

func ProvideGame(cfg config.Config) (*simworld.Game, error) {
	game := simworld.New()
	if err := game.Build(cfg.World.Rooms...); err != nil {
		return nil, err
	}
	return game, nil
}

func ProvideTracker(game *simworld.Game, b bus.EventBus, logger log.Log) *stats.Tracker {
	return stats.NewTracker(game, b, logger)
}

func ProvideBot(cfg config.Config, game *simworld.Game, tracker *stats.Tracker, b bus.EventBus, logger log.Log) *rooms.Bot {
	return rooms.NewBot(game, rooms.BotOptions{
		Wanted:                cfg.Wanted(),
		UpgradeEveryTicks:     cfg.UpgradeEveryTicks,
		MemoryCleanEveryTicks: cfg.MemoryCleanEveryTicks,
		HeapLimitBytes:        cfg.HeapLimitBytes(),
	}, tracker, b, logger)
}

// ProvideStore returns a nil store when persistence has no path.
func ProvideStore(cfg config.Config) (*sqlitestore.Store, func(), error) {
	if cfg.Persistence.Path == "" {
		return nil, func() {}, nil
	}
	store, err := sqlitestore.Open(cfg.Persistence.Path)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// ProvideFeed returns a nil feed when it is disabled.
func ProvideFeed(cfg config.Config, board *app.Board, logger log.Log) *server.Feed {
	if !cfg.Feed.Enabled {
		return nil
	}
	fc := server.DefaultConfig()
	fc.Addr = cfg.Feed.Addr
	fc.Token = cfg.Feed.Token
	return server.NewFeed(fc, board.Get, logger)
}
