// Package rooms drives the colony room by room: one Manager per owned room
// and a Bot looping over all of them every tick.
package rooms

import (
	"github.com/zeusync/colony/internal/core/creeps"
	"github.com/zeusync/colony/internal/core/events/bus"
	"github.com/zeusync/colony/internal/core/jobs"
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/world"
)

const DefaultUpgradeEveryTicks = 60

type Options struct {
	// Wanted seeds room wanted overrides that are not set yet.
	Wanted            map[string]int
	UpgradeEveryTicks int
	Namer             creeps.Namer
	Kills             jobs.KillRecorder
	Bus               bus.EventBus
	Logger            log.Log
}

// Manager owns everything that runs for one room.
type Manager struct {
	game     world.Game
	cache    *world.RoomCache
	env      *jobs.Env
	towers   *Towers
	creeps   *creeps.Manager
	upgrades *Upgrades
	logger   log.Log
}

func NewManager(game world.Game, room world.Room, opts Options) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	cache := world.NewRoomCache(room)
	cache.Refresh(room, game.Time())

	env := &jobs.Env{Game: game, Room: cache, Kills: opts.Kills, Logger: logger.With(log.Room(room.Name()))}
	catalog, err := jobs.DefaultCatalog(env)
	if err != nil {
		return nil, err
	}
	cm, err := creeps.NewManager(game, cache, catalog, creeps.Options{Namer: opts.Namer, Bus: opts.Bus, Logger: logger})
	if err != nil {
		return nil, err
	}
	env.Population = cm.Registry()

	for id, n := range opts.Wanted {
		if _, ok := catalog.Get(id); !ok {
			logger.Warn("wanted override for unknown job ignored", log.Room(room.Name()), log.Job(id))
			continue
		}
		if _, ok := memory.WantedOverride(room.Memory(), id); !ok {
			memory.SetWantedOverride(room.Memory(), id, n)
		}
	}

	every := opts.UpgradeEveryTicks
	if every <= 0 {
		every = DefaultUpgradeEveryTicks
	}
	m := &Manager{game: game, cache: cache, env: env, creeps: cm, logger: logger}
	m.towers = NewTowers(cache, opts.Kills, logger.With(log.Room(room.Name())))
	m.upgrades = NewUpgrades(game, cache, every, opts.Bus, logger, MinerCourierUpgrade{}, HarvesterUpgrade{})
	return m, nil
}

func (m *Manager) Name() string            { return m.cache.Name() }
func (m *Manager) Creeps() *creeps.Manager { return m.creeps }
func (m *Manager) Upgrades() *Upgrades     { return m.upgrades }
func (m *Manager) Towers() *Towers         { return m.towers }
func (m *Manager) Cache() *world.RoomCache { return m.cache }

// Tick refreshes the room snapshot, fires the towers, runs the creep manager
// and then the upgrades. A dispatch failure skips the upgrades for this tick.
func (m *Manager) Tick(room world.Room) error {
	m.cache.Refresh(room, m.game.Time())
	m.towers.Tick()
	if err := m.creeps.Tick(); err != nil {
		return err
	}
	m.upgrades.Tick()
	return nil
}

// Status is the read-only room summary shown to operators.
type Status struct {
	Room                    string           `json:"room"`
	Tick                    int64            `json:"tick"`
	ControllerLevel         int              `json:"controller_level"`
	EnergyAvailable         int              `json:"energy_available"`
	EnergyCapacityAvailable int              `json:"energy_capacity_available"`
	Extensions              int              `json:"extensions"`
	ExtensionAllowance      int              `json:"extension_allowance"`
	Units                   int              `json:"units"`
	Hostiles                int              `json:"hostiles"`
	Jobs                    []creeps.JobStat `json:"jobs"`
	Upgrades                map[string]State `json:"upgrades"`
}

func (m *Manager) Status() Status {
	room := m.cache.Room()
	st := Status{
		Room:                    room.Name(),
		Tick:                    m.game.Time(),
		EnergyAvailable:         room.EnergyAvailable(),
		EnergyCapacityAvailable: room.EnergyCapacityAvailable(),
		Extensions:              len(m.cache.Extensions()),
		Units:                   m.creeps.Registry().Total(),
		Hostiles:                len(m.cache.Hostiles()),
		Jobs:                    m.creeps.Stats(),
		Upgrades:                m.upgrades.States(),
	}
	if c, ok := room.Controller(); ok {
		st.ControllerLevel = c.Level()
	}
	st.ExtensionAllowance = ExtensionAllowance(m.game.Constants(), room.Memory(), st.ControllerLevel)
	return st
}

// ExtensionAllowance is the number of extensions the room may build at level,
// plus the operator's additionalExtensions.
func ExtensionAllowance(c world.Constants, roomMem memory.Object, level int) int {
	return c.MaxStructures(world.KindExtension, level) + roomMem.GetInt(memory.KeyAdditionalExtensions)
}
