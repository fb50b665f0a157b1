package creeps

import (
	"fmt"

	"github.com/zeusync/colony/internal/core/events/bus"
	"github.com/zeusync/colony/internal/core/jobs"
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/world"
)

// Manager runs one room's tick: reconcile the registry, give every idle spawn
// one production decision, then dispatch every tracked unit.
type Manager struct {
	game       world.Game
	room       *world.RoomCache
	catalog    *jobs.Catalog
	resolver   *Resolver
	registry   *Registry
	scheduler  *Scheduler
	dispatcher *Dispatcher
	bus        bus.EventBus
	logger     log.Log

	decisions []Decision
}

type Options struct {
	Namer  Namer
	Bus    bus.EventBus
	Logger log.Log
}

func NewManager(game world.Game, room *world.RoomCache, catalog *jobs.Catalog, opts Options) (*Manager, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	logger = logger.With(log.Room(room.Name()))

	resolver := NewResolver(catalog)
	registry := NewRegistry(catalog, resolver)
	return &Manager{
		game:       game,
		room:       room,
		catalog:    catalog,
		resolver:   resolver,
		registry:   registry,
		scheduler:  NewScheduler(game, room, catalog, registry, opts.Namer, opts.Bus, logger),
		dispatcher: NewDispatcher(game, room.Name(), resolver, opts.Bus, logger),
		bus:        opts.Bus,
		logger:     logger,
	}, nil
}

func (m *Manager) Registry() *Registry    { return m.registry }
func (m *Manager) Resolver() *Resolver    { return m.resolver }
func (m *Manager) Catalog() *jobs.Catalog { return m.catalog }
func (m *Manager) Scheduler() *Scheduler  { return m.scheduler }
func (m *Manager) Decisions() []Decision  { return m.decisions }

// Tick stops at the first failing unit and returns its *DispatchError; units
// after it are not run this tick.
func (m *Manager) Tick() error {
	now := m.game.Time()
	rec := m.registry.Reconcile(m.room.MyUnits())
	m.report(rec, now)

	m.decisions = m.decisions[:0]
	for _, spawn := range m.room.Spawns() {
		if !spawn.Exists() {
			continue
		}
		m.decisions = append(m.decisions, m.scheduler.TickFacility(spawn))
	}

	for _, t := range m.registry.All() {
		if err := m.dispatcher.TickUnit(t.Unit); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) report(rec Reconciliation, now int64) {
	for _, t := range rec.Died {
		m.logger.Info("unit died", log.Unit(t.Unit.ID()), log.UnitName(t.Unit.Name()), log.Job(t.JobID), log.Tick(now))
		publish(m.bus, m.logger, bus.NewEvent(bus.KindUnitDied, now, m.room.Name()).WithUnit(t.Unit.ID(), t.JobID))
	}
	for _, t := range rec.Spawned {
		m.logger.Info("unit spawned", log.Unit(t.Unit.ID()), log.UnitName(t.Unit.Name()), log.Job(t.JobID), log.Tick(now))
		publish(m.bus, m.logger, bus.NewEvent(bus.KindUnitSpawned, now, m.room.Name()).WithUnit(t.Unit.ID(), t.JobID))
	}
	for _, u := range rec.Unresolved {
		label, _ := m.resolver.JobID(u)
		m.logger.Warn("unit job does not resolve",
			log.Unit(u.ID()), log.UnitName(u.Name()), log.String("label", label), log.Error(ErrUnknownJob), log.Tick(now))
		u.Say(jobs.AnomalyGlyph)
		memory.AppendLog(u.Memory(), fmt.Sprintf("%d: unknown job %q", now, label))
		memory.ClearTarget(u.Memory())
	}
}

// JobStat is the read-only view of one job used for display.
type JobStat struct {
	ID       string `json:"id"`
	Icon     string `json:"icon"`
	Priority int    `json:"priority"`
	Wanted   int    `json:"wanted"`
	Actual   int    `json:"actual"`
}

func (m *Manager) Stats() []JobStat {
	out := make([]JobStat, 0, m.catalog.Len())
	for _, j := range m.catalog.All() {
		out = append(out, JobStat{
			ID:       j.ID(),
			Icon:     j.Icon(),
			Priority: j.Priority(),
			Wanted:   m.scheduler.Wanted(j),
			Actual:   m.registry.Count(j.ID()),
		})
	}
	return out
}
