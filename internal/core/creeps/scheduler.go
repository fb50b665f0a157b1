package creeps

import (
	"github.com/google/uuid"

	"github.com/zeusync/colony/internal/core/body"
	"github.com/zeusync/colony/internal/core/events/bus"
	"github.com/zeusync/colony/internal/core/jobs"
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/world"
)

// Outcome classifies one facility decision.
type Outcome int

const (
	OutcomeBusy Outcome = iota
	OutcomeStaffed
	OutcomeUnaffordable
	OutcomeRejected
	OutcomeFailed
	OutcomeProduced
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBusy:
		return "busy"
	case OutcomeStaffed:
		return "staffed"
	case OutcomeUnaffordable:
		return "unaffordable"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	case OutcomeProduced:
		return "produced"
	default:
		return "unknown"
	}
}

// Decision records what TickFacility did with one spawn.
type Decision struct {
	Spawn   string
	Job     string
	Wanted  int
	Actual  int
	Body    body.Composition
	Cost    int
	Budget  int
	Name    string
	UnitID  string
	Outcome Outcome
	Err     error
}

// Namer returns a unique unit name for a room.
type Namer func(room string) string

func DefaultNamer(room string) string {
	return room + "_" + uuid.NewString()[:8]
}

type Scheduler struct {
	game       world.Game
	room       *world.RoomCache
	catalog    *jobs.Catalog
	population jobs.Population
	namer      Namer
	bus        bus.EventBus
	logger     log.Log
}

func NewScheduler(game world.Game, room *world.RoomCache, catalog *jobs.Catalog, population jobs.Population, namer Namer, b bus.EventBus, logger log.Log) *Scheduler {
	if namer == nil {
		namer = DefaultNamer
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Scheduler{
		game:       game,
		room:       room,
		catalog:    catalog,
		population: population,
		namer:      namer,
		bus:        b,
		logger:     logger,
	}
}

// Wanted is the effective wanted count: the room override when present,
// otherwise the job's own demand.
func (s *Scheduler) Wanted(j jobs.Job) int {
	if n, ok := memory.WantedOverride(s.room.Room().Memory(), j.ID()); ok {
		return n
	}
	return j.WantedCount()
}

// TickFacility makes at most one production decision for spawn. It serves the
// first understaffed job by priority and stops there whatever the outcome, so a
// lower priority job never jumps an understaffed higher priority one.
func (s *Scheduler) TickFacility(spawn world.Spawn) Decision {
	d := Decision{Spawn: spawn.Name()}
	if spawn.Spawning() {
		d.Outcome = OutcomeBusy
		return d
	}

	var job jobs.Job
	for _, j := range s.catalog.ByPriority() {
		wanted, actual := s.Wanted(j), s.population.Count(j.ID())
		if actual < wanted {
			job, d.Wanted, d.Actual = j, wanted, actual
			break
		}
	}
	if job == nil {
		d.Outcome = OutcomeStaffed
		s.logger.Debug("all jobs staffed", log.Spawn(spawn.Name()), log.Tick(s.game.Time()))
		return d
	}
	d.Job = job.ID()

	// energy may have been spent by an earlier spawn this tick
	d.Budget = s.room.Room().EnergyAvailable()
	comp, ok := body.Compile(job.BodyPartGroups(), d.Budget, s.game.Constants())
	if !ok {
		d.Outcome = OutcomeUnaffordable
		s.logger.Debug("body unaffordable",
			log.Spawn(spawn.Name()), log.Job(job.ID()), log.Int("budget", d.Budget), log.Tick(s.game.Time()))
		return d
	}
	d.Body = comp
	d.Cost = comp.Cost(s.game.Constants())
	d.Name = s.namer(s.room.Name())

	if !spawn.CanProduce(comp, d.Name) {
		d.Outcome = OutcomeRejected
		s.logger.Debug("dry run rejected",
			log.Spawn(spawn.Name()), log.Job(job.ID()), log.String("body", comp.String()), log.Tick(s.game.Time()))
		return d
	}

	initial := memory.New()
	initial.SetString(memory.KeyJob, job.ID())
	id, err := spawn.Produce(comp, d.Name, initial)
	if err != nil {
		d.Outcome, d.Err = OutcomeFailed, err
		s.logger.Warn("production failed after dry run",
			log.Spawn(spawn.Name()), log.Job(job.ID()), log.Error(err), log.Tick(s.game.Time()))
		return d
	}
	d.UnitID, d.Outcome = id, OutcomeProduced

	s.logger.Info("production issued",
		log.Spawn(spawn.Name()),
		log.Job(job.ID()),
		log.UnitName(d.Name),
		log.String("body", comp.String()),
		log.Int("cost", d.Cost),
		log.Int("budget", d.Budget),
		log.Tick(s.game.Time()),
	)
	publish(s.bus, s.logger, bus.NewEvent(bus.KindProductionIssued, s.game.Time(), s.room.Name()).
		WithUnit(id, job.ID()).
		With("spawn", spawn.Name()).
		With("cost", d.Cost).
		With("parts", len(comp)))
	return d
}

func publish(b bus.EventBus, logger log.Log, e bus.Event) {
	if b == nil {
		return
	}
	if err := b.Publish(e); err != nil {
		logger.Warn("event handler failed", log.String("kind", string(e.Kind)), log.Error(err))
	}
}
