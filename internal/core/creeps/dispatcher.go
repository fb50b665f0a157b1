package creeps

import (
	"fmt"

	"github.com/zeusync/colony/internal/core/events/bus"
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/world"
)

type Dispatcher struct {
	game     world.Game
	room     string
	resolver *Resolver
	bus      bus.EventBus
	logger   log.Log
}

func NewDispatcher(game world.Game, room string, resolver *Resolver, b bus.EventBus, logger log.Log) *Dispatcher {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Dispatcher{game: game, room: room, resolver: resolver, bus: b, logger: logger}
}

// TickUnit runs u's job for this tick. Units still being produced and units
// whose job does not resolve are skipped. A behavior error or panic comes back
// as a *DispatchError.
func (d *Dispatcher) TickUnit(u world.Unit) (err error) {
	if u.Spawning() {
		return nil
	}
	job, ok := d.resolver.Resolve(u)
	if !ok {
		d.logger.Debug("unit has no resolvable job", log.Unit(u.ID()), log.Tick(d.game.Time()))
		return nil
	}

	if memory.ConfigBool(d.game.Memory(), memory.KeyShowJobs) {
		u.Say(job.Icon())
	}

	defer func() {
		if r := recover(); r != nil {
			err = d.fail(u, job.ID(), fmt.Errorf("%w: %v", ErrBehaviorPanic, r))
		}
	}()

	if runErr := job.Run(u); runErr != nil {
		return d.fail(u, job.ID(), runErr)
	}
	return nil
}

func (d *Dispatcher) fail(u world.Unit, jobID string, cause error) error {
	de := &DispatchError{
		UnitID:   u.ID(),
		UnitName: u.Name(),
		JobID:    jobID,
		Tick:     d.game.Time(),
		Err:      cause,
	}
	d.logger.Error("behavior failed",
		log.Unit(u.ID()),
		log.UnitName(u.Name()),
		log.Job(jobID),
		log.Room(d.room),
		log.Tick(de.Tick),
		log.Error(cause),
	)
	publish(d.bus, d.logger, bus.NewEvent(bus.KindDispatchFailed, de.Tick, d.room).
		WithUnit(u.ID(), jobID).
		With("error", cause.Error()))
	return de
}
