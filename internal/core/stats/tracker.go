// Package stats keeps the colony's aggregate counters: kills, spawns, deaths,
// productions and dispatch failures, per room and job.
package stats

import (
	"sort"
	"sync"

	"github.com/zeusync/colony/internal/core/events/bus"
	"github.com/zeusync/colony/internal/core/jobs"
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/world"
)

var _ jobs.KillRecorder = (*Tracker)(nil)

// Counters are the totals of one job in one room.
type Counters struct {
	Spawned  uint64 `json:"spawned"`
	Died     uint64 `json:"died"`
	Produced uint64 `json:"produced"`
	Failed   uint64 `json:"failed"`
	Kills    uint64 `json:"kills"`
}

func (c *Counters) add(o Counters) {
	c.Spawned += o.Spawned
	c.Died += o.Died
	c.Produced += o.Produced
	c.Failed += o.Failed
	c.Kills += o.Kills
}

type key struct{ room, job string }

// Tracker owns the in-process counters. Kills are also written to room and
// global memory so they survive a restart.
type Tracker struct {
	mu       sync.RWMutex
	game     world.Game
	bus      bus.EventBus
	logger   log.Log
	counters map[key]*Counters
	subs     []bus.Subscription
}

func NewTracker(game world.Game, b bus.EventBus, logger log.Log) *Tracker {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Tracker{game: game, bus: b, logger: logger, counters: make(map[key]*Counters)}
}

// Attach subscribes the tracker to lifecycle events on its bus. Calling it
// again while attached does nothing.
func (t *Tracker) Attach() error {
	if t.bus == nil || len(t.subs) > 0 {
		return nil
	}
	handlers := map[bus.Kind]func(*Counters){
		bus.KindUnitSpawned:      func(c *Counters) { c.Spawned++ },
		bus.KindUnitDied:         func(c *Counters) { c.Died++ },
		bus.KindProductionIssued: func(c *Counters) { c.Produced++ },
		bus.KindDispatchFailed:   func(c *Counters) { c.Failed++ },
	}
	kinds := make([]bus.Kind, 0, len(handlers))
	for k := range handlers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, kind := range kinds {
		bump := handlers[kind]
		sub, err := t.bus.Subscribe(kind, func(e bus.Event) error {
			t.bump(e.Room, e.Job, bump)
			return nil
		})
		if err != nil {
			t.Detach()
			return err
		}
		t.subs = append(t.subs, sub)
	}
	return nil
}

func (t *Tracker) Detach() {
	for _, sub := range t.subs {
		_ = t.bus.Unsubscribe(sub)
	}
	t.subs = nil
}

func (t *Tracker) bump(room, job string, fn func(*Counters)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := key{room, job}
	c, ok := t.counters[k]
	if !ok {
		c = &Counters{}
		t.counters[k] = c
	}
	fn(c)
}

// RecordKill counts a hostile destroyed by a unit of jobID in room.
func (t *Tracker) RecordKill(room, jobID string) {
	t.bump(room, jobID, func(c *Counters) { c.Kills++ })

	if r, ok := t.game.Room(room); ok {
		memory.IncrementKillCount(r.Memory(), jobID)
	}
	memory.IncrementKillCount(t.game.Memory(), jobID)

	t.logger.Info("hostile killed", log.Room(room), log.Job(jobID), log.Tick(t.game.Time()))
	if t.bus != nil {
		if err := t.bus.Publish(bus.NewEvent(bus.KindUnitKilled, t.game.Time(), room).WithUnit("", jobID)); err != nil {
			t.logger.Warn("event handler failed", log.String("kind", string(bus.KindUnitKilled)), log.Error(err))
		}
	}
}

func (t *Tracker) Get(room, job string) Counters {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if c, ok := t.counters[key{room, job}]; ok {
		return *c
	}
	return Counters{}
}

// Room sums the counters of every job in room.
func (t *Tracker) Room(room string) Counters {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var sum Counters
	for k, c := range t.counters {
		if k.room == room {
			sum.add(*c)
		}
	}
	return sum
}

func (t *Tracker) Total() Counters {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var sum Counters
	for _, c := range t.counters {
		sum.add(*c)
	}
	return sum
}

// ByJob returns per-job counters of room keyed by job id.
func (t *Tracker) ByJob(room string) map[string]Counters {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]Counters)
	for k, c := range t.counters {
		if k.room == room {
			out[k.job] = *c
		}
	}
	return out
}
