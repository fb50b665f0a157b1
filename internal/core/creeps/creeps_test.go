package creeps

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/colony/internal/core/body"
	"github.com/zeusync/colony/internal/core/events/bus"
	"github.com/zeusync/colony/internal/core/jobs"
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/world"
	"github.com/zeusync/colony/internal/core/world/simworld"
)

type harness struct {
	game  *simworld.Game
	room  *simworld.Room
	cache *world.RoomCache
	bus   bus.EventBus
	mgr   *Manager
}

func seqNamer() Namer {
	n := 0
	return func(room string) string {
		n++
		return fmt.Sprintf("%s_%d", room, n)
	}
}

func newHarness(t *testing.T, defs ...jobs.Job) *harness {
	t.Helper()
	g := simworld.New()
	r := g.MustAddRoom("W1N1", 2)
	h := &harness{game: g, room: r, cache: world.NewRoomCache(r), bus: bus.New()}
	cat, err := jobs.NewCatalog(defs...)
	require.NoError(t, err)
	h.mgr, err = NewManager(g, h.cache, cat, Options{Namer: seqNamer(), Bus: h.bus, Logger: log.NewNop()})
	require.NoError(t, err)
	return h
}

func (h *harness) refresh() { h.cache.Refresh(h.room, h.game.Time()) }

func (h *harness) tick(t *testing.T) {
	t.Helper()
	h.game.Tick()
	h.refresh()
	require.NoError(t, h.mgr.Tick())
}

func TestNewManager_NilCatalog(t *testing.T) {
	g := simworld.New()
	r := g.MustAddRoom("W1N1", 1)
	_, err := NewManager(g, world.NewRoomCache(r), nil, Options{})
	assert.ErrorIs(t, err, ErrNilCatalog)
}

func TestScheduler_ProducesFirstUnderstaffedJob(t *testing.T) {
	worker := &jobs.Definition{Name: "worker", Prio: 10, Wanted: jobs.Const(2)}
	hauler := &jobs.Definition{Name: "hauler", Prio: 0, Wanted: jobs.Const(1)}
	h := newHarness(t, worker, hauler)
	spawn := h.room.AddSpawn("Spawn1", 10, 10)
	h.refresh()

	d := h.mgr.Scheduler().TickFacility(spawn)
	require.Equal(t, OutcomeProduced, d.Outcome, "err=%v", d.Err)
	assert.Equal(t, "hauler", d.Job)
	assert.Equal(t, "W1N1_1", d.Name)
	assert.Equal(t, 1, spawn.Produced())
	assert.Equal(t, 300, d.Budget)
	assert.LessOrEqual(t, d.Cost, d.Budget)

	u, ok := h.game.Unit(d.UnitID)
	require.True(t, ok)
	label, ok := memory.JobLabel(u.Memory())
	require.True(t, ok)
	assert.Equal(t, "hauler", label)
}

func TestScheduler_AtMostOneProductionPerFacility(t *testing.T) {
	cheap := &jobs.Definition{Name: "cheap", Wanted: jobs.Const(10), Groups: []body.Group{body.Fixed(1, world.Move)}}
	h := newHarness(t, cheap)
	spawn := h.room.AddSpawn("Spawn1", 10, 10)
	h.refresh()

	d := h.mgr.Scheduler().TickFacility(spawn)
	require.Equal(t, OutcomeProduced, d.Outcome)
	assert.Equal(t, 1, spawn.Produced())

	d = h.mgr.Scheduler().TickFacility(spawn)
	assert.Equal(t, OutcomeBusy, d.Outcome)
	assert.Equal(t, 1, spawn.Produced())
}

func TestScheduler_UnaffordableBlocksLowerPriority(t *testing.T) {
	heavy := &jobs.Definition{Name: "heavy", Prio: 0, Wanted: jobs.Const(1), Groups: []body.Group{body.Fixed(10, world.Work)}}
	cheap := &jobs.Definition{Name: "cheap", Prio: 5, Wanted: jobs.Const(1), Groups: []body.Group{body.Fixed(1, world.Move)}}
	h := newHarness(t, cheap, heavy)
	spawn := h.room.AddSpawn("Spawn1", 10, 10)
	h.refresh()

	d := h.mgr.Scheduler().TickFacility(spawn)
	assert.Equal(t, OutcomeUnaffordable, d.Outcome)
	assert.Equal(t, "heavy", d.Job)
	assert.Equal(t, 0, spawn.Produced())
}

func TestScheduler_StaffedWhenOverrideIsZero(t *testing.T) {
	a := &jobs.Definition{Name: "a", Wanted: jobs.Const(3)}
	h := newHarness(t, a)
	spawn := h.room.AddSpawn("Spawn1", 10, 10)
	memory.SetWantedOverride(h.room.Memory(), "a", 0)
	h.refresh()

	assert.Equal(t, 0, h.mgr.Scheduler().Wanted(a))
	d := h.mgr.Scheduler().TickFacility(spawn)
	assert.Equal(t, OutcomeStaffed, d.Outcome)
	assert.Equal(t, 0, spawn.Produced())

	memory.ClearWantedOverride(h.room.Memory(), "a")
	assert.Equal(t, 3, h.mgr.Scheduler().Wanted(a))
}

func TestScheduler_BudgetRequeriedPerFacility(t *testing.T) {
	miner := &jobs.Definition{
		Name:   "miner",
		Wanted: jobs.Const(5),
		Groups: []body.Group{body.Fixed(1, world.Move), body.Variable(1, 6, world.Work)},
	}
	h := newHarness(t, miner)
	h.room.AddSpawn("Spawn2", 12, 10)
	h.room.AddSpawn("Spawn1", 10, 10)
	h.refresh()

	require.NoError(t, h.mgr.Tick())
	ds := h.mgr.Decisions()
	require.Len(t, ds, 2)

	assert.Equal(t, "Spawn1", ds[0].Spawn)
	assert.Equal(t, OutcomeProduced, ds[0].Outcome)
	assert.Equal(t, 600, ds[0].Budget)
	assert.Equal(t, 550, ds[0].Cost)
	assert.Equal(t, 5, ds[0].Body.Count(world.Work))

	assert.Equal(t, "Spawn2", ds[1].Spawn)
	assert.Equal(t, OutcomeUnaffordable, ds[1].Outcome)
	assert.Equal(t, 50, ds[1].Budget)
}

func TestScheduler_MinerAtThreeHundred(t *testing.T) {
	miner := &jobs.Definition{
		Name:   "miner",
		Wanted: jobs.Const(1),
		Groups: []body.Group{body.Fixed(1, world.Move), body.Variable(1, 6, world.Work)},
	}
	h := newHarness(t, miner)
	spawn := h.room.AddSpawn("Spawn1", 10, 10)
	h.refresh()

	d := h.mgr.Scheduler().TickFacility(spawn)
	require.Equal(t, OutcomeProduced, d.Outcome)
	assert.Equal(t, body.Composition{world.Move, world.Work, world.Work}, d.Body)
	assert.Equal(t, 250, d.Cost)
}

func TestScheduler_PublishesProduction(t *testing.T) {
	a := &jobs.Definition{Name: "a", Wanted: jobs.Const(1), Groups: []body.Group{body.Fixed(1, world.Move)}}
	h := newHarness(t, a)
	spawn := h.room.AddSpawn("Spawn1", 10, 10)
	h.refresh()

	var got []bus.Event
	_, err := h.bus.Subscribe(bus.KindProductionIssued, func(e bus.Event) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)

	d := h.mgr.Scheduler().TickFacility(spawn)
	require.Equal(t, OutcomeProduced, d.Outcome)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Job)
	assert.Equal(t, d.UnitID, got[0].Unit)
	assert.Equal(t, "Spawn1", got[0].Data["spawn"])
}

func TestRegistry_ReconcileIsIdempotent(t *testing.T) {
	var spawned int
	a := &jobs.Definition{Name: "a", Spawned: func(world.Unit) { spawned++ }}
	h := newHarness(t, a)
	h.room.AddUnit("u1", "a", 1, 1, world.Move)
	h.room.AddUnit("u2", "a", 2, 2, world.Move)
	h.refresh()

	reg := h.mgr.Registry()
	rec := reg.Reconcile(h.cache.MyUnits())
	assert.Len(t, rec.Spawned, 2)
	assert.Equal(t, 2, reg.Count("a"))
	assert.Equal(t, 2, spawned)

	rec = reg.Reconcile(h.cache.MyUnits())
	assert.True(t, rec.Empty())
	assert.Equal(t, 2, reg.Count("a"))
	assert.Equal(t, 2, reg.Total())
	assert.Equal(t, 2, spawned)
}

func TestRegistry_DeathHookFiresOnce(t *testing.T) {
	var died []string
	a := &jobs.Definition{Name: "a", Died: func(u world.Unit) { died = append(died, u.Name()) }}
	h := newHarness(t, a)
	u := h.room.AddUnit("u1", "a", 1, 1, world.Move)
	h.refresh()

	reg := h.mgr.Registry()
	reg.Reconcile(h.cache.MyUnits())
	require.Equal(t, 1, reg.Count("a"))

	u.Kill()
	h.game.Tick()
	h.refresh()

	rec := reg.Reconcile(h.cache.MyUnits())
	require.Len(t, rec.Died, 1)
	assert.Equal(t, "a", rec.Died[0].JobID)
	assert.Equal(t, 0, reg.Count("a"))

	rec = reg.Reconcile(h.cache.MyUnits())
	assert.True(t, rec.Empty())
	assert.Equal(t, []string{"u1"}, died)
	assert.Equal(t, 0, h.mgr.Resolver().Cached())
}

func TestRegistry_UnresolvedUnitsAreRetried(t *testing.T) {
	a := &jobs.Definition{Name: "a"}
	h := newHarness(t, a)
	u := h.room.AddUnit("stray", "ghost", 1, 1, world.Move)
	h.room.AddHostile(5, 5, world.Attack)
	h.refresh()

	reg := h.mgr.Registry()
	rec := reg.Reconcile(h.cache.Room().Units())
	require.Len(t, rec.Unresolved, 1)
	assert.Equal(t, "stray", rec.Unresolved[0].Name())
	assert.Equal(t, 0, reg.Total())

	u.Memory().SetString(memory.KeyJob, "a")
	rec = reg.Reconcile(h.cache.MyUnits())
	require.Len(t, rec.Spawned, 1)
	assert.Equal(t, 1, reg.Count("a"))
}

func TestRegistry_AllFollowsCatalogOrder(t *testing.T) {
	h := newHarness(t, &jobs.Definition{Name: "b"}, &jobs.Definition{Name: "a"})
	h.room.AddUnit("x", "a", 1, 1, world.Move)
	h.room.AddUnit("y", "b", 1, 2, world.Move)
	h.room.AddUnit("z", "a", 1, 3, world.Move)
	h.refresh()
	h.mgr.Registry().Reconcile(h.cache.MyUnits())

	var names []string
	for _, tr := range h.mgr.Registry().All() {
		names = append(names, tr.Unit.Name())
	}
	assert.Equal(t, []string{"y", "x", "z"}, names)
}

func TestResolver_CachesByUnit(t *testing.T) {
	h := newHarness(t, &jobs.Definition{Name: "a"})
	u := h.room.AddUnit("u", "a", 1, 1, world.Move)
	r := h.mgr.Resolver()

	j, ok := r.Resolve(u)
	require.True(t, ok)
	assert.Equal(t, "a", j.ID())
	_, ok = r.Resolve(u)
	require.True(t, ok)

	hits, misses := r.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	r.Forget(u.ID())
	assert.Equal(t, 0, r.Cached())
}

func TestDispatcher_RecoversPanic(t *testing.T) {
	a := &jobs.Definition{Name: "a", Behavior: func(world.Unit) error { panic("boom") }}
	h := newHarness(t, a)
	h.room.AddUnit("u", "a", 1, 1, world.Move)
	h.refresh()

	var failed []bus.Event
	_, err := h.bus.Subscribe(bus.KindDispatchFailed, func(e bus.Event) error {
		failed = append(failed, e)
		return nil
	})
	require.NoError(t, err)

	err = h.mgr.Tick()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBehaviorPanic)

	var de *DispatchError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "u", de.UnitName)
	assert.Equal(t, "a", de.JobID)
	assert.Contains(t, de.Error(), "boom")
	assert.Len(t, failed, 1)
}

func TestManager_StopsAtFirstFailure(t *testing.T) {
	cause := errors.New("stuck")
	var ran []string
	a := &jobs.Definition{Name: "a", Behavior: func(u world.Unit) error { ran = append(ran, u.Name()); return cause }}
	b := &jobs.Definition{Name: "b", Behavior: func(u world.Unit) error { ran = append(ran, u.Name()); return nil }}
	h := newHarness(t, a, b)
	h.room.AddUnit("ub", "b", 1, 1, world.Move)
	h.room.AddUnit("ua", "a", 2, 2, world.Move)
	h.refresh()

	err := h.mgr.Tick()
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"ua"}, ran)
}

func TestManager_SkipsUnitsInProduction(t *testing.T) {
	var ran int
	a := &jobs.Definition{
		Name:     "a",
		Wanted:   jobs.Const(1),
		Groups:   []body.Group{body.Fixed(1, world.Move)},
		Behavior: func(world.Unit) error { ran++; return nil },
	}
	h := newHarness(t, a)
	h.room.AddSpawn("Spawn1", 10, 10)
	h.refresh()

	require.NoError(t, h.mgr.Tick())
	assert.Equal(t, 0, ran)

	// visible while still spawning: tracked, not run
	h.tick(t)
	assert.Equal(t, 1, h.mgr.Registry().Count("a"))
	assert.Equal(t, 0, ran)

	for range simworld.TicksPerBodyPart {
		h.tick(t)
	}
	assert.Positive(t, ran)
}

func TestManager_ShowJobs(t *testing.T) {
	a := &jobs.Definition{Name: "a", Glyph: "🅰"}
	h := newHarness(t, a)
	u := h.room.AddUnit("u", "a", 1, 1, world.Move)
	h.refresh()

	require.NoError(t, h.mgr.Tick())
	assert.Empty(t, u.Said())

	memory.SetConfigBool(h.game.Memory(), memory.KeyShowJobs, true)
	require.NoError(t, h.mgr.Tick())
	assert.Equal(t, "🅰", u.Said())
}

func TestManager_ReportsLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	g := simworld.New()
	r := g.MustAddRoom("W1N1", 2)
	cache := world.NewRoomCache(r)
	cat, err := jobs.NewCatalog(&jobs.Definition{Name: "a"})
	require.NoError(t, err)
	b := bus.New()
	mgr, err := NewManager(g, cache, cat, Options{Bus: b, Logger: log.New(log.LevelInfo, log.WithCore(core))})
	require.NoError(t, err)

	var kinds []bus.Kind
	b.SubscribeAll(func(e bus.Event) error {
		kinds = append(kinds, e.Kind)
		return nil
	})

	u := r.AddUnit("u", "a", 1, 1, world.Move)
	stray := r.AddUnit("stray", "ghost", 2, 2, world.Move)
	memory.SetTarget(stray.Memory(), "src1")
	cache.Refresh(r, g.Time())
	require.NoError(t, mgr.Tick())

	assert.Equal(t, 1, logs.FilterMessage("unit spawned").Len())
	assert.Equal(t, 1, logs.FilterMessage("unit job does not resolve").Len())
	assert.Equal(t, jobs.AnomalyGlyph, stray.Said())
	assert.NotEmpty(t, memory.LogLines(stray.Memory()))
	_, hasTarget := memory.Target(stray.Memory())
	assert.False(t, hasTarget)

	u.Kill()
	g.Tick()
	cache.Refresh(r, g.Time())
	require.NoError(t, mgr.Tick())
	assert.Equal(t, 1, logs.FilterMessage("unit died").Len())
	assert.Equal(t, []bus.Kind{bus.KindUnitSpawned, bus.KindUnitDied}, kinds)
}

func TestManager_Stats(t *testing.T) {
	h := newHarness(t,
		&jobs.Definition{Name: "a", Glyph: "A", Prio: 3, Wanted: jobs.Const(2)},
		&jobs.Definition{Name: "b", Glyph: "B", Wanted: jobs.Const(1)},
	)
	h.room.AddUnit("u", "a", 1, 1, world.Move)
	memory.SetWantedOverride(h.room.Memory(), "b", 4)
	h.refresh()
	require.NoError(t, h.mgr.Tick())

	assert.Equal(t, []JobStat{
		{ID: "a", Icon: "A", Priority: 3, Wanted: 2, Actual: 1},
		{ID: "b", Icon: "B", Priority: 0, Wanted: 4, Actual: 0},
	}, h.mgr.Stats())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "produced", OutcomeProduced.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
