package rooms

import (
	"github.com/zeusync/colony/internal/core/events/bus"
	"github.com/zeusync/colony/internal/core/jobs"
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/world"
)

type State string

const (
	NotStartedYet State = "NotStartedYet"
	InProgress    State = "InProgress"
	Done          State = "Done"
)

// upgradeOffset shifts the upgrade tick away from the memory cleaner.
const upgradeOffset = 30

// Upgrade is a one-off change to a room's plan, run step by step until Done.
type Upgrade interface {
	ID() string
	ShouldStart(room *world.RoomCache, states map[string]State) bool
	Run(room *world.RoomCache, states map[string]State) State
}

// Upgrades evaluates a fixed list of upgrades every few ticks and persists
// their state in room memory under upgrades.<id>.
type Upgrades struct {
	game   world.Game
	room   *world.RoomCache
	every  int
	list   []Upgrade
	bus    bus.EventBus
	logger log.Log
}

func NewUpgrades(game world.Game, room *world.RoomCache, every int, b bus.EventBus, logger log.Log, list ...Upgrade) *Upgrades {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Upgrades{game: game, room: room, every: every, list: list, bus: b, logger: logger}
}

func (u *Upgrades) due() bool {
	return (u.game.Time()+upgradeOffset)%int64(u.every) == 0
}

func (u *Upgrades) store() memory.Object {
	return u.room.Room().Memory().GetOrCreateObject(memory.KeyUpgrades)
}

// States reads the persisted state of every known upgrade.
func (u *Upgrades) States() map[string]State {
	out := make(map[string]State, len(u.list))
	st := u.store()
	for _, up := range u.list {
		out[up.ID()] = readState(st, up.ID())
	}
	return out
}

func readState(o memory.Object, id string) State {
	switch s := State(o.GetString(id)); s {
	case InProgress, Done:
		return s
	default:
		return NotStartedYet
	}
}

// Tick runs the due upgrades. It does nothing off the interval.
func (u *Upgrades) Tick() {
	if !u.due() {
		return
	}
	u.Step()
}

// Step evaluates every upgrade once regardless of the interval.
func (u *Upgrades) Step() {
	st := u.store()
	for _, up := range u.list {
		states := u.States()
		prev := states[up.ID()]
		next, ran := prev, false
		switch prev {
		case NotStartedYet:
			if up.ShouldStart(u.room, states) {
				next, ran = up.Run(u.room, states), true
			}
		case InProgress:
			next, ran = up.Run(u.room, states), true
		}
		if !ran {
			continue
		}
		st.SetString(up.ID(), string(next))
		u.logger.Info("upgrade ran",
			log.Room(u.room.Name()),
			log.String("upgrade", up.ID()),
			log.String("from", string(prev)),
			log.String("to", string(next)),
			log.Tick(u.game.Time()),
		)
		if next == Done && u.bus != nil {
			e := bus.NewEvent(bus.KindUpgradeCompleted, u.game.Time(), u.room.Name()).With("upgrade", up.ID())
			if err := u.bus.Publish(e); err != nil {
				u.logger.Warn("event handler failed", log.String("kind", string(e.Kind)), log.Error(err))
			}
		}
	}
}

const (
	MinerCourierUpgradeID = "MinerCourierUpgrade"
	HarvesterUpgradeID    = "HarvesterUpgrade"

	// ReducedHarvesters is the harvester count once miners take over a source.
	ReducedHarvesters = 3
)

// MinerCourierUpgrade moves a single-source room from harvesters to miners.
// It caps the harvester override and completes once a source container
// exists; miners then become wanted through their own demand.
type MinerCourierUpgrade struct{}

func (MinerCourierUpgrade) ID() string { return MinerCourierUpgradeID }

func (MinerCourierUpgrade) ShouldStart(room *world.RoomCache, _ map[string]State) bool {
	return len(room.Sources()) == 1
}

func (MinerCourierUpgrade) Run(room *world.RoomCache, _ map[string]State) State {
	mem := room.Room().Memory()
	wanted, ok := memory.WantedOverride(mem, jobs.HarvesterID)
	if !ok {
		wanted = jobs.DefaultWanted
	}
	if wanted > ReducedHarvesters {
		memory.SetWantedOverride(mem, jobs.HarvesterID, ReducedHarvesters)
	}
	if len(room.SourceContainers()) > 0 {
		return Done
	}
	return InProgress
}

// HarvesterUpgrade undoes MinerCourierUpgrade when the source containers are
// gone: harvesters return to their default count and the miner upgrade is
// armed again.
type HarvesterUpgrade struct{}

func (HarvesterUpgrade) ID() string { return HarvesterUpgradeID }

func (HarvesterUpgrade) ShouldStart(room *world.RoomCache, states map[string]State) bool {
	return states[MinerCourierUpgradeID] == Done && len(room.SourceContainers()) == 0
}

func (HarvesterUpgrade) Run(room *world.RoomCache, _ map[string]State) State {
	mem := room.Room().Memory()
	memory.SetWantedOverride(mem, jobs.HarvesterID, jobs.DefaultWanted)
	mem.GetOrCreateObject(memory.KeyUpgrades).SetString(MinerCourierUpgradeID, string(NotStartedYet))
	return NotStartedYet
}
