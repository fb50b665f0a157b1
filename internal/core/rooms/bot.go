package rooms

import (
	"slices"

	"github.com/zeusync/colony/internal/core/creeps"
	"github.com/zeusync/colony/internal/core/events/bus"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/stats"
	"github.com/zeusync/colony/internal/core/world"
	"github.com/zeusync/colony/pkg/ordered"
)

const DefaultMemoryCleanEveryTicks = 100

type BotOptions struct {
	Wanted                map[string]int
	UpgradeEveryTicks     int
	MemoryCleanEveryTicks int
	HeapLimitBytes        uint64
	Namer                 creeps.Namer
}

// Bot is the top-level loop. It keeps one Manager per owned room.
type Bot struct {
	game     world.Game
	opts     BotOptions
	managers *ordered.Map[string, *Manager]
	tracker  *stats.Tracker
	heap     *stats.HeapMonitor
	bus      bus.EventBus
	logger   log.Log

	cleaned bool
	report  stats.HeapReport
}

func NewBot(game world.Game, opts BotOptions, tracker *stats.Tracker, b bus.EventBus, logger log.Log) *Bot {
	if logger == nil {
		logger = log.NewNop()
	}
	if opts.MemoryCleanEveryTicks <= 0 {
		opts.MemoryCleanEveryTicks = DefaultMemoryCleanEveryTicks
	}
	return &Bot{
		game:     game,
		opts:     opts,
		managers: ordered.NewMap[string, *Manager](),
		tracker:  tracker,
		heap:     stats.NewHeapMonitor(opts.HeapLimitBytes, logger),
		bus:      b,
		logger:   logger,
	}
}

func (b *Bot) Game() world.Game           { return b.game }
func (b *Bot) Tracker() *stats.Tracker    { return b.tracker }
func (b *Bot) LastHeap() stats.HeapReport { return b.report }

func (b *Bot) Manager(room string) (*Manager, bool) {
	return b.managers.Get(room)
}

// Rooms lists managed room names in the order they were adopted.
func (b *Bot) Rooms() []string { return b.managers.Keys() }

// Loop runs one tick over every managed room. The first dispatch failure
// stops the loop and is returned; rooms after it do not run this tick.
func (b *Bot) Loop() error {
	now := b.game.Time()
	if err := b.syncRooms(now); err != nil {
		return err
	}
	b.cleanMemory(now)

	defer func() { b.report = b.heap.Observe(now) }()

	for name, m := range b.managers.All() {
		room, ok := b.game.Room(name)
		if !ok {
			continue
		}
		if err := m.Tick(room); err != nil {
			return err
		}
	}
	return nil
}

func owned(r world.Room) bool {
	if !r.Exists() {
		return false
	}
	c, ok := r.Controller()
	return ok && c.My()
}

func (b *Bot) syncRooms(now int64) error {
	visible := make(map[string]world.Room)
	for _, r := range b.game.Rooms() {
		if owned(r) {
			visible[r.Name()] = r
		}
	}

	for _, name := range b.managers.Keys() {
		if _, ok := visible[name]; ok {
			continue
		}
		b.managers.Delete(name)
		b.logger.Info("room removed", log.Room(name), log.Tick(now))
		b.publish(bus.NewEvent(bus.KindRoomRemoved, now, name))
	}

	names := make([]string, 0, len(visible))
	for name := range visible {
		if !b.managers.Has(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		opts := Options{
			Wanted:            b.opts.Wanted,
			UpgradeEveryTicks: b.opts.UpgradeEveryTicks,
			Namer:             b.opts.Namer,
			Bus:               b.bus,
			Logger:            b.logger,
		}
		if b.tracker != nil {
			opts.Kills = b.tracker
		}
		m, err := NewManager(b.game, visible[name], opts)
		if err != nil {
			return err
		}
		b.managers.Set(name, m)
		b.logger.Info("room added", log.Room(name), log.Tick(now))
		b.publish(bus.NewEvent(bus.KindRoomAdded, now, name))
	}
	return nil
}

func (b *Bot) cleanMemory(now int64) {
	if b.cleaned && (now+cleanOffset)%int64(b.opts.MemoryCleanEveryTicks) != 0 {
		return
	}
	b.cleaned = true
	if removed := CleanMemory(b.game); len(removed) > 0 {
		b.logger.Debug("unit memory cleaned", log.Strings("units", removed), log.Tick(now))
	}
}

func (b *Bot) publish(e bus.Event) {
	if b.bus == nil {
		return
	}
	if err := b.bus.Publish(e); err != nil {
		b.logger.Warn("event handler failed", log.String("kind", string(e.Kind)), log.Error(err))
	}
}

// Status returns the status of every managed room.
func (b *Bot) Status() []Status {
	out := make([]Status, 0, b.managers.Len())
	for _, m := range b.managers.Values() {
		out = append(out, m.Status())
	}
	return out
}
