// Package app runs the colony: restore, tick loop, snapshots and the operator feed.
package app

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/colony/internal/config"
	"github.com/zeusync/colony/internal/core/creeps"
	"github.com/zeusync/colony/internal/core/events/bus"
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/rooms"
	"github.com/zeusync/colony/internal/core/stats"
	"github.com/zeusync/colony/internal/core/world/simworld"
	"github.com/zeusync/colony/internal/persistence/snapshot"
	"github.com/zeusync/colony/internal/persistence/sqlitestore"
	"github.com/zeusync/colony/internal/server"
)

type Runtime struct {
	cfg     config.Config
	game    *simworld.Game
	bot     *rooms.Bot
	bus     bus.EventBus
	tracker *stats.Tracker
	store   *sqlitestore.Store
	feed    *server.Feed
	board   *Board
	logger  log.Log

	lastErr error
	subs    []bus.Subscription
}

// NewRuntime wires the parts together. store and feed may be nil.
func NewRuntime(
	cfg config.Config,
	game *simworld.Game,
	bot *rooms.Bot,
	b bus.EventBus,
	tracker *stats.Tracker,
	store *sqlitestore.Store,
	feed *server.Feed,
	board *Board,
	logger log.Log,
) *Runtime {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Runtime{
		cfg:     cfg,
		game:    game,
		bot:     bot,
		bus:     b,
		tracker: tracker,
		store:   store,
		feed:    feed,
		board:   board,
		logger:  logger.With(log.String("component", "runtime")),
	}
}

func (r *Runtime) Game() *simworld.Game { return r.game }
func (r *Runtime) Bot() *rooms.Bot      { return r.bot }
func (r *Runtime) Board() *Board        { return r.board }

// Restore loads the newest snapshot, when there is one, and applies the
// config flags on top of it.
func (r *Runtime) Restore(ctx context.Context) error {
	if r.store != nil {
		rec, err := r.store.Latest(ctx)
		switch {
		case errors.Is(err, sqlitestore.ErrNoSnapshot):
			r.logger.Info("no snapshot, starting fresh")
		case err != nil:
			return err
		default:
			snap, err := snapshot.Decode(rec.Data)
			if err != nil {
				return err
			}
			r.game.Restore(snap.Memory)
			r.game.SetTime(snap.Header.Tick)
			r.logger.Info("snapshot restored", log.Tick(snap.Header.Tick), log.Int("bytes", snap.Header.Size))
		}
	}

	global := r.game.Memory()
	if r.cfg.ShowJobs {
		memory.SetConfigBool(global, memory.KeyShowJobs, true)
	}
	if r.cfg.ShowPaths {
		memory.SetConfigBool(global, memory.KeyShowPaths, true)
	}
	return r.attach()
}

func (r *Runtime) attach() error {
	if r.tracker != nil {
		if err := r.tracker.Attach(); err != nil {
			return err
		}
	}
	if r.feed == nil || r.bus == nil || r.subs != nil {
		return nil
	}
	sub, err := r.bus.SubscribeAll(func(e bus.Event) error {
		r.feed.Broadcast(server.TypeEvent, e)
		return nil
	})
	if err != nil {
		return err
	}
	r.subs = append(r.subs, sub)
	return nil
}

// Step applies pending operator commands, runs one bot loop, persists and
// publishes, then advances the world. A dispatch failure is logged and the
// tick is still completed.
func (r *Runtime) Step(ctx context.Context) error {
	r.drainCommands()

	now := r.game.Time()
	if err := r.loopResult(r.bot.Loop(), now); err != nil {
		return err
	}

	if err := r.maybeSnapshot(ctx, now); err != nil {
		r.logger.Warn("snapshot failed", log.Error(err), log.Tick(now))
	}
	r.publishStatus(now)

	r.game.Tick()
	return nil
}

// loopResult swallows a dispatch failure after logging it. The failure is
// reported in the status until the next clean loop.
func (r *Runtime) loopResult(err error, now int64) error {
	var de *creeps.DispatchError
	switch {
	case err == nil:
		r.lastErr = nil
	case errors.As(err, &de):
		r.lastErr = err
		r.logger.Error("tick aborted by dispatch failure", log.Error(err), log.Tick(now))
	default:
		return err
	}
	return nil
}

func (r *Runtime) drainCommands() {
	if r.feed == nil {
		return
	}
	for {
		select {
		case cmd := <-r.feed.Commands():
			if err := r.bot.Apply(cmd); err != nil {
				r.logger.Warn("operator command rejected", log.String("command", cmd.Name), log.Error(err))
			}
		default:
			return
		}
	}
}

func (r *Runtime) maybeSnapshot(ctx context.Context, now int64) error {
	every := int64(r.cfg.Persistence.SnapshotEveryTicks)
	if r.store == nil || every <= 0 || now == 0 || now%every != 0 {
		return nil
	}
	return r.Snapshot(ctx)
}

// Snapshot persists global memory now and prunes old snapshots.
func (r *Runtime) Snapshot(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	now := r.game.Time()
	data, h, err := snapshot.Encode(r.game.Memory(), now)
	if err != nil {
		return err
	}
	if _, err := r.store.Save(ctx, h, data); err != nil {
		return err
	}
	pruned, err := r.store.Prune(ctx, r.cfg.Persistence.Keep)
	if err != nil {
		return err
	}
	r.logger.Debug("snapshot persisted", log.Int("bytes", len(data)), log.Int64("pruned", pruned), log.Tick(now))
	if r.bus != nil {
		e := bus.NewEvent(bus.KindSnapshotPersisted, now, "").With("bytes", len(data)).With("digest", h.Digest)
		if err := r.bus.Publish(e); err != nil {
			r.logger.Warn("event handler failed", log.String("kind", string(e.Kind)), log.Error(err))
		}
	}
	return nil
}

func (r *Runtime) publishStatus(now int64) {
	st := Status{
		Tick:  now,
		Rooms: r.bot.Status(),
		Heap:  r.bot.LastHeap(),
	}
	if r.tracker != nil {
		st.Totals = r.tracker.Total()
	}
	if r.bus != nil {
		st.Events = r.bus.GetMetrics()
	}
	if r.lastErr != nil {
		st.LastError = r.lastErr.Error()
	}
	if r.board != nil {
		r.board.Set(st)
	}
	if r.feed != nil {
		r.feed.Broadcast(server.TypeStatus, st)
	}
}

// Run ticks until ctx is done or MaxTicks is reached, serving the feed
// alongside. A final snapshot is written on the way out.
func (r *Runtime) Run(ctx context.Context) error {
	if err := r.Restore(ctx); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return r.loop(ctx)
	})
	if r.feed != nil {
		g.Go(func() error { return r.feed.Serve(ctx) })
	}

	err := g.Wait()
	cancel()
	if serr := r.Snapshot(context.Background()); serr != nil {
		r.logger.Warn("final snapshot failed", log.Error(serr))
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *Runtime) loop(ctx context.Context) error {
	interval := r.cfg.TickInterval
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var ran int64
	for {
		if r.cfg.MaxTicks > 0 && ran >= r.cfg.MaxTicks {
			r.logger.Info("tick limit reached", log.Int64("ticks", ran))
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := r.Step(ctx); err != nil {
			return err
		}
		ran++
	}
}

// Close releases the store and the feed.
func (r *Runtime) Close() error {
	for _, sub := range r.subs {
		_ = r.bus.Unsubscribe(sub)
	}
	r.subs = nil
	if r.tracker != nil {
		r.tracker.Detach()
	}
	if r.feed != nil {
		r.feed.Close()
	}
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}
