// Package simworld is an in-memory tick world implementing the world contract.
// It models energy, production, unit lifetimes and the single-intent-per-kind
// rule closely enough to drive the controller end to end. Movement is a greedy
// step toward the target; there is no terrain.
package simworld

import (
	"fmt"
	"strconv"

	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/world"
)

type Game struct {
	time   int64
	mem    memory.Object
	consts world.Constants

	rooms   []*Room
	objects map[string]world.Object
	units   []*Unit
	pending []*Unit
	names   map[string]bool
	nextID  int
}

var _ world.Game = (*Game)(nil)

func New() *Game {
	return &Game{
		mem:     memory.New(),
		consts:  world.StandardConstants{},
		objects: make(map[string]world.Object),
		names:   make(map[string]bool),
	}
}

func (g *Game) Time() int64                { return g.time }
func (g *Game) Memory() memory.Object      { return g.mem }
func (g *Game) Constants() world.Constants { return g.consts }

// Restore replaces global memory, typically with a decoded snapshot.
func (g *Game) Restore(mem memory.Object) {
	if mem == nil {
		mem = memory.New()
	}
	g.mem = mem
}

// SetTime moves the clock, used when resuming from a snapshot.
func (g *Game) SetTime(t int64) { g.time = t }

func (g *Game) Rooms() []world.Room {
	out := make([]world.Room, 0, len(g.rooms))
	for _, r := range g.rooms {
		if !r.dead {
			out = append(out, r)
		}
	}
	return out
}

func (g *Game) Room(name string) (world.Room, bool) {
	r := g.room(name)
	if r == nil {
		return nil, false
	}
	return r, true
}

// SimRoom returns the concrete room for building layouts in tests.
func (g *Game) SimRoom(name string) (*Room, bool) {
	r := g.room(name)
	return r, r != nil
}

func (g *Game) room(name string) *Room {
	for _, r := range g.rooms {
		if r.name == name && !r.dead {
			return r
		}
	}
	return nil
}

func (g *Game) Units() []world.Unit {
	out := make([]world.Unit, 0, len(g.units))
	for _, u := range g.units {
		if !u.dead {
			out = append(out, u)
		}
	}
	return out
}

func (g *Game) Unit(id string) (world.Unit, bool) {
	o, ok := g.objects[id]
	if !ok || !o.Exists() {
		return nil, false
	}
	u, ok := o.(*Unit)
	if !ok {
		return nil, false
	}
	return u, true
}

func (g *Game) Object(id string) (world.Object, bool) {
	o, ok := g.objects[id]
	if !ok || !o.Exists() {
		return nil, false
	}
	return o, true
}

// AddRoom creates a visible room with a controller at level (0 means unowned).
func (g *Game) AddRoom(name string, level int) (*Room, error) {
	if g.room(name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateRoom, name)
	}
	r := &Room{game: g, name: name}
	r.controller = &Controller{
		base:  g.newBase("ctrl", world.Position{X: 25, Y: 25, Room: name}),
		level: level,
		my:    level > 0,
	}
	g.register(r.controller)
	g.rooms = append(g.rooms, r)
	return r, nil
}

// MustAddRoom is AddRoom for fixtures.
func (g *Game) MustAddRoom(name string, level int) *Room {
	r, err := g.AddRoom(name, level)
	if err != nil {
		panic(err)
	}
	return r
}

func (g *Game) newBase(prefix string, pos world.Position) base {
	g.nextID++
	return base{id: prefix + "-" + strconv.Itoa(g.nextID), pos: pos}
}

func (g *Game) register(o world.Object) {
	g.objects[o.ID()] = o
}

func (g *Game) nextName(prefix string) string {
	for {
		g.nextID++
		name := prefix + strconv.Itoa(g.nextID)
		if !g.names[name] {
			return name
		}
	}
}

func (g *Game) nameTaken(name string) bool {
	return g.names[name]
}

func (g *Game) newUnit(r *Room, name string, pos world.Position, body []world.PartKind, my bool) *Unit {
	b := g.newBase("unit", pos)
	if name == "" {
		name = b.id
	}
	u := &Unit{
		base:  b,
		game:  g,
		room:  r,
		name:  name,
		my:    my,
		body:  append([]world.PartKind(nil), body...),
		ttl:   UnitLifetime,
		hits:  len(body) * HitsPerBodyPart,
		acted: make(map[string]bool),
	}
	g.names[name] = true
	g.units = append(g.units, u)
	g.register(u)
	return u
}

// kill removes u and drops what it carried.
func (g *Game) kill(u *Unit) {
	if u.dead {
		return
	}
	u.dead = true
	if u.used > 0 {
		u.room.AddDrop(u.pos.X, u.pos.Y, u.used)
		u.used = 0
	}
}

// Tick advances the world by one step.
func (g *Game) Tick() {
	g.time++

	for _, r := range g.rooms {
		for _, s := range r.spawns {
			s.progress()
		}
		for _, t := range r.towers {
			t.fired = false
		}
	}

	for _, r := range g.rooms {
		for _, p := range g.pending {
			if p.room == r {
				r.units = append(r.units, p)
			}
		}
	}
	g.pending = g.pending[:0]

	for _, u := range g.units {
		u.said = ""
		clear(u.acted)
		if u.dead || u.spawning {
			continue
		}
		u.ttl--
		if u.ttl <= 0 || u.hits <= 0 {
			g.kill(u)
		}
	}

	for _, r := range g.rooms {
		if g.time%SourceRegenTicks == 0 {
			for _, s := range r.sources {
				s.energy = s.capacity
			}
		}
		if r.EnergyAvailable() < PassiveRegenCutoff {
			for _, s := range r.spawns {
				s.used = min(s.used+PassiveSpawnRegen, s.capacity)
			}
		}
		r.prune()
	}
	g.prune()
}

func (r *Room) prune() {
	r.units = keepAlive(r.units)
	r.drops = keepAlive(r.drops)
	r.sites = keepAlive(r.sites)
	for _, d := range r.drops {
		if d.amount == 0 {
			d.dead = true
		}
	}
}

func (g *Game) prune() {
	g.units = keepAlive(g.units)
	for id, o := range g.objects {
		if !o.Exists() {
			delete(g.objects, id)
		}
	}
}

type liveness interface{ Exists() bool }

func keepAlive[T liveness](items []T) []T {
	out := items[:0]
	for _, it := range items {
		if it.Exists() {
			out = append(out, it)
		}
	}
	return out
}
