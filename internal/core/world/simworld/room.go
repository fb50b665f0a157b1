package simworld

import (
	"fmt"

	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/world"
)

type Room struct {
	game       *Game
	name       string
	dead       bool
	controller *Controller

	sources    []*Source
	structures []*Structure
	spawns     []*Spawn
	towers     []*Tower
	units      []*Unit
	sites      []*ConstructionSite
	drops      []*Drop
}

var _ world.Room = (*Room)(nil)

func (r *Room) Name() string { return r.name }
func (r *Room) Exists() bool { return !r.dead }

func (r *Room) Controller() (world.Controller, bool) {
	if r.controller == nil {
		return nil, false
	}
	return r.controller, true
}

func (r *Room) Memory() memory.Object {
	return memory.Rooms(r.game.mem).GetOrCreateObject(r.name)
}

func (r *Room) EnergyAvailable() int {
	total := 0
	for _, s := range r.energyStructures() {
		total += s.used
	}
	return total
}

func (r *Room) EnergyCapacityAvailable() int {
	total := 0
	for _, s := range r.energyStructures() {
		total += s.capacity
	}
	return total
}

// energyStructures are the spawns then extensions, the order energy is spent in.
func (r *Room) energyStructures() []*Structure {
	out := make([]*Structure, 0, len(r.spawns)+len(r.structures))
	for _, s := range r.spawns {
		if s.my && !s.dead {
			out = append(out, &s.Structure)
		}
	}
	for _, s := range r.structures {
		if s.kind == world.KindExtension && s.my && !s.dead {
			out = append(out, s)
		}
	}
	return out
}

func (r *Room) spendEnergy(first *Structure, amount int) {
	take := func(s *Structure) {
		n := min(s.used, amount)
		s.used -= n
		amount -= n
	}
	if first != nil {
		take(first)
	}
	for _, s := range r.energyStructures() {
		if amount == 0 {
			return
		}
		take(s)
	}
}

func (r *Room) Units() []world.Unit {
	out := make([]world.Unit, 0, len(r.units))
	for _, u := range r.units {
		if !u.dead {
			out = append(out, u)
		}
	}
	return out
}

func (r *Room) Sources() []world.Source {
	out := make([]world.Source, 0, len(r.sources))
	for _, s := range r.sources {
		out = append(out, s)
	}
	return out
}

// Structures includes spawns.
func (r *Room) Structures() []world.Structure {
	out := make([]world.Structure, 0, len(r.spawns)+len(r.towers)+len(r.structures))
	for _, s := range r.spawns {
		if !s.dead {
			out = append(out, s)
		}
	}
	for _, t := range r.towers {
		if !t.dead {
			out = append(out, t)
		}
	}
	for _, s := range r.structures {
		if !s.dead {
			out = append(out, s)
		}
	}
	return out
}

func (r *Room) Spawns() []world.Spawn {
	out := make([]world.Spawn, 0, len(r.spawns))
	for _, s := range r.spawns {
		if !s.dead {
			out = append(out, s)
		}
	}
	return out
}

func (r *Room) ConstructionSites() []world.ConstructionSite {
	out := make([]world.ConstructionSite, 0, len(r.sites))
	for _, s := range r.sites {
		if !s.dead {
			out = append(out, s)
		}
	}
	return out
}

func (r *Room) Drops() []world.Drop {
	out := make([]world.Drop, 0, len(r.drops))
	for _, d := range r.drops {
		if !d.dead {
			out = append(out, d)
		}
	}
	return out
}

func (r *Room) pos(x, y int) world.Position {
	return world.Position{X: x, Y: y, Room: r.name}
}

func (r *Room) AddSource(x, y int) *Source {
	s := &Source{base: r.game.newBase("src", r.pos(x, y)), energy: SourceCapacity, capacity: SourceCapacity}
	r.sources = append(r.sources, s)
	r.game.register(s)
	return s
}

func (r *Room) AddSpawn(name string, x, y int) *Spawn {
	s := &Spawn{
		Structure: *r.newStructure(world.KindSpawn, x, y, true),
		name:      name,
		room:      r,
	}
	s.used = SpawnCapacity
	r.spawns = append(r.spawns, s)
	r.game.register(s)
	return s
}

// AddStructure places an owned structure. Use AddSpawn for spawns.
func (r *Room) AddStructure(kind world.StructureKind, x, y int) (*Structure, error) {
	if kind == world.KindSpawn || kind == world.KindController {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStructure, kind)
	}
	if kind == world.KindTower {
		return &r.AddTower(x, y).Structure, nil
	}
	s := r.newStructure(kind, x, y, true)
	r.structures = append(r.structures, s)
	r.game.register(s)
	return s, nil
}

func (r *Room) AddExtension(x, y int) *Structure {
	s, _ := r.AddStructure(world.KindExtension, x, y)
	return s
}

func (r *Room) AddContainer(x, y int) *Structure {
	s, _ := r.AddStructure(world.KindContainer, x, y)
	return s
}

func (r *Room) AddRampart(x, y int) *Structure {
	s, _ := r.AddStructure(world.KindRampart, x, y)
	return s
}

func (r *Room) newStructure(kind world.StructureKind, x, y int, my bool) *Structure {
	hits := structureHits[kind]
	if hits == 0 {
		hits = 1000
	}
	return &Structure{
		base:     r.game.newBase(string(kind), r.pos(x, y)),
		kind:     kind,
		hits:     hits,
		hitsMax:  hits,
		my:       my,
		capacity: storeCapacity[kind],
	}
}

func (r *Room) AddConstructionSite(kind world.StructureKind, x, y int) *ConstructionSite {
	total := siteTotals[kind]
	if total == 0 {
		total = 1000
	}
	s := &ConstructionSite{base: r.game.newBase("site", r.pos(x, y)), kind: kind, total: total}
	r.sites = append(r.sites, s)
	r.game.register(s)
	return s
}

func (r *Room) AddDrop(x, y, amount int) *Drop {
	for _, d := range r.drops {
		if !d.dead && d.pos == r.pos(x, y) {
			d.amount += amount
			return d
		}
	}
	d := &Drop{base: r.game.newBase("drop", r.pos(x, y)), amount: amount}
	r.drops = append(r.drops, d)
	r.game.register(d)
	return d
}

// AddUnit places a finished unit owned by us with the given job label.
func (r *Room) AddUnit(name, job string, x, y int, body ...world.PartKind) *Unit {
	u := r.game.newUnit(r, name, r.pos(x, y), body, true)
	if job != "" {
		u.Memory().SetString(memory.KeyJob, job)
	}
	r.units = append(r.units, u)
	return u
}

func (r *Room) AddHostile(x, y int, body ...world.PartKind) *Unit {
	u := r.game.newUnit(r, "", r.pos(x, y), body, false)
	r.units = append(r.units, u)
	return u
}

func (r *Room) containerAt(p world.Position) *Structure {
	for _, s := range r.structures {
		if !s.dead && s.kind == world.KindContainer && s.pos == p && s.used < s.capacity {
			return s
		}
	}
	return nil
}

func (r *Room) completeSite(site *ConstructionSite) {
	site.dead = true
	if site.kind == world.KindSpawn {
		r.AddSpawn(r.game.nextName("Spawn"), site.pos.X, site.pos.Y).used = 0
		return
	}
	s, err := r.AddStructure(site.kind, site.pos.X, site.pos.Y)
	if err == nil && (site.kind == world.KindRampart || site.kind == world.KindWall) {
		s.hits = 1
	}
}

// Remove marks the room as gone from view.
func (r *Room) Remove() {
	r.dead = true
}
