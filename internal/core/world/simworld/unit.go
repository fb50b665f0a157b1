package simworld

import (
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/world"
)

type Unit struct {
	base
	game     *Game
	room     *Room
	name     string
	my       bool
	body     []world.PartKind
	used     int
	ttl      int
	hits     int
	spawning bool
	mem      memory.Object

	said  string
	acted map[string]bool
}

var _ world.Unit = (*Unit)(nil)

func (u *Unit) Name() string           { return u.name }
func (u *Unit) My() bool               { return u.my }
func (u *Unit) Spawning() bool         { return u.spawning }
func (u *Unit) Body() []world.PartKind { return append([]world.PartKind(nil), u.body...) }
func (u *Unit) TicksToLive() int       { return u.ttl }
func (u *Unit) Hits() int              { return u.hits }
func (u *Unit) HitsMax() int           { return len(u.body) * HitsPerBodyPart }
func (u *Unit) Said() string           { return u.said }
func (u *Unit) Store() world.Store {
	return world.Store{Used: u.used, Capacity: world.CountParts(u.body, world.Carry) * CarryPerPart}
}

// Memory lives under global creeps.<name>; hostile units get a detached object.
func (u *Unit) Memory() memory.Object {
	if !u.my {
		if u.mem == nil {
			u.mem = memory.New()
		}
		return u.mem
	}
	return memory.Units(u.game.mem).GetOrCreateObject(u.name)
}

// SetEnergy, SetTicksToLive and SetHits are test hooks.
func (u *Unit) SetEnergy(v int)      { u.used = min(v, u.Store().Capacity) }
func (u *Unit) SetTicksToLive(v int) { u.ttl = v }
func (u *Unit) SetHits(v int)        { u.hits = v }

// Kill removes the unit as if its lifetime expired.
func (u *Unit) Kill() { u.game.kill(u) }

func (u *Unit) Say(msg string) { u.said = msg }

// once claims the intent slot for kind this tick.
func (u *Unit) once(kind string) bool {
	if u.acted[kind] {
		return false
	}
	u.acted[kind] = true
	return true
}

func (u *Unit) parts(kind world.PartKind) int {
	return world.CountParts(u.body, kind)
}

func (u *Unit) precheck(kind string, part world.PartKind) world.Result {
	if u.dead || !u.my {
		return world.ErrNotOwner
	}
	if u.spawning {
		return world.ErrBusy
	}
	if part != "" && u.parts(part) == 0 {
		return world.ErrNoBodyPart
	}
	if u.acted[kind] {
		return world.ErrBusy
	}
	return world.OK
}

func (u *Unit) MoveTo(target world.Position) world.Result {
	if r := u.precheck("move", world.Move); r != world.OK {
		return r
	}
	if u.pos == target {
		return world.OK
	}
	u.once("move")
	u.pos = u.pos.StepToward(target)
	return world.OK
}

func (u *Unit) Harvest(source world.Source) world.Result {
	if r := u.precheck("harvest", world.Work); r != world.OK {
		return r
	}
	src, ok := source.(*Source)
	if !ok || src.dead {
		return world.ErrInvalidTarget
	}
	if !u.pos.IsNearTo(src.pos) {
		return world.ErrNotInRange
	}
	if src.energy == 0 {
		return world.ErrNotEnough
	}
	u.once("harvest")
	amount := min(u.parts(world.Work)*HarvestPerWork, src.energy)
	src.energy -= amount

	kept := min(amount, u.Store().Free())
	u.used += kept
	excess := amount - kept
	if excess == 0 {
		return world.OK
	}
	if c := u.room.containerAt(u.pos); c != nil {
		n := min(excess, c.capacity-c.used)
		c.used += n
		excess -= n
	}
	if excess > 0 {
		u.room.AddDrop(u.pos.X, u.pos.Y, excess)
	}
	return world.OK
}

func (u *Unit) Transfer(target world.Object) world.Result {
	if r := u.precheck("transfer", ""); r != world.OK {
		return r
	}
	if u.used == 0 {
		return world.ErrNotEnough
	}
	if !target.Exists() {
		return world.ErrInvalidTarget
	}
	if !u.pos.IsNearTo(target.Pos()) {
		return world.ErrNotInRange
	}
	switch t := target.(type) {
	case *Structure:
		return u.transferTo(&t.used, t.capacity)
	case *Spawn:
		return u.transferTo(&t.used, t.capacity)
	case *Tower:
		return u.transferTo(&t.used, t.capacity)
	case *Unit:
		return u.transferTo(&t.used, t.Store().Capacity)
	}
	return world.ErrInvalidTarget
}

func (u *Unit) transferTo(used *int, capacity int) world.Result {
	free := capacity - *used
	if free <= 0 {
		return world.ErrFull
	}
	u.once("transfer")
	n := min(u.used, free)
	u.used -= n
	*used += n
	return world.OK
}

func (u *Unit) Withdraw(target world.Object) world.Result {
	if r := u.precheck("withdraw", ""); r != world.OK {
		return r
	}
	if u.Store().Free() == 0 {
		return world.ErrFull
	}
	if !target.Exists() {
		return world.ErrInvalidTarget
	}
	if !u.pos.IsNearTo(target.Pos()) {
		return world.ErrNotInRange
	}
	var used *int
	switch t := target.(type) {
	case *Structure:
		used = &t.used
	case *Spawn:
		used = &t.used
	case *Tower:
		used = &t.used
	default:
		return world.ErrInvalidTarget
	}
	if *used == 0 {
		return world.ErrNotEnough
	}
	u.once("withdraw")
	n := min(*used, u.Store().Free())
	*used -= n
	u.used += n
	return world.OK
}

func (u *Unit) Pickup(drop world.Drop) world.Result {
	if r := u.precheck("pickup", ""); r != world.OK {
		return r
	}
	d, ok := drop.(*Drop)
	if !ok || d.dead {
		return world.ErrInvalidTarget
	}
	if u.Store().Free() == 0 {
		return world.ErrFull
	}
	if !u.pos.IsNearTo(d.pos) {
		return world.ErrNotInRange
	}
	u.once("pickup")
	n := min(d.amount, u.Store().Free())
	d.amount -= n
	u.used += n
	if d.amount == 0 {
		d.dead = true
	}
	return world.OK
}

func (u *Unit) Build(site world.ConstructionSite) world.Result {
	if r := u.precheck("work", world.Work); r != world.OK {
		return r
	}
	s, ok := site.(*ConstructionSite)
	if !ok || s.dead {
		return world.ErrInvalidTarget
	}
	if u.used == 0 {
		return world.ErrNotEnough
	}
	if !u.pos.InRangeTo(s.pos, BuildRange) {
		return world.ErrNotInRange
	}
	u.once("work")
	n := min(u.parts(world.Work)*BuildPerWork, u.used, s.total-s.progress)
	u.used -= n
	s.progress += n
	if s.progress >= s.total {
		u.room.completeSite(s)
	}
	return world.OK
}

func (u *Unit) Repair(target world.Structure) world.Result {
	if r := u.precheck("work", world.Work); r != world.OK {
		return r
	}
	var s *Structure
	switch t := target.(type) {
	case *Structure:
		s = t
	case *Spawn:
		s = &t.Structure
	case *Tower:
		s = &t.Structure
	default:
		return world.ErrInvalidTarget
	}
	if s.dead {
		return world.ErrInvalidTarget
	}
	if u.used == 0 {
		return world.ErrNotEnough
	}
	if !u.pos.InRangeTo(s.pos, BuildRange) {
		return world.ErrNotInRange
	}
	u.once("work")
	energy := min(u.parts(world.Work), u.used)
	u.used -= energy
	s.hits = min(s.hits+energy*RepairPerEnergy, s.hitsMax)
	return world.OK
}

func (u *Unit) UpgradeController(controller world.Controller) world.Result {
	if r := u.precheck("work", world.Work); r != world.OK {
		return r
	}
	c, ok := controller.(*Controller)
	if !ok || c.dead {
		return world.ErrInvalidTarget
	}
	if !c.my {
		return world.ErrNotOwner
	}
	if u.used == 0 {
		return world.ErrNotEnough
	}
	if !u.pos.InRangeTo(c.pos, BuildRange) {
		return world.ErrNotInRange
	}
	u.once("work")
	energy := min(u.parts(world.Work)*UpgradePerWork, u.used)
	u.used -= energy
	c.addProgress(energy)
	return world.OK
}

func (u *Unit) Attack(target world.Unit) world.Result {
	if r := u.precheck("attack", world.Attack); r != world.OK {
		return r
	}
	t, ok := target.(*Unit)
	if !ok || t.dead {
		return world.ErrInvalidTarget
	}
	if !u.pos.IsNearTo(t.pos) {
		return world.ErrNotInRange
	}
	u.once("attack")
	t.hits -= u.parts(world.Attack) * AttackPerPart
	if t.hits <= 0 {
		u.game.kill(t)
	}
	return world.OK
}
