package jobs

import (
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/world"
)

// minSpawnEnergyForWithdraw keeps upgraders from draining an almost empty spawn.
const minSpawnEnergyForWithdraw = 10

func (e *Env) harvest(u world.Unit) {
	src, ok := e.Room.FindNearestSource(u.Pos())
	if !ok {
		return
	}
	e.harvestFrom(u, src)
}

func (e *Env) harvestFrom(u world.Unit, src world.Source) {
	switch r := u.Harvest(src); r {
	case world.OK:
	case world.ErrNotInRange:
		e.moveTo(u, src.Pos())
	default:
		e.unexpected(u, "harvest", src, r)
	}
}

// deliver fills the nearest spawn, then extensions, then any container.
func (e *Env) deliver(u world.Unit) {
	if target, ok := e.deliveryTarget(u.Pos()); ok {
		e.transferTo(u, target)
	}
}

func (e *Env) deliveryTarget(from world.Position) (world.Object, bool) {
	if s, ok := world.Nearest(from, e.Room.Spawns(), hasFree[world.Spawn]); ok {
		return s, true
	}
	if s, ok := world.Nearest(from, e.Room.Extensions(), hasFreeStructure); ok {
		return s, true
	}
	if t, ok := world.Nearest(from, e.Room.Towers(), hasFree[world.Tower]); ok {
		return t, true
	}
	if s, ok := world.Nearest(from, e.Room.Containers(), hasFreeStructure); ok {
		return s, true
	}
	return nil, false
}

func (e *Env) transferTo(u world.Unit, target world.Object) {
	switch r := u.Transfer(target); r {
	case world.OK:
	case world.ErrNotInRange:
		e.moveTo(u, target.Pos())
	default:
		e.unexpected(u, "transfer", target, r)
	}
}

func (e *Env) withdrawFrom(u world.Unit, target world.Object) {
	switch r := u.Withdraw(target); r {
	case world.OK:
	case world.ErrNotInRange:
		e.moveTo(u, target.Pos())
	default:
		e.unexpected(u, "withdraw", target, r)
	}
}

// pickupDrops walks to the nearest drop and picks it up. It reports whether a
// drop was found.
func (e *Env) pickupDrops(u world.Unit) bool {
	d, ok := world.Nearest(u.Pos(), e.Room.Room().Drops(), nil)
	if !ok {
		return false
	}
	switch r := u.Pickup(d); r {
	case world.OK:
	case world.ErrNotInRange:
		e.moveTo(u, d.Pos())
	default:
		e.unexpected(u, "pickup", d, r)
	}
	return true
}

// retire walks a unit flagged for self-retirement to the nearest spawn and
// recycles it. It reports whether the unit is retiring.
func (e *Env) retire(u world.Unit) bool {
	if !u.Memory().GetBool(memory.KeySuicide) {
		return false
	}
	spawn, ok := e.Room.FindNearestSpawn(u.Pos())
	if !ok {
		return true
	}
	switch r := spawn.Recycle(u); r {
	case world.OK:
	case world.ErrNotInRange:
		e.moveTo(u, spawn.Pos())
	default:
		e.unexpected(u, "recycle", spawn, r)
	}
	return true
}

func hasFree[T world.StoreHolder](s T) bool { return s.Store().Free() > 0 }

func hasFreeStructure(s world.Structure) bool {
	h, ok := s.(world.StoreHolder)
	return ok && h.Store().Free() > 0
}

func hasEnergyStructure(s world.Structure) bool {
	h, ok := s.(world.StoreHolder)
	return ok && h.Store().Used > 0
}
