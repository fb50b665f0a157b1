package simworld

import (
	"github.com/zeusync/colony/internal/core/world"
)

const (
	TowerEnergyPerShot = 10
	TowerAttackPower   = 600
	TowerOptimalRange  = 5
	TowerFalloffRange  = 20
)

type Tower struct {
	Structure
	room  *Room
	fired bool
}

var _ world.Tower = (*Tower)(nil)

// Attack hits any hostile in the same room. Damage falls off linearly to a
// quarter between the optimal and the falloff range.
func (t *Tower) Attack(target world.Unit) world.Result {
	if t.dead {
		return world.ErrInvalidTarget
	}
	if !t.my {
		return world.ErrNotOwner
	}
	if t.fired {
		return world.ErrBusy
	}
	if t.used < TowerEnergyPerShot {
		return world.ErrNotEnough
	}
	u, ok := target.(*Unit)
	if !ok || u.dead || u.my {
		return world.ErrInvalidTarget
	}
	if u.pos.Room != t.pos.Room {
		return world.ErrNotInRange
	}
	t.fired = true
	t.used -= TowerEnergyPerShot
	u.hits -= TowerDamage(t.pos.RangeTo(u.pos))
	if u.hits <= 0 {
		t.room.game.kill(u)
	}
	return world.OK
}

func TowerDamage(rng int) int {
	switch {
	case rng <= TowerOptimalRange:
		return TowerAttackPower
	case rng >= TowerFalloffRange:
		return TowerAttackPower / 4
	}
	span := TowerFalloffRange - TowerOptimalRange
	return TowerAttackPower - TowerAttackPower*3*(rng-TowerOptimalRange)/(4*span)
}

// AddTower places an owned, empty tower.
func (r *Room) AddTower(x, y int) *Tower {
	t := &Tower{Structure: *r.newStructure(world.KindTower, x, y, true), room: r}
	r.towers = append(r.towers, t)
	r.game.register(t)
	return t
}
