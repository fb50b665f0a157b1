package jobs

import (
	"github.com/zeusync/colony/internal/core/body"
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/world"
)

const GuardID = "guard"

var guardGroups = []body.Group{
	body.Variable(0, 5, world.Tough),
	body.Variable(1, 3, world.Attack),
	body.Variable(1, 3, world.Move),
	body.Fixed(1, world.Carry),
}

// Guard attacks hostiles, following a persisted enemy first. One guard is
// wanted per rampart. Idle guards collect drops and wait on a rampart.
type Guard struct {
	env *Env
}

func NewGuard(env *Env) *Guard { return &Guard{env: env} }

func (g *Guard) ID() string                   { return GuardID }
func (g *Guard) Icon() string                 { return "🛡️" }
func (g *Guard) Priority() int                { return DefaultPriority }
func (g *Guard) BodyPartGroups() []body.Group { return guardGroups }

func (g *Guard) WantedCount() int {
	return len(g.env.Room.Ramparts())
}

func (g *Guard) Run(u world.Unit) error {
	env := g.env
	if env.retire(u) {
		return nil
	}

	if id, ok := memory.Target(u.Memory()); ok {
		if enemy, ok := g.hostile(id); ok {
			g.attack(u, enemy)
			return nil
		}
		memory.ClearTarget(u.Memory())
	}

	if enemy, ok := world.Nearest(u.Pos(), env.Room.Hostiles(), nil); ok {
		memory.SetTarget(u.Memory(), enemy.ID())
		g.attack(u, enemy)
		return nil
	}

	store := u.Store()
	if store.Free() > 0 && env.pickupDrops(u) {
		return nil
	}
	if store.Used > 0 {
		env.deliver(u)
		return nil
	}
	if rampart, ok := world.Nearest(u.Pos(), env.Room.Ramparts(), nil); ok && u.Pos() != rampart.Pos() {
		env.moveTo(u, rampart.Pos())
	}
	return nil
}

func (g *Guard) hostile(id string) (world.Unit, bool) {
	for _, h := range g.env.Room.Hostiles() {
		if h.ID() == id && h.Exists() {
			return h, true
		}
	}
	return nil, false
}

func (g *Guard) attack(u, enemy world.Unit) {
	switch r := u.Attack(enemy); r {
	case world.OK:
	case world.ErrNotInRange:
		g.env.moveTo(u, enemy.Pos())
		return
	default:
		g.env.unexpected(u, "attack", enemy, r)
		return
	}
	if enemy.Exists() {
		return
	}
	memory.ClearTarget(u.Memory())
	g.env.log().Info("hostile killed", log.Unit(u.ID()), log.String("hostile", enemy.ID()), log.Room(g.env.Room.Name()))
	if g.env.Kills != nil {
		g.env.Kills.RecordKill(g.env.Room.Name(), GuardID)
	}
}
