package jobs

import (
	"github.com/zeusync/colony/internal/core/body"
	"github.com/zeusync/colony/internal/core/world"
)

const UpgraderID = "upgrader"

// Upgrader feeds the room controller, refilling from containers or the spawn.
type Upgrader struct {
	env *Env
}

func NewUpgrader(env *Env) *Upgrader { return &Upgrader{env: env} }

func (up *Upgrader) ID() string                   { return UpgraderID }
func (up *Upgrader) Icon() string                 { return "🗼" }
func (up *Upgrader) Priority() int                { return DefaultPriority }
func (up *Upgrader) WantedCount() int             { return DefaultWanted }
func (up *Upgrader) BodyPartGroups() []body.Group { return DefaultBodyPartGroups() }

func (up *Upgrader) Run(u world.Unit) error {
	env := up.env
	if env.retire(u) {
		return nil
	}

	if Upgrading.Update(u) {
		ctrl, ok := env.Room.Room().Controller()
		if !ok {
			return nil
		}
		switch r := u.UpgradeController(ctrl); r {
		case world.OK:
		case world.ErrNotInRange:
			env.moveTo(u, ctrl.Pos())
		default:
			u.Say(AnomalyGlyph)
			env.unexpected(u, "upgrade", ctrl, r)
		}
		return nil
	}

	if ct, ok := world.Nearest(u.Pos(), env.Room.Containers(), hasEnergyStructure); ok {
		env.withdrawFrom(u, ct)
		return nil
	}
	spawn, ok := env.Room.FindNearestSpawn(u.Pos())
	if !ok || spawn.Store().Used < minSpawnEnergyForWithdraw {
		env.harvest(u)
		return nil
	}
	env.withdrawFrom(u, spawn)
	return nil
}
