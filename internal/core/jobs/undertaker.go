package jobs

import (
	"github.com/zeusync/colony/internal/core/body"
	"github.com/zeusync/colony/internal/core/world"
)

const UndertakerID = "undertaker"

// undertakerMinPopulation is the colony size from which an undertaker pays off.
const undertakerMinPopulation = 9

var undertakerGroups = []body.Group{
	body.Variable(1, 5, world.Move),
	body.Fixed(1, world.Carry, world.Work),
}

// Undertaker collects dropped energy and stores it in a container. It is only
// wanted in a large colony without guards.
type Undertaker struct {
	env *Env
}

func NewUndertaker(env *Env) *Undertaker { return &Undertaker{env: env} }

func (ut *Undertaker) ID() string                   { return UndertakerID }
func (ut *Undertaker) Icon() string                 { return "⚰️" }
func (ut *Undertaker) Priority() int                { return 200 }
func (ut *Undertaker) BodyPartGroups() []body.Group { return undertakerGroups }

func (ut *Undertaker) WantedCount() int {
	pop := ut.env.Population
	if pop == nil {
		return 0
	}
	if pop.Total() >= undertakerMinPopulation && pop.Count(GuardID) == 0 {
		return 1
	}
	return 0
}

func (ut *Undertaker) Run(u world.Unit) error {
	env := ut.env
	if env.retire(u) {
		return nil
	}

	store := u.Store()
	if store.Free() > 0 && env.pickupDrops(u) {
		return nil
	}
	if store.Used == 0 {
		return nil
	}
	if ct, ok := world.Nearest(u.Pos(), env.Room.Containers(), hasFreeStructure); ok {
		env.transferTo(u, ct)
		return nil
	}
	env.deliver(u)
	return nil
}
