package jobs

import (
	"github.com/zeusync/colony/internal/core/body"
	"github.com/zeusync/colony/internal/core/world"
)

const HarvesterID = "harvester"

// Harvester gathers from the nearest source until full, then delivers to
// spawns and extensions.
type Harvester struct {
	env *Env
}

func NewHarvester(env *Env) *Harvester { return &Harvester{env: env} }

func (h *Harvester) ID() string                   { return HarvesterID }
func (h *Harvester) Icon() string                 { return "🧺" }
func (h *Harvester) Priority() int                { return 0 }
func (h *Harvester) WantedCount() int             { return DefaultWanted }
func (h *Harvester) BodyPartGroups() []body.Group { return DefaultBodyPartGroups() }

func (h *Harvester) Run(u world.Unit) error {
	if h.env.retire(u) {
		return nil
	}
	if Delivering.Update(u) {
		h.env.deliver(u)
	} else {
		h.env.harvest(u)
	}
	return nil
}
