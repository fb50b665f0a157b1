package jobs

import (
	"github.com/zeusync/colony/internal/core/body"
	"github.com/zeusync/colony/internal/core/world"
)

var (
	_ Job       = (*Definition)(nil)
	_ SpawnHook = (*Definition)(nil)
	_ DeathHook = (*Definition)(nil)
)

// Definition is a Job assembled from plain values and callbacks. The built-in
// jobs are types of their own; Definition is for ad hoc jobs added to a
// catalog next to them, and for tests that need a job with fixed demand.
// Nil callbacks are no-ops; a nil Wanted means zero and nil Groups means the
// default template.
type Definition struct {
	Name     string
	Glyph    string
	Prio     int
	Wanted   func() int
	Groups   []body.Group
	Behavior func(u world.Unit) error
	Spawned  func(u world.Unit)
	Died     func(u world.Unit)
}

func (d *Definition) ID() string    { return d.Name }
func (d *Definition) Icon() string  { return d.Glyph }
func (d *Definition) Priority() int { return d.Prio }

func (d *Definition) WantedCount() int {
	if d.Wanted == nil {
		return 0
	}
	return d.Wanted()
}

func (d *Definition) BodyPartGroups() []body.Group {
	if d.Groups == nil {
		return DefaultBodyPartGroups()
	}
	return d.Groups
}

func (d *Definition) Run(u world.Unit) error {
	if d.Behavior == nil {
		return nil
	}
	return d.Behavior(u)
}

func (d *Definition) OnSpawn(u world.Unit) {
	if d.Spawned != nil {
		d.Spawned(u)
	}
}

func (d *Definition) OnDeath(u world.Unit) {
	if d.Died != nil {
		d.Died(u)
	}
}

// Const returns a WantedCount func for a fixed number.
func Const(n int) func() int {
	return func() int { return n }
}
