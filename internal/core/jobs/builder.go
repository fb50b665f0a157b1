package jobs

import (
	"sort"

	"github.com/zeusync/colony/internal/core/body"
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/world"
)

const BuilderID = "builder"

// Builder repairs broken structures first, then builds construction sites,
// then tops off walls. With nothing to do it delivers energy like a harvester.
type Builder struct {
	env *Env
}

func NewBuilder(env *Env) *Builder { return &Builder{env: env} }

func (b *Builder) ID() string                   { return BuilderID }
func (b *Builder) Icon() string                 { return "🛠" }
func (b *Builder) Priority() int                { return DefaultPriority }
func (b *Builder) WantedCount() int             { return DefaultWanted }
func (b *Builder) BodyPartGroups() []body.Group { return DefaultBodyPartGroups() }

func (b *Builder) Run(u world.Unit) error {
	if b.env.retire(u) {
		return nil
	}
	if Building.Update(u) {
		memory.ClearTempTarget(u.Memory())
		b.build(u)
	} else {
		b.refill(u)
	}
	return nil
}

// refill harvests from the source kept in tempTarget until it runs dry, then
// picks the nearest one again.
func (b *Builder) refill(u world.Unit) {
	mem := u.Memory()
	if id, ok := memory.TempTarget(mem); ok {
		if o, ok := b.env.Room.Find(id); ok {
			if src, ok := o.(world.Source); ok && src.Energy() > 0 {
				b.env.harvestFrom(u, src)
				return
			}
		}
		memory.ClearTempTarget(mem)
	}
	src, ok := b.env.Room.FindNearestSource(u.Pos())
	if !ok {
		return
	}
	memory.SetTempTarget(mem, src.ID())
	b.env.harvestFrom(u, src)
}

func (b *Builder) thresholds() (structures, walls float64) {
	global := b.env.Game.Memory()
	return memory.ConfigFloat(global, memory.KeyRepairStructuresAtPercent, memory.DefaultRepairStructuresAtPercent),
		memory.ConfigFloat(global, memory.KeyRepairWallsAtPercent, memory.DefaultRepairWallsAtPercent)
}

func (b *Builder) build(u world.Unit) {
	structPct, wallPct := b.thresholds()

	if o, ok := b.env.Target(u); ok {
		if s, ok := o.(world.Structure); ok {
			b.repair(u, s, wallPct)
			return
		}
		memory.ClearTarget(u.Memory())
	}

	if broken := b.broken(structPct, wallPct); len(broken) > 0 {
		memory.SetTarget(u.Memory(), broken[0].ID())
		b.repair(u, broken[0], wallPct)
		return
	}

	if sites := b.env.Room.Room().ConstructionSites(); len(sites) > 0 {
		site, _ := world.Nearest(u.Pos(), sites, nil)
		switch r := u.Build(site); r {
		case world.OK:
		case world.ErrNotInRange:
			b.env.moveTo(u, site.Pos())
		default:
			b.env.unexpected(u, "build", site, r)
		}
		return
	}

	var weakest world.Structure
	for _, s := range b.env.Room.Structures() {
		if !isWall(s) || s.Hits() >= s.HitsMax() {
			continue
		}
		if weakest == nil || ratio(s) < ratio(weakest) {
			weakest = s
		}
	}
	if weakest != nil {
		b.repair(u, weakest, wallPct)
		return
	}

	b.env.deliver(u)
}

// broken lists structures below their repair threshold, most damaged first.
// Walls and ramparts use the much lower wall threshold.
func (b *Builder) broken(structPct, wallPct float64) []world.Structure {
	var out []world.Structure
	for _, s := range b.env.Room.Structures() {
		if s.Kind() == world.KindController || !s.My() {
			continue
		}
		limit := structPct
		if isWall(s) {
			limit = wallPct
		}
		if float64(s.Hits()) <= float64(s.HitsMax())*limit && s.Hits() < s.HitsMax() {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return scaledRatio(out[i], wallPct) < scaledRatio(out[j], wallPct)
	})
	return out
}

func (b *Builder) repair(u world.Unit, s world.Structure, wallPct float64) {
	switch r := u.Repair(s); r {
	case world.OK:
		if s.Hits() >= s.HitsMax() || (isWall(s) && float64(s.Hits()) >= float64(s.HitsMax())*wallPct) {
			memory.ClearTarget(u.Memory())
		}
	case world.ErrNotInRange:
		b.env.moveTo(u, s.Pos())
	default:
		b.env.unexpected(u, "repair", s, r)
	}
}

func isWall(s world.Structure) bool {
	return s.Kind() == world.KindWall || s.Kind() == world.KindRampart
}

func ratio(s world.Structure) float64 {
	if s.HitsMax() == 0 {
		return 1
	}
	return float64(s.Hits()) / float64(s.HitsMax())
}

func scaledRatio(s world.Structure, wallPct float64) float64 {
	if isWall(s) && wallPct > 0 {
		return ratio(s) / wallPct
	}
	return ratio(s)
}
