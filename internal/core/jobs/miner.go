package jobs

import (
	"github.com/zeusync/colony/internal/core/body"
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/world"
)

const MinerID = "miner"

var minerGroups = []body.Group{
	body.Fixed(1, world.Move),
	body.Variable(1, 6, world.Work),
}

var (
	_ SpawnHook = (*Miner)(nil)
	_ DeathHook = (*Miner)(nil)
)

// Miner sits on the container next to its source and harvests into it.
// One miner is wanted per source container.
type Miner struct {
	env *Env
}

func NewMiner(env *Env) *Miner { return &Miner{env: env} }

func (m *Miner) ID() string                   { return MinerID }
func (m *Miner) Icon() string                 { return "⛏" }
func (m *Miner) Priority() int                { return 10 }
func (m *Miner) BodyPartGroups() []body.Group { return minerGroups }

func (m *Miner) WantedCount() int {
	return len(m.env.Room.SourceContainers())
}

func (m *Miner) OnSpawn(u world.Unit) {
	if _, ok := memory.Target(u.Memory()); !ok {
		m.assign(u)
	}
}

func (m *Miner) OnDeath(u world.Unit) {
	m.env.log().Debug("source released", log.UnitName(u.Name()), log.String("source", u.Memory().GetString(memory.KeyTarget)))
}

func (m *Miner) Run(u world.Unit) error {
	if m.env.retire(u) {
		return nil
	}

	var src world.Source
	if o, ok := m.env.Target(u); ok {
		src, _ = o.(world.Source)
	}
	if src == nil {
		src = m.assign(u)
		if src == nil {
			return nil
		}
	}

	if ct, ok := m.containerOf(src); ok && u.Pos() != ct.Pos() {
		m.env.moveTo(u, ct.Pos())
		return nil
	}
	m.env.harvestFrom(u, src)
	return nil
}

// assign picks the least claimed source that has a container and persists it.
func (m *Miner) assign(u world.Unit) world.Source {
	claims := make(map[string]int)
	for _, other := range m.env.Room.MyUnits() {
		if other.ID() == u.ID() || other.Memory().GetString(memory.KeyJob) != MinerID {
			continue
		}
		if id, ok := memory.Target(other.Memory()); ok {
			claims[id]++
		}
	}

	var (
		best   world.Source
		bestN  int
		picked bool
	)
	for _, src := range m.env.Room.Sources() {
		if _, ok := m.containerOf(src); !ok {
			continue
		}
		if n := claims[src.ID()]; !picked || n < bestN {
			best, bestN, picked = src, n, true
		}
	}
	if !picked {
		return nil
	}
	memory.SetTarget(u.Memory(), best.ID())
	return best
}

func (m *Miner) containerOf(src world.Source) (world.Structure, bool) {
	return world.Nearest(src.Pos(), m.env.Room.Containers(), func(s world.Structure) bool {
		return s.Pos().IsNearTo(src.Pos())
	})
}
