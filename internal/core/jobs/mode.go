package jobs

import (
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/world"
)

// Mode is a two-state toggle persisted as a bool in unit memory under Key.
// It turns on when the unit's store is full and off when it is empty.
type Mode struct {
	Key string
}

var (
	Delivering = Mode{Key: memory.KeyIsDelivering}
	Upgrading  = Mode{Key: memory.KeyIsUpgrading}
	Building   = Mode{Key: memory.KeyIsBuilding}
)

func (m Mode) Active(u world.Unit) bool {
	return u.Memory().GetBool(m.Key)
}

// Update applies the transition rule and returns the resulting state.
func (m Mode) Update(u world.Unit) bool {
	active := m.Active(u)
	store := u.Store()
	switch {
	case active && store.Empty():
		active = false
		u.Memory().SetBool(m.Key, false)
	case !active && store.Full():
		active = true
		u.Memory().SetBool(m.Key, true)
	}
	return active
}
