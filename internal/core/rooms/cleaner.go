package rooms

import (
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/world"
)

const cleanOffset = 15

// CleanMemory removes creeps.<name> entries of units that no longer exist and
// returns the removed names in key order.
func CleanMemory(game world.Game) []string {
	alive := make(map[string]struct{})
	for _, u := range game.Units() {
		if u.My() && u.Exists() {
			alive[u.Name()] = struct{}{}
		}
	}
	units := memory.Units(game.Memory())
	var removed []string
	for _, name := range units.Keys() {
		if _, ok := alive[name]; !ok {
			units.Delete(name)
			removed = append(removed, name)
		}
	}
	return removed
}
