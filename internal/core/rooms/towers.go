package rooms

import (
	"github.com/zeusync/colony/internal/core/jobs"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/world"
)

// TowerKillsID is the kill-count key for hostiles destroyed by towers.
const TowerKillsID = "tower"

// Towers fires every owned tower with energy at the nearest hostile.
type Towers struct {
	room   *world.RoomCache
	kills  jobs.KillRecorder
	logger log.Log
}

func NewTowers(room *world.RoomCache, kills jobs.KillRecorder, logger log.Log) *Towers {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Towers{room: room, kills: kills, logger: logger}
}

// Tick returns the number of shots fired.
func (t *Towers) Tick() int {
	shots := 0
	for _, tower := range t.room.Towers() {
		if tower.Store().Used == 0 {
			continue
		}
		enemy, ok := world.Nearest(tower.Pos(), t.room.Hostiles(), isAlive)
		if !ok {
			return shots
		}
		if r := tower.Attack(enemy); r != world.OK {
			t.logger.Debug("tower did not fire", log.String("tower", tower.ID()), log.String("result", r.String()))
			continue
		}
		shots++
		if enemy.Exists() {
			continue
		}
		t.logger.Info("hostile killed", log.String("tower", tower.ID()), log.String("hostile", enemy.ID()))
		if t.kills != nil {
			t.kills.RecordKill(t.room.Name(), TowerKillsID)
		}
	}
	return shots
}

func isAlive(u world.Unit) bool { return u.Exists() }
