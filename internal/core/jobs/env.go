package jobs

import (
	"fmt"

	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/world"
)

// AnomalyGlyph is said by a unit whose persisted state no longer matches the world.
const AnomalyGlyph = "⚠"

// Env is what job behaviors may read and act through. One Env is shared by all
// jobs of a room.
type Env struct {
	Game       world.Game
	Room       *world.RoomCache
	Population Population
	Kills      KillRecorder
	Logger     log.Log
}

func (e *Env) log() log.Log {
	if e.Logger == nil {
		return log.NewNop()
	}
	return e.Logger
}

func (e *Env) showPaths() bool {
	return memory.ConfigBool(e.Game.Memory(), memory.KeyShowPaths)
}

// Anomaly reports persisted state that no longer matches the world: it warns,
// flags the unit, appends to its log and clears its target.
func (e *Env) Anomaly(u world.Unit, msg string, fields ...log.Field) {
	fields = append(fields, log.Unit(u.ID()), log.UnitName(u.Name()), log.Tick(e.Game.Time()))
	e.log().Warn(msg, fields...)
	u.Say(AnomalyGlyph)
	memory.AppendLog(u.Memory(), fmt.Sprintf("%d: %s", e.Game.Time(), msg))
	memory.ClearTarget(u.Memory())
}

// unexpected records an intent result that is neither OK nor a range miss.
func (e *Env) unexpected(u world.Unit, action string, target world.Object, r world.Result) {
	e.log().Debug("unexpected intent result",
		log.Unit(u.ID()),
		log.String("action", action),
		log.String("target", target.ID()),
		log.String("result", r.String()),
	)
	memory.AppendLog(u.Memory(), fmt.Sprintf("%d: %s %s: %s", e.Game.Time(), action, target.ID(), r))
}

// moveTo steps toward target and, when paths are shown, logs the step.
func (e *Env) moveTo(u world.Unit, target world.Position) world.Result {
	from := u.Pos()
	r := u.MoveTo(target)
	if e.showPaths() {
		e.log().Debug("path step",
			log.Unit(u.ID()),
			log.String("from", fmt.Sprintf("%d,%d", from.X, from.Y)),
			log.String("to", fmt.Sprintf("%d,%d", target.X, target.Y)),
			log.String("result", r.String()),
		)
	}
	return r
}

// Target resolves the persisted target id among the room's objects. An id that
// no longer resolves is an anomaly and is cleared.
func (e *Env) Target(u world.Unit) (world.Object, bool) {
	id, ok := memory.Target(u.Memory())
	if !ok {
		return nil, false
	}
	o, ok := e.Room.Find(id)
	if !ok {
		e.Anomaly(u, "target vanished", log.String("target", id))
		return nil, false
	}
	return o, true
}
