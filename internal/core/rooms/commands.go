package rooms

import (
	"fmt"

	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/observability/log"
)

// Operator command names.
const (
	CmdShowJobs  = "showJobs"
	CmdShowPaths = "showPaths"
	CmdSetWanted = "setWanted"
	CmdRetire    = "retire"
)

// Command is an operator request. Fields not used by Name are ignored.
type Command struct {
	Name    string `json:"name"`
	Room    string `json:"room,omitempty"`
	Job     string `json:"job,omitempty"`
	Unit    string `json:"unit,omitempty"`
	Wanted  *int   `json:"wanted,omitempty"`
	Enabled bool   `json:"enabled,omitempty"`
}

// Apply runs cmd against the game memory. It must be called between loops.
// setWanted with a nil Wanted clears the room override.
func (b *Bot) Apply(cmd Command) error {
	global := b.game.Memory()
	switch cmd.Name {
	case CmdShowJobs:
		memory.SetConfigBool(global, memory.KeyShowJobs, cmd.Enabled)
	case CmdShowPaths:
		memory.SetConfigBool(global, memory.KeyShowPaths, cmd.Enabled)
	case CmdSetWanted:
		m, ok := b.managers.Get(cmd.Room)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownRoom, cmd.Room)
		}
		if _, ok := m.Creeps().Catalog().Get(cmd.Job); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownJob, cmd.Job)
		}
		roomMem := m.Cache().Room().Memory()
		if cmd.Wanted == nil {
			memory.ClearWantedOverride(roomMem, cmd.Job)
			break
		}
		if *cmd.Wanted < 0 {
			return fmt.Errorf("%w: wanted %d", ErrInvalidCommand, *cmd.Wanted)
		}
		memory.SetWantedOverride(roomMem, cmd.Job, *cmd.Wanted)
	case CmdRetire:
		found := false
		for _, u := range b.game.Units() {
			if u.My() && u.Name() == cmd.Unit {
				u.Memory().SetBool(memory.KeySuicide, true)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q", ErrUnknownUnit, cmd.Unit)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
	b.logger.Info("operator command applied",
		log.String("command", cmd.Name),
		log.Room(cmd.Room),
		log.Job(cmd.Job),
		log.UnitName(cmd.Unit),
		log.Tick(b.game.Time()),
	)
	return nil
}
