package simworld

import (
	"fmt"

	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/world"
)

type Spawn struct {
	Structure
	name string
	room *Room

	producing *Unit
	remaining int
	produced  int
}

var _ world.Spawn = (*Spawn)(nil)

func (s *Spawn) Name() string   { return s.name }
func (s *Spawn) Spawning() bool { return s.producing != nil }

// Produced counts Produce calls that succeeded.
func (s *Spawn) Produced() int { return s.produced }

func (s *Spawn) CanProduce(body []world.PartKind, name string) bool {
	return s.validate(body, name) == nil
}

func (s *Spawn) validate(body []world.PartKind, name string) error {
	if s.producing != nil {
		return ErrSpawnBusy
	}
	if len(body) == 0 || len(body) > MaxBodyParts {
		return fmt.Errorf("%w: %d parts", ErrInvalidBody, len(body))
	}
	cost := world.BodyCost(s.room.game.consts, body)
	if cost > s.room.EnergyAvailable() {
		return fmt.Errorf("%w: need %d, have %d", ErrNotEnoughEnergy, cost, s.room.EnergyAvailable())
	}
	if name == "" || s.room.game.nameTaken(name) {
		return fmt.Errorf("%w: %q", ErrNameExists, name)
	}
	return nil
}

func (s *Spawn) Produce(body []world.PartKind, name string, initial memory.Object) (string, error) {
	if err := s.validate(body, name); err != nil {
		return "", err
	}
	g := s.room.game
	s.room.spendEnergy(&s.Structure, world.BodyCost(g.consts, body))

	u := g.newUnit(s.room, name, s.pos, body, true)
	u.spawning = true
	if initial != nil {
		raw, err := initial.MarshalJSON()
		if err != nil {
			return "", err
		}
		if err := u.Memory().UnmarshalJSON(raw); err != nil {
			return "", err
		}
	}
	g.pending = append(g.pending, u)

	s.producing = u
	s.remaining = len(body) * TicksPerBodyPart
	s.produced++
	return u.id, nil
}

func (s *Spawn) Recycle(target world.Unit) world.Result {
	u, ok := target.(*Unit)
	if !ok || u.dead {
		return world.ErrInvalidTarget
	}
	if !u.my {
		return world.ErrNotOwner
	}
	if !s.pos.IsNearTo(u.pos) {
		return world.ErrNotInRange
	}
	s.room.game.kill(u)
	return world.OK
}

func (s *Spawn) progress() {
	if s.producing == nil {
		return
	}
	s.remaining--
	if s.remaining > 0 {
		return
	}
	s.producing.spawning = false
	s.producing = nil
}
