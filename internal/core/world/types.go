package world

import "math"

type PartKind string

const (
	Move         PartKind = "move"
	Work         PartKind = "work"
	Carry        PartKind = "carry"
	Attack       PartKind = "attack"
	RangedAttack PartKind = "ranged_attack"
	Heal         PartKind = "heal"
	Claim        PartKind = "claim"
	Tough        PartKind = "tough"
)

type StructureKind string

const (
	KindSpawn      StructureKind = "spawn"
	KindExtension  StructureKind = "extension"
	KindContainer  StructureKind = "container"
	KindRampart    StructureKind = "rampart"
	KindWall       StructureKind = "constructedWall"
	KindRoad       StructureKind = "road"
	KindTower      StructureKind = "tower"
	KindStorage    StructureKind = "storage"
	KindController StructureKind = "controller"
)

// Position is a tile inside a named room.
type Position struct {
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
	Room string `json:"room,omitempty" yaml:"room,omitempty"`
}

// RangeTo is the Chebyshev distance. Positions in different rooms are infinitely apart.
func (p Position) RangeTo(o Position) int {
	if p.Room != o.Room {
		return math.MaxInt32
	}
	dx, dy := abs(p.X-o.X), abs(p.Y-o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func (p Position) InRangeTo(o Position, r int) bool {
	return p.RangeTo(o) <= r
}

func (p Position) IsNearTo(o Position) bool {
	return p.InRangeTo(o, 1)
}

// StepToward moves one tile (diagonals allowed) toward o.
func (p Position) StepToward(o Position) Position {
	if p.Room != o.Room {
		return p
	}
	p.X += sign(o.X - p.X)
	p.Y += sign(o.Y - p.Y)
	return p
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Store is an energy store snapshot.
type Store struct {
	Used     int
	Capacity int
}

func (s Store) Free() int {
	if s.Used >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Used
}

func (s Store) Empty() bool { return s.Used == 0 }
func (s Store) Full() bool  { return s.Free() == 0 }

// Result is the outcome of a single unit intent.
type Result int

const (
	OK Result = iota
	ErrNotInRange
	ErrNotEnough
	ErrFull
	ErrInvalidTarget
	ErrNoBodyPart
	ErrBusy
	ErrNotOwner
	ErrTired
)

func (r Result) String() string {
	switch r {
	case OK:
		return "ok"
	case ErrNotInRange:
		return "not in range"
	case ErrNotEnough:
		return "not enough resources"
	case ErrFull:
		return "full"
	case ErrInvalidTarget:
		return "invalid target"
	case ErrNoBodyPart:
		return "no body part"
	case ErrBusy:
		return "busy"
	case ErrNotOwner:
		return "not owner"
	case ErrTired:
		return "tired"
	default:
		return "unknown"
	}
}
