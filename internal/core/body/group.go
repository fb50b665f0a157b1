// Package body compiles part-group templates into affordable compositions.
package body

import (
	"fmt"

	"github.com/zeusync/colony/internal/core/world"
)

// DefaultVariableMax is the max count of a variable group when none is given.
const DefaultVariableMax = 3

// Group is one template entry: every kind in Kinds repeats Count times,
// with Min <= Count <= Max.
type Group struct {
	Kinds []world.PartKind
	Min   int
	Max   int
}

func Fixed(count int, kinds ...world.PartKind) Group {
	return Group{Kinds: kinds, Min: count, Max: count}
}

func Variable(min, max int, kinds ...world.PartKind) Group {
	return Group{Kinds: kinds, Min: min, Max: max}
}

// Flexible is a variable group with the default bounds 1..DefaultVariableMax.
func Flexible(kinds ...world.PartKind) Group {
	return Variable(1, DefaultVariableMax, kinds...)
}

func (g Group) IsFixed() bool { return g.Min == g.Max }

// UnitCost is the cost of one repetition of the group.
func (g Group) UnitCost(costs world.Constants) int {
	return world.BodyCost(costs, g.Kinds)
}

func (g Group) Validate() error {
	if len(g.Kinds) == 0 {
		return fmt.Errorf("%w: no part kinds", ErrInvalidGroup)
	}
	if g.Min < 0 || g.Max < g.Min {
		return fmt.Errorf("%w: bounds %d..%d", ErrInvalidGroup, g.Min, g.Max)
	}
	return nil
}

func (g Group) String() string {
	if g.IsFixed() {
		return fmt.Sprintf("%dx%v", g.Min, g.Kinds)
	}
	return fmt.Sprintf("%d-%dx%v", g.Min, g.Max, g.Kinds)
}

// ValidateGroups checks every group of a template.
func ValidateGroups(groups []Group) error {
	if len(groups) == 0 {
		return ErrEmptyTemplate
	}
	for i, g := range groups {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("group %d: %w", i, err)
		}
	}
	return nil
}
