package body

import (
	"strings"

	"github.com/zeusync/colony/internal/core/world"
)

// MaxParts is the largest body a spawn accepts.
const MaxParts = 50

// Composition is an ordered list of parts ready to hand to a spawn.
type Composition []world.PartKind

func (c Composition) Cost(costs world.Constants) int {
	return world.BodyCost(costs, c)
}

func (c Composition) Count(kind world.PartKind) int {
	return world.CountParts(c, kind)
}

func (c Composition) String() string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = string(p)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Compile starts every group at Max and, while the body costs more than budget
// or exceeds MaxParts, decrements the first group in declared order that is
// still above its Min. Cost efficiency is ignored: a cheap early group shrinks
// before an expensive later one.
//
// It returns false when nothing can shrink further and the body is still too
// expensive, or when the result would be empty.
func Compile(groups []Group, budget int, costs world.Constants) (Composition, bool) {
	counts := make([]int, len(groups))
	for i, g := range groups {
		counts[i] = g.Max
	}

	for cost(groups, counts, costs) > budget || size(groups, counts) > MaxParts {
		shrunk := false
		for i, g := range groups {
			if counts[i] > g.Min {
				counts[i]--
				shrunk = true
				break
			}
		}
		if !shrunk {
			return nil, false
		}
	}

	out := make(Composition, 0, size(groups, counts))
	for i, g := range groups {
		for _, kind := range g.Kinds {
			for n := 0; n < counts[i]; n++ {
				out = append(out, kind)
			}
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func cost(groups []Group, counts []int, costs world.Constants) int {
	total := 0
	for i, g := range groups {
		total += counts[i] * g.UnitCost(costs)
	}
	return total
}

func size(groups []Group, counts []int) int {
	total := 0
	for i, g := range groups {
		total += counts[i] * len(g.Kinds)
	}
	return total
}

// MinCost is the cost of the smallest body the template allows.
func MinCost(groups []Group, costs world.Constants) int {
	total := 0
	for _, g := range groups {
		total += g.Min * g.UnitCost(costs)
	}
	return total
}
