package body

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/colony/internal/core/world"
)

var costs = world.StandardConstants{}

func TestCompile_MinerWithinBudget(t *testing.T) {
	groups := []Group{Fixed(1, world.Move), Variable(1, 6, world.Work)}

	c, ok := Compile(groups, 300, costs)
	require.True(t, ok)
	assert.Equal(t, Composition{world.Move, world.Work, world.Work}, c)
	assert.Equal(t, 250, c.Cost(costs))
}

func TestCompile_DefaultTemplate(t *testing.T) {
	groups := []Group{Flexible(world.Carry, world.Work), Fixed(1, world.Move)}

	tests := []struct {
		name   string
		budget int
		want   Composition
		ok     bool
	}{
		{"full", 1000, Composition{world.Carry, world.Carry, world.Carry, world.Work, world.Work, world.Work, world.Move}, true},
		{"two", 350, Composition{world.Carry, world.Carry, world.Work, world.Work, world.Move}, true},
		{"minimal", 200, Composition{world.Carry, world.Work, world.Move}, true},
		{"too poor", 199, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compile(groups, tt.budget, costs)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.LessOrEqual(t, got.Cost(costs), tt.budget)
			}
		})
	}
}

func TestCompile_ShrinksInDeclaredOrder(t *testing.T) {
	// tough is cheap but declared first, so it is gone before attack or move shrink.
	groups := []Group{
		Variable(0, 5, world.Tough),
		Variable(1, 3, world.Attack),
		Variable(1, 3, world.Move),
		Fixed(1, world.Carry),
	}

	c, ok := Compile(groups, 400, costs)
	require.True(t, ok)
	assert.Equal(t, 0, c.Count(world.Tough))
	assert.Equal(t, 2, c.Count(world.Attack))
	assert.Equal(t, 3, c.Count(world.Move))
	assert.Equal(t, 360, c.Cost(costs))
}

func TestCompile_Deterministic(t *testing.T) {
	groups := []Group{Variable(1, 5, world.Move), Fixed(1, world.Carry, world.Work)}
	first, ok := Compile(groups, 333, costs)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, _ := Compile(groups, 333, costs)
		assert.Equal(t, first, again)
	}
}

func TestCompile_RespectsMaxParts(t *testing.T) {
	groups := []Group{Variable(1, 40, world.Move), Variable(1, 40, world.Carry)}

	c, ok := Compile(groups, 1_000_000, costs)
	require.True(t, ok)
	assert.Len(t, c, MaxParts)
	assert.Equal(t, 10, c.Count(world.Move))
	assert.Equal(t, 40, c.Count(world.Carry))
}

func TestCompile_GroupBoundsHold(t *testing.T) {
	groups := []Group{Variable(2, 4, world.Work), Variable(1, 3, world.Carry), Fixed(2, world.Move)}
	for budget := 0; budget <= 1000; budget += 25 {
		c, ok := Compile(groups, budget, costs)
		if !ok {
			assert.Less(t, budget, MinCost(groups, costs))
			continue
		}
		assert.LessOrEqual(t, c.Cost(costs), budget)
		assert.GreaterOrEqual(t, c.Count(world.Work), 2)
		assert.LessOrEqual(t, c.Count(world.Work), 4)
		assert.Equal(t, 2, c.Count(world.Move))
	}
}

func TestCompile_EmptyBody(t *testing.T) {
	_, ok := Compile([]Group{Variable(0, 0, world.Move)}, 100, costs)
	assert.False(t, ok)
}

func TestValidateGroups(t *testing.T) {
	assert.NoError(t, ValidateGroups([]Group{Flexible(world.Work)}))
	assert.ErrorIs(t, ValidateGroups(nil), ErrEmptyTemplate)
	assert.ErrorIs(t, ValidateGroups([]Group{Variable(3, 1, world.Work)}), ErrInvalidGroup)
	assert.ErrorIs(t, ValidateGroups([]Group{Fixed(1)}), ErrInvalidGroup)
	assert.Equal(t, "1x[move]", Fixed(1, world.Move).String())
	assert.Equal(t, "1-3x[work]", Flexible(world.Work).String())
}
