package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Range(t *testing.T) {
	a := Position{X: 1, Y: 1, Room: "W1N1"}
	b := Position{X: 4, Y: 2, Room: "W1N1"}

	assert.Equal(t, 3, a.RangeTo(b))
	assert.True(t, a.InRangeTo(b, 3))
	assert.False(t, a.IsNearTo(b))
	assert.Greater(t, a.RangeTo(Position{X: 1, Y: 1, Room: "W2N2"}), 1000)
}

func TestPosition_StepToward(t *testing.T) {
	a := Position{X: 5, Y: 5, Room: "r"}

	assert.Equal(t, Position{X: 6, Y: 4, Room: "r"}, a.StepToward(Position{X: 9, Y: 0, Room: "r"}))
	assert.Equal(t, a, a.StepToward(a))
	assert.Equal(t, a, a.StepToward(Position{X: 0, Y: 0, Room: "other"}))
}

func TestStore(t *testing.T) {
	assert.Equal(t, 20, Store{Used: 30, Capacity: 50}.Free())
	assert.True(t, Store{Used: 60, Capacity: 50}.Full())
	assert.True(t, Store{Capacity: 0}.Full())
	assert.True(t, Store{}.Empty())
}

func TestStandardConstants(t *testing.T) {
	c := StandardConstants{}

	assert.Equal(t, 50, c.BodyPartCost(Move))
	assert.Equal(t, 100, c.BodyPartCost(Work))
	assert.Equal(t, 0, c.BodyPartCost("wings"))
	assert.Equal(t, 5, c.MaxStructures(KindExtension, 2))
	assert.Equal(t, 60, c.MaxStructures(KindExtension, 12))
	assert.Equal(t, 0, c.MaxStructures(KindExtension, -1))
	assert.Equal(t, 0, c.MaxStructures("moat", 4))

	assert.Equal(t, 250, BodyCost(c, []PartKind{Move, Work, Work}))
	assert.Equal(t, 2, CountParts([]PartKind{Move, Work, Work}, Work))
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "ok", OK.String())
	assert.Equal(t, "not in range", ErrNotInRange.String())
	assert.Equal(t, "unknown", Result(99).String())
}
