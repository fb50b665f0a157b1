package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWantedOverride(t *testing.T) {
	room := New()
	_, ok := WantedOverride(room, "harvester")
	assert.False(t, ok)

	SetWantedOverride(room, "harvester", 5)
	n, ok := WantedOverride(room, "harvester")
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	ClearWantedOverride(room, "harvester")
	_, ok = WantedOverride(room, "harvester")
	assert.False(t, ok)
}

func TestKillCounts(t *testing.T) {
	room := New()
	IncrementKillCount(room, "guard")
	IncrementKillCount(room, "guard")

	assert.Equal(t, 2, KillCount(room, "guard"))
	assert.Equal(t, 2, KillCount(room, KeyKillCountTotal))
	assert.Equal(t, 0, KillCount(room, "builder"))
}

func TestAppendLog_Bounded(t *testing.T) {
	unit := New()
	for i := 0; i < MaxLogLines+3; i++ {
		AppendLog(unit, fmt.Sprintf("line %d", i))
	}
	lines := LogLines(unit)
	assert.Len(t, lines, MaxLogLines)
	assert.Equal(t, "line 3", lines[0])
	assert.Equal(t, fmt.Sprintf("line %d", MaxLogLines+2), lines[len(lines)-1])
}

func TestConfigFlags(t *testing.T) {
	global := New()
	assert.False(t, ConfigBool(global, KeyShowJobs))
	SetConfigBool(global, KeyShowJobs, true)
	assert.True(t, ConfigBool(global, KeyShowJobs))

	assert.Equal(t, DefaultRepairStructuresAtPercent,
		ConfigFloat(global, KeyRepairStructuresAtPercent, DefaultRepairStructuresAtPercent))
}

func TestTargets(t *testing.T) {
	unit := New()
	_, ok := Target(unit)
	assert.False(t, ok)

	SetTarget(unit, "src1")
	id, ok := Target(unit)
	assert.True(t, ok)
	assert.Equal(t, "src1", id)

	ClearTarget(unit)
	_, ok = Target(unit)
	assert.False(t, ok)

	unit.SetString(KeyJob, "")
	_, ok = JobLabel(unit)
	assert.False(t, ok)
}
