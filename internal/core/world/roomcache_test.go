package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/colony/internal/core/world"
	"github.com/zeusync/colony/internal/core/world/simworld"
)

func TestRoomCache_SpawnsSortedByName(t *testing.T) {
	g := simworld.New()
	r := g.MustAddRoom("W1N1", 3)
	r.AddSpawn("Spawn2", 10, 10)
	r.AddSpawn("Spawn1", 20, 20)

	c := world.NewRoomCache(r)
	c.Refresh(r, g.Time())

	spawns := c.Spawns()
	require.Len(t, spawns, 2)
	assert.Equal(t, "Spawn1", spawns[0].Name())
	main, ok := c.MainSpawn()
	require.True(t, ok)
	assert.Equal(t, "Spawn1", main.Name())

	nearest, ok := c.FindNearestSpawn(world.Position{X: 11, Y: 11, Room: "W1N1"})
	require.True(t, ok)
	assert.Equal(t, "Spawn2", nearest.Name())
}

func TestRoomCache_RefreshDropsMemo(t *testing.T) {
	g := simworld.New()
	r := g.MustAddRoom("W1N1", 3)
	r.AddRampart(1, 1)

	c := world.NewRoomCache(r)
	c.Refresh(r, g.Time())
	assert.Len(t, c.Ramparts(), 1)

	r.AddRampart(2, 2)
	assert.Len(t, c.Ramparts(), 1, "memoized within a tick")

	g.Tick()
	c.Refresh(r, g.Time())
	assert.Len(t, c.Ramparts(), 2)
}

func TestRoomCache_SourceContainersAndUnits(t *testing.T) {
	g := simworld.New()
	r := g.MustAddRoom("W1N1", 3)
	src := r.AddSource(5, 5)
	r.AddContainer(5, 6)
	r.AddContainer(30, 30)
	r.AddUnit("mine", "harvester", 1, 1, world.Move)
	enemy := r.AddHostile(2, 2, world.Attack)

	c := world.NewRoomCache(r)
	c.Refresh(r, g.Time())

	assert.Len(t, c.Containers(), 2)
	assert.Len(t, c.SourceContainers(), 1)
	assert.Len(t, c.MyUnits(), 1)
	assert.Len(t, c.Hostiles(), 1)

	found, ok := c.Find(enemy.ID())
	require.True(t, ok)
	assert.Equal(t, enemy.ID(), found.ID())
	_, ok = c.Find("nope")
	assert.False(t, ok)

	nearest, ok := c.FindNearestSource(world.Position{X: 0, Y: 0, Room: "W1N1"})
	require.True(t, ok)
	assert.Equal(t, src.ID(), nearest.ID())
}

func TestNearest_KeepFilter(t *testing.T) {
	g := simworld.New()
	r := g.MustAddRoom("W1N1", 3)
	near := r.AddSource(1, 1)
	far := r.AddSource(9, 9)
	near.SetEnergy(0)

	c := world.NewRoomCache(r)
	c.Refresh(r, g.Time())
	got, ok := c.FindNearestSource(world.Position{X: 0, Y: 0, Room: "W1N1"})
	require.True(t, ok)
	assert.Equal(t, far.ID(), got.ID())

	_, ok = world.Nearest(world.Position{}, c.Sources(), func(world.Source) bool { return false })
	assert.False(t, ok)
}
