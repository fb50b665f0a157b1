package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, uint64(512<<20), cfg.HeapLimitBytes())
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
log_level: debug
tick_interval: 250ms
show_jobs: true
jobs:
  harvester:
    wanted: 5
  miner: {}
world:
  rooms:
    - name: W1N1
      controller_level: 3
      spawns: [{name: Spawn1, x: 1, y: 2}]
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.True(t, cfg.ShowJobs)
	assert.Equal(t, map[string]int{"harvester": 5}, cfg.Wanted())
	require.Len(t, cfg.World.Rooms, 1)
	assert.Equal(t, "Spawn1", cfg.World.Rooms[0].Spawns[0].Name)
	assert.Equal(t, 60, cfg.UpgradeEveryTicks, "defaults kept")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"level", "log_level: loud"},
		{"encoding", "log_encoding: xml"},
		{"clean", "memory_clean_every_ticks: 0"},
		{"wanted", "jobs: {guard: {wanted: -1}}"},
		{"keep", "persistence: {path: x.db, keep: 0}"},
		{"feed", "feed: {enabled: true, addr: ''}"},
		{"room name", "world: {rooms: [{controller_level: 1}]}"},
		{"room dup", "world: {rooms: [{name: A}, {name: A}]}"},
		{"room level", "world: {rooms: [{name: A, controller_level: 9}]}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Parse(strings.NewReader("no_such_key: 1"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "colony.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.Feed.Enabled)
	require.NotEmpty(t, cfg.World.Rooms)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
