package injector

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/colony/internal/config"
	"github.com/zeusync/colony/internal/core/world/simworld"
)

func TestInitializeRuntime(t *testing.T) {
	cfg := config.Default()
	cfg.Persistence.Path = filepath.Join(t.TempDir(), "colony.db")
	cfg.World.Rooms = []simworld.Layout{{Name: "W1N1", ControllerLevel: 1}}

	rt, cleanup, err := InitializeRuntime(cfg)
	require.NoError(t, err)
	defer cleanup()

	_, ok := rt.Game().Room("W1N1")
	assert.True(t, ok)
	assert.NotNil(t, rt.Bot())
}

func TestInitializeRuntime_BadWorld(t *testing.T) {
	cfg := config.Default()
	cfg.World.Rooms = []simworld.Layout{{Name: "A"}, {Name: "A"}}
	_, _, err := InitializeRuntime(cfg)
	assert.ErrorIs(t, err, simworld.ErrDuplicateRoom)
}
