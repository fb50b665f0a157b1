// Package config loads the colony's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/colony/internal/core/world/simworld"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	LogLevel     string        `yaml:"log_level"`
	LogEncoding  string        `yaml:"log_encoding"`
	TickInterval time.Duration `yaml:"tick_interval"`
	// MaxTicks stops the runtime after that many ticks; 0 runs until cancelled.
	MaxTicks int64 `yaml:"max_ticks"`

	ShowJobs  bool `yaml:"show_jobs"`
	ShowPaths bool `yaml:"show_paths"`

	MemoryCleanEveryTicks int    `yaml:"memory_clean_every_ticks"`
	UpgradeEveryTicks     int    `yaml:"upgrade_every_ticks"`
	HeapLimitMB           uint64 `yaml:"heap_limit_mb"`

	Jobs        map[string]JobConfig `yaml:"jobs"`
	Persistence Persistence          `yaml:"persistence"`
	Feed        Feed                 `yaml:"feed"`
	World       World                `yaml:"world"`
}

type JobConfig struct {
	Wanted *int `yaml:"wanted"`
}

type Persistence struct {
	// Path of the SQLite file; empty disables snapshots.
	Path               string `yaml:"path"`
	SnapshotEveryTicks int    `yaml:"snapshot_every_ticks"`
	Keep               int    `yaml:"keep"`
}

type Feed struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Token   string `yaml:"token"`
}

type World struct {
	Rooms []simworld.Layout `yaml:"rooms"`
}

func Default() Config {
	return Config{
		LogLevel:              "info",
		LogEncoding:           "json",
		TickInterval:          100 * time.Millisecond,
		MemoryCleanEveryTicks: 100,
		UpgradeEveryTicks:     60,
		HeapLimitMB:           512,
		Persistence: Persistence{
			SnapshotEveryTicks: 100,
			Keep:               5,
		},
		Feed: Feed{Addr: "127.0.0.1:8080"},
	}
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes r over the defaults and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.LogEncoding {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log_encoding %q", ErrInvalidConfig, c.LogEncoding)
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("%w: tick_interval %s", ErrInvalidConfig, c.TickInterval)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("%w: max_ticks %d", ErrInvalidConfig, c.MaxTicks)
	}
	if c.MemoryCleanEveryTicks <= 0 {
		return fmt.Errorf("%w: memory_clean_every_ticks %d", ErrInvalidConfig, c.MemoryCleanEveryTicks)
	}
	if c.UpgradeEveryTicks <= 0 {
		return fmt.Errorf("%w: upgrade_every_ticks %d", ErrInvalidConfig, c.UpgradeEveryTicks)
	}
	for id, j := range c.Jobs {
		if j.Wanted != nil && *j.Wanted < 0 {
			return fmt.Errorf("%w: jobs.%s.wanted %d", ErrInvalidConfig, id, *j.Wanted)
		}
	}
	if c.Persistence.Path != "" {
		if c.Persistence.SnapshotEveryTicks <= 0 {
			return fmt.Errorf("%w: persistence.snapshot_every_ticks %d", ErrInvalidConfig, c.Persistence.SnapshotEveryTicks)
		}
		if c.Persistence.Keep <= 0 {
			return fmt.Errorf("%w: persistence.keep %d", ErrInvalidConfig, c.Persistence.Keep)
		}
	}
	if c.Feed.Enabled && c.Feed.Addr == "" {
		return fmt.Errorf("%w: feed.addr is empty", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.World.Rooms))
	for i, r := range c.World.Rooms {
		if r.Name == "" {
			return fmt.Errorf("%w: world.rooms[%d].name is empty", ErrInvalidConfig, i)
		}
		if _, ok := seen[r.Name]; ok {
			return fmt.Errorf("%w: world.rooms[%d] duplicates %q", ErrInvalidConfig, i, r.Name)
		}
		seen[r.Name] = struct{}{}
		if r.ControllerLevel < 0 || r.ControllerLevel > 8 {
			return fmt.Errorf("%w: world.rooms[%d].controller_level %d", ErrInvalidConfig, i, r.ControllerLevel)
		}
	}
	return nil
}

// Wanted returns the configured wanted counts by job id.
func (c Config) Wanted() map[string]int {
	out := make(map[string]int)
	for id, j := range c.Jobs {
		if j.Wanted != nil {
			out[id] = *j.Wanted
		}
	}
	return out
}

func (c Config) HeapLimitBytes() uint64 { return c.HeapLimitMB << 20 }
