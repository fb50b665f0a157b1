// Package jobs defines the labor categories units are assigned to at birth.
package jobs

import (
	"github.com/zeusync/colony/internal/core/body"
	"github.com/zeusync/colony/internal/core/world"
)

// Job is one labor category. A job instance lives for the process lifetime;
// units keep the job they were produced for until they die.
type Job interface {
	// ID is the persisted label written into unit memory.
	ID() string
	Icon() string
	// Priority orders the spawn scan; lower is served first.
	Priority() int
	// WantedCount is evaluated once per job per idle spawn per tick.
	WantedCount() int
	BodyPartGroups() []body.Group
	// Run performs this tick's intent for u.
	Run(u world.Unit) error
}

// SpawnHook is implemented by jobs that react to a unit joining them.
type SpawnHook interface {
	OnSpawn(u world.Unit)
}

// DeathHook is implemented by jobs that react to a unit dying. u no longer exists.
type DeathHook interface {
	OnDeath(u world.Unit)
}

// Population answers how many live units hold a job.
type Population interface {
	Count(jobID string) int
	Total() int
}

// KillRecorder aggregates kills made by units of a job.
type KillRecorder interface {
	RecordKill(room, jobID string)
}

const (
	DefaultPriority = 100
	DefaultWanted   = 3
)

// DefaultBodyPartGroups is the carrier/worker template used by simple jobs.
func DefaultBodyPartGroups() []body.Group {
	return []body.Group{
		body.Flexible(world.Carry, world.Work),
		body.Fixed(1, world.Move),
	}
}
