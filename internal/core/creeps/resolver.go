package creeps

import (
	"github.com/zeusync/colony/internal/core/jobs"
	"github.com/zeusync/colony/internal/core/memory"
	"github.com/zeusync/colony/internal/core/world"
)

// Resolver maps units to jobs. Resolved jobs are memoized per unit id for the
// life of the process only; the persisted label is the source of truth.
type Resolver struct {
	catalog *jobs.Catalog
	cache   map[string]jobs.Job

	hits   uint64
	misses uint64
}

func NewResolver(catalog *jobs.Catalog) *Resolver {
	return &Resolver{catalog: catalog, cache: make(map[string]jobs.Job)}
}

// JobID returns the persisted job label of u.
func (r *Resolver) JobID(u world.Unit) (string, bool) {
	return memory.JobLabel(u.Memory())
}

func (r *Resolver) Resolve(u world.Unit) (jobs.Job, bool) {
	if j, ok := r.cache[u.ID()]; ok {
		r.hits++
		return j, true
	}
	r.misses++
	id, ok := r.JobID(u)
	if !ok {
		return nil, false
	}
	j, ok := r.catalog.Get(id)
	if !ok {
		return nil, false
	}
	r.cache[u.ID()] = j
	return j, true
}

func (r *Resolver) Forget(unitID string) {
	delete(r.cache, unitID)
}

func (r *Resolver) Cached() int { return len(r.cache) }

// Stats returns cache hits and misses so far.
func (r *Resolver) Stats() (hits, misses uint64) { return r.hits, r.misses }
