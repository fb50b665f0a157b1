package creeps

import (
	"github.com/zeusync/colony/internal/core/jobs"
	"github.com/zeusync/colony/internal/core/world"
	"github.com/zeusync/colony/pkg/ordered"
)

var _ jobs.Population = (*Registry)(nil)

// Registry is the population map: the live units of each job, in catalog
// order and per job in the order they were first seen. Only Reconcile mutates it.
type Registry struct {
	catalog  *jobs.Catalog
	resolver *Resolver
	pop      *ordered.Map[string, *ordered.Map[string, world.Unit]]
	owner    map[string]string
}

// Reconciliation is what one Reconcile call changed.
type Reconciliation struct {
	Died       []Tracked
	Spawned    []Tracked
	Unresolved []world.Unit
}

func (r Reconciliation) Empty() bool {
	return len(r.Died) == 0 && len(r.Spawned) == 0 && len(r.Unresolved) == 0
}

type Tracked struct {
	Unit  world.Unit
	JobID string
}

func NewRegistry(catalog *jobs.Catalog, resolver *Resolver) *Registry {
	r := &Registry{
		catalog:  catalog,
		resolver: resolver,
		pop:      ordered.NewMap[string, *ordered.Map[string, world.Unit]](),
		owner:    make(map[string]string),
	}
	for _, id := range catalog.IDs() {
		r.pop.Set(id, ordered.NewMap[string, world.Unit]())
	}
	return r
}

// Reconcile drops tracked units that no longer exist and adopts live units of
// ours that are not tracked yet. Job hooks fire once per change. Units whose
// job does not resolve are returned as unresolved and retried next call.
func (r *Registry) Reconcile(live []world.Unit) Reconciliation {
	var rec Reconciliation

	for jobID, set := range r.pop.All() {
		var gone []string
		for id, u := range set.All() {
			if !u.Exists() {
				gone = append(gone, id)
			}
		}
		for _, id := range gone {
			u, _ := set.Get(id)
			set.Delete(id)
			delete(r.owner, id)
			r.resolver.Forget(id)
			rec.Died = append(rec.Died, Tracked{Unit: u, JobID: jobID})
			if j, ok := r.catalog.Get(jobID); ok {
				if hook, ok := j.(jobs.DeathHook); ok {
					hook.OnDeath(u)
				}
			}
		}
	}

	for _, u := range live {
		if !u.My() || !u.Exists() {
			continue
		}
		if jobID, ok := r.owner[u.ID()]; ok {
			set, _ := r.pop.Get(jobID)
			set.Set(u.ID(), u)
			continue
		}
		j, ok := r.resolver.Resolve(u)
		if !ok {
			rec.Unresolved = append(rec.Unresolved, u)
			continue
		}
		set, _ := r.pop.Get(j.ID())
		set.Set(u.ID(), u)
		r.owner[u.ID()] = j.ID()
		rec.Spawned = append(rec.Spawned, Tracked{Unit: u, JobID: j.ID()})
		if hook, ok := j.(jobs.SpawnHook); ok {
			hook.OnSpawn(u)
		}
	}
	return rec
}

func (r *Registry) Count(jobID string) int {
	set, ok := r.pop.Get(jobID)
	if !ok {
		return 0
	}
	return set.Len()
}

func (r *Registry) Total() int {
	return len(r.owner)
}

func (r *Registry) JobOf(unitID string) (string, bool) {
	id, ok := r.owner[unitID]
	return id, ok
}

func (r *Registry) Units(jobID string) []world.Unit {
	set, ok := r.pop.Get(jobID)
	if !ok {
		return nil
	}
	return set.Values()
}

// All lists tracked units job by job in catalog order.
func (r *Registry) All() []Tracked {
	out := make([]Tracked, 0, len(r.owner))
	for jobID, set := range r.pop.All() {
		for _, u := range set.All() {
			out = append(out, Tracked{Unit: u, JobID: jobID})
		}
	}
	return out
}
