package jobs

import (
	"fmt"
	"sort"

	"github.com/zeusync/colony/internal/core/body"
)

// Catalog is the read-only, insertion-ordered set of jobs of one room.
type Catalog struct {
	order      []Job
	byID       map[string]Job
	byPriority []Job
}

func NewCatalog(jobs ...Job) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Job, len(jobs))}
	for _, j := range jobs {
		if j == nil || j.ID() == "" {
			return nil, fmt.Errorf("%w: missing id", ErrInvalidJob)
		}
		if _, ok := c.byID[j.ID()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateJob, j.ID())
		}
		if err := body.ValidateGroups(j.BodyPartGroups()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidJob, j.ID(), err)
		}
		c.byID[j.ID()] = j
		c.order = append(c.order, j)
	}

	c.byPriority = make([]Job, len(c.order))
	copy(c.byPriority, c.order)
	sort.SliceStable(c.byPriority, func(a, b int) bool {
		return c.byPriority[a].Priority() < c.byPriority[b].Priority()
	})
	return c, nil
}

func (c *Catalog) Get(id string) (Job, bool) {
	j, ok := c.byID[id]
	return j, ok
}

// All returns jobs in insertion order.
func (c *Catalog) All() []Job { return c.order }

// ByPriority returns jobs by ascending priority, ties in insertion order.
func (c *Catalog) ByPriority() []Job { return c.byPriority }

func (c *Catalog) Len() int { return len(c.order) }

func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.order))
	for i, j := range c.order {
		ids[i] = j.ID()
	}
	return ids
}
