package world

import "sort"

// RoomCache memoizes room queries for one tick. Call Refresh at the start of
// every tick; results computed before that are dropped.
type RoomCache struct {
	room Room
	tick int64

	sources    []Source
	structures []Structure
	spawns     []Spawn
	myUnits    []Unit
	hostiles   []Unit
	byID       map[string]Object
}

func NewRoomCache(room Room) *RoomCache {
	return &RoomCache{room: room, tick: -1}
}

func (c *RoomCache) Room() Room   { return c.room }
func (c *RoomCache) Name() string { return c.room.Name() }
func (c *RoomCache) Tick() int64  { return c.tick }

// Refresh binds the cache to room for tick and drops every memoized result.
// A nil room keeps the current one.
func (c *RoomCache) Refresh(room Room, tick int64) {
	if room != nil {
		c.room = room
	}
	c.tick = tick
	c.sources = nil
	c.structures = nil
	c.spawns = nil
	c.myUnits = nil
	c.hostiles = nil
	c.byID = nil
}

func (c *RoomCache) Sources() []Source {
	if c.sources == nil {
		c.sources = c.room.Sources()
	}
	return c.sources
}

func (c *RoomCache) Structures() []Structure {
	if c.structures == nil {
		c.structures = c.room.Structures()
	}
	return c.structures
}

// Spawns returns owned spawns sorted by name, the facility tick order.
func (c *RoomCache) Spawns() []Spawn {
	if c.spawns == nil {
		all := c.room.Spawns()
		c.spawns = make([]Spawn, 0, len(all))
		for _, s := range all {
			if s.My() {
				c.spawns = append(c.spawns, s)
			}
		}
		sort.SliceStable(c.spawns, func(i, j int) bool { return c.spawns[i].Name() < c.spawns[j].Name() })
	}
	return c.spawns
}

// MainSpawn is the first spawn by name.
func (c *RoomCache) MainSpawn() (Spawn, bool) {
	spawns := c.Spawns()
	if len(spawns) == 0 {
		return nil, false
	}
	return spawns[0], true
}

func (c *RoomCache) StructuresOf(kind StructureKind) []Structure {
	var out []Structure
	for _, s := range c.Structures() {
		if s.Kind() == kind {
			out = append(out, s)
		}
	}
	return out
}

func (c *RoomCache) Ramparts() []Structure   { return c.StructuresOf(KindRampart) }
func (c *RoomCache) Extensions() []Structure { return c.StructuresOf(KindExtension) }
func (c *RoomCache) Containers() []Structure { return c.StructuresOf(KindContainer) }

// Towers returns the owned towers.
func (c *RoomCache) Towers() []Tower {
	var out []Tower
	for _, s := range c.StructuresOf(KindTower) {
		if t, ok := s.(Tower); ok && t.My() {
			out = append(out, t)
		}
	}
	return out
}

// SourceContainers are containers adjacent to at least one source.
func (c *RoomCache) SourceContainers() []Structure {
	var out []Structure
	for _, ct := range c.Containers() {
		for _, src := range c.Sources() {
			if ct.Pos().IsNearTo(src.Pos()) {
				out = append(out, ct)
				break
			}
		}
	}
	return out
}

func (c *RoomCache) split() {
	if c.myUnits != nil || c.hostiles != nil {
		return
	}
	c.myUnits = []Unit{}
	c.hostiles = []Unit{}
	for _, u := range c.room.Units() {
		if u.My() {
			c.myUnits = append(c.myUnits, u)
		} else {
			c.hostiles = append(c.hostiles, u)
		}
	}
}

func (c *RoomCache) MyUnits() []Unit {
	c.split()
	return c.myUnits
}

func (c *RoomCache) Hostiles() []Unit {
	c.split()
	return c.hostiles
}

// Find resolves an id among the room's objects.
func (c *RoomCache) Find(id string) (Object, bool) {
	if c.byID == nil {
		c.byID = make(map[string]Object)
		for _, s := range c.Sources() {
			c.byID[s.ID()] = s
		}
		for _, s := range c.Structures() {
			c.byID[s.ID()] = s
		}
		for _, u := range c.room.Units() {
			c.byID[u.ID()] = u
		}
		for _, d := range c.room.Drops() {
			c.byID[d.ID()] = d
		}
		for _, s := range c.room.ConstructionSites() {
			c.byID[s.ID()] = s
		}
	}
	o, ok := c.byID[id]
	if !ok || !o.Exists() {
		return nil, false
	}
	return o, true
}

func (c *RoomCache) FindNearestSpawn(from Position) (Spawn, bool) {
	return Nearest(from, c.Spawns(), nil)
}

// FindNearestSource prefers sources that still hold energy.
func (c *RoomCache) FindNearestSource(from Position) (Source, bool) {
	if s, ok := Nearest(from, c.Sources(), func(s Source) bool { return s.Energy() > 0 }); ok {
		return s, true
	}
	return Nearest(from, c.Sources(), nil)
}

// Nearest returns the closest item accepted by keep (nil keeps everything).
// Ties resolve to the earliest item.
func Nearest[T Object](from Position, items []T, keep func(T) bool) (T, bool) {
	var (
		best  T
		found bool
		dist  int
	)
	for _, it := range items {
		if keep != nil && !keep(it) {
			continue
		}
		d := from.RangeTo(it.Pos())
		if !found || d < dist {
			best, dist, found = it, d, true
		}
	}
	return best, found
}
