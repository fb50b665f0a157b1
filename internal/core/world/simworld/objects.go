package simworld

import (
	"github.com/zeusync/colony/internal/core/world"
)

const (
	SourceCapacity     = 3000
	SourceRegenTicks   = 300
	SpawnCapacity      = 300
	ExtensionCapacity  = 50
	ContainerCapacity  = 2000
	TicksPerBodyPart   = 3
	UnitLifetime       = 1500
	HitsPerBodyPart    = 100
	HarvestPerWork     = 2
	BuildPerWork       = 5
	RepairPerEnergy    = 100
	AttackPerPart      = 30
	CarryPerPart       = 50
	UpgradePerWork     = 1
	BuildRange         = 3
	MaxBodyParts       = 50
	PassiveSpawnRegen  = 1
	PassiveRegenCutoff = 300
)

var siteTotals = map[world.StructureKind]int{
	world.KindExtension: 3000,
	world.KindContainer: 5000,
	world.KindRampart:   1,
	world.KindWall:      1,
	world.KindRoad:      300,
	world.KindTower:     5000,
	world.KindStorage:   30000,
	world.KindSpawn:     15000,
}

var structureHits = map[world.StructureKind]int{
	world.KindSpawn:     5000,
	world.KindExtension: 1000,
	world.KindContainer: 250000,
	world.KindRampart:   300000000,
	world.KindWall:      300000000,
	world.KindRoad:      5000,
	world.KindTower:     3000,
	world.KindStorage:   10000,
}

var storeCapacity = map[world.StructureKind]int{
	world.KindSpawn:     SpawnCapacity,
	world.KindExtension: ExtensionCapacity,
	world.KindContainer: ContainerCapacity,
	world.KindTower:     1000,
	world.KindStorage:   1000000,
}

// Progress needed to leave each controller level.
var controllerProgress = [9]int{0, 200, 45000, 135000, 405000, 1215000, 3645000, 10935000, 0}

type base struct {
	id   string
	pos  world.Position
	dead bool
}

func (b *base) ID() string          { return b.id }
func (b *base) Pos() world.Position { return b.pos }
func (b *base) Exists() bool        { return !b.dead }

type Source struct {
	base
	energy   int
	capacity int
}

var _ world.Source = (*Source)(nil)

func (s *Source) Energy() int         { return s.energy }
func (s *Source) EnergyCapacity() int { return s.capacity }

// SetEnergy is a test hook.
func (s *Source) SetEnergy(v int) { s.energy = v }

type Structure struct {
	base
	kind     world.StructureKind
	hits     int
	hitsMax  int
	my       bool
	used     int
	capacity int
}

var _ world.StoreStructure = (*Structure)(nil)

func (s *Structure) Kind() world.StructureKind { return s.kind }
func (s *Structure) Hits() int                 { return s.hits }
func (s *Structure) HitsMax() int              { return s.hitsMax }
func (s *Structure) My() bool                  { return s.my }
func (s *Structure) Store() world.Store {
	return world.Store{Used: s.used, Capacity: s.capacity}
}

// SetEnergy and SetHits are test hooks.
func (s *Structure) SetEnergy(v int) { s.used = min(v, s.capacity) }
func (s *Structure) SetHits(v int)   { s.hits = min(v, s.hitsMax) }

type Controller struct {
	base
	level    int
	progress int
	my       bool
}

var _ world.Controller = (*Controller)(nil)

func (c *Controller) Level() int    { return c.level }
func (c *Controller) My() bool      { return c.my }
func (c *Controller) Progress() int { return c.progress }

func (c *Controller) addProgress(v int) {
	c.progress += v
	for c.level < 8 && controllerProgress[c.level] > 0 && c.progress >= controllerProgress[c.level] {
		c.progress -= controllerProgress[c.level]
		c.level++
	}
}

type Drop struct {
	base
	amount int
}

var _ world.Drop = (*Drop)(nil)

func (d *Drop) Amount() int { return d.amount }

type ConstructionSite struct {
	base
	kind     world.StructureKind
	progress int
	total    int
}

var _ world.ConstructionSite = (*ConstructionSite)(nil)

func (s *ConstructionSite) Kind() world.StructureKind { return s.kind }
func (s *ConstructionSite) Progress() int             { return s.progress }
func (s *ConstructionSite) ProgressTotal() int        { return s.total }
