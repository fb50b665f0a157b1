package world

import "github.com/zeusync/colony/internal/core/memory"

// Object is anything with an id and a position. Lookups for objects that no
// longer exist return ok=false rather than an error.
type Object interface {
	ID() string
	Pos() Position
	Exists() bool
}

type StoreHolder interface {
	Store() Store
}

type Structure interface {
	Object
	Kind() StructureKind
	Hits() int
	HitsMax() int
	My() bool
}

type StoreStructure interface {
	Structure
	StoreHolder
}

// Tower fires at most once per tick and spends energy on every shot.
type Tower interface {
	StoreStructure
	Attack(target Unit) Result
}

type Controller interface {
	Object
	Level() int
	My() bool
}

type Source interface {
	Object
	Energy() int
	EnergyCapacity() int
}

type Drop interface {
	Object
	Amount() int
}

type ConstructionSite interface {
	Object
	Kind() StructureKind
	Progress() int
	ProgressTotal() int
}

// Unit is one mobile worker. Every intent method issues at most one command
// per kind per tick.
type Unit interface {
	Object
	StoreHolder
	Name() string
	My() bool
	Spawning() bool
	Body() []PartKind
	Memory() memory.Object
	TicksToLive() int
	Hits() int
	HitsMax() int

	Say(msg string)
	MoveTo(target Position) Result
	Harvest(source Source) Result
	Transfer(target Object) Result
	Withdraw(target Object) Result
	Pickup(drop Drop) Result
	Build(site ConstructionSite) Result
	Repair(target Structure) Result
	UpgradeController(controller Controller) Result
	Attack(target Unit) Result
}

// Spawn is a production facility with a two-phase produce command.
type Spawn interface {
	StoreStructure
	Name() string
	Spawning() bool
	// CanProduce is the dry run: no energy is spent.
	CanProduce(body []PartKind, name string) bool
	// Produce starts building a unit and returns its id. The unit becomes
	// visible in a later tick.
	Produce(body []PartKind, name string, initial memory.Object) (string, error)
	Recycle(u Unit) Result
}

type Room interface {
	Name() string
	Exists() bool
	Controller() (Controller, bool)
	EnergyAvailable() int
	EnergyCapacityAvailable() int
	Memory() memory.Object

	// Units includes hostile units.
	Units() []Unit
	Sources() []Source
	Structures() []Structure
	Spawns() []Spawn
	ConstructionSites() []ConstructionSite
	Drops() []Drop
}

type Constants interface {
	BodyPartCost(kind PartKind) int
	MaxStructures(kind StructureKind, controllerLevel int) int
}

type Game interface {
	Time() int64
	Rooms() []Room
	Room(name string) (Room, bool)
	Memory() memory.Object
	Constants() Constants
	Units() []Unit
	Unit(id string) (Unit, bool)
	Object(id string) (Object, bool)
}
