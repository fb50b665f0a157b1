package simworld

import (
	"fmt"

	"github.com/zeusync/colony/internal/core/world"
)

// Layout describes a simulated room. It is loaded from the colony config.
type Layout struct {
	Name            string        `yaml:"name"`
	ControllerLevel int           `yaml:"controller_level"`
	Sources         []Point       `yaml:"sources"`
	Spawns          []SpawnLayout `yaml:"spawns"`
	Extensions      []Point       `yaml:"extensions"`
	Containers      []Point       `yaml:"containers"`
	Ramparts        []Point       `yaml:"ramparts"`
	Towers          []Point       `yaml:"towers"`
	Sites           []SiteLayout  `yaml:"construction_sites"`
	Hostiles        []Point       `yaml:"hostiles"`
	Units           []UnitLayout  `yaml:"units"`
}

type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type SpawnLayout struct {
	Name string `yaml:"name"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

type SiteLayout struct {
	Kind world.StructureKind `yaml:"kind"`
	X    int                 `yaml:"x"`
	Y    int                 `yaml:"y"`
}

type UnitLayout struct {
	Name string           `yaml:"name"`
	Job  string           `yaml:"job"`
	X    int              `yaml:"x"`
	Y    int              `yaml:"y"`
	Body []world.PartKind `yaml:"body"`
}

// Build creates every room in layouts.
func (g *Game) Build(layouts ...Layout) error {
	for _, l := range layouts {
		r, err := g.AddRoom(l.Name, l.ControllerLevel)
		if err != nil {
			return err
		}
		for _, p := range l.Sources {
			r.AddSource(p.X, p.Y)
		}
		for _, s := range l.Spawns {
			name := s.Name
			if name == "" {
				name = g.nextName("Spawn")
			}
			r.AddSpawn(name, s.X, s.Y)
		}
		for _, p := range l.Extensions {
			r.AddExtension(p.X, p.Y)
		}
		for _, p := range l.Containers {
			r.AddContainer(p.X, p.Y)
		}
		for _, p := range l.Ramparts {
			r.AddRampart(p.X, p.Y)
		}
		for _, p := range l.Towers {
			r.AddTower(p.X, p.Y)
		}
		for _, s := range l.Sites {
			if _, ok := siteTotals[s.Kind]; !ok {
				return fmt.Errorf("%w: %q in room %s", ErrInvalidStructure, s.Kind, l.Name)
			}
			r.AddConstructionSite(s.Kind, s.X, s.Y)
		}
		for _, p := range l.Hostiles {
			r.AddHostile(p.X, p.Y, world.Attack, world.Move)
		}
		for _, u := range l.Units {
			r.AddUnit(u.Name, u.Job, u.X, u.Y, u.Body...)
		}
	}
	return nil
}
