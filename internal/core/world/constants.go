package world

// StandardConstants is the default cost and structure table.
type StandardConstants struct{}

var _ Constants = StandardConstants{}

var bodyPartCosts = map[PartKind]int{
	Move:         50,
	Work:         100,
	Carry:        50,
	Attack:       80,
	RangedAttack: 150,
	Heal:         250,
	Claim:        600,
	Tough:        10,
}

// Indexed by controller level 0..8.
var structuresPerLevel = map[StructureKind][9]int{
	KindSpawn:     {0, 1, 1, 1, 1, 1, 1, 2, 3},
	KindExtension: {0, 0, 5, 10, 20, 30, 40, 50, 60},
	KindContainer: {5, 5, 5, 5, 5, 5, 5, 5, 5},
	KindRampart:   {0, 0, 2500, 2500, 2500, 2500, 2500, 2500, 2500},
	KindWall:      {0, 0, 2500, 2500, 2500, 2500, 2500, 2500, 2500},
	KindRoad:      {2500, 2500, 2500, 2500, 2500, 2500, 2500, 2500, 2500},
	KindTower:     {0, 0, 0, 1, 1, 2, 2, 3, 6},
	KindStorage:   {0, 0, 0, 0, 1, 1, 1, 1, 1},
}

func (StandardConstants) BodyPartCost(kind PartKind) int {
	return bodyPartCosts[kind]
}

func (StandardConstants) MaxStructures(kind StructureKind, level int) int {
	table, ok := structuresPerLevel[kind]
	if !ok {
		return 0
	}
	if level < 0 {
		level = 0
	}
	if level > 8 {
		level = 8
	}
	return table[level]
}

// BodyCost sums part costs for body.
func BodyCost(c Constants, body []PartKind) int {
	total := 0
	for _, p := range body {
		total += c.BodyPartCost(p)
	}
	return total
}

func CountParts(body []PartKind, kind PartKind) int {
	n := 0
	for _, p := range body {
		if p == kind {
			n++
		}
	}
	return n
}
