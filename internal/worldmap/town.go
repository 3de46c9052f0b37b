package worldmap

import "fmt"

// Size classifies a town, scaling its path budget and guard patrol radius.
type Size string

const (
	SizeSmall Size = "small"
	SizeBig   Size = "big"
	SizeCity  Size = "city"
)

// Town is the static, read-only description of one town map: everything a
// host supplies at town entry. Once constructed via NewTown, a Town's
// invariants — in-bounds geometry, doors on perimeters, resolvable
// indices — are guaranteed, so tick code never needs to guard against a
// malformed map.
type Town struct {
	Map       Grid
	Buildings []Building
	Shops     []Shop
	Props     []Prop

	InnBuildingID   int // index into Buildings, -1 if no inn
	InnUpstairs     *InnUpstairs
	InnStairsGround []Point

	Plaza       Point
	PlazaRect   Building
	ExitAt      Point
	Size        Size
	MaxActiveNPCs int // 0 = use default formula
	PathBudget    int // 0 = use default formula
}

// NewTown validates a town description and rejects structurally impossible
// input at load time — out-of-bounds geometry or a corrupt building
// rectangle has to be caught here, not mid-tick.
func NewTown(m Grid, buildings []Building, shops []Shop, props []Prop) (*Town, error) {
	if m.Height() == 0 || m.Width() == 0 {
		return nil, fmt.Errorf("worldmap: empty map grid")
	}
	for i, b := range buildings {
		if err := b.validate(i); err != nil {
			return nil, err
		}
		if !m.InBounds(b.X, b.Y) || !m.InBounds(b.X+b.W-1, b.Y+b.H-1) {
			return nil, fmt.Errorf("building %d: rectangle out of map bounds", i)
		}
	}
	for i, s := range shops {
		if s.BuildingID < 0 || s.BuildingID >= len(buildings) {
			return nil, fmt.Errorf("shop %d: building index %d out of range", i, s.BuildingID)
		}
	}
	t := &Town{
		Map:           m,
		Buildings:     buildings,
		Shops:         shops,
		Props:         props,
		InnBuildingID: -1,
		Size:          SizeSmall,
	}
	return t, nil
}

// WithInn attaches the inn overlay and validates its geometry against the
// ground map.
func (t *Town) WithInn(buildingID int, overlay *InnUpstairs, stairsGround []Point) error {
	if buildingID < 0 || buildingID >= len(t.Buildings) {
		return fmt.Errorf("worldmap: inn building index %d out of range", buildingID)
	}
	if overlay != nil {
		if overlay.OffsetX < 0 || overlay.OffsetY < 0 {
			return fmt.Errorf("worldmap: inn upstairs offset must be non-negative")
		}
	}
	for _, p := range stairsGround {
		if !t.Map.InBounds(p.X, p.Y) {
			return fmt.Errorf("worldmap: inn stairs tile (%d,%d) out of map bounds", p.X, p.Y)
		}
	}
	t.InnBuildingID = buildingID
	t.InnUpstairs = overlay
	t.InnStairsGround = stairsGround
	return nil
}

// HasInn reports whether this town has an inn with an upstairs overlay.
func (t *Town) HasInn() bool {
	return t.InnBuildingID >= 0 && t.InnUpstairs != nil
}

// InnBuilding returns the inn's Building, or the zero value if none.
func (t *Town) InnBuilding() Building {
	if t.InnBuildingID < 0 {
		return Building{}
	}
	return t.Buildings[t.InnBuildingID]
}

// PatrolRadius returns the guard patrol radius for this town's size.
func (t *Town) PatrolRadius() int {
	switch t.Size {
	case SizeBig:
		return 8
	case SizeCity:
		return 10
	default:
		return 6
	}
}

// BudgetFraction returns the per-NPC path-budget fraction for this town's
// size.
func (t *Town) BudgetFraction() float64 {
	switch t.Size {
	case SizeBig:
		return 0.26
	case SizeCity:
		return 0.30
	default:
		return 0.20
	}
}
