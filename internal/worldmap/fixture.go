package worldmap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tile row characters, used by the YAML fixture format: one character per
// column, matching the reference service's "one row of text per map line" tile-file
// convention, but inlined into the YAML document itself rather than a
// companion file, since town fixtures are small enough to keep in one
// place.
const (
	charWall     = 'W'
	charFloor    = 'F'
	charDoor     = 'D'
	charWindow   = 'N'
	charRoad     = 'R'
	charStairs   = 'S'
	charPier     = 'P'
	charShipDeck = 'K'
	charShipEdge = 'E'
	charWater    = 'A'
)

func tileFromChar(c byte) Tile {
	switch c {
	case charFloor:
		return TileFloor
	case charDoor:
		return TileDoor
	case charWindow:
		return TileWindow
	case charRoad:
		return TileRoad
	case charStairs:
		return TileStairs
	case charPier:
		return TilePier
	case charShipDeck:
		return TileShipDeck
	case charShipEdge:
		return TileShipEdge
	case charWater:
		return TileWater
	default:
		return TileWall
	}
}

func gridFromRows(rows []string) Grid {
	g := make(Grid, len(rows))
	for y, row := range rows {
		g[y] = make([]Tile, len(row))
		for x := 0; x < len(row); x++ {
			g[y][x] = tileFromChar(row[x])
		}
	}
	return g
}

type pointYAML struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (p pointYAML) toPoint() Point { return Point{X: p.X, Y: p.Y} }

type buildingYAML struct {
	X        int       `yaml:"x"`
	Y        int       `yaml:"y"`
	W        int       `yaml:"w"`
	H        int       `yaml:"h"`
	Door     pointYAML `yaml:"door"`
	PrefabID string    `yaml:"prefab_id"`
	Tags     []string  `yaml:"tags"`
}

type shopYAML struct {
	X           int         `yaml:"x"`
	Y           int         `yaml:"y"`
	Type        string      `yaml:"type"`
	Name        string      `yaml:"name"`
	OpenMin     int         `yaml:"open_min"`
	CloseMin    int         `yaml:"close_min"`
	AlwaysOpen  bool        `yaml:"always_open"`
	BuildingID  int         `yaml:"building_id"`
	InsideTiles []pointYAML `yaml:"inside_tiles"`
}

type propYAML struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Type string `yaml:"type"`
	Name string `yaml:"name"`
}

type innYAML struct {
	BuildingID   int         `yaml:"building_id"`
	StairsGround []pointYAML `yaml:"stairs_ground"`
	Upstairs     struct {
		OffsetX int      `yaml:"offset_x"`
		OffsetY int      `yaml:"offset_y"`
		Rows    []string `yaml:"rows"`
		Props   []propYAML `yaml:"props"`
	} `yaml:"upstairs"`
}

// townYAML is the on-disk fixture format for a town: map tiles, buildings,
// shops, props, and the optional inn overlay.
type townYAML struct {
	Size          string       `yaml:"size"`
	Rows          []string     `yaml:"rows"`
	Buildings     []buildingYAML `yaml:"buildings"`
	Shops         []shopYAML   `yaml:"shops"`
	Props         []propYAML   `yaml:"props"`
	Inn           *innYAML     `yaml:"inn"`
	Plaza         pointYAML    `yaml:"plaza"`
	Exit          pointYAML    `yaml:"exit"`
	MaxActiveNPCs int          `yaml:"max_active_npcs"`
	PathBudget    int          `yaml:"path_budget"`
}

// LoadTownFixture reads a YAML town fixture and constructs a validated
// Town, the way the reference service's data.LoadMapData reads map_list.yaml plus
// tile files and returns a validated table.
func LoadTownFixture(path string) (*Town, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read town fixture %s: %w", path, err)
	}
	var doc townYAML
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse town fixture %s: %w", path, err)
	}

	grid := gridFromRows(doc.Rows)

	buildings := make([]Building, len(doc.Buildings))
	for i, b := range doc.Buildings {
		buildings[i] = Building{
			X: b.X, Y: b.Y, W: b.W, H: b.H,
			Door:     b.Door.toPoint(),
			PrefabID: b.PrefabID,
			Tags:     b.Tags,
		}
	}

	shops := make([]Shop, len(doc.Shops))
	for i, s := range doc.Shops {
		inside := make([]Point, len(s.InsideTiles))
		for j, p := range s.InsideTiles {
			inside[j] = p.toPoint()
		}
		shopType := ShopGeneric
		if s.Type == string(ShopInn) {
			shopType = ShopInn
		}
		shops[i] = Shop{
			X: s.X, Y: s.Y,
			Type:        shopType,
			Name:        s.Name,
			OpenMin:     s.OpenMin,
			CloseMin:    s.CloseMin,
			AlwaysOpen:  s.AlwaysOpen,
			BuildingID:  s.BuildingID,
			InsideTiles: inside,
		}
	}

	props := make([]Prop, len(doc.Props))
	for i, p := range doc.Props {
		props[i] = Prop{X: p.X, Y: p.Y, Type: PropType(p.Type), Name: p.Name}
	}

	town, err := NewTown(grid, buildings, shops, props)
	if err != nil {
		return nil, err
	}
	switch Size(doc.Size) {
	case SizeBig:
		town.Size = SizeBig
	case SizeCity:
		town.Size = SizeCity
	default:
		town.Size = SizeSmall
	}
	town.Plaza = doc.Plaza.toPoint()
	town.PlazaRect = Building{X: town.Plaza.X, Y: town.Plaza.Y, W: 1, H: 1}
	town.ExitAt = doc.Exit.toPoint()
	town.MaxActiveNPCs = doc.MaxActiveNPCs
	town.PathBudget = doc.PathBudget

	if doc.Inn != nil {
		stairs := make([]Point, len(doc.Inn.StairsGround))
		for i, p := range doc.Inn.StairsGround {
			stairs[i] = p.toPoint()
		}
		upstairsProps := make([]Prop, len(doc.Inn.Upstairs.Props))
		for i, p := range doc.Inn.Upstairs.Props {
			upstairsProps[i] = Prop{X: p.X, Y: p.Y, Type: PropType(p.Type), Name: p.Name}
		}
		overlay := &InnUpstairs{
			OffsetX: doc.Inn.Upstairs.OffsetX,
			OffsetY: doc.Inn.Upstairs.OffsetY,
			Tiles:   gridFromRows(doc.Inn.Upstairs.Rows),
			Props:   upstairsProps,
		}
		if err := town.WithInn(doc.Inn.BuildingID, overlay, stairs); err != nil {
			return nil, err
		}
	}

	return town, nil
}
