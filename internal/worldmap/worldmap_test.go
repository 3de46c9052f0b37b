package worldmap

import (
	"os"
	"path/filepath"
	"testing"
)

func smallGrid() Grid {
	rows := []string{
		"WWWWWWWW",
		"WFFFFFFW",
		"WFFFFFFW",
		"WFFFFFFW",
		"WWWWDWWW",
		"WRRRRRRW",
	}
	return gridFromRows(rows)
}

func TestGridWalkability(t *testing.T) {
	g := smallGrid()
	if !g.IsWalkTown(2, 2) {
		t.Errorf("expected floor tile to be walkable")
	}
	if !g.IsWalkTown(4, 4) {
		t.Errorf("expected door tile to be walkable")
	}
	if !g.IsWalkTown(2, 5) {
		t.Errorf("expected road tile to be walkable")
	}
	if g.IsWalkTown(0, 0) {
		t.Errorf("expected wall tile to be unwalkable")
	}
	if g.IsWalkTown(-1, 0) || g.IsWalkTown(0, -1) || g.IsWalkTown(100, 100) {
		t.Errorf("expected out-of-bounds tiles to be unwalkable")
	}
}

func TestBuildingValidateRejectsOffPerimeterDoor(t *testing.T) {
	b := Building{X: 0, Y: 0, W: 5, H: 5, Door: Point{X: 2, Y: 2}}
	if err := b.validate(0); err == nil {
		t.Errorf("expected validate to reject an interior door")
	}
}

func TestBuildingValidateRejectsTooSmall(t *testing.T) {
	b := Building{X: 0, Y: 0, W: 2, H: 2, Door: Point{X: 0, Y: 0}}
	if err := b.validate(0); err == nil {
		t.Errorf("expected validate to reject a building with no interior")
	}
}

func TestBuildingInteriorExcludesWalls(t *testing.T) {
	b := Building{X: 0, Y: 0, W: 4, H: 4, Door: Point{X: 0, Y: 1}}
	if b.Interior(0, 0) {
		t.Errorf("corner should not be interior")
	}
	if !b.Interior(1, 1) {
		t.Errorf("(1,1) should be interior of a 4x4 building at origin")
	}
	if !b.Contains(0, 0) {
		t.Errorf("Contains should include the wall ring")
	}
}

func TestNewTownRejectsOutOfBoundsBuilding(t *testing.T) {
	g := smallGrid()
	_, err := NewTown(g, []Building{{X: 10, Y: 10, W: 4, H: 4, Door: Point{X: 10, Y: 11}}}, nil, nil)
	if err == nil {
		t.Errorf("expected NewTown to reject a building rectangle outside the map")
	}
}

func TestNewTownRejectsBadShopBuildingIndex(t *testing.T) {
	g := smallGrid()
	buildings := []Building{{X: 1, Y: 1, W: 4, H: 3, Door: Point{X: 2, Y: 1}}}
	_, err := NewTown(g, buildings, []Shop{{BuildingID: 5}}, nil)
	if err == nil {
		t.Errorf("expected NewTown to reject a shop referencing an unknown building")
	}
}

func TestShopIsOpenEqualOpenCloseIsNeverOpen(t *testing.T) {
	s := Shop{OpenMin: 480, CloseMin: 480}
	for _, minute := range []int{0, 480, 1000, 1439} {
		if s.IsOpen(minute) {
			t.Errorf("OpenMin == CloseMin should mean never open, got open at minute %d", minute)
		}
	}
}

func TestShopIsOpenWraparound(t *testing.T) {
	s := Shop{OpenMin: 1380, CloseMin: 120} // 23:00 - 02:00
	if !s.IsOpen(1400) {
		t.Errorf("expected shop open at 23:20")
	}
	if !s.IsOpen(60) {
		t.Errorf("expected shop open at 01:00")
	}
	if s.IsOpen(600) {
		t.Errorf("expected shop closed at 10:00")
	}
}

func TestShopAlwaysOpen(t *testing.T) {
	s := Shop{AlwaysOpen: true}
	if !s.IsOpen(0) || !s.IsOpen(1439) {
		t.Errorf("expected AlwaysOpen shop to be open at any minute")
	}
}

func TestInnUpstairsCoordinateRoundTrip(t *testing.T) {
	u := &InnUpstairs{OffsetX: 20, OffsetY: 5, Tiles: gridFromRows([]string{"FFS"})}
	x, y := u.ToGround(2, 0)
	if x != 22 || y != 5 {
		t.Errorf("ToGround(2,0) = (%d,%d), want (22,5)", x, y)
	}
	lx, ly := u.ToLocal(x, y)
	if lx != 2 || ly != 0 {
		t.Errorf("ToLocal(ToGround(2,0)) = (%d,%d), want (2,0)", lx, ly)
	}
	if !u.IsWalkUpstairs(22, 5) {
		t.Errorf("expected stairs tile to be walkable upstairs")
	}
	if u.IsWalkUpstairs(0, 0) {
		t.Errorf("expected out-of-overlay ground coordinate to be unwalkable upstairs")
	}
}

func TestNilInnUpstairsIsInert(t *testing.T) {
	var u *InnUpstairs
	if u.IsWalkUpstairs(0, 0) {
		t.Errorf("expected nil overlay to report unwalkable everywhere")
	}
	if _, ok := u.PropAt(0, 0); ok {
		t.Errorf("expected nil overlay to have no props")
	}
}

func TestPropBlocks(t *testing.T) {
	blocking := []PropType{PropTable, PropShelf, PropCounter}
	for _, p := range blocking {
		if !PropBlocks(p) {
			t.Errorf("expected %s to block movement", p)
		}
	}
	if PropBlocks(PropBed) {
		t.Errorf("expected bed to not block movement")
	}
}

func TestIsFreeTileRespectsOccupancyAndProps(t *testing.T) {
	g := smallGrid()
	town, err := NewTown(g, nil, nil, []Prop{{X: 3, Y: 2, Type: PropTable}})
	if err != nil {
		t.Fatalf("NewTown: %v", err)
	}
	occ := NewOccupancy()
	occ.Add(2, 2)

	if IsFreeTile(town, occ, 0, 0, false, 2, 2) {
		t.Errorf("expected occupied tile to be unfree")
	}
	if IsFreeTile(town, occ, 0, 0, false, 3, 2) {
		t.Errorf("expected blocking-prop tile to be unfree")
	}
	if !IsFreeTile(town, occ, 0, 0, false, 4, 2) {
		t.Errorf("expected plain floor tile to be free")
	}
	if IsFreeTile(town, occ, 4, 2, true, 4, 2) {
		t.Errorf("expected player-occupied tile to be unfree")
	}
}

func TestNearestFreeAdjacentScanOrder(t *testing.T) {
	g := smallGrid()
	town, err := NewTown(g, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewTown: %v", err)
	}
	occ := NewOccupancy()
	occ.Add(3, 2) // block the center so the scan must move on

	p, ok := NearestFreeAdjacent(town, occ, 0, 0, false, 3, 2, nil)
	if !ok {
		t.Fatalf("expected a free adjacent tile")
	}
	if p.X == 3 && p.Y == 2 {
		t.Errorf("expected the occupied center to be skipped")
	}
}

func TestLoadTownFixture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "town.yaml")
	doc := `
size: small
plaza: {x: 5, y: 5}
exit: {x: 7, y: 1}
max_active_npcs: 10
path_budget: 3
rows:
  - "WWWWWWWWWW"
  - "WFFFFFFFFW"
  - "WFFFFFFFFW"
  - "WWWWDWWWWW"
  - "WFFFFFFFFW"
  - "WRRRRRRRRW"
buildings:
  - x: 1
    y: 0
    w: 5
    h: 4
    door: {x: 4, y: 3}
    tags: [home]
props:
  - {x: 2, y: 1, type: bed}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	town, err := LoadTownFixture(path)
	if err != nil {
		t.Fatalf("LoadTownFixture: %v", err)
	}
	if town.Size != SizeSmall {
		t.Errorf("expected size small, got %s", town.Size)
	}
	if town.Plaza != (Point{5, 5}) {
		t.Errorf("expected plaza at (5,5), got %v", town.Plaza)
	}
	if len(town.Buildings) != 1 || len(town.Props) != 1 {
		t.Errorf("expected one building and one prop, got %d buildings, %d props", len(town.Buildings), len(town.Props))
	}
	if town.MaxActiveNPCs != 10 || town.PathBudget != 3 {
		t.Errorf("expected max_active_npcs=10, path_budget=3, got %d, %d", town.MaxActiveNPCs, town.PathBudget)
	}
}

func TestLoadTownFixtureMissingFile(t *testing.T) {
	if _, err := LoadTownFixture(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing fixture file")
	}
}
