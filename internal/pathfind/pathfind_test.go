package pathfind

import (
	"testing"

	"github.com/l1jgo/townsim/internal/worldmap"
)

func openTown(t *testing.T, rows []string) *worldmap.Town {
	t.Helper()
	g := make(worldmap.Grid, len(rows))
	for y, row := range rows {
		g[y] = make([]worldmap.Tile, len(row))
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case 'F':
				g[y][x] = worldmap.TileFloor
			default:
				g[y][x] = worldmap.TileWall
			}
		}
	}
	town, err := worldmap.NewTown(g, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewTown: %v", err)
	}
	return town
}

func TestGroundFindsStraightPath(t *testing.T) {
	town := openTown(t, []string{
		"WWWWWWW",
		"WFFFFFW",
		"WWWWWWW",
	})
	path, ok := Ground(town, nil, false, 0, 0, 1, 1, 5, 1)
	if !ok {
		t.Fatalf("expected a path to be found")
	}
	if len(path) == 0 {
		t.Fatalf("no path found")
	}
	end := path[len(path)-1]
	if end.X != 5 || end.Y != 1 {
		t.Errorf("expecting path to end at 5,1, got %d,%d", end.X, end.Y)
	}
	if start := path[0]; start.X != 1 || start.Y != 1 {
		t.Errorf("expecting path to start at 1,1, got %d,%d", start.X, start.Y)
	}
}

func TestGroundBlockedByWall(t *testing.T) {
	town := openTown(t, []string{
		"WWWWW",
		"WFWFW",
		"WFWFW",
		"WFWFW",
		"WWWWW",
	})
	if _, ok := Ground(town, nil, false, 0, 0, 1, 1, 3, 1); ok {
		t.Errorf("expected no path across a solid wall column")
	}
}

func TestGroundSameStartAndGoal(t *testing.T) {
	town := openTown(t, []string{"WWW", "WFW", "WWW"})
	path, ok := Ground(town, nil, false, 0, 0, 1, 1, 1, 1)
	if !ok {
		t.Fatalf("expected a trivial path when start equals goal")
	}
	if len(path) != 1 || path[0] != (worldmap.Point{X: 1, Y: 1}) {
		t.Errorf("expected single-point path at (1,1), got %v", path)
	}
}

func TestGroundGoalReachableEvenWhenOccupied(t *testing.T) {
	town := openTown(t, []string{
		"WWWWW",
		"WFFFW",
		"WWWWW",
	})
	occ := worldmap.NewOccupancy()
	occ.Add(3, 1) // goal tile itself is occupied
	path, ok := Ground(town, occ, false, 0, 0, 1, 1, 3, 1)
	if !ok {
		t.Fatalf("expected the occupied goal tile to still be reachable")
	}
	end := path[len(path)-1]
	if end.X != 3 || end.Y != 1 {
		t.Errorf("expected path to end at the occupied goal, got %d,%d", end.X, end.Y)
	}
}

func TestGroundRejectsOccupiedIntermediateTile(t *testing.T) {
	town := openTown(t, []string{"WWWWW", "WFFFW", "WWWWW"})
	occ := worldmap.NewOccupancy()
	occ.Add(2, 1) // blocks the only route through a 1-wide corridor
	if _, ok := Ground(town, occ, false, 0, 0, 1, 1, 3, 1); ok {
		t.Errorf("expected no path when the only route is occupied mid-corridor")
	}
}

func TestGroundRejectsPlayerTile(t *testing.T) {
	town := openTown(t, []string{"WWWWW", "WFFFW", "WWWWW"})
	if _, ok := Ground(town, nil, true, 2, 1, 1, 1, 3, 1); ok {
		t.Errorf("expected no path through the player's own tile")
	}
}

func TestUpstairsRoutesWithinOverlay(t *testing.T) {
	u := &worldmap.InnUpstairs{
		OffsetX: 10,
		OffsetY: 10,
		Tiles: worldmap.Grid{
			{worldmap.TileWall, worldmap.TileWall, worldmap.TileWall, worldmap.TileWall},
			{worldmap.TileWall, worldmap.TileFloor, worldmap.TileFloor, worldmap.TileWall},
			{worldmap.TileWall, worldmap.TileWall, worldmap.TileStairs, worldmap.TileWall},
		},
	}
	path, ok := Upstairs(u, nil, 11, 11, 12, 12)
	if !ok {
		t.Fatalf("expected a path across the upstairs overlay")
	}
	end := path[len(path)-1]
	if end.X != 12 || end.Y != 12 {
		t.Errorf("expected path to end at overlay stairs tile (12,12), got %d,%d", end.X, end.Y)
	}
}

func TestUpstairsRejectsBlockedProp(t *testing.T) {
	u := &worldmap.InnUpstairs{
		OffsetX: 0,
		OffsetY: 0,
		Tiles: worldmap.Grid{
			{worldmap.TileFloor, worldmap.TileFloor, worldmap.TileFloor},
		},
		Props: []worldmap.Prop{{X: 1, Y: 0, Type: worldmap.PropTable}},
	}
	if _, ok := Upstairs(u, nil, 0, 0, 2, 0); ok {
		t.Errorf("expected no path through a blocking prop on the upstairs overlay")
	}
}
