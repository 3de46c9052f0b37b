package movement

import (
	"testing"

	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/pathbudget"
	"github.com/l1jgo/townsim/internal/worldmap"
)

func corridor(t *testing.T) *worldmap.Town {
	t.Helper()
	rows := []string{
		"WWWWWWWWWW",
		"WFFFFFFFFW",
		"WWWWWWWWWW",
	}
	g := make(worldmap.Grid, len(rows))
	for y, row := range rows {
		g[y] = make([]worldmap.Tile, len(row))
		for x := 0; x < len(row); x++ {
			if row[x] == 'F' {
				g[y][x] = worldmap.TileFloor
			} else {
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

func newContext(t *testing.T, town *worldmap.Town) *Context {
	t.Helper()
	occ := worldmap.NewOccupancy()
	planner := pathbudget.NewPlanner()
	planner.BeginTick(1, 32)
	return &Context{
		Town:     town,
		Occ:      occ,
		Planner:  planner,
		Reserved: BuildReservedDoors(town),
	}
}

func TestStepTowardsAlreadyAtGoalIsNoop(t *testing.T) {
	town := corridor(t)
	c := newContext(t, town)
	a := npc.NewActor(1)
	a.X, a.Y = 3, 1

	if !StepTowards(c, a, 3, 1, Opts{}) {
		t.Errorf("expected StepTowards to report success when already at the goal")
	}
	if a.X != 3 || a.Y != 1 {
		t.Errorf("expected position unchanged, got %d,%d", a.X, a.Y)
	}
}

func TestStepTowardsAdvancesOneTileAtATime(t *testing.T) {
	town := corridor(t)
	c := newContext(t, town)
	a := npc.NewActor(1)
	a.X, a.Y = 1, 1
	c.Occ.Add(a.X, a.Y)

	if !StepTowards(c, a, 6, 1, Opts{}) {
		t.Fatalf("expected a step to be taken")
	}
	dist := absInt(a.X-1) + absInt(a.Y-1)
	if dist != 1 {
		t.Errorf("expected exactly one tile of movement, moved %d", dist)
	}
	if !c.Occ.Has(a.X, a.Y) {
		t.Errorf("expected occupancy to track the actor's new position")
	}
	if c.Occ.Has(1, 1) {
		t.Errorf("expected occupancy to release the actor's old position")
	}
}

func TestStepTowardsResumesExistingPlan(t *testing.T) {
	town := corridor(t)
	c := newContext(t, town)
	a := npc.NewActor(1)
	a.X, a.Y = 2, 1
	a.SetPlan([]worldmap.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}}, worldmap.Point{X: 4, Y: 1})

	if !StepTowards(c, a, 4, 1, Opts{}) {
		t.Fatalf("expected resumePlan to take a step")
	}
	if a.X != 3 || a.Y != 1 {
		t.Errorf("expected the actor to advance to the plan's next node (3,1), got %d,%d", a.X, a.Y)
	}
}

func TestStepTowardsFallsBackWhenGreedyBlockedEverywhere(t *testing.T) {
	rows := []string{
		"WWW",
		"WFW",
		"WWW",
	}
	g := make(worldmap.Grid, len(rows))
	for y, row := range rows {
		g[y] = make([]worldmap.Tile, len(row))
		for x := 0; x < len(row); x++ {
			if row[x] == 'F' {
				g[y][x] = worldmap.TileFloor
			} else {
				g[y][x] = worldmap.TileWall
			}
		}
	}
	town, err := worldmap.NewTown(g, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewTown: %v", err)
	}
	c := newContext(t, town)
	a := npc.NewActor(1)
	a.X, a.Y = 1, 1

	if StepTowards(c, a, 5, 5, Opts{}) {
		t.Errorf("expected no step to be possible when every neighbour is a wall")
	}
}

func TestBuildReservedDoorsReservesShopDoor(t *testing.T) {
	b := worldmap.Building{X: 0, Y: 0, W: 4, H: 4, Door: worldmap.Point{X: 2, Y: 0}}
	town, err := worldmap.NewTown(
		worldmap.Grid{
			{worldmap.TileWall, worldmap.TileWall, worldmap.TileDoor, worldmap.TileWall},
			{worldmap.TileWall, worldmap.TileFloor, worldmap.TileFloor, worldmap.TileWall},
			{worldmap.TileWall, worldmap.TileFloor, worldmap.TileFloor, worldmap.TileWall},
			{worldmap.TileWall, worldmap.TileWall, worldmap.TileWall, worldmap.TileWall},
		},
		[]worldmap.Building{b},
		[]worldmap.Shop{{BuildingID: 0}},
		nil,
	)
	if err != nil {
		t.Fatalf("NewTown: %v", err)
	}
	rd := BuildReservedDoors(town)
	if !rd.IsReserved(2, 0) {
		t.Errorf("expected the shop's building door to be reserved")
	}
	if !rd.Owner(2, 0, true, 0, -1) {
		t.Errorf("expected the shop's own shopkeeper to be allowed through its door")
	}
	if rd.Owner(2, 0, true, 1, -1) {
		t.Errorf("expected a different shop's shopkeeper to be denied")
	}
	if rd.Owner(2, 0, false, 0, -1) {
		t.Errorf("expected a non-shopkeeper to be denied through a reserved door")
	}
}

func TestSnapBoundActorTeleportsOutsideActorIntoBuilding(t *testing.T) {
	b := worldmap.Building{X: 0, Y: 0, W: 4, H: 4, Door: worldmap.Point{X: 2, Y: 0}}
	town, err := worldmap.NewTown(
		worldmap.Grid{
			{worldmap.TileWall, worldmap.TileWall, worldmap.TileDoor, worldmap.TileWall},
			{worldmap.TileWall, worldmap.TileFloor, worldmap.TileFloor, worldmap.TileWall},
			{worldmap.TileWall, worldmap.TileFloor, worldmap.TileFloor, worldmap.TileWall},
			{worldmap.TileWall, worldmap.TileWall, worldmap.TileWall, worldmap.TileWall},
		},
		[]worldmap.Building{b},
		nil, nil,
	)
	if err != nil {
		t.Fatalf("NewTown: %v", err)
	}
	occ := worldmap.NewOccupancy()
	a := npc.NewActor(1)
	a.BoundToBuilding = 0
	a.X, a.Y = 10, 10 // stranded far outside its building
	occ.Add(a.X, a.Y)

	if !SnapBoundActor(town, occ, a, false, 0, 0) {
		t.Fatalf("expected the stranded bound actor to be snapped back")
	}
	if !b.Contains(a.X, a.Y) {
		t.Errorf("expected actor to be snapped inside its building, got %d,%d", a.X, a.Y)
	}
}

func TestSnapBoundActorNoopWhenAlreadyInside(t *testing.T) {
	b := worldmap.Building{X: 0, Y: 0, W: 4, H: 4, Door: worldmap.Point{X: 2, Y: 0}}
	town, err := worldmap.NewTown(
		worldmap.Grid{
			{worldmap.TileWall, worldmap.TileWall, worldmap.TileDoor, worldmap.TileWall},
			{worldmap.TileWall, worldmap.TileFloor, worldmap.TileFloor, worldmap.TileWall},
			{worldmap.TileWall, worldmap.TileFloor, worldmap.TileFloor, worldmap.TileWall},
			{worldmap.TileWall, worldmap.TileWall, worldmap.TileWall, worldmap.TileWall},
		},
		[]worldmap.Building{b},
		nil, nil,
	)
	if err != nil {
		t.Fatalf("NewTown: %v", err)
	}
	occ := worldmap.NewOccupancy()
	a := npc.NewActor(1)
	a.BoundToBuilding = 0
	a.X, a.Y = 1, 1

	if SnapBoundActor(town, occ, a, false, 0, 0) {
		t.Errorf("expected no snap when the actor is already inside its building")
	}
}
