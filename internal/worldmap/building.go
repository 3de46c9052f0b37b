package worldmap

import "fmt"

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

func (p Point) Manhattan(q Point) int {
	return absInt(p.X-q.X) + absInt(p.Y-q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Building is an axis-aligned rectangle with a single perimeter door.
// Elsewhere in the package a building is referenced by its plain index into
// Town.Buildings rather than by pointer, with -1 meaning "no building".
type Building struct {
	X, Y, W, H int
	Door       Point
	PrefabID   string
	Tags       []string
}

// Interior reports whether (x,y) is strictly inside the building's
// perimeter (door and walls excluded).
func (b Building) Interior(x, y int) bool {
	return x > b.X && x < b.X+b.W-1 && y > b.Y && y < b.Y+b.H-1
}

// Contains reports whether (x,y) is anywhere within the building's
// rectangle, including walls and door — used when checking whether an
// actor bound to this building has wandered outside it. It accepts more
// tiles than Interior.
func (b Building) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// OnPerimeter reports whether (x,y) lies on the building's outer wall ring,
// including the door.
func (b Building) OnPerimeter(x, y int) bool {
	if x < b.X || x >= b.X+b.W || y < b.Y || y >= b.Y+b.H {
		return false
	}
	onEdgeX := x == b.X || x == b.X+b.W-1
	onEdgeY := y == b.Y || y == b.Y+b.H-1
	return onEdgeX || onEdgeY
}

// validate rejects buildings whose door is not on the perimeter — a map
// authoring mistake that has to be caught at load time, not mid-tick.
func (b Building) validate(idx int) error {
	if b.W <= 2 || b.H <= 2 {
		return fmt.Errorf("building %d: dimensions %dx%d too small for an interior", idx, b.W, b.H)
	}
	if !b.OnPerimeter(b.Door.X, b.Door.Y) {
		return fmt.Errorf("building %d: door (%d,%d) is not on the perimeter", idx, b.Door.X, b.Door.Y)
	}
	return nil
}
