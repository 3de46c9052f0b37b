// Package pathfind implements a grid A* pathfinder: a ground variant
// routing over the town's walkable tiles and occupancy, and an upstairs
// variant restricted to the inn's overlay rectangle. Both share the same
// 4-connected, Manhattan-heuristic search core; only the walkability
// predicate, visit cap, and open-set sort threshold differ.
package pathfind

import (
	"sort"

	"github.com/l1jgo/townsim/internal/worldmap"
)

const (
	groundVisitCap    = 3500
	groundSortThresh  = 16
	upstairsVisitCap  = 4000
	upstairsSortThresh = 24
)

// walkable reports whether (x,y) may be entered. isGoal lets the caller
// allow an actor to step onto its own goal tile even if that tile is
// currently occupied by someone about to move off it.
type walkable func(x, y int, isGoal bool) bool

type node struct {
	x, y int
}

func nk(x, y int) int64 {
	return int64(x)<<32 | int64(uint32(y))
}

// search runs 4-connected A* from (sx,sy) to (tx,ty). Ties in (f,h) are
// broken by the open set's insertion order, preserved by using a stable
// sort only once the open set grows past sortThresh — cheap for the common
// small-search case, and still deterministic once it isn't.
func search(sx, sy, tx, ty, visitCap, sortThresh int, canEnter walkable) ([]worldmap.Point, bool) {
	if sx == tx && sy == ty {
		return []worldmap.Point{{X: sx, Y: sy}}, true
	}

	type openEntry struct {
		n    node
		f, h int
	}
	open := []openEntry{{node{sx, sy}, manhattan(sx, sy, tx, ty), manhattan(sx, sy, tx, ty)}}
	inOpen := map[int64]bool{nk(sx, sy): true}
	g := map[int64]int{nk(sx, sy): 0}
	cameFrom := map[int64]node{}

	visited := 0
	for len(open) > 0 {
		visited++
		if visited > visitCap {
			return nil, false
		}

		var cur openEntry
		if len(open) > sortThresh {
			sort.SliceStable(open, func(i, j int) bool {
				if open[i].f != open[j].f {
					return open[i].f < open[j].f
				}
				return open[i].h < open[j].h
			})
			cur = open[0]
			open = open[1:]
		} else {
			cur = open[0]
			open = open[1:]
		}
		delete(inOpen, nk(cur.n.x, cur.n.y))

		if cur.n.x == tx && cur.n.y == ty {
			return reconstruct(cameFrom, cur.n, sx, sy), true
		}

		for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			nx, ny := cur.n.x+d[0], cur.n.y+d[1]
			isGoal := nx == tx && ny == ty
			if !canEnter(nx, ny, isGoal) {
				continue
			}
			tentativeG := g[nk(cur.n.x, cur.n.y)] + 1
			nKey := nk(nx, ny)
			if existing, ok := g[nKey]; ok && tentativeG >= existing {
				continue
			}
			g[nKey] = tentativeG
			cameFrom[nKey] = cur.n
			h := manhattan(nx, ny, tx, ty)
			if !inOpen[nKey] {
				open = append(open, openEntry{node{nx, ny}, tentativeG + h, h})
				inOpen[nKey] = true
			}
		}
	}
	return nil, false
}

func reconstruct(cameFrom map[int64]node, goal node, sx, sy int) []worldmap.Point {
	path := []worldmap.Point{{X: goal.x, Y: goal.y}}
	cur := goal
	for {
		if cur.x == sx && cur.y == sy {
			break
		}
		prev, ok := cameFrom[nk(cur.x, cur.y)]
		if !ok {
			break
		}
		path = append(path, worldmap.Point{X: prev.x, Y: prev.y})
		cur = prev
	}
	// reverse into start->goal order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func manhattan(x1, y1, x2, y2 int) int {
	return absInt(x1-x2) + absInt(y1-y2)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
