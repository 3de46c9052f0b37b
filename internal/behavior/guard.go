package behavior

import (
	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/worldmap"
)

// handleGuard drives bandit-event response first, then barracks sleep
// during the night window, and falls back to post-patrol otherwise.
func handleGuard(t *Tick, a *npc.Actor) {
	if t.BanditEventActive {
		if nearest, ok := nearestBandit(t, a); ok {
			if manhattan(a.X, a.Y, nearest.X, nearest.Y) <= 1 {
				if roll, ok := t.Combat.RollDamage(a.Combat.Level, 4, 8); ok {
					nearest.Combat.HP -= roll.Damage
					if nearest.Combat.HP <= 0 {
						nearest.Combat.Dead = true
					}
				}
				return
			}
			stepTowards(t, a, nearest.X, nearest.Y, true)
			return
		}
	}

	if !a.Guard.Resting && !a.Guard.HasPost {
		a.Guard.Resting = adapters.Chance(t.RNG, 0.5)
	}

	if a.Guard.Resting && a.Home.Building >= 0 && inBarracksSleepWindow(t.Clock.MinuteOfDay()) {
		bed := a.Home.Bed
		var target worldmap.Point
		if bed != nil {
			target = *bed
		} else {
			target = a.Home.Door
		}
		if a.X == target.X && a.Y == target.Y {
			a.Sleeping = true
			return
		}
		a.Sleeping = false
		stepTowards(t, a, target.X, target.Y, false)
		return
	}

	patrolGuard(t, a)
}

func inBarracksSleepWindow(minute int) bool {
	return minute >= 22*60 || minute < 6*60
}

func nearestBandit(t *Tick, from *npc.Actor) (*npc.Actor, bool) {
	var best *npc.Actor
	bestDist := -1
	for _, o := range t.Roster.All() {
		if o == from || o.Role != npc.RoleBandit || o.Combat.Dead {
			continue
		}
		d := manhattan(from.X, from.Y, o.X, o.Y)
		if best == nil || d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, best != nil
}

func patrolGuard(t *Tick, a *npc.Actor) {
	if !a.Guard.HasPost {
		a.Guard.Post = worldmap.Point{X: a.X, Y: a.Y}
		a.Guard.HasPost = true
	}
	radius := t.Town.PatrolRadius()

	if manhattan(a.X, a.Y, a.Guard.Post.X, a.Guard.Post.Y) > radius+2 {
		stepTowards(t, a, a.Guard.Post.X, a.Guard.Post.Y, true)
		return
	}

	if a.Guard.HasPatrol {
		if a.X == a.Guard.PatrolGoal.X && a.Y == a.Guard.PatrolGoal.Y {
			a.Guard.PatrolWait++
			if a.Guard.PatrolWait >= 4+adapters.IntN(t.RNG, 7) {
				a.Guard.HasPatrol = false
				a.Guard.PatrolWait = 0
			}
			if adapters.Chance(t.RNG, 0.05) {
				jx := a.X + adapters.IntN(t.RNG, 3) - 1
				jy := a.Y + adapters.IntN(t.RNG, 3) - 1
				stepTowards(t, a, jx, jy, false)
			}
			return
		}
		stepTowards(t, a, a.Guard.PatrolGoal.X, a.Guard.PatrolGoal.Y, false)
		return
	}

	if adapters.Chance(t.RNG, 0.35) {
		if goal, ok := patrolLandmark(t, a); ok {
			a.Guard.PatrolGoal = goal
			a.Guard.HasPatrol = true
			return
		}
	}

	if goal, ok := sampleRoadOrFloor(t, a.Guard.Post, radius); ok {
		a.Guard.PatrolGoal = goal
		a.Guard.HasPatrol = true
	}
}

// patrolLandmark picks between the town gate and the plaza for the biased
// patrol leg above: a guard favors whichever landmark is actually within
// reach of their post, preferring the gate when both are, since a gate
// left unwatched is the likelier opening for trouble. Either choice is
// skipped once it's farther than twice the patrol radius from the post.
func patrolLandmark(t *Tick, a *npc.Actor) (worldmap.Point, bool) {
	gateInRange := manhattan(a.Guard.Post.X, a.Guard.Post.Y, t.Town.ExitAt.X, t.Town.ExitAt.Y) <= t.Town.PatrolRadius()*2
	plazaInRange := manhattan(a.Guard.Post.X, a.Guard.Post.Y, t.Town.Plaza.X, t.Town.Plaza.Y) <= t.Town.PatrolRadius()*2
	switch {
	case gateInRange:
		return t.Town.ExitAt, true
	case plazaInRange:
		return t.Town.Plaza, true
	default:
		return worldmap.Point{}, false
	}
}

// sampleRoadOrFloor samples up to 40 random in-radius, in-bounds,
// walkable tiles around center, preferring a road tile over a plain floor
// tile.
func sampleRoadOrFloor(t *Tick, center worldmap.Point, radius int) (worldmap.Point, bool) {
	var floorFallback worldmap.Point
	haveFallback := false
	for i := 0; i < 40; i++ {
		dx := adapters.IntN(t.RNG, 2*radius+1) - radius
		dy := adapters.IntN(t.RNG, 2*radius+1) - radius
		x, y := center.X+dx, center.Y+dy
		if !t.Town.Map.IsWalkTown(x, y) {
			continue
		}
		switch t.Town.Map.At(x, y) {
		case worldmap.TileRoad:
			return worldmap.Point{X: x, Y: y}, true
		case worldmap.TileFloor:
			if !haveFallback {
				floorFallback = worldmap.Point{X: x, Y: y}
				haveFallback = true
			}
		}
	}
	return floorFallback, haveFallback
}
