package townsim

import (
	"time"

	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/behavior"
	"github.com/l1jgo/townsim/internal/core/event"
	"github.com/l1jgo/townsim/internal/movement"
	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/pathbudget"
	"github.com/l1jgo/townsim/internal/worldmap"
)

// occupancySystem refreshes the bandit event flag, dedups bed claims,
// rebuilds the occupancy grid and reserved doors, snaps bound actors back
// in bounds, and initializes this tick's path budget.
type occupancySystem struct{ s *Scheduler }

func (occupancySystem) Phase() PhaseT { return PhaseOccupancy }

func (o occupancySystem) Update(time.Duration) {
	s := o.s
	actors := s.Roster.All()

	livingBandit := false
	for _, a := range actors {
		if a.Role == npc.RoleBandit && !a.Combat.Dead {
			livingBandit = true
			break
		}
	}
	wasActive := s.banditEventActive
	s.banditEventActive = s.banditEventHostFlag || livingBandit
	if s.banditEventHostFlag && !livingBandit {
		s.banditEventActive = false
	}
	if s.banditEventActive && !wasActive {
		event.Emit(s.Events, BanditEventStarted{})
	} else if wasActive && !s.banditEventActive {
		event.Emit(s.Events, BanditEventEnded{})
	}

	dedupBeds(s.Town, actors)

	s.occ = worldmap.NewOccupancy()
	if s.hasPlayer {
		s.occ.Add(s.playerX, s.playerY)
	}
	for _, a := range actors {
		if !a.Combat.Dead && a.Floor == npc.FloorGround {
			s.occ.Add(a.X, a.Y)
		}
	}
	for _, p := range s.Town.Props {
		if worldmap.PropBlocks(p.Type) {
			s.occ.Add(p.X, p.Y)
		}
	}
	s.reserved = movement.BuildReservedDoors(s.Town)
	for _, d := range s.reserved.AllDoorKeys() {
		s.occ.Add(d.X, d.Y)
	}

	s.occUp = worldmap.NewOccupancy()
	if s.Town.HasInn() {
		for _, p := range s.Town.InnUpstairs.Props {
			if worldmap.PropBlocks(p.Type) {
				s.occUp.Add(p.X, p.Y)
			}
		}
		for _, a := range actors {
			if !a.Combat.Dead && a.Floor == npc.FloorUpstairs {
				s.occUp.Add(a.X, a.Y)
			}
		}
	}

	for _, a := range actors {
		if a.Combat.Dead {
			continue
		}
		movement.SnapBoundActor(s.Town, s.occ, a, s.hasPlayer, s.playerX, s.playerY)
	}

	budget := pathbudget.InitPathBudget(s.Town, len(actors), s.clock.Phase, s.clock)
	s.Planner.BeginTick(s.tickCounter, budget)
}

// dedupBeds resolves bed-claim collisions and assigns any still-unbedded
// resident the first free bed in their own home.
func dedupBeds(town *worldmap.Town, actors []*npc.Actor) {
	type bedKey struct {
		building int
		x, y     int
	}
	owners := make(map[bedKey]*npc.Actor)
	for _, a := range actors {
		if a.Combat.Dead || a.Home.Bed == nil {
			continue
		}
		k := bedKey{a.Home.Building, a.Home.Bed.X, a.Home.Bed.Y}
		if existing, ok := owners[k]; ok {
			if a.ID < existing.ID {
				existing.Home.Bed = nil
				owners[k] = a
			} else {
				a.Home.Bed = nil
			}
			continue
		}
		owners[k] = a
	}

	byBuilding := make(map[int][]*npc.Actor)
	for _, a := range actors {
		if a.Combat.Dead || a.Home.Building < 0 {
			continue
		}
		byBuilding[a.Home.Building] = append(byBuilding[a.Home.Building], a)
	}
	for bIdx, residents := range byBuilding {
		if bIdx < 0 || bIdx >= len(town.Buildings) {
			continue
		}
		for _, prop := range town.Props {
			if prop.Type != worldmap.PropBed {
				continue
			}
			b := town.Buildings[bIdx]
			if !b.Interior(prop.X, prop.Y) {
				continue
			}
			k := bedKey{bIdx, prop.X, prop.Y}
			if _, taken := owners[k]; taken {
				continue
			}
			for _, a := range residents {
				if a.Home.Bed == nil {
					p := worldmap.Point{X: prop.X, Y: prop.Y}
					a.Home.Bed = &p
					owners[k] = a
					break
				}
			}
		}
	}
}

// throttleSystem derives the clock phase and late-window flag, recomputes
// the shared inn seat cap, and shuffles actor processing order for the
// tick.
type throttleSystem struct{ s *Scheduler }

func (throttleSystem) Phase() PhaseT { return PhaseThrottle }

func (t throttleSystem) Update(time.Duration) {
	s := t.s
	s.phase = s.clock.Behavior()
	s.inLateWindow = s.clock.InLateWindow()

	seats := 0
	for _, shop := range s.Town.Shops {
		if shop.Type == worldmap.ShopInn {
			seats += len(shop.InsideTiles)
		}
	}
	if s.Town.HasInn() {
		for _, p := range s.Town.InnUpstairs.Props {
			if p.Type == worldmap.PropBed {
				seats++
			}
		}
	}
	s.seatCap = clampInt(2, 6, seats/2)

	count := 0
	for _, a := range s.Roster.All() {
		if a.Inn.HasSeat && !a.Combat.Dead {
			count++
		}
	}
	s.innSeatCount = count

	actors := s.Roster.All()
	perm := adapters.Shuffle(s.RNG, len(actors))
	order := make([]*npc.Actor, len(actors))
	for i, idx := range perm {
		order[i] = actors[idx]
	}
	s.order = order
}

func clampInt(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// behaviorSystem invokes each actor's role handler, throttled by stride
// and capped at the per-tick active-actor limit.
type behaviorSystem struct{ s *Scheduler }

func (behaviorSystem) Phase() PhaseT { return PhaseBehavior }

func (bs behaviorSystem) Update(time.Duration) {
	s := bs.s
	activeLimit := s.ActiveCap
	if activeLimit <= 0 {
		activeLimit = s.Town.MaxActiveNPCs
	}
	if activeLimit <= 0 {
		activeLimit = activeCap(len(s.order))
	}

	tick := &behavior.Tick{
		Town:              s.Town,
		Occ:               s.occ,
		OccUp:             s.occUp,
		Planner:           s.Planner,
		Reserved:          s.reserved,
		Clock:             s.clock,
		Weather:           s.weather,
		Phase:             s.phase,
		InLateWindow:      s.inLateWindow,
		RNG:               s.RNG,
		Combat:            s.Combat,
		Loot:              s.Loot,
		Camera:            s.Camera,
		Log:               s.Log,
		HasPlayer:         s.hasPlayer,
		PlayerX:           s.playerX,
		PlayerY:           s.playerY,
		Roster:            s.Roster,
		SeatCap:           s.seatCap,
		InnSeatCount:      s.innSeatCount,
		BanditEventActive: s.banditEventActive,
		Corpses:           &s.Corpses,
	}

	acted := 0
	for i, a := range s.order {
		if acted >= activeLimit {
			break
		}
		if a.Combat.Dead {
			continue
		}
		if !shouldAct(s, a, i) {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.Log.Log("role handler panicked", "scheduler", map[string]any{"actor": a.ID, "panic": r})
				}
			}()
			behavior.Handle(tick, a)
		}()
		acted++
	}
}

// activeCap is the default active-actor cap formula, overridable by
// Scheduler.ActiveCap.
func activeCap(n int) int {
	v := n * 6 / 10
	if v < 12 {
		return 12
	}
	return v
}

// shouldAct applies stride throttling with a stable per-actor offset,
// bypassed by guards and by shopkeepers within their arrive-to-leave
// window, plus distance-based half-rate throttling beyond 24 tiles from
// the player.
func shouldAct(s *Scheduler, a *npc.Actor, orderIdx int) bool {
	bypass := a.Role == npc.RoleGuard
	if a.Role == npc.RoleShopkeeper && a.ShopRef >= 0 && a.ShopRef < len(s.Town.Shops) {
		shop := s.Town.Shops[a.ShopRef]
		if shop.InArriveWindow(s.clock.MinuteOfDay()) {
			bypass = true
		}
	}

	stride := a.Stride
	if stride <= 0 {
		stride = 1
	}
	if a.Role == npc.RolePet {
		stride = 3
	} else if a.Role == npc.RoleShopkeeper {
		stride = 1
		if a.ShopRef >= 0 && a.ShopRef < len(s.Town.Shops) {
			shop := s.Town.Shops[a.ShopRef]
			if !shop.InArriveWindow(s.clock.MinuteOfDay()) {
				stride = 2
			}
		}
	}

	if !bypass {
		offset := a.ID % stride
		if (s.tickCounter % stride) != offset {
			return false
		}
	}

	if s.hasPlayer {
		dist := abs(a.X-s.playerX) + abs(a.Y-s.playerY)
		if dist > 24 {
			if (s.tickCounter+orderIdx)%2 != 0 {
				return false
			}
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// cleanupSystem removes dead actors, generates their corpses and loot, and
// discards the per-tick occupancy handles.
type cleanupSystem struct{ s *Scheduler }

func (cleanupSystem) Phase() PhaseT { return PhaseCleanup }

func (c cleanupSystem) Update(time.Duration) {
	s := c.s
	dead := s.Roster.RemoveDead()
	for _, a := range dead {
		event.Emit(s.Events, ActorDied{ActorID: a.ID, Role: a.Role, X: a.X, Y: a.Y})
		if a.Role != npc.RoleBandit && a.Role != npc.RoleGuard {
			continue
		}
		if corpseAt(s.Corpses, a.X, a.Y) {
			continue
		}
		kind := "guard"
		if a.Role == npc.RoleBandit {
			kind = "bandit"
		}
		var loot []adapters.Item
		if s.Loot != nil {
			loot = s.Loot.Generate(adapters.LootContext{Kind: kind, Level: a.Combat.Level}, s.RNG)
		}
		s.Corpses = append(s.Corpses, npc.Corpse{X: a.X, Y: a.Y, Kind: kind, Loot: loot})
		event.Emit(s.Events, CorpseSpawned{X: a.X, Y: a.Y, Kind: kind})
	}
	s.occ = nil
	s.occUp = nil
}

func corpseAt(corpses []npc.Corpse, x, y int) bool {
	for _, c := range corpses {
		if c.X == x && c.Y == y {
			return true
		}
	}
	return false
}
