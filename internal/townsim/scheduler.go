package townsim

import (
	"time"

	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/core/event"
	"github.com/l1jgo/townsim/internal/core/system"
	"github.com/l1jgo/townsim/internal/movement"
	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/pathbudget"
	"github.com/l1jgo/townsim/internal/simtime"
	"github.com/l1jgo/townsim/internal/worldmap"
)

// Scheduler owns the collaborators a town tick needs and runs the tick as
// four system.Phase-ordered systems: occupancy, throttle, behavior, and
// cleanup.
type Scheduler struct {
	Town    *worldmap.Town
	Roster  *npc.Roster
	Planner *pathbudget.Planner

	RNG    adapters.RNG
	Combat adapters.CombatAdapter
	Loot   adapters.LootAdapter
	Camera adapters.CameraAdapter
	Log    adapters.Logger

	Corpses []npc.Corpse

	// Events is the town's narration bus: ActorDied, CorpseSpawned, and
	// bandit-event edges are emitted here once per tick and become
	// readable to subscribers on the following tick (event.Bus's
	// double-buffered contract). A host with no interest in narration can
	// simply never Subscribe.
	Events *event.Bus

	// ActiveCap overrides the default max(12, floor(#npcs*0.6)) per-tick
	// active actor cap when positive.
	ActiveCap int

	runner *system.Runner

	tickCounter int
	clock       simtime.Clock
	weather     simtime.Weather
	hasPlayer   bool
	playerX     int
	playerY     int

	occ      *worldmap.Occupancy
	occUp    *worldmap.Occupancy
	reserved *movement.ReservedDoors

	banditEventActive   bool
	banditEventHostFlag bool

	seatCap      int
	innSeatCount int
	phase        simtime.Behavior
	inLateWindow bool

	order []*npc.Actor
}

// NewScheduler wires a scheduler around a town and its adapter set. A nil
// combat adapter falls back to adapters.SimpleCombatPolicy drawing from rng,
// a nil logger to adapters.NopLogger (via adapters.OrNop), and a nil loot or
// camera adapter is skipped where it is used. rng itself must be non-nil.
func NewScheduler(town *worldmap.Town, rng adapters.RNG, combat adapters.CombatAdapter, loot adapters.LootAdapter, cam adapters.CameraAdapter, log adapters.Logger) *Scheduler {
	if combat == nil {
		combat = adapters.SimpleCombatPolicy{R: rng}
	}
	s := &Scheduler{
		Town:    town,
		Roster:  npc.NewRoster(),
		Planner: pathbudget.NewPlanner(),
		RNG:     rng,
		Combat:  combat,
		Loot:    loot,
		Camera:  cam,
		Log:     adapters.OrNop(log),
		Events:  event.NewBus(),
	}
	s.runner = system.NewRunner()
	s.runner.Register(occupancySystem{s})
	s.runner.Register(throttleSystem{s})
	s.runner.Register(behaviorSystem{s})
	s.runner.Register(cleanupSystem{s})
	return s
}

// Tick advances the town by one turn, given this tick's host-supplied
// inputs. banditEvent is the host's event flag; the scheduler also keeps
// the event alive as long as a living bandit remains.
func (s *Scheduler) Tick(clock simtime.Clock, weather simtime.Weather, hasPlayer bool, playerX, playerY int, banditEvent bool) {
	s.tickCounter++
	s.clock = clock
	s.weather = weather
	s.hasPlayer = hasPlayer
	s.playerX = playerX
	s.playerY = playerY
	s.banditEventHostFlag = banditEvent
	s.Events.SwapBuffers()
	s.runner.Tick(time.Duration(0))
	s.Events.DispatchAll()
}
