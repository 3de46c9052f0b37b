// Package npc defines the actor data model as an explicit struct with
// sum-typed sub-states, one per kind of goal an actor can be pursuing
// (home plan, inn visit, bench stop, patrol, guard duty). Only the
// sub-state relevant to the actor's current activity is populated; the
// others sit at their zero value.
package npc

import (
	"github.com/l1jgo/townsim/internal/core/ecs"
	"github.com/l1jgo/townsim/internal/worldmap"
)

// Role classifies an actor's behavior handler. This folds what used to be
// a handful of boolean classification flags into a single discriminant,
// since they are mutually exclusive in practice — a resident is never also
// a guard.
type Role int

const (
	RoleResident Role = iota
	RoleShopkeeper
	RoleGuard
	RoleBandit
	RolePet
	RoleCorpseCleaner
	RoleRoamer
)

// Floor distinguishes ground level from the inn upstairs overlay.
type Floor int

const (
	FloorGround Floor = iota
	FloorUpstairs
)

// HomeRef is an actor's home: a building index, the home coordinate, the
// door coordinate, and an optional bed assignment. Confinement to a building
// is tracked separately in Actor.BoundToBuilding.
type HomeRef struct {
	Building int // -1 = no home
	X, Y     int
	Door     worldmap.Point
	Bed      *worldmap.Point // nil = no bed assigned
}

// HomePlan is the dedicated, separately-cooled-down plan for returning home
// (GLOSSARY: "Home plan").
type HomePlan struct {
	Path     []worldmap.Point
	Goal     worldmap.Point
	HasGoal  bool
	Wait     int
	Cooldown int
	Door     worldmap.Point
}

// InnVisit tracks a seat reservation inside the inn (ground or upstairs).
type InnVisit struct {
	Seat      worldmap.Point
	HasSeat   bool
	StayTurns int
	Upstairs  bool
}

// BenchVisit tracks a plaza/roaming bench stop.
type BenchVisit struct {
	Seat      worldmap.Point
	HasSeat   bool
	StayTurns int
}

// HomeSit tracks sitting on a home chair.
type HomeSit struct {
	Seat      worldmap.Point
	HasSeat   bool
	StayTurns int
}

// PatrolState tracks a generic "walk to a random point and linger" patrol
// goal. The innkeeper's interior patrol uses it; guards keep their patrol
// goal in GuardDuty instead.
type PatrolState struct {
	Goal      worldmap.Point
	HasGoal   bool
	StayTurns int
}

// GuardDuty tracks a guard's stable daily role and post.
type GuardDuty struct {
	Resting     bool
	Post        worldmap.Point
	HasPost     bool
	PatrolGoal  worldmap.Point
	HasPatrol   bool
	PatrolWait  int
}

// Combat holds the minimal combat-adjacent fields the scheduler needs to
// invoke role behaviors and process death. Damage formulas themselves live
// behind the CombatAdapter, not here.
type Combat struct {
	HP, MaxHP   int
	Atk         int
	Level       int
	DamageScale float64
	Dead        bool
}

// DailyRole is a resident/roamer's daily role drawn at dawn.
type DailyRole string

const (
	RoleHomebody DailyRole = "homebody"
	RolePlazaShop DailyRole = "plazaShop"
	RoleInnGoer   DailyRole = "innGoer"
	RoleWanderer  DailyRole = "wanderer"
)

// Actor is the mutable per-NPC record. Throttling/plan/behavior fields are
// grouped into the sub-state structs above instead of a flat field bag.
type Actor struct {
	ID     int          // arena index, stable for the actor's lifetime
	handle ecs.EntityID // generational handle, used by Roster.RemoveDead

	X, Y           int
	LastX, LastY   int
	Floor          Floor

	Role Role

	IsPet           bool
	IsResident      bool
	IsShopkeeper    bool
	IsGuard         bool
	IsBandit        bool
	IsCorpseCleaner bool
	IsFollower      bool

	Home            HomeRef
	Work            worldmap.Point
	HasWork         bool
	WorkInside      bool
	ShopRef         int // index into Town.Shops, -1 = none
	BoundToBuilding int // index into Town.Buildings, -1 = not bound

	// Short-range plan: invalidated whenever its head no longer matches the
	// actor's position or the next step is blocked.
	Plan     []worldmap.Point
	PlanGoal worldmap.Point
	HasPlan  bool

	// Longer-lived full plan fields. No code in this module sets or reads
	// them; movement works from Plan alone.
	FullPlan     []worldmap.Point
	FullPlanGoal worldmap.Point
	HasFullPlan  bool

	HomePlan HomePlan

	Sleeping                bool
	DepartAssignedForDay    bool
	HomeDepartMin           int
	GoInnToday              bool
	InnPreHomeDone          bool
	NearStairsCount         int

	Inn   InnVisit
	Bench BenchVisit
	Home_ HomeSit // trailing underscore avoids colliding with the Home field above.

	ErrandStayTurns int
	ErrandDone      bool // true once the day's shop-door errand has lingered out and handed off to a bench

	Patrol PatrolState
	Guard  GuardDuty

	DailyRole  DailyRole
	LikesInn   bool
	LikesTavern bool

	Stride       int
	StrideOffset int

	Combat Combat
}

// NewActor returns an Actor with every optional reference field defaulted
// to "unset" (-1), matching the rest of the package's arena-index
// convention.
func NewActor(id int) *Actor {
	return &Actor{
		ID:              id,
		ShopRef:         -1,
		BoundToBuilding: -1,
		Home:            HomeRef{Building: -1},
		Combat:          Combat{HP: 1, MaxHP: 1},
		Stride:          1,
	}
}

// Pos returns the actor's current coordinate.
func (a *Actor) Pos() worldmap.Point { return worldmap.Point{X: a.X, Y: a.Y} }

// InvalidatePlan clears the short-range plan, forcing the next movement
// step to solve a fresh one.
func (a *Actor) InvalidatePlan() {
	a.Plan = nil
	a.HasPlan = false
}

// SetPlan installs a freshly-solved plan toward goal.
func (a *Actor) SetPlan(path []worldmap.Point, goal worldmap.Point) {
	a.Plan = path
	a.PlanGoal = goal
	a.HasPlan = true
}
