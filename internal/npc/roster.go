package npc

import "github.com/l1jgo/townsim/internal/core/ecs"

// Roster is the actor arena: actors are referenced by stable array index
// rather than by pointer, the same way buildings and shops are referenced
// by index into Town.Buildings/Town.Shops. It reuses the reference
// service's generational entity pool so a dead actor's slot can be
// recycled without leaving stale handles silently valid — any index
// captured before a death (e.g. a guard's current target) is checked
// against the pool's generation before use.
type Roster struct {
	pool   *ecs.EntityPool
	actors []*Actor // actors[id.Index()] — nil once removed
}

func NewRoster() *Roster {
	return &Roster{
		pool:   ecs.NewEntityPool(),
		actors: make([]*Actor, 0, 64),
	}
}

// Spawn allocates a new actor and returns it along with its generational
// handle.
func (r *Roster) Spawn() (*Actor, ecs.EntityID) {
	id := r.pool.Create()
	idx := int(id.Index())
	for len(r.actors) <= idx {
		r.actors = append(r.actors, nil)
	}
	a := NewActor(idx)
	a.handle = id
	r.actors[idx] = a
	return a, id
}

// Restore reinstates an actor decoded from a snapshot. The snapshot's
// generational handle is never serialized (it is an unexported field, so
// encoding/json silently drops it), so this allocates a fresh handle via
// Spawn and then copies every field from saved over it, preserving the
// freshly issued handle and ID rather than the stale decoded ones.
func (r *Roster) Restore(saved Actor) *Actor {
	a, _ := r.Spawn()
	handle := a.handle
	id := a.ID
	*a = saved
	a.handle = handle
	a.ID = id
	return a
}

// Get resolves a handle to its actor, or nil if the handle is stale (the
// slot was recycled after a death).
func (r *Roster) Get(id ecs.EntityID) *Actor {
	if !r.pool.Alive(id) {
		return nil
	}
	idx := int(id.Index())
	if idx >= len(r.actors) {
		return nil
	}
	return r.actors[idx]
}

// All returns every live actor. The scheduler shuffles the returned order
// separately — this just exposes the current population.
func (r *Roster) All() []*Actor {
	out := make([]*Actor, 0, len(r.actors))
	for _, a := range r.actors {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// Remove destroys an actor's handle and frees its slot for reuse.
func (r *Roster) Remove(id ecs.EntityID) {
	idx := int(id.Index())
	if idx < len(r.actors) {
		r.actors[idx] = nil
	}
	r.pool.Destroy(id)
}

// RemoveDead splices out every actor with Combat.Dead set. Returns the
// removed actors so the caller can generate corpse records.
func (r *Roster) RemoveDead() []*Actor {
	var dead []*Actor
	for idx, a := range r.actors {
		if a != nil && a.Combat.Dead {
			dead = append(dead, a)
			r.actors[idx] = nil
			r.pool.Destroy(a.handle)
		}
	}
	return dead
}
