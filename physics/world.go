package physics

import (
	"log/slog"

	"github.com/silt-engine/impulse3d/lin"
)

// World owns every Body and Constraint participating in one simulation and
// is the entry point for advancing, querying, and raycasting it. Bodies are
// addressed by BodyId, stable for the lifetime of the body and reusable
// once removed — the id space is a free list, not a growing counter.
type World struct {
	gravity lin.Vec3

	bodies    []*Body // index is id-1 when occupied, nil when free
	freeIds   []BodyId
	liveOrder []BodyId // insertion order of currently-live ids, for iteration

	constraints []*Constraint

	lastGroups []ContactGroup

	logger *slog.Logger
}

// Empty returns a new World with zero gravity and no bodies.
func Empty() *World {
	return &World{logger: slog.Default()}
}

// WithGravity sets w's uniform gravitational acceleration, applied to every
// dynamic body each Simulate call, and returns w.
func (w *World) WithGravity(g *lin.Vec3) *World {
	w.gravity.Set(g)
	return w
}

// WithLogger replaces w's logger, used only to report diagnostic detail
// (island counts, skipped contacts) at debug level; never required for
// correct simulation.
func (w *World) WithLogger(logger *slog.Logger) *World {
	w.logger = logger
	return w
}

// Add registers b with w, assigning it a fresh or recycled BodyId, and
// returns that id. b keeps its id for as long as it remains in w.
func (w *World) Add(b *Body) BodyId {
	var id BodyId
	if n := len(w.freeIds); n > 0 {
		id = w.freeIds[n-1]
		w.freeIds = w.freeIds[:n-1]
	} else {
		id = BodyId(len(w.bodies) + 1)
		w.bodies = append(w.bodies, nil)
	}
	b.id = id
	w.bodies[id-1] = b
	w.liveOrder = append(w.liveOrder, id)
	return id
}

// Remove drops the body at id from w, freeing its id for reuse by a later
// Add. Removing an id not currently live is a no-op.
func (w *World) Remove(id BodyId) {
	if int(id) < 1 || int(id) > len(w.bodies) || w.bodies[id-1] == nil {
		return
	}
	w.bodies[id-1] = nil
	w.freeIds = append(w.freeIds, id)
	for i, live := range w.liveOrder {
		if live == id {
			w.liveOrder = append(w.liveOrder[:i], w.liveOrder[i+1:]...)
			break
		}
	}
}

// KeepIf removes every body for which keep returns false, in one pass.
func (w *World) KeepIf(keep func(*Body) bool) {
	for _, id := range append([]BodyId(nil), w.liveOrder...) {
		b := w.bodies[id-1]
		if b != nil && !keep(b) {
			w.Remove(id)
		}
	}
}

// Body returns the body registered under id, or nil if id isn't live.
func (w *World) Body(id BodyId) *Body {
	if int(id) < 1 || int(id) > len(w.bodies) {
		return nil
	}
	return w.bodies[id-1]
}

// Bodies returns every live body, in the order each was added (ids may have
// been recycled since, but insertion order of the currently-live set is
// preserved) — the order the solver sweeps equations in depends on this.
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.liveOrder))
	for _, id := range w.liveOrder {
		out = append(out, w.bodies[id-1])
	}
	return out
}

// Update maps every live body through fn in place, preserving each body's
// id. fn is free to mutate the body it's given (move it, change its
// material, add shapes); it must not change the body's id.
func (w *World) Update(fn func(*Body)) {
	for _, id := range w.liveOrder {
		fn(w.bodies[id-1])
	}
}

// Constrain adds c to w, appended after every previously added constraint —
// constraint equations are lowered in this same order every step.
func (w *World) Constrain(c *Constraint) {
	w.constraints = append(w.constraints, c)
}

// ConstrainIf generates constraints over every unordered pair of live bodies
// passing test: for each such pair (b1,b2), it calls pairFn(b1,b2) and
// pairFn(b2,b1), keeping whichever non-nil constraints they return.
// Constraints already held on bodies test doesn't touch are left alone —
// this only ever adds to w.constraints, it never filters the existing list.
func (w *World) ConstrainIf(test func(*Body) bool, pairFn func(b1, b2 BodyId) *Constraint) {
	var matched []BodyId
	for _, id := range w.liveOrder {
		if test(w.bodies[id-1]) {
			matched = append(matched, id)
		}
	}
	for i := 0; i < len(matched); i++ {
		for j := i + 1; j < len(matched); j++ {
			b1, b2 := matched[i], matched[j]
			if c := pairFn(b1, b2); c != nil {
				w.constraints = append(w.constraints, c)
			}
			if c := pairFn(b2, b1); c != nil {
				w.constraints = append(w.constraints, c)
			}
		}
	}
}

// Contacts returns the contact groups produced by the most recent Simulate
// call, each pairing two BodyIds with the world-space contact points found
// between them that step.
func (w *World) Contacts() []ContactGroup {
	return w.lastGroups
}

// Simulate advances w by dt: gravity, broad and narrow phase, the SPOOK
// solve over every contact and constraint equation, damping, pose
// integration, and derived-state refresh, in that fixed order.
func (w *World) Simulate(dt float64) {
	bodies := w.Bodies()
	bodyOf := func(id BodyId) *Body { return w.Body(id) }

	if w.logger != nil {
		pairs := broadPhase(bodies)
		islands := simulationIslands(bodies, pairs, w.constraints)
		w.logger.Debug("simulate step", "bodies", len(bodies), "islands", len(islands))
	}

	w.lastGroups = simulateStep(dt, &w.gravity, bodies, w.constraints, bodyOf)
}

// Raycast returns the closest body struck by ray among every live body in
// w, or nil if the ray hits nothing.
func (w *World) Raycast(ray *Ray) *RaycastHit {
	return raycastBodies(ray, w.Bodies())
}
