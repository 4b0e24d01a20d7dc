package physics

import (
	"math"
	"testing"

	"github.com/silt-engine/impulse3d/lin"
)

func TestWorldAddReusesRemovedIds(t *testing.T) {
	w := Empty()
	id1 := w.Add(BodySphere(0.5, nil))
	id2 := w.Add(BodySphere(0.5, nil))
	w.Remove(id1)
	id3 := w.Add(BodySphere(0.5, nil))
	if id3 != id1 {
		t.Errorf("expected removed id %v to be recycled, got %v", id1, id3)
	}
	if len(w.Bodies()) != 2 {
		t.Errorf("expected 2 live bodies, got %d", len(w.Bodies()))
	}
	_ = id2
}

func TestWorldBodiesPreservesInsertionOrder(t *testing.T) {
	w := Empty()
	first := w.Add(BodySphere(0.5, "first"))
	w.Add(BodySphere(0.5, "second"))
	w.Remove(first)
	third := w.Add(BodySphere(0.5, "third"))

	order := w.Bodies()
	if len(order) != 2 {
		t.Fatalf("expected 2 live bodies, got %d", len(order))
	}
	if order[0].Data != "second" {
		t.Errorf("expected first live body to be 'second', got %v", order[0].Data)
	}
	if order[1].Id() != third {
		t.Errorf("expected the recycled id's body to be last in insertion order")
	}
}

func TestWorldSimulateIntegratesGravity(t *testing.T) {
	w := NewWorld(Gravity(0, -10, 0))
	w.Add(BodySphere(0.5, nil).WithBehaviorDynamic(1))

	dt := 1.0 / 60
	w.Simulate(dt)

	b := w.Bodies()[0]
	want := -10 * dt
	if !near(b.Velocity().Y, want, 1e-9) {
		t.Errorf("expected velocity(t+dt) = velocity(t) + gravity*dt = %v within 1e-9, got %v", want, b.Velocity().Y)
	}
}

// TestMomentumConservedInElasticCollision exercises spec §8's momentum
// invariant: two dynamic bodies, restitution 1, zero friction — total
// momentum before and after the collision must agree within 1e-6.
func TestMomentumConservedInElasticCollision(t *testing.T) {
	w := NewWorld(Gravity(0, 0, 0))
	a := BodySphere(1, nil).WithBehaviorDynamic(1).WithMaterial(0, 1)
	a.MoveTo(lin.NewVec3S(-1.05, 0, 0), lin.NewQuat())
	a.velocity = lin.Vec3{X: 1}
	b := BodySphere(1, nil).WithBehaviorDynamic(1).WithMaterial(0, 1)
	b.MoveTo(lin.NewVec3S(1.05, 0, 0), lin.NewQuat())

	w.Add(a)
	w.Add(b)

	before := a.Mass()*a.Velocity().X + b.Mass()*b.Velocity().X

	for i := 0; i < 30; i++ {
		w.Simulate(1.0 / 60)
	}

	after := a.Mass()*a.Velocity().X + b.Mass()*b.Velocity().X
	if !near(before, after, 1e-6) {
		t.Errorf("expected momentum conserved within 1e-6, before=%v after=%v", before, after)
	}
}

// TestRestPoseStabilityKeepsComDriftBounded exercises spec §8's rest-pose
// invariant: a box resting flush on a plane should not drift in z by more
// than 1e-3 over 60 simulated seconds.
func TestRestPoseStabilityKeepsComDriftBounded(t *testing.T) {
	w := NewWorld(Gravity(0, 0, -10))
	w.Add(PlaneBody(nil))
	box := Block(0.5, 0.5, 0.5, nil).WithBehaviorDynamic(1)
	box.MoveTo(lin.NewVec3S(0, 0, 0.5), lin.NewQuat())
	w.Add(box)

	z0 := box.CenterOfMass().Z
	for i := 0; i < 3600; i++ {
		w.Simulate(1.0 / 60)
	}
	drift := math.Abs(box.CenterOfMass().Z - z0)
	if drift >= 1e-3 {
		t.Errorf("expected COM z-drift below 1e-3 over 60s at rest, got %v", drift)
	}
}

// TestStaticBodyIsIdempotentUnderSimulate exercises spec §8's invariant
// that Simulate leaves a static body's transform bit-for-bit unchanged.
func TestStaticBodyIsIdempotentUnderSimulate(t *testing.T) {
	w := NewWorld(Gravity(0, -10, 0))
	plane := PlaneBody(nil)
	w.Add(plane)

	beforeLoc, beforeRot := *plane.transform3d.Loc, *plane.transform3d.Rot
	for i := 0; i < 10; i++ {
		w.Simulate(1.0 / 60)
	}
	if *plane.transform3d.Loc != beforeLoc || *plane.transform3d.Rot != beforeRot {
		t.Errorf("expected a static body's transform to be bit-for-bit unchanged, before=(%v,%v) after=(%v,%v)",
			beforeLoc, beforeRot, *plane.transform3d.Loc, *plane.transform3d.Rot)
	}
}

// TestQuaternionStaysUnitOverManySimulateSteps exercises spec §8's
// quaternion unit law: |quat| stays within [1-1e-5, 1+1e-5] after any
// sequence of operations, here a tumbling body integrated for many steps.
func TestQuaternionStaysUnitOverManySimulateSteps(t *testing.T) {
	w := NewWorld(Gravity(0, 0, 0))
	b := BodySphere(1, nil).WithBehaviorDynamic(1)
	b.angularVelocity = lin.Vec3{X: 1, Y: 2, Z: 3}
	w.Add(b)

	for i := 0; i < 600; i++ {
		w.Simulate(1.0 / 60)
		n := b.Frame().Rot.Len()
		if n < 1-1e-5 || n > 1+1e-5 {
			t.Fatalf("expected |quat| within [1-1e-5, 1+1e-5] at step %d, got %v", i, n)
		}
	}
}

func TestWorldKeepIf(t *testing.T) {
	w := Empty()
	w.Add(BodySphere(0.5, "keep"))
	w.Add(BodySphere(0.5, "drop"))
	w.KeepIf(func(b *Body) bool { return b.Data == "keep" })
	if len(w.Bodies()) != 1 || w.Bodies()[0].Data != "keep" {
		t.Errorf("expected only the kept body to remain, got %v", w.Bodies())
	}
}

func TestWorldConstrainIfGeneratesOverMatchingPairs(t *testing.T) {
	w := Empty()
	a := w.Add(BodySphere(0.5, "linkable"))
	b := w.Add(BodySphere(0.5, "linkable"))
	c := w.Add(BodySphere(0.5, "other"))

	var calls [][2]BodyId
	linkable := func(body *Body) bool { return body.Data == "linkable" }
	pairFn := func(b1, b2 BodyId) *Constraint {
		calls = append(calls, [2]BodyId{b1, b2})
		return NewDistance(b1, b2, 1)
	}
	w.ConstrainIf(linkable, pairFn)

	if len(calls) != 2 {
		t.Fatalf("expected pairFn called twice (both orderings of the one matching pair), got %d", len(calls))
	}
	if calls[0] != [2]BodyId{a, b} || calls[1] != [2]BodyId{b, a} {
		t.Errorf("expected pairFn(a,b) then pairFn(b,a), got %v", calls)
	}
	if len(w.constraints) != 2 {
		t.Errorf("expected 2 generated constraints, got %d", len(w.constraints))
	}
	_ = c
}

func TestWorldConstrainIfPreservesExistingConstraints(t *testing.T) {
	w := Empty()
	a := w.Add(BodySphere(0.5, nil))
	b := w.Add(BodySphere(0.5, nil))
	existing := NewPointToPoint(a, b, &lin.Vec3{}, &lin.Vec3{})
	w.Constrain(existing)

	w.ConstrainIf(func(*Body) bool { return false }, func(b1, b2 BodyId) *Constraint { return nil })

	if len(w.constraints) != 1 || w.constraints[0] != existing {
		t.Errorf("expected the pre-existing constraint to survive untouched")
	}
}

func TestWorldUpdateMapsEveryBodyPreservingId(t *testing.T) {
	w := Empty()
	idA := w.Add(BodySphere(0.5, nil))
	idB := w.Add(BodySphere(0.5, nil))

	w.Update(func(b *Body) { b.WithMaterial(0.9, 0.1) })

	for _, id := range []BodyId{idA, idB} {
		body := w.Body(id)
		if body.material.Friction != 0.9 {
			t.Errorf("expected body %v to be updated, friction = %v", id, body.material.Friction)
		}
		if body.Id() != id {
			t.Errorf("expected Update to preserve id, got %v want %v", body.Id(), id)
		}
	}
}
