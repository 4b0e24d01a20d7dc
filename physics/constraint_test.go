package physics

import (
	"testing"

	"github.com/silt-engine/impulse3d/lin"
)

func setupPair(t *testing.T) (a, b *Body, bodyOf func(BodyId) *Body) {
	t.Helper()
	a = BodySphere(0.5, nil).WithBehaviorDynamic(1)
	b = BodySphere(0.5, nil).WithBehaviorDynamic(1)
	a.id, b.id = 1, 2
	bodies := map[BodyId]*Body{1: a, 2: b}
	return a, b, func(id BodyId) *Body { return bodies[id] }
}

func TestLowerPointToPointGap(t *testing.T) {
	a, b, _ := setupPair(t)
	b.transform3d.Loc = &lin.Vec3{X: 1}

	c := NewPointToPoint(a.id, b.id, &lin.Vec3{}, &lin.Vec3{})
	eqs := lowerPointToPoint(1.0/60, c, a, b)
	if len(eqs) != 3 {
		t.Fatalf("expected 3 bilateral equations, got %d", len(eqs))
	}
	// The x-axis equation's separation should reflect the 1-unit gap: its
	// bias is built from -a*g, so a nonzero gap must show up as a nonzero
	// bias absent any relative velocity.
	if near(eqs[0].bias, 0, 1e-9) {
		t.Error("expected nonzero bias along the axis of the pivot gap")
	}
}

func TestLowerDistanceZeroAtTarget(t *testing.T) {
	a, b, _ := setupPair(t)
	b.transform3d.Loc = &lin.Vec3{X: 2}

	c := NewDistance(a.id, b.id, 2)
	eq := lowerDistance(1.0/60, c, a, b)
	if !near(eq.bias, 0, 1e-9) {
		t.Errorf("expected zero bias when separation already matches target, got %v", eq.bias)
	}
}

func TestLowerDistanceHasNoAngularComponent(t *testing.T) {
	a, b, _ := setupPair(t)
	b.transform3d.Loc = &lin.Vec3{X: 3}

	c := NewDistance(a.id, b.id, 2)
	eq := lowerDistance(1.0/60, c, a, b)
	if !eq.ja.Angular.Eq(&lin.Vec3{}) || !eq.jb.Angular.Eq(&lin.Vec3{}) {
		t.Errorf("expected a center-to-center distance joint to carry no angular Jacobian, got ja=%v jb=%v", eq.ja.Angular, eq.jb.Angular)
	}
}

func TestLowerConstraintsSkipsUnknownBody(t *testing.T) {
	a, _, bodyOf := setupPair(t)
	c := NewPointToPoint(a.id, BodyId(99), &lin.Vec3{}, &lin.Vec3{})
	eqs := lowerConstraints(1.0/60, []*Constraint{c}, bodyOf)
	if len(eqs) != 0 {
		t.Errorf("expected no equations for a constraint naming a missing body, got %d", len(eqs))
	}
}

func TestNewHingeNormalizesAxes(t *testing.T) {
	c := NewHinge(1, 2, &lin.Vec3{}, &lin.Vec3{}, &lin.Vec3{X: 2}, &lin.Vec3{Y: 3})
	if !near(c.Axis1.Len(), 1, 1e-9) || !near(c.Axis2.Len(), 1, 1e-9) {
		t.Errorf("expected both hinge axes normalized, got %v and %v", c.Axis1, c.Axis2)
	}
}
