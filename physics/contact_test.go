package physics

import (
	"testing"

	"github.com/silt-engine/impulse3d/lin"
)

func TestContactSeparation(t *testing.T) {
	c := Contact{
		Normal: lin.Vec3{X: 0, Y: 0, Z: 1},
		Point1: lin.Vec3{X: 0, Y: 0, Z: 0},
		Point2: lin.Vec3{X: 0, Y: 0, Z: -0.1},
	}
	if sep := c.separation(); !near(sep, -0.1, 1e-9) {
		t.Errorf("expected negative separation while interpenetrating, got %v", sep)
	}
}

func TestContactGroupBodies(t *testing.T) {
	g := ContactGroup{Body1: 1, Body2: 2}
	a, b := g.Bodies()
	if a != 1 || b != 2 {
		t.Errorf("expected (1,2), got (%v,%v)", a, b)
	}
}

func TestContactGroupEitherBoth(t *testing.T) {
	g := ContactGroup{Body1: 1, Body2: 2}
	isOne := func(id BodyId) bool { return id == 1 }
	isThree := func(id BodyId) bool { return id == 3 }

	if !g.Either(isOne) {
		t.Error("expected Either to find body 1 in the pair")
	}
	if g.Either(isThree) {
		t.Error("expected Either to find no match for an unrelated id")
	}
	if g.Both(isOne) {
		t.Error("expected Both to fail since only one body matches")
	}
	if !g.Both(func(id BodyId) bool { return id == 1 || id == 2 }) {
		t.Error("expected Both to succeed when the predicate matches every body")
	}
}

func TestContactGroupPointsAndCenterPoint(t *testing.T) {
	g := ContactGroup{
		Contacts: []Contact{
			{Point1: lin.Vec3{X: 0, Y: 0, Z: 0}, Point2: lin.Vec3{X: 2, Y: 0, Z: 0}},
			{Point1: lin.Vec3{X: 0, Y: 4, Z: 0}, Point2: lin.Vec3{X: 0, Y: 4, Z: 0}},
		},
	}
	pts := g.Points()
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}
	if !pts[0].Aeq(&lin.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("expected the first point to be the midpoint of its contact, got %v", pts[0])
	}

	center, ok := g.CenterPoint()
	if !ok {
		t.Fatal("expected CenterPoint to succeed with a non-empty manifold")
	}
	if !center.Aeq(&lin.Vec3{X: 0.5, Y: 2, Z: 0}) {
		t.Errorf("expected centroid (0.5,2,0), got %v", center)
	}
}

func TestContactGroupCenterPointEmpty(t *testing.T) {
	g := ContactGroup{}
	if _, ok := g.CenterPoint(); ok {
		t.Error("expected CenterPoint to report false for an empty manifold")
	}
}
