package physics

import (
	"testing"

	"github.com/silt-engine/impulse3d/lin"
)

func TestClipPlaneInside(t *testing.T) {
	p := clipPlane{normal: lin.Vec3{X: 0, Y: 0, Z: 1}, point: lin.Vec3{}}
	if !p.inside(&lin.Vec3{Z: 1}) {
		t.Error("expected a point on the normal's side to be inside")
	}
	if p.inside(&lin.Vec3{Z: -1}) {
		t.Error("expected a point on the far side to be outside")
	}
	if !p.inside(&lin.Vec3{Z: 0}) {
		t.Error("expected a point exactly on the plane to count as inside")
	}
}

func TestEdgeIntersection(t *testing.T) {
	p := clipPlane{normal: lin.Vec3{X: 0, Y: 0, Z: 1}, point: lin.Vec3{}}
	hit, ok := edgeIntersection(&p, lin.Vec3{Z: -1}, lin.Vec3{Z: 1})
	if !ok {
		t.Fatal("expected a crossing segment to intersect")
	}
	if !hit.Aeq(&lin.Vec3{}) {
		t.Errorf("expected the midpoint (z=0) crossing, got %v", hit)
	}
}

func TestEdgeIntersectionParallel(t *testing.T) {
	p := clipPlane{normal: lin.Vec3{X: 0, Y: 0, Z: 1}, point: lin.Vec3{}}
	if _, ok := edgeIntersection(&p, lin.Vec3{X: -1, Z: 1}, lin.Vec3{X: 1, Z: 1}); ok {
		t.Error("expected a segment parallel to the plane to report no intersection")
	}
}

func TestBuildSidePlanes(t *testing.T) {
	square := []lin.Vec3{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	normal := lin.Vec3{Z: 1}
	planes := buildSidePlanes(square, &normal)
	if len(planes) != 4 {
		t.Fatalf("expected 4 side planes, got %d", len(planes))
	}
	center := lin.Vec3{}
	for i, p := range planes {
		if !p.inside(&center) {
			t.Errorf("expected the face's own center to be inside side plane %d", i)
		}
	}
}

func TestSutherlandHodgmanClipsToSquare(t *testing.T) {
	square := []lin.Vec3{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	normal := lin.Vec3{Z: 1}
	planes := buildSidePlanes(square, &normal)

	bigSquare := []lin.Vec3{{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}}
	clipped := sutherlandHodgman(bigSquare, planes)

	for _, v := range clipped {
		if v.X < -1-1e-9 || v.X > 1+1e-9 || v.Y < -1-1e-9 || v.Y > 1+1e-9 {
			t.Errorf("expected every clipped vertex within the unit square, got %v", v)
		}
	}
	if len(clipped) == 0 {
		t.Error("expected a nonempty clipped polygon")
	}
}

func TestSutherlandHodgmanEntirelyOutside(t *testing.T) {
	square := []lin.Vec3{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	normal := lin.Vec3{Z: 1}
	planes := buildSidePlanes(square, &normal)

	far := []lin.Vec3{{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 11, Y: 11}, {X: 10, Y: 11}}
	if clipped := sutherlandHodgman(far, planes); len(clipped) != 0 {
		t.Errorf("expected a far-away polygon to clip to nothing, got %v", clipped)
	}
}
