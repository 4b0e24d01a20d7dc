package physics

import (
	"math"

	"github.com/silt-engine/impulse3d/lin"
)

// satAxis is one candidate separating axis found while testing two convex
// hulls, together with the overlap (penetration depth) measured along it.
type satAxis struct {
	axis    lin.Vec3 // world-space unit axis
	overlap float64
	faceA   int // index into a's Faces, or -1 if this axis didn't come from a face of a
	faceB   int // index into b's Faces, or -1 if this axis didn't come from a face of b
}

// satQuery runs the separating axis test between two convex hulls placed by
// ta and tb. It returns the axis of minimum overlap and true if the hulls
// overlap on every axis tested (face normals of both hulls, plus every
// pairwise cross product of their unique edge directions) — the standard
// polytope SAT test. Returns false the moment any axis separates them.
func satQuery(a *Convex, ta *lin.Transform3d, b *Convex, tb *lin.Transform3d) (satAxis, bool) {
	best := satAxis{overlap: lin.Large}
	found := false

	test := func(axis lin.Vec3, faceA, faceB int) bool {
		if axis.AeqZ() {
			return true
		}
		axis.Unit()
		aMin, aMax := projectHull(a.Vertices, ta, &axis)
		bMin, bMax := projectHull(b.Vertices, tb, &axis)
		overlap := math.Min(aMax, bMax) - math.Max(aMin, bMin)
		if overlap <= 0 {
			return false
		}
		// Orient the axis to point from a toward b so later reference/
		// incident face selection doesn't need to re-derive direction.
		centerA := transformedCenter(a, ta)
		centerB := transformedCenter(b, tb)
		d := lin.NewVec3().Sub(&centerB, &centerA)
		if d.Dot(&axis) < 0 {
			axis.Neg(&axis)
		}
		if overlap < best.overlap {
			best = satAxis{axis: axis, overlap: overlap, faceA: faceA, faceB: faceB}
			found = true
		}
		return true
	}

	for i, n := range a.Normals {
		world := *lin.NewVec3().MultQ(&n, ta.Rot)
		if !test(world, i, -1) {
			return satAxis{}, false
		}
	}
	for i, n := range b.Normals {
		world := *lin.NewVec3().MultQ(&n, tb.Rot)
		if !test(world, -1, i) {
			return satAxis{}, false
		}
	}
	for _, ea := range a.UniqueEdges {
		wa := *lin.NewVec3().MultQ(&ea, ta.Rot)
		for _, eb := range b.UniqueEdges {
			wb := *lin.NewVec3().MultQ(&eb, tb.Rot)
			axis := *lin.NewVec3().Cross(&wa, &wb)
			if !test(axis, -1, -1) {
				return satAxis{}, false
			}
		}
	}

	return best, found
}

func projectHull(vertices []lin.Vec3, t *lin.Transform3d, axis *lin.Vec3) (min, max float64) {
	var world lin.Vec3
	t.World(&world, &vertices[0])
	min, max = world.Dot(axis), world.Dot(axis)
	for i := 1; i < len(vertices); i++ {
		t.World(&world, &vertices[i])
		d := world.Dot(axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

func transformedCenter(c *Convex, t *lin.Transform3d) lin.Vec3 {
	var out lin.Vec3
	t.World(&out, &c.Centroid)
	return out
}

// referenceFace picks whichever of a's or b's candidate face (from a satAxis
// produced by satQuery) is most anti-parallel to the axis — i.e. the face
// whose own outward normal most directly opposes the separating axis,
// making it the best candidate reference face for clipping. Returns the
// owning hull, its world transform, the face index, and whether it came
// from a (as opposed to b).
func referenceFace(axis *satAxis, a *Convex, ta *lin.Transform3d, b *Convex, tb *lin.Transform3d) (hull *Convex, t *lin.Transform3d, face int, fromA bool) {
	bestDot := -2.0
	tryFace := func(c *Convex, ct *lin.Transform3d, i int, isA bool) {
		n := *lin.NewVec3().MultQ(&c.Normals[i], ct.Rot)
		d := n.Dot(&axis.axis)
		if isA {
			// a's normals point away from a, and axis points from a to b, so
			// the best match is the most positive dot.
		} else {
			d = -d
		}
		if d > bestDot {
			bestDot, hull, t, face, fromA = d, c, ct, i, isA
		}
	}
	for i := range a.Normals {
		tryFace(a, ta, i, true)
	}
	for i := range b.Normals {
		tryFace(b, tb, i, false)
	}
	return hull, t, face, fromA
}
