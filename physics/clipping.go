package physics

import (
	"math"

	"github.com/silt-engine/impulse3d/lin"
)

// clipPlane is a half-space used to clip an incident face's polygon
// against a reference face's sides: points with (p-Point)·Normal >= 0 are
// kept.
type clipPlane struct {
	normal lin.Vec3
	point  lin.Vec3
}

func (p *clipPlane) inside(v *lin.Vec3) bool {
	d := lin.NewVec3().Sub(v, &p.point)
	return d.Dot(&p.normal) >= 0
}

// edgeIntersection returns the point where segment start-end crosses
// plane p, along with whether the segment isn't (nearly) parallel to it.
func edgeIntersection(p *clipPlane, start, end lin.Vec3) (lin.Vec3, bool) {
	edge := lin.NewVec3().Sub(&end, &start)
	denom := p.normal.Dot(edge)
	if math.Abs(denom) < lin.Epsilon {
		return lin.Vec3{}, false
	}
	toStart := lin.NewVec3().Sub(&start, &p.point)
	t := -p.normal.Dot(toStart) / denom
	t = lin.Clamp(t, 0, 1)
	out := lin.NewVec3().Scale(edge, t)
	out.Add(out, &start)
	return *out, true
}

// sutherlandHodgman clips polygon (a list of vertices in order around its
// boundary) against every plane in clipPlanes in turn, returning the
// surviving (possibly new) vertex list. Based on the standard incremental
// polygon-clip-against-half-space algorithm: each plane clips the polygon
// produced by the previous one.
func sutherlandHodgman(polygon []lin.Vec3, clipPlanes []clipPlane) []lin.Vec3 {
	input := append([]lin.Vec3{}, polygon...)
	for i := range clipPlanes {
		if len(input) == 0 {
			break
		}
		plane := &clipPlanes[i]
		output := make([]lin.Vec3, 0, len(input))
		start := input[len(input)-1]
		startIn := plane.inside(&start)
		for _, end := range input {
			endIn := plane.inside(&end)
			switch {
			case startIn && endIn:
				output = append(output, end)
			case startIn && !endIn:
				if pt, ok := edgeIntersection(plane, start, end); ok {
					output = append(output, pt)
				}
			case !startIn && endIn:
				if pt, ok := edgeIntersection(plane, start, end); ok {
					output = append(output, pt)
				}
				output = append(output, end)
			}
			start, startIn = end, endIn
		}
		input = output
	}
	return input
}

// buildSidePlanes returns one clip plane per edge of the reference face,
// each with its normal pointing inward across that edge (cross of the
// face normal and the edge direction) so sutherlandHodgman keeps whatever
// is on the interior side of every edge.
func buildSidePlanes(vertices []lin.Vec3, faceNormal *lin.Vec3) []clipPlane {
	planes := make([]clipPlane, len(vertices))
	for i := range vertices {
		a := vertices[i]
		b := vertices[(i+1)%len(vertices)]
		edge := lin.NewVec3().Sub(&b, &a)
		n := lin.NewVec3().Cross(faceNormal, edge)
		planes[i] = clipPlane{normal: *n, point: a}
	}
	return planes
}
