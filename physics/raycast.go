package physics

import (
	"math"

	"github.com/silt-engine/impulse3d/lin"
)

// Ray is a world-space half-line: every point on it is from + t*Direction
// for t >= 0. Direction is expected to already be a unit vector.
type Ray struct {
	From      lin.Vec3
	Direction lin.Vec3
}

// RaycastHit is the closest intersection found along a Ray, with Point and
// Normal expressed in the hit body's user-facing coordinate system (the
// COM offset removed), matching the coordinates a caller placed the body
// with.
type RaycastHit struct {
	Body   *Body
	T      float64
	Point  lin.Vec3
	Normal lin.Vec3
}

// raycastBodies returns the closest hit among bodies for ray, or nil if the
// ray strikes nothing. Particles are skipped; they have no surface to hit.
func raycastBodies(ray *Ray, bodies []*Body) *RaycastHit {
	var best *RaycastHit
	for _, b := range bodies {
		for _, inst := range b.shapes {
			if inst.shape.Kind() == KindParticle {
				continue
			}
			t, worldPoint, worldNormal, ok := raycastShape(ray, inst)
			if !ok || t < 0 {
				continue
			}
			if best != nil && t >= best.T {
				continue
			}
			frame := b.Frame()
			var localPoint, localNormal lin.Vec3
			frame.Local(&localPoint, &worldPoint)
			var inv lin.Quat
			inv.Inv(frame.Rot)
			localNormal.MultQ(&worldNormal, &inv)
			best = &RaycastHit{Body: b, T: t, Point: localPoint, Normal: localNormal}
		}
	}
	return best
}

// raycastShape dispatches on inst's shape kind, returning the hit
// parameter t and world-space hit point/normal.
func raycastShape(ray *Ray, inst *shapeInstance) (t float64, point, normal lin.Vec3, ok bool) {
	switch s := inst.shape.(type) {
	case *Plane:
		return raycastPlane(ray, s, inst.world)
	case *Sphere:
		return raycastSphere(ray, s, inst.world)
	default:
		if hulled, isConvex := inst.shape.(convexHulled); isConvex {
			return raycastConvex(ray, hulled.ConvexHull(), inst.world)
		}
		return 0, lin.Vec3{}, lin.Vec3{}, false
	}
}

func raycastPlane(ray *Ray, p *Plane, world *lin.Transform3d) (float64, lin.Vec3, lin.Vec3, bool) {
	n := p.Normal(world)
	origin := p.Origin(world)
	denom := ray.Direction.Dot(n)
	if math.Abs(denom) < lin.Epsilon {
		return 0, lin.Vec3{}, lin.Vec3{}, false
	}
	toOrigin := lin.NewVec3().Sub(origin, &ray.From)
	t := toOrigin.Dot(n) / denom
	if t < 0 {
		return 0, lin.Vec3{}, lin.Vec3{}, false
	}
	hit := lin.NewVec3().Scale(&ray.Direction, t)
	hit.Add(hit, &ray.From)
	return t, *hit, *n, true
}

func raycastSphere(ray *Ray, s *Sphere, world *lin.Transform3d) (float64, lin.Vec3, lin.Vec3, bool) {
	center := world.Loc
	oc := lin.NewVec3().Sub(&ray.From, center)
	a := ray.Direction.Dot(&ray.Direction)
	b := 2 * oc.Dot(&ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, lin.Vec3{}, lin.Vec3{}, false
	}
	sqrtDisc := math.Sqrt(disc)
	t0 := (-b - sqrtDisc) / (2 * a)
	t1 := (-b + sqrtDisc) / (2 * a)
	t := t0
	if t < 0 {
		t = t1
	}
	if t < 0 {
		return 0, lin.Vec3{}, lin.Vec3{}, false
	}
	hit := lin.NewVec3().Scale(&ray.Direction, t)
	hit.Add(hit, &ray.From)
	normal := lin.NewVec3().Sub(hit, center)
	normal.Unit()
	return t, *hit, *normal, true
}

// raycastConvex treats hull as the intersection of the half-spaces defined
// by its faces and runs the standard slab test: the ray enters the solid
// at the largest per-face "entering" t and leaves at the smallest
// "exiting" t; it hits only if it enters before it leaves, at or after the
// ray origin.
func raycastConvex(ray *Ray, hull *Convex, world *lin.Transform3d) (float64, lin.Vec3, lin.Vec3, bool) {
	tNear, tFar := -lin.Large, lin.Large
	var hitNormal lin.Vec3

	for i, face := range hull.Faces {
		var n lin.Vec3
		n.MultQ(&hull.Normals[i], world.Rot)
		var p lin.Vec3
		world.World(&p, &hull.Vertices[face[0]])

		numerator := lin.NewVec3().Sub(&p, &ray.From).Dot(&n)
		denom := ray.Direction.Dot(&n)

		if math.Abs(denom) < lin.Epsilon {
			if numerator < 0 {
				return 0, lin.Vec3{}, lin.Vec3{}, false
			}
			continue
		}

		t := numerator / denom
		if denom < 0 {
			if t > tNear {
				tNear, hitNormal = t, n
			}
		} else if t < tFar {
			tFar = t
		}
	}

	if tNear > tFar || tNear < 0 {
		return 0, lin.Vec3{}, lin.Vec3{}, false
	}
	hit := lin.NewVec3().Scale(&ray.Direction, tNear)
	hit.Add(hit, &ray.From)
	return tNear, *hit, hitNormal, true
}
