package physics

import (
	"math"

	"github.com/silt-engine/impulse3d/lin"
)

// convexHulled is satisfied by every Shape whose ShapeKind is KindConvex
// (ConvexShape and cylinderShape alike), giving narrow phase a uniform way
// to reach the backing polyhedron regardless of which one built it.
type convexHulled interface {
	ConvexHull() *Convex
}

// contactsForShapes dispatches on the pair of shape kinds and returns the
// contacts between them, with Normal oriented out of instA's shape into
// instB's shape, Point1 on instA's surface and Point2 on instB's. Narrow
// phase never errors: an unsupported, separating, or degenerate pair simply
// contributes no contacts.
func contactsForShapes(instA, instB *shapeInstance) []Contact {
	ka, kb := instA.shape.Kind(), instB.shape.Kind()

	switch {
	case ka == KindPlane && kb == KindSphere:
		return onePlaneSphere(instA.world, instB.shape.(*Sphere), instB.world)
	case ka == KindSphere && kb == KindPlane:
		return flip(onePlaneSphere(instB.world, instA.shape.(*Sphere), instA.world))

	case ka == KindPlane && kb == KindConvex:
		return planeConvex(instA.world, instB.shape.(convexHulled).ConvexHull(), instB.world)
	case ka == KindConvex && kb == KindPlane:
		return flip(planeConvex(instB.world, instA.shape.(convexHulled).ConvexHull(), instA.world))

	case ka == KindSphere && kb == KindSphere:
		return sphereSphere(instA.shape.(*Sphere), instA.world, instB.shape.(*Sphere), instB.world)

	case ka == KindSphere && kb == KindConvex:
		return flip(sphereConvex(instB.shape.(convexHulled).ConvexHull(), instB.world, instA.shape.(*Sphere), instA.world))
	case ka == KindConvex && kb == KindSphere:
		return sphereConvex(instA.shape.(convexHulled).ConvexHull(), instA.world, instB.shape.(*Sphere), instB.world)

	case ka == KindConvex && kb == KindConvex:
		return convexConvex(instA.shape.(convexHulled).ConvexHull(), instA.world, instB.shape.(convexHulled).ConvexHull(), instB.world)

	default:
		// plane-plane, particle-particle, and any pair involving a
		// particle never generate contacts.
		return nil
	}
}

func flip(contacts []Contact) []Contact {
	for i := range contacts {
		contacts[i].Normal.Neg(&contacts[i].Normal)
		contacts[i].Point1, contacts[i].Point2 = contacts[i].Point2, contacts[i].Point1
	}
	return contacts
}

func onePlaneSphere(planeT *lin.Transform3d, sphere *Sphere, sphereT *lin.Transform3d) []Contact {
	plane := Plane{}
	normal := plane.Normal(planeT)
	origin := plane.Origin(planeT)
	center := sphereT.Loc

	toCenter := lin.NewVec3().Sub(center, origin)
	d := toCenter.Dot(normal)
	if d > sphere.Radius {
		return nil
	}

	point1 := lin.NewVec3().Scale(normal, -d)
	point1.Add(point1, center)
	point2 := lin.NewVec3().Scale(normal, -sphere.Radius)
	point2.Add(point2, center)
	return []Contact{{Normal: *normal, Point1: *point1, Point2: *point2}}
}

func planeConvex(planeT *lin.Transform3d, hull *Convex, hullT *lin.Transform3d) []Contact {
	plane := Plane{}
	normal := plane.Normal(planeT)
	origin := plane.Origin(planeT)

	var contacts []Contact
	for i := range hull.Vertices {
		var v lin.Vec3
		hullT.World(&v, &hull.Vertices[i])
		toV := lin.NewVec3().Sub(&v, origin)
		d := toV.Dot(normal)
		if d > 0 {
			continue
		}
		point1 := lin.NewVec3().Scale(normal, -d)
		point1.Add(point1, &v)
		contacts = append(contacts, Contact{Normal: *normal, Point1: *point1, Point2: v})
	}
	return contacts
}

func sphereSphere(s1 *Sphere, t1 *lin.Transform3d, s2 *Sphere, t2 *lin.Transform3d) []Contact {
	c1, c2 := t1.Loc, t2.Loc
	delta := lin.NewVec3().Sub(c2, c1)
	dist := delta.Len()
	if dist > s1.Radius+s2.Radius {
		return nil
	}
	normal := lin.NewVec3().Set(delta)
	if dist > lin.Epsilon {
		normal.Scale(normal, 1/dist)
	} else {
		normal.SetS(0, 0, 1)
	}
	point1 := lin.NewVec3().Scale(normal, s1.Radius)
	point1.Add(point1, c1)
	point2 := lin.NewVec3().Scale(normal, -s2.Radius)
	point2.Add(point2, c2)
	return []Contact{{Normal: *normal, Point1: *point1, Point2: *point2}}
}

// sphereConvex finds the closest point on hull's surface to the sphere
// center. It first tests every face's clipped Voronoi region (the usual
// case for a sphere resting against a flat face); if the projection onto
// no face lands inside that face's polygon, it falls back to the closest
// point among the hull's edges and vertices.
func sphereConvex(hull *Convex, hullT *lin.Transform3d, sphere *Sphere, sphereT *lin.Transform3d) []Contact {
	center := sphereT.Loc

	for i, face := range hull.Faces {
		var n lin.Vec3
		n.MultQ(&hull.Normals[i], hullT.Rot)
		var facePoint lin.Vec3
		hullT.World(&facePoint, &hull.Vertices[face[0]])

		toCenter := lin.NewVec3().Sub(center, &facePoint)
		d := toCenter.Dot(&n)

		worldFace := make([]lin.Vec3, len(face))
		for k, idx := range face {
			hullT.World(&worldFace[k], &hull.Vertices[idx])
		}
		projected := lin.NewVec3().Scale(&n, -d)
		projected.Add(projected, center)
		if !pointInFacePolygon(worldFace, &n, projected) {
			continue
		}
		if d > sphere.Radius {
			return nil
		}
		point2 := lin.NewVec3().Scale(&n, -sphere.Radius)
		point2.Add(point2, center)
		return []Contact{{Normal: n, Point1: *projected, Point2: *point2}}
	}

	return sphereConvexFallback(hull, hullT, sphere, sphereT)
}

// sphereConvexFallback handles the case where the sphere center's nearest
// point on the hull lies on an edge or vertex rather than inside any
// face's region.
func sphereConvexFallback(hull *Convex, hullT *lin.Transform3d, sphere *Sphere, sphereT *lin.Transform3d) []Contact {
	center := sphereT.Loc
	bestDist := lin.Large
	var bestPoint lin.Vec3
	found := false

	considerPoint := func(p lin.Vec3) {
		d := center.Dist(&p)
		if d < bestDist {
			bestDist, bestPoint, found = d, p, true
		}
	}

	for _, face := range hull.Faces {
		n := len(face)
		for i := 0; i < n; i++ {
			var a, b lin.Vec3
			hullT.World(&a, &hull.Vertices[face[i]])
			hullT.World(&b, &hull.Vertices[face[(i+1)%n]])
			considerPoint(closestPointOnSegment(center, &a, &b))
		}
	}

	if !found || bestDist > sphere.Radius {
		return nil
	}
	normal := lin.NewVec3().Sub(center, &bestPoint)
	if bestDist > lin.Epsilon {
		normal.Scale(normal, 1/bestDist)
	} else {
		normal.SetS(0, 0, 1)
	}
	point2 := lin.NewVec3().Scale(normal, -sphere.Radius)
	point2.Add(point2, center)
	return []Contact{{Normal: *normal, Point1: bestPoint, Point2: *point2}}
}

func closestPointOnSegment(p, a, b *lin.Vec3) lin.Vec3 {
	ab := lin.NewVec3().Sub(b, a)
	lenSqr := ab.LenSqr()
	if lenSqr < lin.Epsilon*lin.Epsilon {
		return *a
	}
	ap := lin.NewVec3().Sub(p, a)
	t := ap.Dot(ab) / lenSqr
	t = lin.Clamp(t, 0, 1)
	out := lin.NewVec3().Scale(ab, t)
	out.Add(out, a)
	return *out
}

// pointInFacePolygon reports whether p (assumed already lying in the
// face's plane) is inside the CCW polygon worldFace, as viewed from the
// outward side given by normal.
func pointInFacePolygon(worldFace []lin.Vec3, normal *lin.Vec3, p *lin.Vec3) bool {
	n := len(worldFace)
	for i := 0; i < n; i++ {
		a := worldFace[i]
		b := worldFace[(i+1)%n]
		edge := lin.NewVec3().Sub(&b, &a)
		toP := lin.NewVec3().Sub(p, &a)
		cross := lin.NewVec3().Cross(edge, toP)
		if cross.Dot(normal) < 0 {
			return false
		}
	}
	return true
}

// convexConvex resolves overlap between two convex hulls via SAT and
// Sutherland-Hodgman face clipping, per the standard reference/incident
// face manifold-generation scheme.
func convexConvex(a *Convex, ta *lin.Transform3d, b *Convex, tb *lin.Transform3d) []Contact {
	axis, ok := satQuery(a, ta, b, tb)
	if !ok {
		return nil
	}

	refHull, refT, refFaceIdx, fromA := referenceFace(&axis, a, ta, b, tb)
	var incHull *Convex
	var incT *lin.Transform3d
	if fromA {
		incHull, incT = b, tb
	} else {
		incHull, incT = a, ta
	}

	var refNormal lin.Vec3
	refNormal.MultQ(&refHull.Normals[refFaceIdx], refT.Rot)
	refFace := refHull.Faces[refFaceIdx]
	refWorld := make([]lin.Vec3, len(refFace))
	for i, idx := range refFace {
		refT.World(&refWorld[i], &refHull.Vertices[idx])
	}
	refPoint := refWorld[0]

	incFaceIdx := mostAntiParallelFace(incHull, incT, &refNormal)
	incFace := incHull.Faces[incFaceIdx]
	incWorld := make([]lin.Vec3, len(incFace))
	for i, idx := range incFace {
		incT.World(&incWorld[i], &incHull.Vertices[idx])
	}

	sidePlanes := buildSidePlanes(refWorld, &refNormal)
	clipped := sutherlandHodgman(incWorld, sidePlanes)

	var contacts []Contact
	for _, v := range clipped {
		toV := lin.NewVec3().Sub(&v, &refPoint)
		depth := toV.Dot(&refNormal)
		if depth > 0 {
			continue
		}
		projected := lin.NewVec3().Scale(&refNormal, -depth)
		projected.Add(projected, &v)

		var c Contact
		c.Normal = axis.axis
		if fromA {
			c.Point1, c.Point2 = *projected, v
		} else {
			c.Point1, c.Point2 = v, *projected
		}
		contacts = append(contacts, c)
	}
	return contacts
}

// narrowPhase runs contact generation over every broad phase candidate
// pair, merging all shape-instance contacts within a body pair into a
// single ContactGroup. Pairs that produce no contacts are omitted.
func narrowPhase(pairs []broadPair) []ContactGroup {
	var groups []ContactGroup
	for _, pr := range pairs {
		var all []Contact
		for _, sa := range pr.a.shapes {
			for _, sb := range pr.b.shapes {
				all = append(all, contactsForShapes(sa, sb)...)
			}
		}
		if len(all) == 0 {
			continue
		}
		groups = append(groups, ContactGroup{Body1: pr.a.id, Body2: pr.b.id, Contacts: all})
	}
	return groups
}

// mostAntiParallelFace returns the face of hull whose world-space normal
// has the most negative dot product with refNormal — the standard incident
// face choice for manifold clipping.
func mostAntiParallelFace(hull *Convex, t *lin.Transform3d, refNormal *lin.Vec3) int {
	best := 0
	bestDot := math.Inf(1)
	for i, n := range hull.Normals {
		var world lin.Vec3
		world.MultQ(&n, t.Rot)
		d := world.Dot(refNormal)
		if d < bestDot {
			bestDot, best = d, i
		}
	}
	return best
}
