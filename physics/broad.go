package physics

import "github.com/silt-engine/impulse3d/lin"

// broadPair is a candidate body pair whose world AABBs overlap and which
// passes the type-based skip rules below.
type broadPair struct {
	a, b *Body
}

// broadPhase returns every candidate pair of bodies whose bounding volumes
// overlap, after applying the spec's skip rules: plane-plane, particle-
// particle, and static-static pairs are never candidates — planes and
// particles have no finite AABB to test in the first place, and two static
// bodies can never need contact resolution.
func broadPhase(bodies []*Body) []broadPair {
	var pairs []broadPair
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if !a.movable && !b.movable {
				continue
			}
			if bodyAabbsOverlap(a, b) {
				pairs = append(pairs, broadPair{a, b})
			}
		}
	}
	return pairs
}

// bodyAabbsOverlap reports whether any shape of a and any shape of b have
// overlapping world AABBs, applying the plane/particle skip rules and the
// plane-crosses-AABB special case (a plane has no AABB of its own).
func bodyAabbsOverlap(a, b *Body) bool {
	for _, sa := range a.shapes {
		for _, sb := range b.shapes {
			if sa.shape.Kind() == KindPlane && sb.shape.Kind() == KindPlane {
				continue
			}
			if sa.shape.Kind() == KindParticle && sb.shape.Kind() == KindParticle {
				continue
			}
			if shapesOverlap(sa, sb) {
				return true
			}
		}
	}
	return false
}

// shapesOverlap tests two shape instances' AABBs for overlap, special
// casing planes (infinite extent — only false when the other shape's AABB
// never crosses the plane).
func shapesOverlap(a, b *shapeInstance) bool {
	aPlane, aIsPlane := a.shape.(*Plane)
	bPlane, bIsPlane := b.shape.(*Plane)
	switch {
	case aIsPlane:
		bb := b.shape.Aabb(b.world, broadMargin)
		return bb == nil || aabbCrossesPlane(aPlane, a.world, bb)
	case bIsPlane:
		ab := a.shape.Aabb(a.world, broadMargin)
		return ab == nil || aabbCrossesPlane(bPlane, b.world, ab)
	default:
		ab := a.shape.Aabb(a.world, broadMargin)
		bb := b.shape.Aabb(b.world, broadMargin)
		if ab == nil || bb == nil {
			return false
		}
		return ab.Overlaps(bb)
	}
}

// aabbCrossesPlane reports whether box has at least one corner on or
// behind the plane's half-space — a necessary precondition for the
// plane-shape narrow phase test to find any contact.
func aabbCrossesPlane(p *Plane, planeWorld *lin.Transform3d, box *Abox) bool {
	n := p.Normal(planeWorld)
	o := p.Origin(planeWorld)
	corners := [8]lin.Vec3{
		{X: box.Min.X, Y: box.Min.Y, Z: box.Min.Z}, {X: box.Max.X, Y: box.Min.Y, Z: box.Min.Z},
		{X: box.Min.X, Y: box.Max.Y, Z: box.Min.Z}, {X: box.Max.X, Y: box.Max.Y, Z: box.Min.Z},
		{X: box.Min.X, Y: box.Min.Y, Z: box.Max.Z}, {X: box.Max.X, Y: box.Min.Y, Z: box.Max.Z},
		{X: box.Min.X, Y: box.Max.Y, Z: box.Max.Z}, {X: box.Max.X, Y: box.Max.Y, Z: box.Max.Z},
	}
	for _, c := range corners {
		d := lin.NewVec3().Sub(&c, o)
		if d.Dot(n) <= 0 {
			return true
		}
	}
	return false
}

// broadMargin pads AABBs slightly so narrow phase sees pairs a hair before
// they'd otherwise touch.
const broadMargin = 0.0

// ufFind follows parent links to a root, compressing the path it walks so
// later finds through the same chain are cheap.
func ufFind(parent map[BodyId]BodyId, x BodyId) BodyId {
	root := x
	for parent[root] != root {
		root = parent[root]
	}
	for parent[x] != root {
		parent[x], x = root, parent[x]
	}
	return root
}

// ufUnion links x's root under y's root.
func ufUnion(parent map[BodyId]BodyId, x, y BodyId) {
	parent[ufFind(parent, x)] = ufFind(parent, y)
}

// simulationIslands partitions bodies into connected groups, two bodies
// landing in the same group whenever a broad-phase pair or a constraint
// links them (through a chain of any length). A fixed body never merges
// the islands on either side of it, matching broadPhase's own static-static
// skip rule. World.Simulate calls this only to report island counts as a
// diagnostic; the solver still sweeps one equation list across all islands.
func simulationIslands(bodies []*Body, pairs []broadPair, constraints []*Constraint) [][]BodyId {
	parent := make(map[BodyId]BodyId, len(bodies))
	for _, b := range bodies {
		parent[b.id] = b.id
	}
	for _, p := range pairs {
		if p.a.movable && p.b.movable {
			ufUnion(parent, p.a.id, p.b.id)
		}
	}
	indexed := make(map[BodyId]*Body, len(bodies))
	for _, b := range bodies {
		indexed[b.id] = b
	}
	for _, c := range constraints {
		b1, ok := indexed[c.Body1]
		if !ok || !b1.movable {
			continue
		}
		b2, ok := indexed[c.Body2]
		if !ok || !b2.movable {
			continue
		}
		ufUnion(parent, c.Body1, c.Body2)
	}

	indexOf := make(map[BodyId]int)
	var islands [][]BodyId
	for _, b := range bodies {
		if !b.movable {
			continue
		}
		root := ufFind(parent, b.id)
		idx, ok := indexOf[root]
		if !ok {
			idx = len(islands)
			islands = append(islands, nil)
			indexOf[root] = idx
		}
		islands[idx] = append(islands[idx], b.id)
	}
	return islands
}
