package physics

import "github.com/silt-engine/impulse3d/lin"

// Contact is a single point of contact between two bodies, in world space.
type Contact struct {
	Normal lin.Vec3 // unit normal, points out of body1 into body2
	Point1 lin.Vec3 // point on body1's surface
	Point2 lin.Vec3 // point on body2's surface
}

// ContactGroup is the manifold of contact points generated between one
// pair of bodies during a single narrow phase pass.
type ContactGroup struct {
	Body1    BodyId
	Body2    BodyId
	Contacts []Contact
}

// separation returns the signed gap along Normal between Point2 and
// Point1: negative while the points interpenetrate, positive while apart.
func (c *Contact) separation() float64 {
	d := lin.NewVec3().Sub(&c.Point2, &c.Point1)
	return d.Dot(&c.Normal)
}

// Bodies returns the two bodies g was generated between, in the order
// narrow phase produced them (Normal points out of the first and into
// the second).
func (g *ContactGroup) Bodies() (BodyId, BodyId) {
	return g.Body1, g.Body2
}

// Either reports whether pred holds for at least one of g's two bodies.
func (g *ContactGroup) Either(pred func(BodyId) bool) bool {
	return pred(g.Body1) || pred(g.Body2)
}

// Both reports whether pred holds for both of g's bodies.
func (g *ContactGroup) Both(pred func(BodyId) bool) bool {
	return pred(g.Body1) && pred(g.Body2)
}

// Points returns the world-space location of each contact in the
// manifold, taken as the midpoint between the surface points on either
// body — the two surfaces are at most a hair's width apart at a valid
// contact, so the midpoint is a stable stand-in for either.
func (g *ContactGroup) Points() []lin.Vec3 {
	pts := make([]lin.Vec3, len(g.Contacts))
	for i := range g.Contacts {
		c := &g.Contacts[i]
		mid := lin.NewVec3().Add(&c.Point1, &c.Point2)
		pts[i] = *mid.Scale(mid, 0.5)
	}
	return pts
}

// CenterPoint returns the centroid of g's contact points, and false if g
// holds no contacts.
func (g *ContactGroup) CenterPoint() (lin.Vec3, bool) {
	if len(g.Contacts) == 0 {
		return lin.Vec3{}, false
	}
	sum := lin.NewVec3()
	for _, p := range g.Points() {
		sum.Add(sum, &p)
	}
	sum.Scale(sum, 1/float64(len(g.Contacts)))
	return *sum, true
}
