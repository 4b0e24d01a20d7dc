package physics

import (
	"math"

	"github.com/silt-engine/impulse3d/lin"
)

// Shape is a physics collision primitive, always defined in its own local
// space centered near the origin. Combine a shape with a Transform3d to
// place it within a body, and a body transform to place it in the world.
type Shape interface {
	Kind() ShapeKind

	// Volume is used to weight a shape's contribution to a compound body's
	// center of mass and inertia tensor.
	Volume() float64

	// Center returns the shape's local centroid.
	Center() *lin.Vec3

	// Inertia returns the shape's inertia tensor about its own center,
	// scaled by mass, expressed in the shape's local axes.
	Inertia(mass float64) *lin.Mat3

	// Aabb returns shape's axis aligned bounding box under the given
	// world transform, expanded by margin. Returns nil for shapes with
	// no finite extent (Plane, Particle) — callers special-case those.
	Aabb(world *lin.Transform3d, margin float64) *Abox
}

// ShapeKind enumerates the closed set of shape variants. Narrow phase
// dispatch is an explicit switch over these, never type assertion chains.
type ShapeKind int

const (
	KindPlane ShapeKind = iota
	KindConvex
	KindSphere
	KindParticle
)

func (k ShapeKind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindConvex:
		return "convex"
	case KindSphere:
		return "sphere"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// Abox is an axis aligned bounding box used during broad phase.
type Abox struct {
	Min lin.Vec3
	Max lin.Vec3
}

// Overlaps reports whether a and b intersect. Boxes that merely touch
// along a face, edge, or point are not considered overlapping.
func (a *Abox) Overlaps(b *Abox) bool {
	return a.Max.X > b.Min.X && a.Min.X < b.Max.X &&
		a.Max.Y > b.Min.Y && a.Min.Y < b.Max.Y &&
		a.Max.Z > b.Min.Z && a.Min.Z < b.Max.Z
}

// Expand grows a by margin on every side, in place, returning a.
func (a *Abox) Expand(margin float64) *Abox {
	a.Min.X, a.Min.Y, a.Min.Z = a.Min.X-margin, a.Min.Y-margin, a.Min.Z-margin
	a.Max.X, a.Max.Y, a.Max.Z = a.Max.X+margin, a.Max.Y+margin, a.Max.Z+margin
	return a
}

// Plane is an infinite half-space. Its local normal is always +z — the
// public API only constructs +z-normal planes; arbitrary orientation is
// achieved by giving the owning body a non-identity rotation. Planes never
// collide with other planes and cannot be part of a dynamic body.
type Plane struct{}

// NewPlane returns a Plane shape.
func NewPlane() *Plane { return &Plane{} }

func (p *Plane) Kind() ShapeKind                               { return KindPlane }
func (p *Plane) Volume() float64                               { return 0 }
func (p *Plane) Center() *lin.Vec3                             { return lin.NewVec3() }
func (p *Plane) Inertia(mass float64) *lin.Mat3                { return lin.NewMat3() }
func (p *Plane) Aabb(t *lin.Transform3d, margin float64) *Abox { return nil }

// Normal returns the plane's world-space outward normal under transform t.
func (p *Plane) Normal(t *lin.Transform3d) *lin.Vec3 {
	local := lin.NewVec3S(0, 0, 1)
	n := lin.NewVec3()
	n.MultQ(local, t.Rot)
	return n
}

// Origin returns a point on the plane in world space under transform t.
func (p *Plane) Origin(t *lin.Transform3d) *lin.Vec3 {
	return lin.NewVec3().Set(t.Loc)
}

// Sphere is a ball of the given radius centered at the origin.
type Sphere struct {
	Radius float64
}

// NewSphere returns a Sphere shape. A negative radius is made positive.
func NewSphere(radius float64) *Sphere { return &Sphere{Radius: math.Abs(radius)} }

func (s *Sphere) Kind() ShapeKind  { return KindSphere }
func (s *Sphere) Volume() float64 { return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius }
func (s *Sphere) Center() *lin.Vec3 { return lin.NewVec3() }

func (s *Sphere) Inertia(mass float64) *lin.Mat3 {
	elem := 0.4 * mass * s.Radius * s.Radius
	return lin.NewMat3().SetDiag(elem, elem, elem)
}

func (s *Sphere) Aabb(t *lin.Transform3d, margin float64) *Abox {
	r := s.Radius + margin
	return &Abox{
		Min: lin.Vec3{X: t.Loc.X - r, Y: t.Loc.Y - r, Z: t.Loc.Z - r},
		Max: lin.Vec3{X: t.Loc.X + r, Y: t.Loc.Y + r, Z: t.Loc.Z + r},
	}
}

// Particle is a zero-size point. Particles never collide with other
// particles and contribute no rotational inertia.
type Particle struct{}

// NewParticle returns a Particle shape.
func NewParticle() *Particle { return &Particle{} }

func (p *Particle) Kind() ShapeKind                 { return KindParticle }
func (p *Particle) Volume() float64                 { return 0 }
func (p *Particle) Center() *lin.Vec3               { return lin.NewVec3() }
func (p *Particle) Inertia(mass float64) *lin.Mat3  { return lin.NewMat3() }

func (p *Particle) Aabb(t *lin.Transform3d, margin float64) *Abox {
	m := margin
	return &Abox{
		Min: lin.Vec3{X: t.Loc.X - m, Y: t.Loc.Y - m, Z: t.Loc.Z - m},
		Max: lin.Vec3{X: t.Loc.X + m, Y: t.Loc.Y + m, Z: t.Loc.Z + m},
	}
}

// ConvexShape wraps a Convex polyhedron so it satisfies the Shape
// interface. Boxes, cylinders, and user-supplied hulls all arrive here.
type ConvexShape struct {
	Hull *Convex
}

// NewConvexShape wraps hull as a Shape.
func NewConvexShape(hull *Convex) *ConvexShape { return &ConvexShape{Hull: hull} }

func (c *ConvexShape) Kind() ShapeKind   { return KindConvex }
func (c *ConvexShape) Volume() float64   { return c.Hull.Volume }
func (c *ConvexShape) Center() *lin.Vec3 { return lin.NewVec3().Set(&c.Hull.Centroid) }

// ConvexHull returns the polyhedron backing this shape. Satisfies the
// convexHulled interface narrow phase uses to reach hull geometry without
// caring whether a convex-kind shape is a plain ConvexShape or a
// cylinderShape wrapping one with its own closed-form inertia.
func (c *ConvexShape) ConvexHull() *Convex { return c.Hull }

func (c *ConvexShape) Inertia(mass float64) *lin.Mat3 {
	density := 0.0
	if c.Hull.Volume > 0 {
		density = mass / c.Hull.Volume
	}
	return lin.NewMat3().Scale(&c.Hull.UnitInertia, density)
}

func (c *ConvexShape) Aabb(t *lin.Transform3d, margin float64) *Abox {
	if len(c.Hull.Vertices) == 0 {
		return nil
	}
	var world lin.Vec3
	t.World(&world, &c.Hull.Vertices[0])
	ab := &Abox{Min: world, Max: world}
	for i := 1; i < len(c.Hull.Vertices); i++ {
		t.World(&world, &c.Hull.Vertices[i])
		ab.Min.Min(&ab.Min, &world)
		ab.Max.Max(&ab.Max, &world)
	}
	return ab.Expand(margin)
}
