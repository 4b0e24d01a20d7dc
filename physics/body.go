package physics

import (
	"math"

	"github.com/silt-engine/impulse3d/lin"
)

// BodyId is a stable, reusable identifier for a Body within a World. Ids
// are handed out from a free list so a removed body's id can be recycled
// by the next addition.
type BodyId uint32

// Material holds the physical properties combined during contact
// resolution: friction and restitution (bounciness) are each the average
// of the two colliding bodies' own values.
type Material struct {
	Friction    float64
	Restitution float64
}

// shapeInstance is one shape attached to a body, along with the transforms
// needed to place it: Local is as the caller declared it (relative to the
// body's user-facing origin); ComRelative is Local re-expressed relative to
// the body's center of mass, recomputed whenever mass properties are
// derived; World is ComRelative composed with the body's current pose,
// recomputed on every pose change.
type shapeInstance struct {
	shape       Shape
	local       *lin.Transform3d
	comRelative *lin.Transform3d
	world       *lin.Transform3d
}

// Body is a single rigid body participating in simulation. A Body owns one
// or more shapes; when declared dynamic, its mass properties (center of
// mass, inverse inertia) are derived from those shapes via the parallel
// axis theorem.
type Body struct {
	id   BodyId
	Data interface{}

	shapes []*shapeInstance

	mass    float64
	invMass float64
	movable bool

	velocity        lin.Vec3
	angularVelocity lin.Vec3
	force           lin.Vec3
	torque          lin.Vec3
	linearDamping   float64
	angularDamping  float64
	material        Material

	transform3d  *lin.Transform3d // world pose of the center of mass
	comTransform *lin.Transform3d // COM pose relative to the user-facing origin

	invIBody  lin.Mat3 // inverse inertia, body (COM) local axes
	invIWorld lin.Mat3 // derived: R * invIBody * R^T
}

// NewBody returns a new, static (zero mass) body at the origin with no
// shapes attached. Data is opaque user payload returned unchanged by Data().
func NewBody(data interface{}) *Body {
	b := &Body{Data: data, transform3d: lin.NewTransform3d(), comTransform: lin.NewTransform3d()}
	b.material.Friction = 0.5
	return b
}

// Block returns a new body with a single box shape of the given
// half-extents centered at the origin.
func Block(hx, hy, hz float64, data interface{}) *Body {
	b := NewBody(data)
	b.AddShape(NewConvexShape(NewBlock(hx, hy, hz)), lin.NewTransform3d())
	return b
}

// BodySphere returns a new body with a single sphere shape of the given radius.
func BodySphere(radius float64, data interface{}) *Body {
	b := NewBody(data)
	b.AddShape(NewSphere(radius), lin.NewTransform3d())
	return b
}

// Cylinder returns a new body with a single cylinder shape, axis +z.
func Cylinder(radius, halfHeight float64, data interface{}) *Body {
	b := NewBody(data)
	b.AddShape(newCylinderShape(radius, halfHeight), lin.NewTransform3d())
	return b
}

// PlaneBody returns a new static body with a single +z plane shape. Planes
// cannot be made dynamic; WithBehaviorDynamic on a plane-only body is a
// no-op (stays static).
func PlaneBody(data interface{}) *Body {
	b := NewBody(data)
	b.AddShape(NewPlane(), lin.NewTransform3d())
	return b
}

// ParticleBody returns a new body with a single zero-size particle shape.
func ParticleBody(data interface{}) *Body {
	b := NewBody(data)
	b.AddShape(NewParticle(), lin.NewTransform3d())
	return b
}

// Compound returns a new body built from multiple shapes, each placed at
// the given local transform (relative to the body's user-facing origin).
// len(shapes) must equal len(locals).
func Compound(shapes []Shape, locals []*lin.Transform3d, data interface{}) *Body {
	b := NewBody(data)
	for i, s := range shapes {
		b.AddShape(s, locals[i])
	}
	return b
}

// AddShape attaches shape at the given local transform (relative to the
// body's user-facing origin) and returns b. If the body is already
// dynamic, mass properties are re-derived immediately.
func (b *Body) AddShape(shape Shape, local *lin.Transform3d) *Body {
	inst := &shapeInstance{shape: shape, local: lin.NewTransform3d(), comRelative: lin.NewTransform3d(), world: lin.NewTransform3d()}
	inst.local.Set(local)
	b.shapes = append(b.shapes, inst)
	if b.movable {
		b.deriveMassProperties()
	} else {
		b.updateWorldShapes()
	}
	return b
}

// onlyPlanes reports whether every shape attached to b is a Plane — such a
// body can never become dynamic.
func (b *Body) onlyPlanes() bool {
	if len(b.shapes) == 0 {
		return false
	}
	for _, inst := range b.shapes {
		if inst.shape.Kind() != KindPlane {
			return false
		}
	}
	return true
}

// WithBehaviorDynamic declares b dynamic with the given mass, triggering
// mass-property derivation. Non-finite or non-positive mass, and bodies
// made solely of planes, are silently forced static instead.
func (b *Body) WithBehaviorDynamic(mass float64) *Body {
	if math.IsNaN(mass) || math.IsInf(mass, 0) || mass <= 0 || b.onlyPlanes() {
		b.mass, b.invMass, b.movable = 0, 0, false
		b.updateWorldShapes()
		b.updateInvIWorld()
		return b
	}
	b.mass = mass
	b.deriveMassProperties()
	return b
}

// WithMaterial sets b's combined-friction and combined-restitution inputs.
func (b *Body) WithMaterial(friction, restitution float64) *Body {
	b.material.Friction, b.material.Restitution = friction, restitution
	return b
}

// WithDamping sets per-second fractional velocity decay, each clamped to
// [0, 1].
func (b *Body) WithDamping(linear, angular float64) *Body {
	b.linearDamping = lin.Clamp(linear, 0, 1)
	b.angularDamping = lin.Clamp(angular, 0, 1)
	return b
}

// deriveMassProperties recomputes the center of mass and inverse inertia
// tensor from b's current shapes, weighted by shape volume (or, for
// zero-volume shapes such as particles, weighted equally).
func (b *Body) deriveMassProperties() {
	if len(b.shapes) == 0 {
		b.movable = false
		b.invMass = 0
		return
	}

	totalVolume := 0.0
	for _, inst := range b.shapes {
		totalVolume += inst.shape.Volume()
	}

	var comLocal lin.Vec3
	n := float64(len(b.shapes))
	for _, inst := range b.shapes {
		var center lin.Vec3
		inst.local.World(&center, inst.shape.Center())
		weight := 1 / n
		if totalVolume > lin.Epsilon {
			weight = inst.shape.Volume() / totalVolume
		}
		comLocal.X += center.X * weight
		comLocal.Y += center.Y * weight
		comLocal.Z += center.Z * weight
	}
	b.comTransform.SetVQ(&comLocal, lin.NewQuat())

	comInv := lin.NewTransform3d()
	comInv.Inv(b.comTransform)

	var inertia lin.Mat3
	for _, inst := range b.shapes {
		inst.comRelative.Mult(comInv, inst.local)

		shapeMass := b.mass / n
		if totalVolume > lin.Epsilon {
			shapeMass = b.mass * inst.shape.Volume() / totalVolume
		}

		local := inst.shape.Inertia(shapeMass)
		rotated := rotateInertia(local, inst.comRelative.Rot)

		var centerInCom lin.Vec3
		inst.comRelative.World(&centerInCom, inst.shape.Center())
		offset := parallelAxisInertia(shapeMass, &centerInCom)

		rotated.Add(rotated, offset)
		inertia.Add(&inertia, rotated)
	}

	b.invIBody.Inv(&inertia)
	b.invMass = 1 / b.mass
	b.movable = true
	b.updateWorldShapes()
	b.updateInvIWorld()
}

// rotateInertia returns R*i*R^T, transforming an inertia tensor given in a
// shape's local axes into the axes rot represents.
func rotateInertia(i *lin.Mat3, rot *lin.Quat) *lin.Mat3 {
	var r, rt, tmp, out lin.Mat3
	r.SetQ(rot)
	rt.Transpose(&r)
	tmp.Mult(&r, i)
	out.Mult(&tmp, &rt)
	return &out
}

// parallelAxisInertia returns the inertia tensor contribution of a point
// mass at offset r from the axis of rotation (parallel axis theorem):
// m*(|r|^2 * I - r⊗r).
func parallelAxisInertia(mass float64, r *lin.Vec3) *lin.Mat3 {
	d2 := r.Dot(r)
	m := lin.NewMat3().SetDiag(d2, d2, d2)
	outer := lin.Mat3{
		Xx: r.X * r.X, Xy: r.X * r.Y, Xz: r.X * r.Z,
		Yx: r.Y * r.X, Yy: r.Y * r.Y, Yz: r.Y * r.Z,
		Zx: r.Z * r.X, Zy: r.Z * r.Y, Zz: r.Z * r.Z,
	}
	m.Sub(m, &outer)
	m.Scale(m, mass)
	return m
}

// updateWorldShapes recomputes every shape's world transform from the
// body's current pose. Called after any pose change.
func (b *Body) updateWorldShapes() {
	for _, inst := range b.shapes {
		inst.world.Mult(b.transform3d, inst.comRelative)
	}
}

// updateInvIWorld recomputes the world-space inverse inertia tensor:
// R * invIBody * R^T, where R is the COM orientation.
func (b *Body) updateInvIWorld() {
	if !b.movable {
		b.invIWorld = lin.Mat3{}
		return
	}
	b.invIWorld = *rotateInertia(&b.invIBody, b.transform3d.Rot)
}

// Id returns b's World-assigned id.
func (b *Body) Id() BodyId { return b.id }

// Mass returns b's mass (0 for static bodies).
func (b *Body) Mass() float64 { return b.mass }

// Frame returns b's world pose expressed at the user-facing origin (COM
// offset removed).
func (b *Body) Frame() *lin.Transform3d {
	comInv, frame := lin.NewTransform3d(), lin.NewTransform3d()
	comInv.Inv(b.comTransform)
	frame.Mult(b.transform3d, comInv)
	return frame
}

// OriginPoint returns the world position of b's user-facing origin.
func (b *Body) OriginPoint() *lin.Vec3 { return lin.NewVec3().Set(b.Frame().Loc) }

// CenterOfMass returns the world position of b's center of mass.
func (b *Body) CenterOfMass() *lin.Vec3 { return lin.NewVec3().Set(b.transform3d.Loc) }

// Velocity returns b's current linear velocity.
func (b *Body) Velocity() *lin.Vec3 { return lin.NewVec3().Set(&b.velocity) }

// AngularVelocity returns b's current angular velocity.
func (b *Body) AngularVelocity() *lin.Vec3 { return lin.NewVec3().Set(&b.angularVelocity) }

// VelocityAt returns the linear velocity of the material point of b at
// world-space point p, including the contribution of angular velocity.
func (b *Body) VelocityAt(p *lin.Vec3) *lin.Vec3 {
	r := lin.NewVec3().Sub(p, b.transform3d.Loc)
	v := lin.NewVec3().Cross(&b.angularVelocity, r)
	return v.Add(v, &b.velocity)
}

// TransformWithInverseInertia applies b's world-space inverse inertia
// tensor to vector v, returning the result. Useful for callers applying
// custom torque-to-angular-acceleration conversions.
func (b *Body) TransformWithInverseInertia(v *lin.Vec3) *lin.Vec3 {
	return lin.NewVec3().MultMv(&b.invIWorld, v)
}

// MoveTo sets b's user-facing origin to loc with orientation rot, rebuilding
// world shape transforms and world inverse inertia.
func (b *Body) MoveTo(loc *lin.Vec3, rot *lin.Quat) *Body {
	frame := lin.NewTransform3d()
	frame.SetVQ(loc, rot)
	b.transform3d.Mult(frame, b.comTransform)
	b.updateWorldShapes()
	b.updateInvIWorld()
	return b
}

// TranslateBy shifts b's origin by delta in world space.
func (b *Body) TranslateBy(delta *lin.Vec3) *Body {
	loc := lin.NewVec3().Add(b.Frame().Loc, delta)
	return b.MoveTo(loc, b.Frame().Rot)
}

// RotateAround rotates b's orientation by delta (composed on the left, in
// world space) in place, about b's current origin.
func (b *Body) RotateAround(delta *lin.Quat) *Body {
	frame := b.Frame()
	rot := lin.NewQuat().Mult(delta, frame.Rot)
	return b.MoveTo(frame.Loc, rot)
}

// ApplyForce accumulates a force (and, if offset from the COM, the
// corresponding torque) to be integrated on the next Simulate call.
func (b *Body) ApplyForce(force *lin.Vec3, worldPoint *lin.Vec3) *Body {
	if !b.movable {
		return b
	}
	b.force.Add(&b.force, force)
	if worldPoint != nil {
		r := lin.NewVec3().Sub(worldPoint, b.transform3d.Loc)
		t := lin.NewVec3().Cross(r, force)
		b.torque.Add(&b.torque, t)
	}
	return b
}

// ApplyImpulse immediately changes b's linear (and, if offset from the
// COM, angular) velocity.
func (b *Body) ApplyImpulse(impulse *lin.Vec3, worldPoint *lin.Vec3) *Body {
	if !b.movable {
		return b
	}
	dv := lin.NewVec3().Scale(impulse, b.invMass)
	b.velocity.Add(&b.velocity, dv)
	if worldPoint != nil {
		r := lin.NewVec3().Sub(worldPoint, b.transform3d.Loc)
		angImpulse := lin.NewVec3().Cross(r, impulse)
		dw := b.TransformWithInverseInertia(angImpulse)
		b.angularVelocity.Add(&b.angularVelocity, dw)
	}
	return b
}

// pairID returns a broad-phase pair identifier for bodies a and b,
// independent of call order.
func pairID(a, b BodyId) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// applyGravity adds m*gravity to b's accumulated force. Static bodies are
// unaffected.
func (b *Body) applyGravity(gravity *lin.Vec3) {
	if !b.movable {
		return
	}
	g := lin.NewVec3().Scale(gravity, b.mass)
	b.force.Add(&b.force, g)
}

// integrateVelocities applies accumulated force/torque to velocity and
// angular velocity over dt (semi-implicit Euler). Static bodies are
// unaffected.
func (b *Body) integrateVelocities(dt float64) {
	if !b.movable {
		return
	}
	dv := lin.NewVec3().Scale(&b.force, b.invMass*dt)
	b.velocity.Add(&b.velocity, dv)

	dw := b.TransformWithInverseInertia(&b.torque)
	dw.Scale(dw, dt)
	b.angularVelocity.Add(&b.angularVelocity, dw)
}

// applyDamping scales velocity and angular velocity by their respective
// per-second damping factors, normalized to the actual timestep.
func (b *Body) applyDamping(dt float64) {
	b.velocity.Scale(&b.velocity, math.Pow(1-b.linearDamping, dt*60))
	b.angularVelocity.Scale(&b.angularVelocity, math.Pow(1-b.angularDamping, dt*60))
}

// clearForces resets accumulated force and torque to zero.
func (b *Body) clearForces() {
	b.force = lin.Vec3{}
	b.torque = lin.Vec3{}
}

// combinedFriction returns the average of a and b's friction coefficients.
func combinedFriction(a, b *Body) float64 {
	return (a.material.Friction + b.material.Friction) / 2
}

// combinedRestitution returns the average of a and b's restitution values.
func combinedRestitution(a, b *Body) float64 {
	return (a.material.Restitution + b.material.Restitution) / 2
}

// newCylinderShape wraps a cylinder convex hull, overriding its inertia
// with the closed-form cylinder formula per the spec's resolution (the
// polyhedral approximation from the hull is only used via UnsafeConvex).
func newCylinderShape(radius, halfHeight float64) Shape {
	return &cylinderShape{hull: NewCylinder(radius, halfHeight, 16), radius: radius, halfHeight: halfHeight}
}

type cylinderShape struct {
	hull               *Convex
	radius, halfHeight float64
}

func (c *cylinderShape) Kind() ShapeKind   { return KindConvex }
func (c *cylinderShape) Volume() float64   { return c.hull.Volume }
func (c *cylinderShape) Center() *lin.Vec3 { return lin.NewVec3() }

func (c *cylinderShape) Inertia(mass float64) *lin.Mat3 {
	radial := mass * (3*c.radius*c.radius + (2*c.halfHeight)*(2*c.halfHeight)) / 12
	axial := 0.5 * mass * c.radius * c.radius
	return lin.NewMat3().SetDiag(radial, radial, axial)
}

func (c *cylinderShape) Aabb(t *lin.Transform3d, margin float64) *Abox {
	return (&ConvexShape{Hull: c.hull}).Aabb(t, margin)
}

// ConvexHull returns the polyhedral hull approximating this cylinder, for
// narrow phase's SAT and clipping code. Its own Inertia is never read for
// this purpose; see cylinderShape.Inertia above for the shape-level override.
func (c *cylinderShape) ConvexHull() *Convex { return c.hull }
