package physics

import "github.com/silt-engine/impulse3d/lin"

// ConstraintKind enumerates the closed set of joint variants. Lowering to
// solver equations is an explicit switch over these, mirroring the shape
// dispatch in narrow phase.
type ConstraintKind int

const (
	KindPointToPoint ConstraintKind = iota
	KindHinge
	KindDistance
)

// Constraint is a bilateral joint between two bodies, expressed in each
// body's local (user-facing origin) frame so it tracks the bodies as they
// move. Only the fields relevant to Kind are meaningful; unused fields are
// left zero by the constructors below.
type Constraint struct {
	Kind ConstraintKind

	Body1, Body2 BodyId

	Pivot1, Pivot2 lin.Vec3 // PointToPoint, Hinge: anchor in each body's local frame
	Axis1, Axis2   lin.Vec3 // Hinge: the shared hinge axis, in each body's local frame
	Distance       float64  // Distance: target separation between the two bodies' centers of mass
}

// NewPointToPoint returns a joint holding pivot1 (in body1's local frame)
// and pivot2 (in body2's local frame) coincident in world space — a ball
// socket.
func NewPointToPoint(body1, body2 BodyId, pivot1, pivot2 *lin.Vec3) *Constraint {
	return &Constraint{Kind: KindPointToPoint, Body1: body1, Body2: body2, Pivot1: *pivot1, Pivot2: *pivot2}
}

// NewHinge returns a joint holding pivot1/pivot2 coincident (as
// PointToPoint does) while additionally locking the two bodies' local
// axis1/axis2 directions to stay parallel, leaving one rotational degree
// of freedom about that shared axis.
func NewHinge(body1, body2 BodyId, pivot1, pivot2, axis1, axis2 *lin.Vec3) *Constraint {
	return &Constraint{
		Kind: KindHinge, Body1: body1, Body2: body2,
		Pivot1: *pivot1, Pivot2: *pivot2,
		Axis1: *lin.NewVec3().Set(axis1).Unit(), Axis2: *lin.NewVec3().Set(axis2).Unit(),
	}
}

// NewDistance returns a joint holding body1 and body2's centers of mass a
// fixed distance apart, free to rotate and slide along the line between
// them. Unlike PointToPoint and Hinge, this joint has no pivot — it pulls
// directly on each body's center of mass, so it exerts no torque.
func NewDistance(body1, body2 BodyId, distance float64) *Constraint {
	return &Constraint{Kind: KindDistance, Body1: body1, Body2: body2, Distance: distance}
}

// worldAnchor resolves a constraint-local pivot to its current world
// position and the arm from the owning body's center of mass to that
// position — the two quantities every lowering function needs.
func worldAnchor(body *Body, localPivot *lin.Vec3) (world, arm lin.Vec3) {
	frame := body.Frame()
	frame.World(&world, localPivot)
	arm.Sub(&world, body.transform3d.Loc)
	return world, arm
}

// worldAxis resolves a constraint-local direction to its current world
// direction, without translation.
func worldAxis(body *Body, localAxis *lin.Vec3) lin.Vec3 {
	var out lin.Vec3
	out.MultQ(localAxis, body.Frame().Rot)
	return out
}

// lowerConstraints builds the bilateral SPOOK equations for every
// constraint, using each constraint's own kind to decide how many
// equations and along which axes. Constraints naming a body that bodyOf
// can't resolve contribute nothing.
func lowerConstraints(dt float64, constraints []*Constraint, bodyOf func(BodyId) *Body) []equation {
	var equations []equation
	for _, c := range constraints {
		body1, body2 := bodyOf(c.Body1), bodyOf(c.Body2)
		if body1 == nil || body2 == nil {
			continue
		}
		switch c.Kind {
		case KindPointToPoint:
			equations = append(equations, lowerPointToPoint(dt, c, body1, body2)...)
		case KindHinge:
			equations = append(equations, lowerPointToPoint(dt, c, body1, body2)...)
			equations = append(equations, lowerHingeAxis(dt, c, body1, body2)...)
		case KindDistance:
			equations = append(equations, lowerDistance(dt, c, body1, body2))
		}
	}
	return equations
}

// lowerPointToPoint returns the three bilateral equations, one per world
// axis, that drive the world anchor of Pivot1 on body1 to coincide with
// the world anchor of Pivot2 on body2.
func lowerPointToPoint(dt float64, c *Constraint, body1, body2 *Body) []equation {
	w1, r1 := worldAnchor(body1, &c.Pivot1)
	w2, r2 := worldAnchor(body2, &c.Pivot2)
	gap := lin.NewVec3().Sub(&w2, &w1)

	axes := [3]lin.Vec3{{X: 1}, {Y: 1}, {Z: 1}}
	equations := make([]equation, 3)
	for i, axis := range axes {
		ja, jb := contactJacobian(&axis, &r1, &r2)
		g := axis.Dot(gap)
		equations[i] = buildEquation(dt, body1, body2, ja, jb, -lin.Large, lin.Large, g)
	}
	return equations
}

// lowerHingeAxis returns the two bilateral angular equations that keep
// body1's Axis1 parallel to body2's Axis2: one equation per direction
// perpendicular to Axis1, driving the component of Axis2 along it to zero.
func lowerHingeAxis(dt float64, c *Constraint, body1, body2 *Body) []equation {
	a1 := worldAxis(body1, &c.Axis1)
	a2 := worldAxis(body2, &c.Axis2)

	var t1, t2 lin.Vec3
	a1.Tangents(&t1, &t2)

	equations := make([]equation, 2)
	for i, perp := range [2]lin.Vec3{t1, t2} {
		// Angular-only Jacobian: relative angular velocity about perp
		// drives the misalignment between a1 and a2 to zero.
		cross := lin.NewVec3().Cross(&a2, &perp)
		ja := jacobianRow{Angular: *lin.NewVec3().Neg(cross)}
		jb := jacobianRow{Angular: *cross}
		g := a2.Dot(&perp)
		equations[i] = buildEquation(dt, body1, body2, ja, jb, -lin.Large, lin.Large, g)
	}
	return equations
}

// lowerDistance returns the single bilateral equation holding body1 and
// body2's centers of mass a fixed Distance apart. Center-to-center means no
// anchor arm, so the Jacobian is purely linear — this joint injects no
// torque into either body.
func lowerDistance(dt float64, c *Constraint, body1, body2 *Body) equation {
	delta := lin.NewVec3().Sub(body2.transform3d.Loc, body1.transform3d.Loc)
	length := delta.Len()

	n := lin.NewVec3S(0, 0, 1)
	if length > lin.Epsilon {
		n = lin.NewVec3().Scale(delta, 1/length)
	}
	ja := jacobianRow{Linear: *lin.NewVec3().Neg(n)}
	jb := jacobianRow{Linear: *n}
	g := length - c.Distance
	return buildEquation(dt, body1, body2, ja, jb, -lin.Large, lin.Large, g)
}
