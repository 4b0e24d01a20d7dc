package lin

import "math"

// Transform3d is a rigid transform: an orientation plus a translation,
// composed as rotate-then-translate. It's used for body poses, local shape
// offsets within a compound body, and contact frames.
type Transform3d struct {
	Loc *Vec3
	Rot *Quat
}

// NewTransform3d returns an identity transform (no rotation, at the origin).
func NewTransform3d() *Transform3d {
	return &Transform3d{Loc: NewVec3(), Rot: NewQuat()}
}

// Eq (==) reports whether t and a have identical location and rotation.
func (t *Transform3d) Eq(a *Transform3d) bool { return t.Loc.Eq(a.Loc) && t.Rot.Eq(a.Rot) }

// Aeq (~=) reports whether t and a are equal within Epsilon.
func (t *Transform3d) Aeq(a *Transform3d) bool { return t.Loc.Aeq(a.Loc) && t.Rot.Aeq(a.Rot) }

// Set (=) copies a into t, returning t.
func (t *Transform3d) Set(a *Transform3d) *Transform3d {
	t.Loc.Set(a.Loc)
	t.Rot.Set(a.Rot)
	return t
}

// SetI (=I) sets t to the identity transform, returning t.
func (t *Transform3d) SetI() *Transform3d {
	t.Loc.SetS(0, 0, 0)
	t.Rot.SetI()
	return t
}

// SetVQ sets t's location and rotation directly, returning t.
func (t *Transform3d) SetVQ(loc *Vec3, rot *Quat) *Transform3d {
	t.Loc.Set(loc)
	t.Rot.Set(rot)
	return t
}

// SetLoc sets t's location, returning t.
func (t *Transform3d) SetLoc(loc *Vec3) *Transform3d {
	t.Loc.Set(loc)
	return t
}

// SetRot sets t's rotation, returning t.
func (t *Transform3d) SetRot(rot *Quat) *Transform3d {
	t.Rot.Set(rot)
	return t
}

// World transforms a point from t's local space to world space: rotate
// then translate. Sets and returns out.
func (t *Transform3d) World(out, local *Vec3) *Vec3 {
	out.MultQ(local, t.Rot)
	out.Add(out, t.Loc)
	return out
}

// Local transforms a point from world space to t's local space: the
// inverse of World. Sets and returns out.
func (t *Transform3d) Local(out, world *Vec3) *Vec3 {
	var inv Quat
	inv.Inv(t.Rot)
	out.Sub(world, t.Loc)
	out.MultQ(out, &inv)
	return out
}

// Mult sets t to the composition a*b: apply b first, then a. Both a and b
// are left unmodified even when t aliases one of them.
func (t *Transform3d) Mult(a, b *Transform3d) *Transform3d {
	var loc Vec3
	loc.MultQ(b.Loc, a.Rot)
	loc.Add(&loc, a.Loc)

	var rot Quat
	rot.Mult(a.Rot, b.Rot)

	t.Loc.Set(&loc)
	t.Rot.Set(&rot)
	return t
}

// Inv sets t to the inverse of a, returning t.
func (t *Transform3d) Inv(a *Transform3d) *Transform3d {
	var rot Quat
	rot.Inv(a.Rot)

	var loc Vec3
	loc.MultQ(a.Loc, &rot)
	loc.Neg(&loc)

	t.Rot.Set(&rot)
	t.Loc.Set(&loc)
	return t
}

// Integrate advances t by linear velocity lv and angular velocity av over
// duration dt, returning t. a is the pose at the start of the step.
//
// Ported from Bullet's btTransformUtil::integrateTransform: uses a small
// angle approximation (first three terms of the Taylor expansion of the
// quaternion exponential) when the angular velocity is tiny, to avoid the
// precision loss of dividing by a near-zero angle.
func (t *Transform3d) Integrate(a *Transform3d, lv, av *Vec3, dt float64) *Transform3d {
	var loc Vec3
	loc.Scale(lv, dt)
	loc.Add(a.Loc, &loc)
	t.Loc.Set(&loc)

	angle := av.Len()
	var axis Vec3
	if angle*dt < 0.001 {
		// Taylor expansion of sin(x/2)/x around x=0: 0.5 - x²/48.
		axis.Scale(av, 0.5*dt-(dt*dt*dt)*(angle*angle)/48)
	} else {
		axis.Scale(av, math.Sin(0.5*angle*dt)/angle)
	}
	dq := Quat{X: axis.X, Y: axis.Y, Z: axis.Z, W: math.Cos(0.5*angle*dt)}

	var rot Quat
	rot.Mult(&dq, a.Rot)
	rot.Unit()
	t.Rot.Set(&rot)
	return t
}
