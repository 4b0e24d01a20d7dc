package lin

import "math"

// Quat is a unit quaternion, used to represent 3D orientation.
type Quat struct {
	X, Y, Z, W float64
}

// QuatI is the identity quaternion (no rotation).
var QuatI = Quat{W: 1}

// NewQuat returns the identity quaternion.
func NewQuat() *Quat {
	q := &Quat{}
	return q.SetI()
}

// NewQuatAa returns the quaternion representing a rotation of angle radians
// about axis (which need not be normalized).
func NewQuatAa(axis *Vec3, angle float64) *Quat {
	q := &Quat{}
	return q.SetAa(axis, angle)
}

// Eq (==) reports whether q and a have identical elements.
func (q *Quat) Eq(a *Quat) bool { return q.X == a.X && q.Y == a.Y && q.Z == a.Z && q.W == a.W }

// Aeq (~=) reports whether q and a are element-wise equal within Epsilon.
func (q *Quat) Aeq(a *Quat) bool {
	return Aeq(q.X, a.X) && Aeq(q.Y, a.Y) && Aeq(q.Z, a.Z) && Aeq(q.W, a.W)
}

// Set (=) copies a into q, returning q.
func (q *Quat) Set(a *Quat) *Quat {
	*q = *a
	return q
}

// SetI (=I) sets q to the identity quaternion, returning q.
func (q *Quat) SetI() *Quat {
	*q = QuatI
	return q
}

// SetS (=) sets q's elements directly, returning q.
func (q *Quat) SetS(x, y, z, w float64) *Quat {
	q.X, q.Y, q.Z, q.W = x, y, z, w
	return q
}

// SetAa sets q to the rotation of angle radians about axis, returning q.
// axis need not be normalized.
func (q *Quat) SetAa(axis *Vec3, angle float64) *Quat {
	length := axis.Len()
	if length == 0 {
		return q.SetI()
	}
	half := angle * 0.5
	s := math.Sin(half) / length
	q.X, q.Y, q.Z, q.W = axis.X*s, axis.Y*s, axis.Z*s, math.Cos(half)
	return q
}

// SetM sets q from rotation matrix m, returning q.
func (q *Quat) SetM(m *Mat3) *Quat {
	tr := m.Trace()
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q.W = 0.25 * s
		q.X = (m.Zy - m.Yz) / s
		q.Y = (m.Xz - m.Zx) / s
		q.Z = (m.Yx - m.Xy) / s
	case m.Xx > m.Yy && m.Xx > m.Zz:
		s := math.Sqrt(1+m.Xx-m.Yy-m.Zz) * 2
		q.W = (m.Zy - m.Yz) / s
		q.X = 0.25 * s
		q.Y = (m.Xy + m.Yx) / s
		q.Z = (m.Xz + m.Zx) / s
	case m.Yy > m.Zz:
		s := math.Sqrt(1+m.Yy-m.Xx-m.Zz) * 2
		q.W = (m.Xz - m.Zx) / s
		q.X = (m.Xy + m.Yx) / s
		q.Y = 0.25 * s
		q.Z = (m.Yz + m.Zy) / s
	default:
		s := math.Sqrt(1+m.Zz-m.Xx-m.Yy) * 2
		q.W = (m.Yx - m.Xy) / s
		q.X = (m.Xz + m.Zx) / s
		q.Y = (m.Yz + m.Zy) / s
		q.Z = 0.25 * s
	}
	return q
}

// Inv sets q to the inverse (conjugate, since q is expected to be a unit
// quaternion) of a, returning q.
func (q *Quat) Inv(a *Quat) *Quat {
	q.X, q.Y, q.Z, q.W = -a.X, -a.Y, -a.Z, a.W
	return q
}

// Neg sets q to the negation of a, returning q.
func (q *Quat) Neg(a *Quat) *Quat {
	q.X, q.Y, q.Z, q.W = -a.X, -a.Y, -a.Z, -a.W
	return q
}

// Add sets q to a+b, returning q.
func (q *Quat) Add(a, b *Quat) *Quat {
	q.X, q.Y, q.Z, q.W = a.X+b.X, a.Y+b.Y, a.Z+b.Z, a.W+b.W
	return q
}

// Sub sets q to a-b, returning q.
func (q *Quat) Sub(a, b *Quat) *Quat {
	q.X, q.Y, q.Z, q.W = a.X-b.X, a.Y-b.Y, a.Z-b.Z, a.W-b.W
	return q
}

// Scale sets q to a scaled by s, returning q.
func (q *Quat) Scale(a *Quat, s float64) *Quat {
	q.X, q.Y, q.Z, q.W = a.X*s, a.Y*s, a.Z*s, a.W*s
	return q
}

// Mult sets q to the Hamilton product a*b, returning q.
func (q *Quat) Mult(a, b *Quat) *Quat {
	x := a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y
	y := a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X
	z := a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W
	w := a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z
	q.X, q.Y, q.Z, q.W = x, y, z, w
	return q
}

// Dot returns the dot product of q and a.
func (q *Quat) Dot(a *Quat) float64 { return q.X*a.X + q.Y*a.Y + q.Z*a.Z + q.W*a.W }

// Len returns the length (magnitude) of q.
func (q *Quat) Len() float64 { return math.Sqrt(q.Dot(q)) }

// Unit normalizes q in place, returning q. q is left unchanged if its
// length is zero.
func (q *Quat) Unit() *Quat {
	length := q.Len()
	if length == 0 {
		return q
	}
	return q.Scale(q, 1/length)
}

// Nlerp sets q to the normalized linear interpolation between a and b by
// fraction, taking the shorter path around the hypersphere.
func (q *Quat) Nlerp(a, b *Quat, fraction float64) *Quat {
	bx, by, bz, bw := b.X, b.Y, b.Z, b.W
	if a.Dot(b) < 0 {
		bx, by, bz, bw = -bx, -by, -bz, -bw
	}
	q.X = (bx-a.X)*fraction + a.X
	q.Y = (by-a.Y)*fraction + a.Y
	q.Z = (bz-a.Z)*fraction + a.Z
	q.W = (bw-a.W)*fraction + a.W
	return q.Unit()
}

// Integrate advances q by angular velocity w over duration dt, returning q.
// Used once per step per the integrator's orientation update: computes the
// quaternion derivative dq/dt = 0.5 * w_quat * a and takes a forward Euler
// step from a, the orientation at the start of the step, then renormalizes.
func (q *Quat) Integrate(a *Quat, w *Vec3, dt float64) *Quat {
	wq := Quat{X: w.X, Y: w.Y, Z: w.Z, W: 0}
	var deriv Quat
	deriv.Mult(&wq, a)
	deriv.Scale(&deriv, 0.5*dt)
	q.Add(a, &deriv)
	return q.Unit()
}
