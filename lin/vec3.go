package lin

import "math"

// Vec3 is a 3 element vector. It doubles as a point.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// NewVec3 returns the zero vector.
func NewVec3() *Vec3 { return &Vec3{} }

// NewVec3S returns the vector (x, y, z).
func NewVec3S(x, y, z float64) *Vec3 { return &Vec3{x, y, z} }

// Eq (==) reports whether v and a have identical elements.
func (v *Vec3) Eq(a *Vec3) bool { return v.X == a.X && v.Y == a.Y && v.Z == a.Z }

// Aeq (~=) reports whether v and a are equal within Epsilon per element.
func (v *Vec3) Aeq(a *Vec3) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) && Aeq(v.Z, a.Z) }

// AeqZ (~=0) reports whether v has a squared length within Epsilon of zero.
func (v *Vec3) AeqZ() bool { return v.Dot(v) < Epsilon }

// GetS returns the vector elements.
func (v *Vec3) GetS() (x, y, z float64) { return v.X, v.Y, v.Z }

// SetS (=) sets v's elements, returning v.
func (v *Vec3) SetS(x, y, z float64) *Vec3 {
	v.X, v.Y, v.Z = x, y, z
	return v
}

// Set (=) copies a into v, returning v.
func (v *Vec3) Set(a *Vec3) *Vec3 {
	v.X, v.Y, v.Z = a.X, a.Y, a.Z
	return v
}

// Min sets v to the element-wise minimum of a and b.
func (v *Vec3) Min(a, b *Vec3) *Vec3 {
	v.X, v.Y, v.Z = math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)
	return v
}

// Max sets v to the element-wise maximum of a and b.
func (v *Vec3) Max(a, b *Vec3) *Vec3 {
	v.X, v.Y, v.Z = math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)
	return v
}

// Abs sets v to the element-wise absolute value of a.
func (v *Vec3) Abs(a *Vec3) *Vec3 {
	v.X, v.Y, v.Z = math.Abs(a.X), math.Abs(a.Y), math.Abs(a.Z)
	return v
}

// Neg (-) sets v to the negation of a.
func (v *Vec3) Neg(a *Vec3) *Vec3 {
	v.X, v.Y, v.Z = -a.X, -a.Y, -a.Z
	return v
}

// Add (+) sets v to a+b.
func (v *Vec3) Add(a, b *Vec3) *Vec3 {
	v.X, v.Y, v.Z = a.X+b.X, a.Y+b.Y, a.Z+b.Z
	return v
}

// Sub (-) sets v to a-b.
func (v *Vec3) Sub(a, b *Vec3) *Vec3 {
	v.X, v.Y, v.Z = a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return v
}

// Mult (*) sets v to the element-wise product of a and b.
func (v *Vec3) Mult(a, b *Vec3) *Vec3 {
	v.X, v.Y, v.Z = a.X*b.X, a.Y*b.Y, a.Z*b.Z
	return v
}

// Scale (*s) sets v to a scaled by s.
func (v *Vec3) Scale(a *Vec3, s float64) *Vec3 {
	v.X, v.Y, v.Z = a.X*s, a.Y*s, a.Z*s
	return v
}

// Div (/s) sets v to a divided by s. v is set to a, unchanged, when s is zero.
func (v *Vec3) Div(a *Vec3, s float64) *Vec3 {
	if s == 0 {
		return v.Set(a)
	}
	inv := 1 / s
	v.X, v.Y, v.Z = a.X*inv, a.Y*inv, a.Z*inv
	return v
}

// Dot returns the dot product of v and a.
func (v *Vec3) Dot(a *Vec3) float64 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

// Len returns the length (magnitude) of v.
func (v *Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// LenSqr returns the squared length of v.
func (v *Vec3) LenSqr() float64 { return v.Dot(v) }

// Dist returns the distance between points v and a.
func (v *Vec3) Dist(a *Vec3) float64 { return math.Sqrt(v.DistSqr(a)) }

// DistSqr returns the squared distance between points v and a.
func (v *Vec3) DistSqr(a *Vec3) float64 {
	dx, dy, dz := a.X-v.X, a.Y-v.Y, a.Z-v.Z
	return dx*dx + dy*dy + dz*dz
}

// Unit normalizes v in place, returning v. v is left unchanged if its
// length is zero.
func (v *Vec3) Unit() *Vec3 {
	length := v.Len()
	if length == 0 {
		return v
	}
	return v.Scale(v, 1/length)
}

// Cross sets v to the cross product a x b.
func (v *Vec3) Cross(a, b *Vec3) *Vec3 {
	v.X, v.Y, v.Z = a.Y*b.Z-a.Z*b.Y, a.Z*b.X-a.X*b.Z, a.X*b.Y-a.Y*b.X
	return v
}

// Lerp sets v to the linear interpolation between a and b by fraction.
func (v *Vec3) Lerp(a, b *Vec3, fraction float64) *Vec3 {
	v.X = (b.X-a.X)*fraction + a.X
	v.Y = (b.Y-a.Y)*fraction + a.Y
	v.Z = (b.Z-a.Z)*fraction + a.Z
	return v
}

// Tangents generates two vectors p and q that, together with v, form an
// orthogonal basis. v is expected to already be a unit vector.
//
// Based on bullet physics: btVector3::btPlaneSpace1.
func (v *Vec3) Tangents(p, q *Vec3) {
	const invSqrt2 = 0.7071067811865475244008443621048490
	if math.Abs(v.Z) > invSqrt2 {
		a := v.Y*v.Y + v.Z*v.Z
		k := 1 / math.Sqrt(a)
		p.X, p.Y, p.Z = 0, -v.Z*k, v.Y*k
		q.X, q.Y, q.Z = a*k, -v.X*p.Z, v.X*p.Y
	} else {
		a := v.X*v.X + v.Y*v.Y
		k := 1 / math.Sqrt(a)
		p.X, p.Y, p.Z = -v.Y*k, v.X*k, 0
		q.X, q.Y, q.Z = -v.Z*p.Y, v.Z*p.X, a*k
	}
}

// MultMv sets v to the product of matrix m and column vector cv.
func (v *Vec3) MultMv(m *Mat3, cv *Vec3) *Vec3 {
	x := m.Xx*cv.X + m.Xy*cv.Y + m.Xz*cv.Z
	y := m.Yx*cv.X + m.Yy*cv.Y + m.Yz*cv.Z
	z := m.Zx*cv.X + m.Zy*cv.Y + m.Zz*cv.Z
	v.X, v.Y, v.Z = x, y, z
	return v
}

// MultQ sets v to quaternion q applied to vector a (rotates a by q).
func (v *Vec3) MultQ(a *Vec3, q *Quat) *Vec3 {
	// t = 2 * cross(q.xyz, a)
	tx, ty, tz := 2*(q.Y*a.Z-q.Z*a.Y), 2*(q.Z*a.X-q.X*a.Z), 2*(q.X*a.Y-q.Y*a.X)
	// v = a + q.w*t + cross(q.xyz, t)
	cx, cy, cz := q.Y*tz-q.Z*ty, q.Z*tx-q.X*tz, q.X*ty-q.Y*tx
	v.X, v.Y, v.Z = a.X+q.W*tx+cx, a.Y+q.W*ty+cy, a.Z+q.W*tz+cz
	return v
}
