package lin

// Mat3 is a 3x3 matrix, used for inertia tensors and orientation frames.
// Elements are named Row-Col, e.g. Xy is row X, column y.
type Mat3 struct {
	Xx, Xy, Xz float64
	Yx, Yy, Yz float64
	Zx, Zy, Zz float64
}

// Mat3I is the 3x3 identity matrix.
var Mat3I = Mat3{
	Xx: 1, Yy: 1, Zz: 1,
}

// NewMat3 returns a zeroed matrix.
func NewMat3() *Mat3 { return &Mat3{} }

// NewMat3I returns an identity matrix.
func NewMat3I() *Mat3 {
	m := &Mat3{}
	return m.SetI()
}

// Eq (==) reports whether m and a have identical elements.
func (m *Mat3) Eq(a *Mat3) bool {
	return m.Xx == a.Xx && m.Xy == a.Xy && m.Xz == a.Xz &&
		m.Yx == a.Yx && m.Yy == a.Yy && m.Yz == a.Yz &&
		m.Zx == a.Zx && m.Zy == a.Zy && m.Zz == a.Zz
}

// Aeq (~=) reports whether m and a are element-wise equal within Epsilon.
func (m *Mat3) Aeq(a *Mat3) bool {
	return Aeq(m.Xx, a.Xx) && Aeq(m.Xy, a.Xy) && Aeq(m.Xz, a.Xz) &&
		Aeq(m.Yx, a.Yx) && Aeq(m.Yy, a.Yy) && Aeq(m.Yz, a.Yz) &&
		Aeq(m.Zx, a.Zx) && Aeq(m.Zy, a.Zy) && Aeq(m.Zz, a.Zz)
}

// Set (=) copies a into m, returning m.
func (m *Mat3) Set(a *Mat3) *Mat3 {
	*m = *a
	return m
}

// SetI (=I) sets m to the identity matrix, returning m.
func (m *Mat3) SetI() *Mat3 {
	*m = Mat3I
	return m
}

// SetZ (=0) zeros m, returning m.
func (m *Mat3) SetZ() *Mat3 {
	*m = Mat3{}
	return m
}

// SetDiag sets m to a diagonal matrix with the given entries, returning m.
func (m *Mat3) SetDiag(x, y, z float64) *Mat3 {
	*m = Mat3{Xx: x, Yy: y, Zz: z}
	return m
}

// Transpose sets m to the transpose of a, returning m.
func (m *Mat3) Transpose(a *Mat3) *Mat3 {
	*m = Mat3{
		Xx: a.Xx, Xy: a.Yx, Xz: a.Zx,
		Yx: a.Xy, Yy: a.Yy, Yz: a.Zy,
		Zx: a.Xz, Zy: a.Yz, Zz: a.Zz,
	}
	return m
}

// Add (+) sets m to a+b, returning m.
func (m *Mat3) Add(a, b *Mat3) *Mat3 {
	*m = Mat3{
		Xx: a.Xx + b.Xx, Xy: a.Xy + b.Xy, Xz: a.Xz + b.Xz,
		Yx: a.Yx + b.Yx, Yy: a.Yy + b.Yy, Yz: a.Yz + b.Yz,
		Zx: a.Zx + b.Zx, Zy: a.Zy + b.Zy, Zz: a.Zz + b.Zz,
	}
	return m
}

// Sub (-) sets m to a-b, returning m.
func (m *Mat3) Sub(a, b *Mat3) *Mat3 {
	*m = Mat3{
		Xx: a.Xx - b.Xx, Xy: a.Xy - b.Xy, Xz: a.Xz - b.Xz,
		Yx: a.Yx - b.Yx, Yy: a.Yy - b.Yy, Yz: a.Yz - b.Yz,
		Zx: a.Zx - b.Zx, Zy: a.Zy - b.Zy, Zz: a.Zz - b.Zz,
	}
	return m
}

// Mult sets m to a*b (matrix product), returning m.
func (m *Mat3) Mult(a, b *Mat3) *Mat3 {
	*m = Mat3{
		Xx: a.Xx*b.Xx + a.Xy*b.Yx + a.Xz*b.Zx,
		Xy: a.Xx*b.Xy + a.Xy*b.Yy + a.Xz*b.Zy,
		Xz: a.Xx*b.Xz + a.Xy*b.Yz + a.Xz*b.Zz,

		Yx: a.Yx*b.Xx + a.Yy*b.Yx + a.Yz*b.Zx,
		Yy: a.Yx*b.Xy + a.Yy*b.Yy + a.Yz*b.Zy,
		Yz: a.Yx*b.Xz + a.Yy*b.Yz + a.Yz*b.Zz,

		Zx: a.Zx*b.Xx + a.Zy*b.Yx + a.Zz*b.Zx,
		Zy: a.Zx*b.Xy + a.Zy*b.Yy + a.Zz*b.Zy,
		Zz: a.Zx*b.Xz + a.Zy*b.Yz + a.Zz*b.Zz,
	}
	return m
}

// Scale sets m to a scaled by s, returning m.
func (m *Mat3) Scale(a *Mat3, s float64) *Mat3 {
	*m = Mat3{
		Xx: a.Xx * s, Xy: a.Xy * s, Xz: a.Xz * s,
		Yx: a.Yx * s, Yy: a.Yy * s, Yz: a.Yz * s,
		Zx: a.Zx * s, Zy: a.Zy * s, Zz: a.Zz * s,
	}
	return m
}

// SetSkewSym sets m to the skew-symmetric ("cross product") matrix of v,
// such that m.MultMv(v, x) == v.Cross(v, x) for any x. Used to build
// off-diagonal inertia contributions in the parallel axis theorem.
func (m *Mat3) SetSkewSym(v *Vec3) *Mat3 {
	*m = Mat3{
		Xx: 0, Xy: -v.Z, Xz: v.Y,
		Yx: v.Z, Yy: 0, Yz: -v.X,
		Zx: -v.Y, Zy: v.X, Zz: 0,
	}
	return m
}

// SetQ sets m to the rotation matrix equivalent to quaternion q.
func (m *Mat3) SetQ(q *Quat) *Mat3 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	*m = Mat3{
		Xx: 1 - (yy + zz), Xy: xy - wz, Xz: xz + wy,
		Yx: xy + wz, Yy: 1 - (xx + zz), Yz: yz - wx,
		Zx: xz - wy, Zy: yz + wx, Zz: 1 - (xx + yy),
	}
	return m
}

// Det returns the determinant of m.
func (m *Mat3) Det() float64 {
	return m.Xx*(m.Yy*m.Zz-m.Yz*m.Zy) -
		m.Xy*(m.Yx*m.Zz-m.Yz*m.Zx) +
		m.Xz*(m.Yx*m.Zy-m.Yy*m.Zx)
}

// Inv sets m to the inverse of a, returning m. If a is singular (determinant
// within Epsilon of zero), m is set to the zero matrix.
func (m *Mat3) Inv(a *Mat3) *Mat3 {
	det := a.Det()
	if AeqZ(det) {
		return m.SetZ()
	}
	invDet := 1 / det
	*m = Mat3{
		Xx: (a.Yy*a.Zz - a.Yz*a.Zy) * invDet,
		Xy: (a.Xz*a.Zy - a.Xy*a.Zz) * invDet,
		Xz: (a.Xy*a.Yz - a.Xz*a.Yy) * invDet,

		Yx: (a.Yz*a.Zx - a.Yx*a.Zz) * invDet,
		Yy: (a.Xx*a.Zz - a.Xz*a.Zx) * invDet,
		Yz: (a.Xz*a.Yx - a.Xx*a.Yz) * invDet,

		Zx: (a.Yx*a.Zy - a.Yy*a.Zx) * invDet,
		Zy: (a.Xy*a.Zx - a.Xx*a.Zy) * invDet,
		Zz: (a.Xx*a.Yy - a.Xy*a.Yx) * invDet,
	}
	return m
}

// Trace returns the sum of m's diagonal elements.
func (m *Mat3) Trace() float64 { return m.Xx + m.Yy + m.Zz }
