package lin

import "testing"

func TestVec3SetGet(t *testing.T) {
	v := NewVec3S(1, 2, 3)
	x, y, z := v.GetS()
	if x != 1 || y != 2 || z != 3 {
		t.Errorf("expected (1,2,3), got (%v,%v,%v)", x, y, z)
	}
	other := NewVec3()
	if !other.Set(v).Eq(v) {
		t.Errorf("expected Set to copy v, got %v", other)
	}
}

func TestVec3Eq(t *testing.T) {
	a, b := NewVec3S(1, 2, 3), NewVec3S(1, 2, 3)
	if !a.Eq(b) {
		t.Error("expected identical vectors to be Eq")
	}
	if a.Eq(NewVec3S(1, 2, 3.1)) {
		t.Error("expected differing vectors to not be Eq")
	}
}

func TestVec3Aeq(t *testing.T) {
	a := NewVec3S(1, 2, 3)
	b := NewVec3S(1+Epsilon/2, 2, 3)
	if !a.Aeq(b) {
		t.Error("expected vectors within epsilon to be Aeq")
	}
}

func TestVec3AeqZ(t *testing.T) {
	if !NewVec3().AeqZ() {
		t.Error("expected the zero vector to be AeqZ")
	}
	if NewVec3S(1, 0, 0).AeqZ() {
		t.Error("expected a unit vector to not be AeqZ")
	}
}

func TestVec3MinMax(t *testing.T) {
	a, b := NewVec3S(1, -2, 3), NewVec3S(-1, 2, -3)
	if want := (Vec3{-1, -2, -3}); !NewVec3().Min(a, b).Eq(&want) {
		t.Error("expected element-wise minimum")
	}
	if want := (Vec3{1, 2, 3}); !NewVec3().Max(a, b).Eq(&want) {
		t.Error("expected element-wise maximum")
	}
}

func TestVec3Abs(t *testing.T) {
	want := Vec3{1, 2, 3}
	if got := NewVec3().Abs(NewVec3S(-1, 2, -3)); !got.Eq(&want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestVec3Neg(t *testing.T) {
	want := Vec3{-1, 2, -3}
	if got := NewVec3().Neg(NewVec3S(1, -2, 3)); !got.Eq(&want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestVec3AddSub(t *testing.T) {
	a, b := NewVec3S(1, 2, 3), NewVec3S(4, 5, 6)
	if want := (Vec3{5, 7, 9}); !NewVec3().Add(a, b).Eq(&want) {
		t.Error("expected component-wise sum")
	}
	if want := (Vec3{-3, -3, -3}); !NewVec3().Sub(a, b).Eq(&want) {
		t.Error("expected component-wise difference")
	}
}

func TestVec3MultScale(t *testing.T) {
	a, b := NewVec3S(1, 2, 3), NewVec3S(2, 2, 2)
	if want := (Vec3{2, 4, 6}); !NewVec3().Mult(a, b).Eq(&want) {
		t.Error("expected element-wise product")
	}
	if want := (Vec3{2, 4, 6}); !NewVec3().Scale(a, 2).Eq(&want) {
		t.Error("expected scaled vector")
	}
}

func TestVec3Div(t *testing.T) {
	a := NewVec3S(2, 4, 6)
	if want := (Vec3{1, 2, 3}); !NewVec3().Div(a, 2).Eq(&want) {
		t.Error("expected divided vector")
	}
	if got := NewVec3().Div(a, 0); !got.Eq(a) {
		t.Errorf("expected division by zero to leave v unchanged, got %v", got)
	}
}

func TestVec3DotLen(t *testing.T) {
	a := NewVec3S(1, 0, 0)
	b := NewVec3S(0, 1, 0)
	if d := a.Dot(b); d != 0 {
		t.Errorf("expected orthogonal unit vectors to have zero dot product, got %v", d)
	}
	c := NewVec3S(3, 4, 0)
	if l := c.Len(); l != 5 {
		t.Errorf("expected a 3-4-5 triangle vector to have length 5, got %v", l)
	}
	if ls := c.LenSqr(); ls != 25 {
		t.Errorf("expected squared length 25, got %v", ls)
	}
}

func TestVec3Dist(t *testing.T) {
	a, b := NewVec3S(0, 0, 0), NewVec3S(3, 4, 0)
	if d := a.Dist(b); d != 5 {
		t.Errorf("expected distance 5, got %v", d)
	}
	if ds := a.DistSqr(b); ds != 25 {
		t.Errorf("expected squared distance 25, got %v", ds)
	}
}

func TestVec3Unit(t *testing.T) {
	v := NewVec3S(3, 4, 0)
	if u := v.Unit(); !Aeq(u.Len(), 1) {
		t.Errorf("expected unit length, got %v", u.Len())
	}
	zero := NewVec3()
	if got := zero.Unit(); got.Len() != 0 {
		t.Error("expected Unit on the zero vector to leave it unchanged")
	}
}

func TestVec3Cross(t *testing.T) {
	x, y := NewVec3S(1, 0, 0), NewVec3S(0, 1, 0)
	want := Vec3{0, 0, 1}
	if got := NewVec3().Cross(x, y); !got.Eq(&want) {
		t.Errorf("expected x cross y = z, got %v", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a, b := NewVec3S(0, 0, 0), NewVec3S(10, 10, 10)
	want := Vec3{5, 5, 5}
	if got := NewVec3().Lerp(a, b, 0.5); !got.Eq(&want) {
		t.Errorf("expected midpoint, got %v", got)
	}
}

func TestVec3Tangents(t *testing.T) {
	n := NewVec3S(0, 0, 1)
	var p, q Vec3
	n.Tangents(&p, &q)
	if !Aeq(p.Len(), 1) || !Aeq(q.Len(), 1) {
		t.Errorf("expected unit tangents, got %v and %v", p, q)
	}
	if !AeqZ(n.Dot(&p)) || !AeqZ(n.Dot(&q)) || !AeqZ(p.Dot(&q)) {
		t.Errorf("expected n, p, q mutually orthogonal, got n.p=%v n.q=%v p.q=%v", n.Dot(&p), n.Dot(&q), p.Dot(&q))
	}
}

func TestVec3MultMv(t *testing.T) {
	id := &Mat3{Xx: 1, Yy: 1, Zz: 1}
	v := NewVec3S(1, 2, 3)
	if got := NewVec3().MultMv(id, v); !got.Eq(v) {
		t.Errorf("expected identity matrix to leave v unchanged, got %v", got)
	}
}

func TestVec3MultQ(t *testing.T) {
	v := NewVec3S(1, 0, 0)
	// 90 degree rotation about z maps +x to +y.
	q := NewQuatAa(NewVec3S(0, 0, 1), HalfPi)
	got := NewVec3().MultQ(v, q)
	want := Vec3{0, 1, 0}
	if !got.Aeq(&want) {
		t.Errorf("expected 90deg rotation about z to map +x to +y, got %v", got)
	}
}
