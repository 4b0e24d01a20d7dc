package lin

import "testing"

func TestQuatIdentity(t *testing.T) {
	q := NewQuat()
	if !q.Eq(&QuatI) {
		t.Errorf("expected NewQuat to return the identity quaternion, got %v", q)
	}
}

func TestQuatSetAaZeroAxis(t *testing.T) {
	q := NewQuat().SetAa(&Vec3{}, HalfPi)
	if !q.Eq(&QuatI) {
		t.Errorf("expected a zero-length axis to fall back to identity, got %v", q)
	}
}

func TestQuatSetAaUnitLength(t *testing.T) {
	q := NewQuatAa(NewVec3S(1, 2, 3), 1.3)
	if !Aeq(q.Len(), 1) {
		t.Errorf("expected a rotation quaternion to have unit length, got %v", q.Len())
	}
}

func TestQuatInv(t *testing.T) {
	q := NewQuatAa(NewVec3S(0, 0, 1), HalfPi)
	inv := NewQuat().Inv(q)
	result := NewQuat().Mult(q, inv)
	if !result.Aeq(&QuatI) {
		t.Errorf("expected q * q.Inv() to be identity, got %v", result)
	}
}

func TestQuatMultRotatesVector(t *testing.T) {
	// Two successive 90 degree rotations about z should compose into 180.
	q := NewQuatAa(NewVec3S(0, 0, 1), HalfPi)
	combined := NewQuat().Mult(q, q)
	v := NewVec3().MultQ(NewVec3S(1, 0, 0), combined)
	want := Vec3{-1, 0, 0}
	if !v.Aeq(&want) {
		t.Errorf("expected two 90deg rotations about z to map +x to -x, got %v", v)
	}
}

func TestQuatSetMRoundTrips(t *testing.T) {
	q := NewQuatAa(NewVec3S(1, 1, 0), 0.7)
	m := NewMat3().SetQ(q)
	roundTrip := NewQuat().SetM(m)
	if !roundTrip.Aeq(q) && !roundTrip.Neg(roundTrip).Aeq(q) {
		t.Errorf("expected SetM to recover the quaternion that produced m, got %v want %v", roundTrip, q)
	}
}

func TestQuatNlerpEndpoints(t *testing.T) {
	a := NewQuatAa(NewVec3S(0, 0, 1), 0)
	b := NewQuatAa(NewVec3S(0, 0, 1), HalfPi)
	if got := NewQuat().Nlerp(a, b, 0); !got.Aeq(a) {
		t.Errorf("expected nlerp at 0 to return a, got %v", got)
	}
	if got := NewQuat().Nlerp(a, b, 1); !got.Aeq(b) {
		t.Errorf("expected nlerp at 1 to return b, got %v", got)
	}
}

func TestQuatIntegratePreservesUnitLength(t *testing.T) {
	q := NewQuat()
	w := NewVec3S(0.1, 0.2, 0.3)
	for i := 0; i < 100; i++ {
		q.Integrate(q, w, 1.0/60)
	}
	if !Aeq(q.Len(), 1) {
		t.Errorf("expected repeated integration to stay unit length, got %v", q.Len())
	}
}
