package physics

import "github.com/silt-engine/impulse3d/lin"

// Fixed solver tuning: SPOOK stiffness/relaxation are not exposed per
// constraint, matching the single global softness the integrator assumes.
const (
	solverIterations = 20
	solverTolerance  = 1e-7
	spookStiffness   = 1e7
	spookRelaxation  = 4.0

	normalForceMax  = 1e6
	restitutionSlop = 0.0
)

// jacobianRow is one body's half of a constraint equation's Jacobian.
type jacobianRow struct {
	Linear  lin.Vec3
	Angular lin.Vec3
}

// equation is a single SPOOK row linking two bodies. Built fresh every
// Simulate call — lambda always starts at zero, there is no warm-starting
// across frames.
type equation struct {
	body1, body2 BodyId
	ja, jb       jacobianRow
	lambda       float64
	minForce     float64
	maxForce     float64
	bias         float64 // B, precomputed once before the iteration sweep
	invC         float64 // 0 signals an infinite-mass pair; skipped on sweep
	eps          float64 // CFM term, subtracted as -eps*lambda each iteration
}

// buildEquation assembles one SPOOK equation from its Jacobian, force
// bounds and position error g, evaluated against the two bodies' current
// (pre-integration) velocities and accumulated forces.
func buildEquation(dt float64, body1, body2 *Body, ja, jb jacobianRow, minForce, maxForce, g float64) equation {
	a := 4 / (dt * (1 + 4*spookRelaxation))
	b := 4 * spookRelaxation / (1 + 4*spookRelaxation)
	eps := 4 / (dt * dt * spookStiffness * (1 + 4*spookRelaxation))

	gdot := ja.Linear.Dot(&body1.velocity) + ja.Angular.Dot(&body1.angularVelocity) +
		jb.Linear.Dot(&body2.velocity) + jb.Angular.Dot(&body2.angularVelocity)

	forceVel1 := lin.NewVec3().Scale(&body1.force, body1.invMass*dt)
	torqueVel1 := lin.NewVec3().Scale(body1.TransformWithInverseInertia(&body1.torque), dt)
	forceVel2 := lin.NewVec3().Scale(&body2.force, body2.invMass*dt)
	torqueVel2 := lin.NewVec3().Scale(body2.TransformWithInverseInertia(&body2.torque), dt)
	forceContribution := ja.Linear.Dot(forceVel1) + ja.Angular.Dot(torqueVel1) +
		jb.Linear.Dot(forceVel2) + jb.Angular.Dot(torqueVel2)

	bias := -a*g - b*gdot - forceContribution

	c := ja.Linear.Dot(&ja.Linear)*body1.invMass + ja.Angular.Dot(body1.TransformWithInverseInertia(&ja.Angular)) +
		jb.Linear.Dot(&jb.Linear)*body2.invMass + jb.Angular.Dot(body2.TransformWithInverseInertia(&jb.Angular))

	invC := 0.0
	if c > lin.Epsilon {
		invC = 1 / (c + eps)
	}

	return equation{
		body1: body1.id, body2: body2.id,
		ja: ja, jb: jb,
		minForce: minForce, maxForce: maxForce,
		bias: bias, invC: invC, eps: eps,
	}
}

// solverBody is per-body scratch state for one resolveEquations sweep: a
// snapshot of velocity/angular velocity taken before solving, plus the
// deltas the sweep accumulates. Never persisted between Simulate calls.
type solverBody struct {
	invMass   float64
	invIWorld lin.Mat3
	v, w      lin.Vec3
	dv, dw    lin.Vec3
}

// resolveEquations runs Sequential Impulses over equations in the order
// given (callers are responsible for ordering: all contact normals, then
// all contact frictions, then joint equations), for at most
// solverIterations passes, stopping early once a full sweep's total
// |lambda delta| falls under solverTolerance. Accumulated velocity deltas
// are written back onto the real bodies reached through bodyOf.
func resolveEquations(equations []equation, bodyOf func(BodyId) *Body) {
	if len(equations) == 0 {
		return
	}

	slots := make(map[BodyId]*solverBody)
	slotFor := func(id BodyId) *solverBody {
		if s, ok := slots[id]; ok {
			return s
		}
		s := &solverBody{}
		if body := bodyOf(id); body != nil {
			s.invMass = body.invMass
			s.invIWorld = body.invIWorld
			s.v.Set(&body.velocity)
			s.w.Set(&body.angularVelocity)
		}
		slots[id] = s
		return s
	}

	for iter := 0; iter < solverIterations; iter++ {
		total := 0.0
		for i := range equations {
			eq := &equations[i]
			if eq.invC == 0 {
				continue
			}
			s1, s2 := slotFor(eq.body1), slotFor(eq.body2)

			v1 := lin.NewVec3().Add(&s1.v, &s1.dv)
			w1 := lin.NewVec3().Add(&s1.w, &s1.dw)
			v2 := lin.NewVec3().Add(&s2.v, &s2.dv)
			w2 := lin.NewVec3().Add(&s2.w, &s2.dw)
			gw := eq.ja.Linear.Dot(v1) + eq.ja.Angular.Dot(w1) + eq.jb.Linear.Dot(v2) + eq.jb.Angular.Dot(w2)

			deltaLambda := eq.invC * (eq.bias - gw - eq.eps*eq.lambda)
			newLambda := lin.Clamp(eq.lambda+deltaLambda, eq.minForce, eq.maxForce)
			deltaLambda = newLambda - eq.lambda
			eq.lambda = newLambda
			total += absf(deltaLambda)

			dv1 := lin.NewVec3().Scale(&eq.ja.Linear, s1.invMass*deltaLambda)
			s1.dv.Add(&s1.dv, dv1)
			dw1 := lin.NewVec3().MultMv(&s1.invIWorld, lin.NewVec3().Scale(&eq.ja.Angular, deltaLambda))
			s1.dw.Add(&s1.dw, dw1)

			dv2 := lin.NewVec3().Scale(&eq.jb.Linear, s2.invMass*deltaLambda)
			s2.dv.Add(&s2.dv, dv2)
			dw2 := lin.NewVec3().MultMv(&s2.invIWorld, lin.NewVec3().Scale(&eq.jb.Angular, deltaLambda))
			s2.dw.Add(&s2.dw, dw2)
		}
		if total < solverTolerance {
			break
		}
	}

	for id, s := range slots {
		body := bodyOf(id)
		if body == nil || !body.movable {
			continue
		}
		body.velocity.Add(&body.velocity, &s.dv)
		body.angularVelocity.Add(&body.angularVelocity, &s.dw)
	}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// contactJacobian builds the Jacobian rows for a contact-normal (or
// friction) axis dir, given the contact's arms r1/r2 to each body's COM.
func contactJacobian(dir, r1, r2 *lin.Vec3) (ja, jb jacobianRow) {
	ja.Linear.Neg(dir)
	ja.Angular.Neg(lin.NewVec3().Cross(r1, dir))
	jb.Linear.Set(dir)
	jb.Angular.Set(lin.NewVec3().Cross(r2, dir))
	return ja, jb
}

// contactEquations builds the normal equation and two friction equations
// for every contact in group. Friction's force bound follows the contact's
// position error rather than its (not-yet-solved) normal impulse: bound =
// combined friction times combined effective mass times |separation|.
func contactEquations(dt float64, group *ContactGroup, bodyOf func(BodyId) *Body) []equation {
	body1, body2 := bodyOf(group.Body1), bodyOf(group.Body2)
	if body1 == nil || body2 == nil {
		return nil
	}

	friction := combinedFriction(body1, body2)
	restitution := combinedRestitution(body1, body2)
	mbar := 0.0
	if body1.invMass+body2.invMass > lin.Epsilon {
		mbar = 1 / (body1.invMass + body2.invMass)
	}

	var normals, frictions []equation
	for _, c := range group.Contacts {
		r1 := lin.NewVec3().Sub(&c.Point1, body1.transform3d.Loc)
		r2 := lin.NewVec3().Sub(&c.Point2, body2.transform3d.Loc)
		n := c.Normal

		ja, jb := contactJacobian(&n, r1, r2)
		g := c.separation()
		eq := buildEquation(dt, body1, body2, ja, jb, 0, normalForceMax, g)

		closing := -(ja.Linear.Dot(&body1.velocity) + ja.Angular.Dot(&body1.angularVelocity) +
			jb.Linear.Dot(&body2.velocity) + jb.Angular.Dot(&body2.angularVelocity))
		if closing > restitutionSlop {
			eq.bias += restitution * closing
		}
		normals = append(normals, eq)

		var t1, t2 lin.Vec3
		n.Tangents(&t1, &t2)
		bound := friction * mbar * absf(g)

		for _, t := range [2]*lin.Vec3{&t1, &t2} {
			jta, jtb := contactJacobian(t, r1, r2)
			frictions = append(frictions, buildEquation(dt, body1, body2, jta, jtb, -bound, bound, 0))
		}
	}

	return append(normals, frictions...)
}
