package physics

import "github.com/silt-engine/impulse3d/lin"

// integratePose advances b's position and orientation by dt using its
// current (already-solved, already-damped) velocity and angular velocity:
// semi-implicit Euler, renormalising orientation afterward to bound drift.
func (b *Body) integratePose(dt float64) {
	if !b.movable {
		return
	}
	b.transform3d.Integrate(b.transform3d, &b.velocity, &b.angularVelocity, dt)
}

// simulateStep runs one full simulation step over bodies and constraints:
// gravity accumulation, contact generation, the SPOOK solve, damping,
// pose integration, derived-state recomputation, and force clearing, in
// that fixed order. It returns the contact groups generated this step
// (used both by the caller's World.Contacts() and, next step, to let the
// caller snapshot matching world-space contact points).
func simulateStep(dt float64, gravity *lin.Vec3, bodies []*Body, constraints []*Constraint, bodyOf func(BodyId) *Body) []ContactGroup {
	for _, b := range bodies {
		b.applyGravity(gravity)
	}

	pairs := broadPhase(bodies)
	groups := narrowPhase(pairs)

	var equations []equation
	for i := range groups {
		equations = append(equations, contactEquations(dt, &groups[i], bodyOf)...)
	}
	equations = append(equations, lowerConstraints(dt, constraints, bodyOf)...)
	resolveEquations(equations, bodyOf)

	for _, b := range bodies {
		b.applyDamping(dt)
		b.integrateVelocities(dt)
		b.integratePose(dt)
		b.updateWorldShapes()
		b.updateInvIWorld()
		b.clearForces()
	}

	return groups
}
