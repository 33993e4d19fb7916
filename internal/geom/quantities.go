package geom

// Per-particle observables derived from (angle, angular velocity, mass) in
// the eccentric chart. These are the quantities the trajectory store
// records per snapshot.

// Velocity returns the Cartesian velocity of a particle with angular
// velocity thetaDot at eccentric angle theta.
func (e Ellipse) Velocity(theta, thetaDot float64) (vx, vy float64) {
	tx, ty := e.Tangent(theta)
	return thetaDot * tx, thetaDot * ty
}

// KineticEnergy returns (1/2) m g(theta) thetaDot^2, the kinetic energy of
// motion along the curve.
func (e Ellipse) KineticEnergy(theta, thetaDot, mass float64) float64 {
	return 0.5 * mass * e.Metric(theta) * thetaDot * thetaDot
}

// Momentum returns the momentum conjugate to theta: m g(theta) thetaDot.
func (e Ellipse) Momentum(theta, thetaDot, mass float64) float64 {
	return mass * e.Metric(theta) * thetaDot
}
