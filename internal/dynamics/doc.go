// Package dynamics provides the dynamical systems that run on the ellipse:
// geodesic free motion, curvature-driven forcing, and interacting particle
// collectives (Kuramoto phase coupling, attractive and repulsive pair
// forces, Vicsek velocity alignment).
package dynamics
