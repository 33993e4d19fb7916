package dynamics

import (
	"fmt"

	"github.com/ellipsim/ellipsim/internal/geom"
	"github.com/ellipsim/ellipsim/internal/sim"
	"github.com/ellipsim/ellipsim/internal/transport"
)

// Collective is N particles on the ellipse, each following the geodesic
// equation plus an injected smooth interaction and linear damping:
//
//	thetaDDot_i = -Gamma(theta_i) thetaDot_i^2
//	              + F_i(theta, thetaDot)
//	              - damping * thetaDot_i
//
// State layout: [theta_1 .. theta_N, thetaDot_1 .. thetaDot_N]. The
// interaction must be smooth in the angles; there is no contact handling
// here.
type Collective struct {
	Shape    geom.Ellipse
	N        int
	Mass     float64
	Coupling float64
	Damping  float64

	interact Interaction
	build    func(coupling float64) Interaction
}

func newCollective(shape geom.Ellipse, n int, coupling float64, build func(float64) Interaction) *Collective {
	return &Collective{
		Shape:    shape,
		N:        n,
		Mass:     1.0,
		Coupling: coupling,
		interact: build(coupling),
		build:    build,
	}
}

// NewKuramoto couples the collective through the sinusoidal phase
// interaction (K/N) sum_j sin(theta_j - theta_i).
func NewKuramoto(shape geom.Ellipse, n int, coupling float64) *Collective {
	return newCollective(shape, n, coupling, func(k float64) Interaction {
		return KuramotoInteraction(k, nil)
	})
}

// NewAttractive couples each pair within rangeParam by a linear spring in
// angle. A non-positive range means unlimited.
func NewAttractive(shape geom.Ellipse, n int, coupling, rangeParam float64) *Collective {
	return newCollective(shape, n, coupling, func(k float64) Interaction {
		return AttractiveInteraction(k, rangeParam)
	})
}

// NewRepulsive pushes each pair apart by an inverse-square law, with the
// separation clamped below cutoff to keep the force bounded.
func NewRepulsive(shape geom.Ellipse, n int, coupling, cutoff float64) *Collective {
	return newCollective(shape, n, coupling, func(k float64) Interaction {
		return RepulsiveInteraction(k, cutoff)
	})
}

// NewVicsek relaxes each angular velocity toward the collective mean, with
// optional seeded noise.
func NewVicsek(shape geom.Ellipse, n int, coupling, noise float64, seed int64) *Collective {
	return newCollective(shape, n, coupling, func(k float64) Interaction {
		return VicsekInteraction(k, noise, seed)
	})
}

func (c *Collective) StateDim() int {
	return 2 * c.N
}

func (c *Collective) Derive(x sim.State, t float64) sim.State {
	n := c.N
	d := make(sim.State, 2*n)

	for i := 0; i < n; i++ {
		d[i] = x[n+i]
	}

	force := c.interact(x[:n], x[n:2*n])
	for i := 0; i < n; i++ {
		accel := transport.GeodesicAccel(c.Shape, x[i], x[n+i])
		accel += force[i]
		accel -= c.Damping * x[n+i]
		d[n+i] = accel
	}

	return d
}

// Energy is the total kinetic energy of the collective.
func (c *Collective) Energy(x sim.State) float64 {
	total := 0.0
	for i := 0; i < c.N; i++ {
		total += c.Shape.KineticEnergy(x[i], x[c.N+i], c.Mass)
	}
	return total
}

func (c *Collective) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":     c.Mass,
		"coupling": c.Coupling,
		"damping":  c.Damping,
	}
}

func (c *Collective) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		c.Mass = value
	case "coupling":
		c.Coupling = value
		c.interact = c.build(value)
	case "damping":
		c.Damping = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
