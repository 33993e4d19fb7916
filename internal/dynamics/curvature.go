package dynamics

import (
	"fmt"
	"math"

	"github.com/ellipsim/ellipsim/internal/geom"
	"github.com/ellipsim/ellipsim/internal/sim"
)

// Curvature returns the plane-curve curvature of the ellipse at eccentric
// angle theta: kappa = ab / g(theta)^(3/2). Largest at the major-axis
// vertices, where g is smallest.
func Curvature(e geom.Ellipse, theta float64) float64 {
	g := e.Metric(theta)
	return e.A * e.B / (g * math.Sqrt(g))
}

// CurvatureDriven is a particle whose tangential force depends on the
// local curvature: thetaDDot = force(kappa(theta)) - damping * thetaDot.
type CurvatureDriven struct {
	Shape   geom.Ellipse
	Gain    float64
	Damping float64
	Force   func(kappa float64) float64
}

// NewCurvatureDriven builds the model with the default linear force
// gain * kappa. Assign Force to replace it.
func NewCurvatureDriven(shape geom.Ellipse, gain, damping float64) *CurvatureDriven {
	c := &CurvatureDriven{Shape: shape, Gain: gain, Damping: damping}
	c.Force = func(kappa float64) float64 { return c.Gain * kappa }
	return c
}

func (c *CurvatureDriven) StateDim() int {
	return 2
}

func (c *CurvatureDriven) Derive(x sim.State, t float64) sim.State {
	theta := x[0]
	v := x[1]
	accel := c.Force(Curvature(c.Shape, theta)) - c.Damping*v
	return sim.State{v, accel}
}

func (c *CurvatureDriven) GetParams() map[string]float64 {
	return map[string]float64{
		"gain":    c.Gain,
		"damping": c.Damping,
	}
}

func (c *CurvatureDriven) SetParam(name string, value float64) error {
	switch name {
	case "gain":
		c.Gain = value
	case "damping":
		c.Damping = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
