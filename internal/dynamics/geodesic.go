package dynamics

import (
	"fmt"

	"github.com/ellipsim/ellipsim/internal/geom"
	"github.com/ellipsim/ellipsim/internal/sim"
	"github.com/ellipsim/ellipsim/internal/transport"
)

// Geodesic is a single particle in free motion on the ellipse. State is
// [theta, thetaDot] in the eccentric chart; the equation of motion is the
// geodesic equation thetaDDot = -Gamma(theta) thetaDot^2, plus optional
// linear damping.
type Geodesic struct {
	Shape   geom.Ellipse
	Mass    float64
	Damping float64
}

func NewGeodesic(shape geom.Ellipse) *Geodesic {
	return &Geodesic{
		Shape: shape,
		Mass:  1.0,
	}
}

func (g *Geodesic) StateDim() int {
	return 2
}

func (g *Geodesic) Derive(x sim.State, t float64) sim.State {
	theta := x[0]
	v := x[1]
	accel := transport.GeodesicAccel(g.Shape, theta, v) - g.Damping*v
	return sim.State{v, accel}
}

// Energy is the kinetic energy (1/2) m g(theta) thetaDot^2. Exactly
// conserved by the undamped geodesic flow.
func (g *Geodesic) Energy(x sim.State) float64 {
	return g.Shape.KineticEnergy(x[0], x[1], g.Mass)
}

func (g *Geodesic) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":    g.Mass,
		"damping": g.Damping,
	}
}

func (g *Geodesic) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		g.Mass = value
	case "damping":
		g.Damping = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
