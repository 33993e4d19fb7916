package metrics

import (
	"math"

	"github.com/ellipsim/ellipsim/internal/geom"
	"github.com/ellipsim/ellipsim/internal/sim"
)

// NormDrift tracks the maximum relative drift of thetaDot * sqrt(g(theta))
// for a single-particle state. Parallel transport conserves this quantity
// exactly, so its drift measures pure integration error.
type NormDrift struct {
	name    string
	shape   geom.Ellipse
	initial float64
	max     float64
	samples int
}

func NewNormDrift(shape geom.Ellipse) *NormDrift {
	return &NormDrift{
		name:  "norm_drift",
		shape: shape,
	}
}

func (n *NormDrift) Name() string { return n.name }

func (n *NormDrift) Observe(x sim.State, t float64) {
	if len(x) < 2 {
		return
	}
	norm := x[1] * math.Sqrt(n.shape.Metric(x[0]))

	if n.samples == 0 {
		n.initial = norm
	}
	n.samples++

	if n.initial != 0 {
		drift := math.Abs(norm-n.initial) / math.Abs(n.initial)
		n.max = math.Max(n.max, drift)
	}
}

func (n *NormDrift) Value() float64 {
	return n.max
}

func (n *NormDrift) Reset() {
	n.initial = 0
	n.max = 0
	n.samples = 0
}
