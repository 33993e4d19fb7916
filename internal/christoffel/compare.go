package christoffel

import (
	"math"

	"github.com/ellipsim/ellipsim/internal/geom"
)

// Comparison holds the three independent evaluations of the connection
// coefficient at one point. It is a diagnostic, not an error: disagreement
// beyond tolerance is for test suites (and the gamma CLI command) to judge.
type Comparison struct {
	Angle      float64
	Analytic   float64
	FiniteDiff float64
	AutoDiff   float64
}

// SpreadFD is |analytic - finite difference|.
func (c Comparison) SpreadFD() float64 { return math.Abs(c.Analytic - c.FiniteDiff) }

// SpreadAD is |analytic - autodiff|.
func (c Comparison) SpreadAD() float64 { return math.Abs(c.Analytic - c.AutoDiff) }

// MaxSpread is the largest pairwise disagreement.
func (c Comparison) MaxSpread() float64 {
	return math.Max(c.SpreadFD(), math.Max(c.SpreadAD(), math.Abs(c.FiniteDiff-c.AutoDiff)))
}

// Agrees reports whether all pairwise spreads are within tol.
func (c Comparison) Agrees(tol float64) bool { return c.MaxSpread() < tol }

// Compare evaluates all three strategies in the eccentric-angle chart.
func Compare(e geom.Ellipse, theta float64) Comparison {
	return Comparison{
		Angle:      theta,
		Analytic:   Analytic(e, theta),
		FiniteDiff: FiniteDiff(e.Metric, theta, DefaultStep),
		AutoDiff:   AutoDiff(e.MetricDual, theta),
	}
}

// ComparePolar evaluates all three strategies in the true-polar-angle chart.
func ComparePolar(e geom.Ellipse, phi float64) Comparison {
	return Comparison{
		Angle:      phi,
		Analytic:   AnalyticPolar(e, phi),
		FiniteDiff: FiniteDiff(e.MetricPolar, phi, DefaultStep),
		AutoDiff:   AutoDiff(e.MetricPolarDual, phi),
	}
}
