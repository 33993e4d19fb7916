// Package christoffel computes the single Levi-Civita connection
// coefficient of a 1D metric, Gamma = dg / (2g), by three independent
// strategies (closed form, centered finite difference, forward-mode
// automatic differentiation) so each can cross-check the others.
package christoffel

import (
	"math"

	"gonum.org/v1/gonum/num/dual"

	"github.com/ellipsim/ellipsim/internal/geom"
)

// DefaultStep is the centered-difference step for FiniteDiff.
const DefaultStep = 1e-6

const machEps = 0x1p-52

// Gamma returns dg/(2g). A metric magnitude below machine epsilon yields
// exactly 0 rather than a blown-up quotient; that situation only arises at
// degenerate configurations where the connection genuinely vanishes.
func Gamma(g, dg float64) float64 {
	if math.Abs(g) < machEps {
		return 0
	}
	return dg / (2 * g)
}

// Analytic returns the closed-form coefficient in the eccentric-angle
// chart: (a^2 - b^2) sin(theta) cos(theta) / (a^2 sin^2 theta + b^2 cos^2 theta).
// Identically zero for a circle.
func Analytic(e geom.Ellipse, theta float64) float64 {
	g := e.Metric(theta)
	if math.Abs(g) < machEps {
		return 0
	}
	return (e.A*e.A - e.B*e.B) * math.Sin(theta) * math.Cos(theta) / g
}

// AnalyticPolar returns the coefficient in the true-polar-angle chart via
// the generic dg/(2g) form, using the chart's closed-form metric and its
// finite-difference derivative.
func AnalyticPolar(e geom.Ellipse, phi float64) float64 {
	return Gamma(e.MetricPolar(phi), e.MetricPolarDeriv(phi))
}

// FiniteDiff estimates the coefficient for an arbitrary metric function by
// a centered difference of step h (DefaultStep if h <= 0).
func FiniteDiff(g geom.MetricFunc, angle, h float64) float64 {
	if h <= 0 {
		h = DefaultStep
	}
	dg := (g(angle+h) - g(angle-h)) / (2 * h)
	return Gamma(g(angle), dg)
}

// AutoDiff computes the coefficient for an arbitrary metric function
// evaluated over dual numbers; the derivative is exact to round-off.
func AutoDiff(g geom.DualMetricFunc, angle float64) float64 {
	d := g(dual.Number{Real: angle, Emag: 1})
	return Gamma(d.Real, d.Emag)
}
