package geom

import (
	"math"

	"gonum.org/v1/gonum/num/dual"
)

// MetricFunc evaluates a 1D metric coefficient at an angle.
type MetricFunc func(angle float64) float64

// DualMetricFunc evaluates a 1D metric coefficient over dual numbers, so a
// single call yields both the value and its derivative.
type DualMetricFunc func(angle dual.Number) dual.Number

// Metric returns the induced metric coefficient in the eccentric-angle
// chart: g(theta) = a^2 sin^2(theta) + b^2 cos^2(theta). Strictly positive
// for valid shapes.
func (e Ellipse) Metric(theta float64) float64 {
	s, c := math.Sin(theta), math.Cos(theta)
	return e.A*e.A*s*s + e.B*e.B*c*c
}

// MetricDeriv returns the closed-form dg/dtheta = (a^2 - b^2) sin(2 theta).
func (e Ellipse) MetricDeriv(theta float64) float64 {
	return (e.A*e.A - e.B*e.B) * math.Sin(2*theta)
}

// MetricDual is Metric evaluated over dual numbers.
func (e Ellipse) MetricDual(theta dual.Number) dual.Number {
	s := dual.Sin(theta)
	c := dual.Cos(theta)
	return dual.Add(
		dual.Scale(e.A*e.A, dual.Mul(s, s)),
		dual.Scale(e.B*e.B, dual.Mul(c, c)),
	)
}

// Radius returns the polar radius r(phi) = ab / sqrt(a^2 sin^2 phi + b^2 cos^2 phi).
func (e Ellipse) Radius(phi float64) float64 {
	return e.A * e.B / math.Sqrt(e.axisQuad(phi))
}

// RadiusDeriv returns the closed-form dr/dphi.
//
// With u(phi) = a^2 sin^2 phi + b^2 cos^2 phi:
//
//	dr/dphi = -(ab/2) u^(-3/2) (a^2 - b^2) sin(2 phi)
func (e Ellipse) RadiusDeriv(phi float64) float64 {
	u := e.axisQuad(phi)
	return -0.5 * e.A * e.B * (e.A*e.A - e.B*e.B) * math.Sin(2*phi) / (u * math.Sqrt(u))
}

// MetricPolar returns the metric coefficient in the true-polar-angle chart,
// from the polar line element ds^2 = dr^2 + r^2 dphi^2:
//
//	g(phi) = (dr/dphi)^2 + r(phi)^2
func (e Ellipse) MetricPolar(phi float64) float64 {
	r := e.Radius(phi)
	dr := e.RadiusDeriv(phi)
	return dr*dr + r*r
}

// MetricPolarDeriv returns dg/dphi by centered finite difference with step
// h = sqrt(machine epsilon) * max(1, |phi|). No closed form is needed; the
// step choice keeps the estimate stable near phi = 0.
func (e Ellipse) MetricPolarDeriv(phi float64) float64 {
	// On a circle the polar metric is the constant r^2; the derivative is
	// identically zero, not difference noise.
	if e.IsCircle() {
		return 0
	}
	h := math.Sqrt(machEps) * math.Max(1, math.Abs(phi))
	return (e.MetricPolar(phi+h) - e.MetricPolar(phi-h)) / (2 * h)
}

// MetricPolarDual is MetricPolar evaluated over dual numbers. The dr/dphi
// factor uses the closed form so only first-order duals are required.
func (e Ellipse) MetricPolarDual(phi dual.Number) dual.Number {
	s := dual.Sin(phi)
	c := dual.Cos(phi)
	u := dual.Add(
		dual.Scale(e.A*e.A, dual.Mul(s, s)),
		dual.Scale(e.B*e.B, dual.Mul(c, c)),
	)
	r := dual.Scale(e.A*e.B, dual.Inv(dual.Sqrt(u)))
	dr := dual.Scale(
		-0.5*e.A*e.B*(e.A*e.A-e.B*e.B),
		dual.Mul(dual.Sin(dual.Scale(2, phi)), dual.PowReal(u, -1.5)),
	)
	return dual.Add(dual.Mul(dr, dr), dual.Mul(r, r))
}

// axisQuad is the recurring quadratic form a^2 sin^2 + b^2 cos^2, clamped
// against negative round-off so callers can take square roots.
func (e Ellipse) axisQuad(angle float64) float64 {
	s, c := math.Sin(angle), math.Cos(angle)
	return clampNonNeg(e.A*e.A*s*s + e.B*e.B*c*c)
}

// VerifyMetric recomputes g(theta) from centered differences of the
// embedding (x(theta), y(theta)) and returns the absolute discrepancy from
// the closed form. Intended for tests, not runtime use.
func (e Ellipse) VerifyMetric(theta float64) float64 {
	h := math.Sqrt(machEps) * math.Max(1, math.Abs(theta))
	x1, y1 := e.Position(theta - h)
	x2, y2 := e.Position(theta + h)
	dx := (x2 - x1) / (2 * h)
	dy := (y2 - y1) / (2 * h)
	return math.Abs(dx*dx + dy*dy - e.Metric(theta))
}
