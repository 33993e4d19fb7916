package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/dual"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAngles(n int) []float64 {
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = 2 * math.Pi * float64(i) / float64(n)
	}
	return angles
}

func TestMetric_Positive(t *testing.T) {
	shapes := []struct{ a, b float64 }{
		{2, 1}, {1, 1}, {10, 0.5}, {1.001, 1},
	}
	for _, s := range shapes {
		e, err := New(s.a, s.b)
		require.NoError(t, err)

		for _, angle := range sampleAngles(64) {
			assert.Greater(t, e.Metric(angle), 0.0, "a=%v b=%v theta=%v", s.a, s.b, angle)
			assert.Greater(t, e.MetricPolar(angle), 0.0, "a=%v b=%v phi=%v", s.a, s.b, angle)
		}
	}
}

func TestMetric_Circle(t *testing.T) {
	c, err := Circle(2)
	require.NoError(t, err)

	// Both charts reduce to the constant r^2 on a circle, and the polar
	// derivative is exactly zero rather than finite-difference noise.
	for _, angle := range sampleAngles(32) {
		assert.InDelta(t, 4.0, c.Metric(angle), 1e-14)
		assert.InDelta(t, 4.0, c.MetricPolar(angle), 1e-12)
		assert.Zero(t, c.MetricPolarDeriv(angle))
	}
}

func TestMetric_KnownValues(t *testing.T) {
	e, err := New(2, 1)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, e.Metric(0), 1e-15)           // b^2 at theta=0
	assert.InDelta(t, 4.0, e.Metric(math.Pi/2), 1e-14)   // a^2 at theta=pi/2
	assert.InDelta(t, 2.5, e.Metric(math.Pi/4), 1e-14)   // (a^2+b^2)/2
	assert.InDelta(t, 3.0, e.MetricDeriv(math.Pi/4), 1e-13)
}

func TestVerifyMetric_AgainstEmbedding(t *testing.T) {
	e, err := New(2, 1)
	require.NoError(t, err)

	for _, theta := range sampleAngles(32) {
		assert.Less(t, e.VerifyMetric(theta), 1e-5, "theta=%v", theta)
	}
}

func TestMetricDeriv_MatchesFiniteDiff(t *testing.T) {
	e, err := New(3, 1.5)
	require.NoError(t, err)

	h := 1e-6
	for _, theta := range sampleAngles(32) {
		fd := (e.Metric(theta+h) - e.Metric(theta-h)) / (2 * h)
		assert.InDelta(t, fd, e.MetricDeriv(theta), 1e-7, "theta=%v", theta)
	}
}

func TestMetricDual_MatchesClosedForm(t *testing.T) {
	e, err := New(2, 1)
	require.NoError(t, err)

	for _, theta := range sampleAngles(32) {
		d := e.MetricDual(dual.Number{Real: theta, Emag: 1})
		assert.InDelta(t, e.Metric(theta), d.Real, 1e-13, "theta=%v", theta)
		assert.InDelta(t, e.MetricDeriv(theta), d.Emag, 1e-12, "theta=%v", theta)
	}
}

func TestMetricPolarDual_MatchesChart(t *testing.T) {
	e, err := New(2, 1)
	require.NoError(t, err)

	for _, phi := range sampleAngles(32) {
		d := e.MetricPolarDual(dual.Number{Real: phi, Emag: 1})
		assert.InDelta(t, e.MetricPolar(phi), d.Real, 1e-12, "phi=%v", phi)
		// The chart derivative is itself a finite-difference estimate.
		assert.InDelta(t, e.MetricPolarDeriv(phi), d.Emag, 1e-6, "phi=%v", phi)
	}
}

func TestRadius_Bounds(t *testing.T) {
	e, err := New(2, 1)
	require.NoError(t, err)

	for _, phi := range sampleAngles(64) {
		r := e.Radius(phi)
		assert.GreaterOrEqual(t, r, e.B-1e-12, "phi=%v", phi)
		assert.LessOrEqual(t, r, e.A+1e-12, "phi=%v", phi)
	}
	assert.InDelta(t, 2.0, e.Radius(0), 1e-14)
	assert.InDelta(t, 1.0, e.Radius(math.Pi/2), 1e-14)
}

func TestRadiusDeriv_MatchesFiniteDiff(t *testing.T) {
	e, err := New(2, 1)
	require.NoError(t, err)

	h := 1e-6
	for _, phi := range sampleAngles(32) {
		fd := (e.Radius(phi+h) - e.Radius(phi-h)) / (2 * h)
		assert.InDelta(t, fd, e.RadiusDeriv(phi), 1e-7, "phi=%v", phi)
	}
}

func TestQuantities(t *testing.T) {
	e, err := New(2, 1)
	require.NoError(t, err)

	theta, thetaDot, mass := math.Pi/4, 0.5, 2.0
	g := e.Metric(theta)

	assert.InDelta(t, 0.5*mass*g*thetaDot*thetaDot, e.KineticEnergy(theta, thetaDot, mass), 1e-14)
	assert.InDelta(t, mass*g*thetaDot, e.Momentum(theta, thetaDot, mass), 1e-14)

	vx, vy := e.Velocity(theta, thetaDot)
	// |v|^2 = g * thetaDot^2 by construction of the induced metric.
	assert.InDelta(t, g*thetaDot*thetaDot, vx*vx+vy*vy, 1e-13)
}
