package transport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellipsim/ellipsim/internal/geom"
)

func mustEllipse(t *testing.T, a, b float64) geom.Ellipse {
	t.Helper()
	e, err := geom.New(a, b)
	require.NoError(t, err)
	return e
}

// metricNorm is the conserved quantity of the transport ODE.
func metricNorm(e geom.Ellipse, v, theta float64) float64 {
	return math.Abs(v) * math.Sqrt(e.Metric(theta))
}

func TestGeodesicAccel(t *testing.T) {
	c := mustEllipse(t, 1.5, 1.5)
	assert.Zero(t, GeodesicAccel(c, 0.7, 2.0), "circle geodesics have constant angular velocity")

	e := mustEllipse(t, 2, 1)
	// Gamma(pi/4) = 0.6, thetaDot = 1.
	assert.InDelta(t, -0.6, GeodesicAccel(e, math.Pi/4, 1), 1e-13)
	// Quadratic in thetaDot.
	assert.InDelta(t, 4*GeodesicAccel(e, math.Pi/4, 1), GeodesicAccel(e, math.Pi/4, 2), 1e-12)
}

func TestTransport_ZeroDisplacement(t *testing.T) {
	e := mustEllipse(t, 2, 1)

	v := 1.2345
	assert.Equal(t, v, Transport(e, v, 0.7, 0.7))
	assert.Equal(t, v, Transport(e, v, 0.7, 0.7+1e-17))
}

func TestTransport_SmallDisplacement(t *testing.T) {
	e := mustEllipse(t, 2, 1)

	from := 0.9
	delta := 1e-7
	v := Transport(e, 1.0, from, from+delta)

	// One first-order step: relative change is -Gamma * delta.
	assert.InDelta(t, 1.0, v, 1e-6)
	assert.NotEqual(t, 1.0, v)
}

func TestTransport_CircleIdentity(t *testing.T) {
	c := mustEllipse(t, 2, 2)

	// Gamma vanishes identically, so every RK4 stage is zero.
	v := Transport(c, 0.75, 0.3, 5.1)
	assert.Equal(t, 0.75, v)
}

func TestTransport_ConservesMetricNorm(t *testing.T) {
	e := mustEllipse(t, 2, 1)

	cases := []struct{ from, to float64 }{
		{0, math.Pi / 2},
		{0.3, 2.7},
		{1.0, 1.0 + math.Pi},
		{2.0, 0.5}, // backwards
	}
	for _, tc := range cases {
		v0 := 1.5
		v := Transport(e, v0, tc.from, tc.to)
		before := metricNorm(e, v0, tc.from)
		after := metricNorm(e, v, tc.to)
		assert.InDelta(t, before, after, 1e-6*before, "from=%v to=%v", tc.from, tc.to)
	}
}

func TestTransport_MatchesClosedForm(t *testing.T) {
	e := mustEllipse(t, 2, 1)

	// The ODE solution is v(to) = v0 * sqrt(g(from)/g(to)).
	from, to := 0.4, 2.1
	v0 := 2.0
	want := v0 * math.Sqrt(e.Metric(from)/e.Metric(to))
	got := Transport(e, v0, from, to)
	assert.InDelta(t, want, got, 1e-7)
}

// The fixed-step resolution has to be dense enough that a quarter-period
// transport stays within 1e-8 of the exact rescaling and a full loop has
// holonomy below 1e-7. A coarser step grid (0.1 rad per step) misses both.
func TestTransport_StepResolution(t *testing.T) {
	e := mustEllipse(t, 2, 1)

	v0 := 1.5
	want := v0 * math.Sqrt(e.Metric(0)/e.Metric(math.Pi/2))
	got := Transport(e, v0, 0, math.Pi/2)
	assert.InDelta(t, want, got, 1e-8)

	before := metricNorm(e, v0, 0)
	after := metricNorm(e, got, math.Pi/2)
	assert.InDelta(t, before, after, 1e-8*before)

	assert.Less(t, math.Abs(Holonomy(e, 0, math.Pi, 2*math.Pi)), 1e-7)
}

func TestTransportPolar_ConservesMetricNorm(t *testing.T) {
	e := mustEllipse(t, 2, 1)

	from, to := 0.2, 1.9
	v0 := 1.0
	v := TransportPolar(e, v0, from, to)

	before := math.Abs(v0) * math.Sqrt(e.MetricPolar(from))
	after := math.Abs(v) * math.Sqrt(e.MetricPolar(to))
	assert.InDelta(t, before, after, 1e-5*before)
}

func TestTransportPath_ChainsPairwise(t *testing.T) {
	e := mustEllipse(t, 2, 1)

	v0 := 1.0
	direct := Transport(e, v0, 0.2, 2.6)
	chained := TransportPath(e, v0, 0.2, 1.0, 1.8, 2.6)
	assert.InDelta(t, direct, chained, 1e-8)

	// Fewer than two waypoints is the identity.
	assert.Equal(t, v0, TransportPath(e, v0))
	assert.Equal(t, v0, TransportPath(e, v0, 1.3))
}

func TestTransportCartesian(t *testing.T) {
	e := mustEllipse(t, 2, 1)

	from, to := 0.5, 2.0
	thetaDot := 0.8
	vx, vy := e.Velocity(from, thetaDot)

	gx, gy := TransportCartesian(e, vx, vy, from, to)

	want := Transport(e, thetaDot, from, to)
	wx, wy := e.Velocity(to, want)
	assert.InDelta(t, wx, gx, 1e-9)
	assert.InDelta(t, wy, gy, 1e-9)
}

func TestTransportCartesian_ZeroVector(t *testing.T) {
	e := mustEllipse(t, 2, 1)

	vx, vy := TransportCartesian(e, 0, 0, 0.5, 2.0)
	assert.Zero(t, vx)
	assert.Zero(t, vy)
}

func TestTransportCartesian_NormalComponentDiscarded(t *testing.T) {
	e := mustEllipse(t, 2, 1)

	// A vector orthogonal to the tangent projects to zero.
	tx, ty := e.Tangent(0.5)
	vx, vy := TransportCartesian(e, -ty, tx, 0.5, 2.0)
	assert.InDelta(t, 0, vx, 1e-12)
	assert.InDelta(t, 0, vy, 1e-12)
}

func TestHolonomy_FullLoopIsZero(t *testing.T) {
	e := mustEllipse(t, 2, 1)

	got := Holonomy(e, 0, math.Pi/2, math.Pi, 3*math.Pi/2, 2*math.Pi)
	assert.InDelta(t, 0, got, 1e-6)

	// A single-segment loop too.
	got = Holonomy(e, 0.7, 0.7+2*math.Pi)
	assert.InDelta(t, 0, got, 1e-6)
}

func TestHolonomy_OpenPathNonZero(t *testing.T) {
	e := mustEllipse(t, 2, 1)

	// An open path between angles with different metric values must
	// rescale the velocity.
	got := Holonomy(e, 0, math.Pi/2)
	assert.Greater(t, math.Abs(got), 1e-3)
}
