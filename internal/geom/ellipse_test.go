package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		a, b    float64
		wantErr error
	}{
		{"valid", 2, 1, nil},
		{"circle", 1, 1, nil},
		{"nan a", math.NaN(), 1, ErrBadAxis},
		{"inf a", math.Inf(1), 1, ErrBadAxis},
		{"zero a", 0, 1, ErrBadAxis},
		{"negative b", 2, -1, ErrBadAxis},
		{"nan b", 2, math.NaN(), ErrBadAxis},
		{"b greater than a", 1, 2, ErrBadAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.a, tt.b)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestEccentricity(t *testing.T) {
	e, err := New(2, 1)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(0.75), e.Eccentricity(), 1e-15)

	c, err := Circle(3)
	require.NoError(t, err)
	assert.Zero(t, c.Eccentricity())
	assert.True(t, c.IsCircle())
}

func TestPosition_OnCurve(t *testing.T) {
	e, err := New(2, 1)
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		theta := 2 * math.Pi * float64(i) / 16
		x, y := e.Position(theta)
		// Implicit equation (x/a)^2 + (y/b)^2 = 1.
		lhs := x*x/(e.A*e.A) + y*y/(e.B*e.B)
		assert.InDelta(t, 1.0, lhs, 1e-14, "theta=%v", theta)
	}
}

func TestChartConversion_RoundTrip(t *testing.T) {
	e, err := New(2, 1)
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		theta := 2 * math.Pi * float64(i) / 32
		phi := e.PolarFromEccentric(theta)
		back, err := e.EccentricFromPolar(phi)
		require.NoError(t, err, "theta=%v", theta)

		// Compare curve points rather than raw angles to dodge the wrap.
		x1, y1 := e.Position(theta)
		x2, y2 := e.Position(back)
		assert.InDelta(t, x1, x2, 1e-10, "theta=%v", theta)
		assert.InDelta(t, y1, y2, 1e-10, "theta=%v", theta)
	}
}

func TestChartConversion_AgreeAtAxes(t *testing.T) {
	e, err := New(2, 1)
	require.NoError(t, err)

	// The charts coincide exactly on the symmetry axes.
	for _, angle := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		phi := e.PolarFromEccentric(angle)
		assert.InDelta(t, angle, phi, 1e-12, "axis angle %v", angle)
	}
}

func TestChartConversion_CircleIdentity(t *testing.T) {
	c, err := Circle(1.5)
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		theta := 2 * math.Pi * float64(i) / 8
		assert.InDelta(t, theta, c.PolarFromEccentric(theta), 1e-12)
	}
}

func TestPositionPolar_MatchesEccentric(t *testing.T) {
	e, err := New(2, 1)
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		theta := 2 * math.Pi * float64(i) / 16
		phi := e.PolarFromEccentric(theta)

		x1, y1 := e.Position(theta)
		x2, y2 := e.PositionPolar(phi)
		assert.InDelta(t, x1, x2, 1e-12)
		assert.InDelta(t, y1, y2, 1e-12)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, normalizeAngle(tt.in), 1e-12, "in=%v", tt.in)
	}
}
