package geom

import (
	"fmt"
	"math"
)

// machEps is the double-precision machine epsilon.
const machEps = 0x1p-52

// Ellipse is an ellipse with semi-axes A >= B > 0, centered at the origin
// and axis-aligned. The zero value is not usable; construct with New.
type Ellipse struct {
	A float64
	B float64
}

// New validates the semi-axes and returns the shape. Non-finite or
// non-positive axes, or B > A, are configuration errors.
func New(a, b float64) (Ellipse, error) {
	if math.IsNaN(a) || math.IsInf(a, 0) || a <= 0 {
		return Ellipse{}, fmt.Errorf("%w: a=%v", ErrBadAxis, a)
	}
	if math.IsNaN(b) || math.IsInf(b, 0) || b <= 0 {
		return Ellipse{}, fmt.Errorf("%w: b=%v", ErrBadAxis, b)
	}
	if b > a {
		return Ellipse{}, fmt.Errorf("%w: a=%v < b=%v", ErrBadAxis, a, b)
	}
	e := Ellipse{A: a, B: b}
	if ecc := e.Eccentricity(); ecc >= 1 {
		return Ellipse{}, fmt.Errorf("%w: e=%v (a=%v, b=%v)", ErrEccentricity, ecc, a, b)
	}
	return e, nil
}

// Circle returns the degenerate a == b ellipse.
func Circle(r float64) (Ellipse, error) {
	return New(r, r)
}

// Eccentricity returns sqrt(1 - (b/a)^2), in [0, 1) for valid shapes.
func (e Ellipse) Eccentricity() float64 {
	ratio := e.B / e.A
	return math.Sqrt(clampNonNeg(1 - ratio*ratio))
}

// IsCircle reports whether the two semi-axes coincide.
func (e Ellipse) IsCircle() bool { return e.A == e.B }

// Position returns the Cartesian embedding of the eccentric angle theta:
// (a cos theta, b sin theta).
func (e Ellipse) Position(theta float64) (x, y float64) {
	return e.A * math.Cos(theta), e.B * math.Sin(theta)
}

// Tangent returns the (unnormalized) tangent vector d/dtheta of the
// embedding at the eccentric angle theta.
func (e Ellipse) Tangent(theta float64) (tx, ty float64) {
	return -e.A * math.Sin(theta), e.B * math.Cos(theta)
}

// PositionPolar returns the Cartesian point at true polar angle phi,
// (r(phi) cos phi, r(phi) sin phi).
func (e Ellipse) PositionPolar(phi float64) (x, y float64) {
	r := e.Radius(phi)
	return r * math.Cos(phi), r * math.Sin(phi)
}

// PolarFromEccentric converts an eccentric angle to the true polar angle of
// the same curve point. This direction has a closed form.
func (e Ellipse) PolarFromEccentric(theta float64) float64 {
	return normalizeAngle(math.Atan2(e.B*math.Sin(theta), e.A*math.Cos(theta)))
}

// EccentricFromPolar converts a true polar angle to the eccentric angle of
// the same curve point by Newton iteration on
//
//	f(theta) = b sin(theta) cos(phi) - a cos(theta) sin(phi) = 0
//
// starting from theta = phi. The two charts agree at the axes and never
// drift apart by more than pi/2, so the iteration stays on the correct
// branch. Fails if the residual does not fall below tolerance.
func (e Ellipse) EccentricFromPolar(phi float64) (float64, error) {
	const (
		maxIter = 50
		tol     = 1e-14
	)
	phi = normalizeAngle(phi)
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	theta := phi
	for i := 0; i < maxIter; i++ {
		f := e.B*math.Sin(theta)*cosPhi - e.A*math.Cos(theta)*sinPhi
		if math.Abs(f) < tol*e.A {
			return normalizeAngle(theta), nil
		}
		df := e.B*math.Cos(theta)*cosPhi + e.A*math.Sin(theta)*sinPhi
		if math.Abs(df) < machEps {
			break
		}
		theta -= f / df
	}
	return 0, fmt.Errorf("%w: phi=%v (a=%v, b=%v)", ErrNoConvergence, phi, e.A, e.B)
}

// normalizeAngle maps an angle into [0, 2*pi).
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// clampNonNeg zeroes small negative round-off so downstream square roots
// never see a negative argument.
func clampNonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
