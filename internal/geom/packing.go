package geom

import (
	"fmt"
	"math"
)

// Packing conversions relate a particle radius r to the intrinsic packing
// fraction phi = N * 2r / P for N particles on a curve of perimeter P.
// All are pure algebraic inversions of that relation; the perimeter uses
// the Ramanujan closed form.

// PackingFraction returns the fraction of the perimeter occupied by n
// particle footprints of radius r.
func (e Ellipse) PackingFraction(n int, r float64) (float64, error) {
	perim, err := e.Perimeter(Ramanujan)
	if err != nil {
		return 0, err
	}
	return float64(n) * 2 * r / perim, nil
}

// RadiusForPacking returns the particle radius that gives n particles the
// target packing fraction.
func (e Ellipse) RadiusForPacking(n int, packing float64) (float64, error) {
	perim, err := e.Perimeter(Ramanujan)
	if err != nil {
		return 0, err
	}
	return packing * perim / (2 * float64(n)), nil
}

// RadiusForCoverage returns the radius at which maxParticles footprints
// exactly tile the whole perimeter: r = P / (2 * maxParticles).
func (e Ellipse) RadiusForCoverage(maxParticles int) (float64, error) {
	perim, err := e.Perimeter(Ramanujan)
	if err != nil {
		return 0, err
	}
	return perim / (2 * float64(maxParticles)), nil
}

// MaxParticles returns how many particles of radius r fit on the curve
// without exceeding the packing cap: floor(phiMax * P / (2r)). The radius
// must be a positive finite number; anything else would fold an infinite
// quotient into the count.
func (e Ellipse) MaxParticles(r, phiMax float64) (int, error) {
	if !(r > 0) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("%w: r=%v", ErrBadRadius, r)
	}
	perim, err := e.Perimeter(Ramanujan)
	if err != nil {
		return 0, err
	}
	return int(math.Floor(phiMax * perim / (2 * r))), nil
}
