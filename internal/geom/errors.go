package geom

import "errors"

// Configuration errors. All are fatal to the calling operation: they
// indicate a caller bug, never a recoverable numerical condition.
var (
	// ErrBadAxis indicates a non-finite, non-positive, or misordered semi-axis.
	ErrBadAxis = errors.New("geom: invalid semi-axis")

	// ErrEccentricity indicates a non-physical eccentricity (e >= 1).
	ErrEccentricity = errors.New("geom: eccentricity out of range")

	// ErrBadRadius indicates a non-finite or non-positive particle radius.
	ErrBadRadius = errors.New("geom: invalid particle radius")

	// ErrUnknownMethod indicates an unrecognized arc-length or perimeter method.
	ErrUnknownMethod = errors.New("geom: unknown method")

	// ErrNoConvergence indicates the chart conversion iteration failed.
	ErrNoConvergence = errors.New("geom: chart conversion did not converge")
)
