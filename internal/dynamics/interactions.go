package dynamics

import (
	"math"
	"math/rand"
)

// Interaction computes the generalized force on each particle from the
// angles and angular velocities of the whole collective.
type Interaction func(theta, thetaDot []float64) []float64

// KuramotoInteraction is the classic phase coupling. Each particle is
// pulled toward every other with strength proportional to the sine of
// their angular separation, normalized by the population size. A non-nil
// natural slice adds a constant drive per particle.
func KuramotoInteraction(coupling float64, natural []float64) Interaction {
	return func(theta, thetaDot []float64) []float64 {
		n := len(theta)
		force := make([]float64, n)
		for i := 0; i < n; i++ {
			if natural != nil {
				force[i] = natural[i]
			}
		}
		if coupling == 0 {
			return force
		}
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				if j != i {
					sum += math.Sin(theta[j] - theta[i])
				}
			}
			force[i] += coupling / float64(n) * sum
		}
		return force
	}
}

// AttractiveInteraction pulls each pair together with a spring force
// proportional to their angular separation. Pairs further apart than
// rangeParam do not interact; a non-positive range means unlimited.
func AttractiveInteraction(coupling, rangeParam float64) Interaction {
	if rangeParam <= 0 {
		rangeParam = math.Inf(1)
	}
	return func(theta, thetaDot []float64) []float64 {
		n := len(theta)
		force := make([]float64, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				diff := theta[j] - theta[i]
				if math.Abs(diff) < rangeParam {
					force[i] += coupling * diff
				}
			}
		}
		return force
	}
}

// RepulsiveInteraction pushes each pair apart with an inverse-square
// force. The separation is clamped below cutoff so coincident particles
// never produce a singular force.
func RepulsiveInteraction(coupling, cutoff float64) Interaction {
	if cutoff <= 0 {
		cutoff = 1.0
	}
	return func(theta, thetaDot []float64) []float64 {
		n := len(theta)
		force := make([]float64, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				diff := theta[j] - theta[i]
				if diff == 0 {
					continue
				}
				dist := math.Max(math.Abs(diff), cutoff)
				force[i] -= coupling * math.Copysign(1, diff) / (dist * dist)
			}
		}
		return force
	}
}

// VicsekInteraction aligns the collective: each particle is accelerated
// toward the mean angular velocity, plus optional Gaussian noise drawn
// from a seeded source so runs stay reproducible.
func VicsekInteraction(coupling, noise float64, seed int64) Interaction {
	rng := rand.New(rand.NewSource(seed))
	return func(theta, thetaDot []float64) []float64 {
		n := len(thetaDot)
		force := make([]float64, n)
		avg := 0.0
		for _, v := range thetaDot {
			avg += v
		}
		avg /= float64(n)
		for i := 0; i < n; i++ {
			force[i] = coupling * (avg - thetaDot[i])
			if noise > 0 {
				force[i] += noise * rng.NormFloat64()
			}
		}
		return force
	}
}
