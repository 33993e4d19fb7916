package metrics

import (
	"math"

	"github.com/ellipsim/ellipsim/internal/geom"
	"github.com/ellipsim/ellipsim/internal/sim"
)

// Energy tracks the mean kinetic energy (1/2) m g(theta) thetaDot^2 of a
// single-particle run.
type Energy struct {
	name    string
	shape   geom.Ellipse
	mass    float64
	samples int
	total   float64
}

func NewEnergy(shape geom.Ellipse, mass float64) *Energy {
	return &Energy{
		name:  "energy",
		shape: shape,
		mass:  mass,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x sim.State, t float64) {
	if len(x) < 2 {
		return
	}
	e.total += e.shape.KineticEnergy(x[0], x[1], e.mass)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the maximum relative drift of a system's conserved
// energy over a run.
type EnergyDrift struct {
	name    string
	dyn     sim.System
	initial float64
	max     float64
	samples int
}

func NewEnergyDrift(dyn sim.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x sim.State, t float64) {
	h, ok := e.dyn.(sim.Hamiltonian)
	if !ok {
		return
	}

	energy := h.Energy(x)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.max = math.Max(e.max, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.max
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.samples = 0
}
