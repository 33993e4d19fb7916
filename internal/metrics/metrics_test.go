package metrics

import (
	"math"
	"testing"

	"github.com/ellipsim/ellipsim/internal/geom"
	"github.com/ellipsim/ellipsim/internal/sim"
)

func mustEllipse(t *testing.T, a, b float64) geom.Ellipse {
	t.Helper()
	e, err := geom.New(a, b)
	if err != nil {
		t.Fatalf("New(%v, %v): %v", a, b, err)
	}
	return e
}

func TestEnergy_MeanOverRun(t *testing.T) {
	shape := mustEllipse(t, 2, 1)
	m := NewEnergy(shape, 2.0)

	if m.Name() != "energy" {
		t.Errorf("Name() = %q", m.Name())
	}

	states := []sim.State{
		{0, 1.0},
		{math.Pi / 2, 0.5},
	}
	want := (shape.KineticEnergy(0, 1.0, 2.0) + shape.KineticEnergy(math.Pi/2, 0.5, 2.0)) / 2

	for i, x := range states {
		m.Observe(x, float64(i))
	}
	if got := m.Value(); math.Abs(got-want) > 1e-13 {
		t.Errorf("Value() = %v, want %v", got, want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("Value() after Reset = %v, want 0", m.Value())
	}
}

func TestEnergy_IgnoresShortStates(t *testing.T) {
	m := NewEnergy(mustEllipse(t, 2, 1), 1.0)
	m.Observe(sim.State{0.5}, 0)
	if m.Value() != 0 {
		t.Errorf("short state should be skipped, got %v", m.Value())
	}
}

type constantEnergy struct{ e float64 }

func (c *constantEnergy) Derive(x sim.State, t float64) sim.State { return x }
func (c *constantEnergy) StateDim() int                           { return 2 }
func (c *constantEnergy) Energy(x sim.State) float64              { return c.e }

func TestEnergyDrift(t *testing.T) {
	dyn := &constantEnergy{e: 2.0}
	m := NewEnergyDrift(dyn)

	m.Observe(sim.State{0, 0}, 0)
	if m.Value() != 0 {
		t.Errorf("drift after first observation = %v, want 0", m.Value())
	}

	dyn.e = 2.2
	m.Observe(sim.State{0, 0}, 1)
	if math.Abs(m.Value()-0.1) > 1e-13 {
		t.Errorf("drift = %v, want 0.1", m.Value())
	}

	// Drift is a running maximum.
	dyn.e = 2.0
	m.Observe(sim.State{0, 0}, 2)
	if math.Abs(m.Value()-0.1) > 1e-13 {
		t.Errorf("drift should keep its maximum, got %v", m.Value())
	}
}

func TestNormDrift_ConservedUnderTransport(t *testing.T) {
	shape := mustEllipse(t, 2, 1)
	m := NewNormDrift(shape)

	// States related by exact parallel transport: v sqrt(g) constant.
	thetas := []float64{0.2, 0.9, 1.7, 2.8}
	norm0 := 1.0 * math.Sqrt(shape.Metric(thetas[0]))
	for i, theta := range thetas {
		v := norm0 / math.Sqrt(shape.Metric(theta))
		m.Observe(sim.State{theta, v}, float64(i))
	}

	if m.Value() > 1e-12 {
		t.Errorf("norm drift on exactly transported states: %e", m.Value())
	}
}

func TestNormDrift_DetectsViolation(t *testing.T) {
	shape := mustEllipse(t, 2, 1)
	m := NewNormDrift(shape)

	m.Observe(sim.State{0.2, 1.0}, 0)
	m.Observe(sim.State{1.5, 1.0}, 1) // same thetaDot, different metric

	if m.Value() < 1e-3 {
		t.Errorf("expected measurable drift, got %e", m.Value())
	}
}
