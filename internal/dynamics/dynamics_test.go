package dynamics

import (
	"context"
	"math"
	"testing"

	"github.com/ellipsim/ellipsim/internal/geom"
	"github.com/ellipsim/ellipsim/internal/integrators"
	"github.com/ellipsim/ellipsim/internal/sim"
	"github.com/ellipsim/ellipsim/internal/transport"
)

func mustEllipse(t *testing.T, a, b float64) geom.Ellipse {
	t.Helper()
	e, err := geom.New(a, b)
	if err != nil {
		t.Fatalf("New(%v, %v): %v", a, b, err)
	}
	return e
}

func TestGeodesic_Derive(t *testing.T) {
	shape := mustEllipse(t, 2, 1)
	g := NewGeodesic(shape)

	if g.StateDim() != 2 {
		t.Fatalf("StateDim() = %d, want 2", g.StateDim())
	}

	x := sim.State{math.Pi / 4, 0.8}
	dx := g.Derive(x, 0)

	if dx[0] != 0.8 {
		t.Errorf("d(theta)/dt = %v, want thetaDot 0.8", dx[0])
	}
	want := transport.GeodesicAccel(shape, math.Pi/4, 0.8)
	if math.Abs(dx[1]-want) > 1e-14 {
		t.Errorf("accel = %v, want %v", dx[1], want)
	}
}

func TestGeodesic_DampingOpposesMotion(t *testing.T) {
	shape := mustEllipse(t, 1.5, 1.5)
	g := NewGeodesic(shape)
	g.Damping = 0.3

	// On a circle the only acceleration is the damping term.
	dx := g.Derive(sim.State{0.5, 2.0}, 0)
	if math.Abs(dx[1]+0.6) > 1e-14 {
		t.Errorf("accel = %v, want -0.6", dx[1])
	}
}

func TestGeodesic_EnergyConserved(t *testing.T) {
	shape := mustEllipse(t, 2, 1)
	g := NewGeodesic(shape)

	s := sim.New(g, integrators.NewRK4())
	cfg := sim.DefaultConfig()
	cfg.Dt = 0.001
	cfg.Duration = 5.0

	result, err := s.Run(context.Background(), sim.State{0.3, 1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.EnergyDrift > 1e-8 {
		t.Errorf("geodesic energy drift too high: %e", result.EnergyDrift)
	}
}

func TestGeodesic_CircleConstantVelocity(t *testing.T) {
	shape := mustEllipse(t, 2, 2)
	g := NewGeodesic(shape)

	s := sim.New(g, integrators.NewRK4())
	cfg := sim.DefaultConfig()
	cfg.Dt = 0.01
	cfg.Duration = 3.0

	result, err := s.Run(context.Background(), sim.State{0, 1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	final := result.States[len(result.States)-1]
	if math.Abs(final[1]-1.0) > 1e-12 {
		t.Errorf("circle geodesic changed angular velocity: %v", final[1])
	}
}

func TestGeodesic_Params(t *testing.T) {
	g := NewGeodesic(mustEllipse(t, 2, 1))

	if err := g.SetParam("damping", 0.5); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if g.GetParams()["damping"] != 0.5 {
		t.Errorf("damping = %v, want 0.5", g.GetParams()["damping"])
	}
	if err := g.SetParam("bogus", 1); err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestCurvature(t *testing.T) {
	circle := mustEllipse(t, 2, 2)
	for i := 0; i < 8; i++ {
		theta := 2 * math.Pi * float64(i) / 8
		if got := Curvature(circle, theta); math.Abs(got-0.5) > 1e-14 {
			t.Errorf("circle curvature at %v = %v, want 0.5", theta, got)
		}
	}

	e := mustEllipse(t, 2, 1)
	// kappa = a/b^2 at the major-axis vertex, b/a^2 at the minor.
	if got := Curvature(e, 0); math.Abs(got-2.0) > 1e-13 {
		t.Errorf("curvature at theta=0: %v, want 2", got)
	}
	if got := Curvature(e, math.Pi/2); math.Abs(got-0.25) > 1e-14 {
		t.Errorf("curvature at theta=pi/2: %v, want 0.25", got)
	}
}

func TestCurvatureDriven_Derive(t *testing.T) {
	shape := mustEllipse(t, 2, 1)
	c := NewCurvatureDriven(shape, 2.0, 0.1)

	x := sim.State{0, 0.5}
	dx := c.Derive(x, 0)

	want := 2.0*Curvature(shape, 0) - 0.1*0.5
	if math.Abs(dx[1]-want) > 1e-13 {
		t.Errorf("accel = %v, want %v", dx[1], want)
	}
}

func TestCurvatureDriven_CustomForce(t *testing.T) {
	shape := mustEllipse(t, 2, 1)
	c := NewCurvatureDriven(shape, 1.0, 0)
	c.Force = func(kappa float64) float64 { return -kappa }

	dx := c.Derive(sim.State{0, 0}, 0)
	if math.Abs(dx[1]+Curvature(shape, 0)) > 1e-13 {
		t.Errorf("custom force not applied: accel = %v", dx[1])
	}
}

func TestKuramoto_StateLayout(t *testing.T) {
	shape := mustEllipse(t, 2, 1)
	k := NewKuramoto(shape, 4, 1.0)

	if k.StateDim() != 8 {
		t.Fatalf("StateDim() = %d, want 8", k.StateDim())
	}

	x := sim.State{0, 1, 2, 3, 0.1, 0.2, 0.3, 0.4}
	dx := k.Derive(x, 0)

	for i := 0; i < 4; i++ {
		if dx[i] != x[4+i] {
			t.Errorf("d(theta_%d)/dt = %v, want %v", i, dx[i], x[4+i])
		}
	}
}

func TestKuramoto_NoCouplingIsGeodesic(t *testing.T) {
	shape := mustEllipse(t, 2, 1)
	k := NewKuramoto(shape, 2, 0)

	x := sim.State{0.7, 2.3, 0.5, -0.4}
	dx := k.Derive(x, 0)

	for i, theta := range []float64{0.7, 2.3} {
		v := x[2+i]
		want := transport.GeodesicAccel(shape, theta, v)
		if math.Abs(dx[2+i]-want) > 1e-14 {
			t.Errorf("particle %d accel = %v, want geodesic %v", i, dx[2+i], want)
		}
	}
}

func TestKuramoto_CouplingPullsTogether(t *testing.T) {
	shape := mustEllipse(t, 2, 2)
	k := NewKuramoto(shape, 2, 1.0)

	// Two particles at rest on a circle, a small phase apart: the
	// coupling accelerates each toward the other.
	x := sim.State{0, 0.5, 0, 0}
	dx := k.Derive(x, 0)

	if dx[2] <= 0 {
		t.Errorf("particle 0 should accelerate forward, got %v", dx[2])
	}
	if dx[3] >= 0 {
		t.Errorf("particle 1 should accelerate backward, got %v", dx[3])
	}
	if math.Abs(dx[2]+dx[3]) > 1e-14 {
		t.Errorf("pairwise coupling should be antisymmetric: %v vs %v", dx[2], dx[3])
	}
}

func TestKuramoto_Energy(t *testing.T) {
	shape := mustEllipse(t, 2, 1)
	k := NewKuramoto(shape, 2, 1.0)
	k.Mass = 2.0

	x := sim.State{0.3, 1.1, 0.5, -0.2}
	want := shape.KineticEnergy(0.3, 0.5, 2.0) + shape.KineticEnergy(1.1, -0.2, 2.0)
	if got := k.Energy(x); math.Abs(got-want) > 1e-13 {
		t.Errorf("Energy = %v, want %v", got, want)
	}
}

func TestAttractive_SpringForce(t *testing.T) {
	shape := mustEllipse(t, 2, 2)
	c := NewAttractive(shape, 2, 1.0, 0)

	// Two resting particles on a circle one radian apart: each feels a
	// spring force equal to the separation, toward the other.
	x := sim.State{0, 1, 0, 0}
	dx := c.Derive(x, 0)

	if math.Abs(dx[2]-1) > 1e-14 {
		t.Errorf("particle 0 accel = %v, want 1", dx[2])
	}
	if math.Abs(dx[3]+1) > 1e-14 {
		t.Errorf("particle 1 accel = %v, want -1", dx[3])
	}
}

func TestAttractive_FiniteRange(t *testing.T) {
	shape := mustEllipse(t, 2, 2)
	c := NewAttractive(shape, 2, 1.0, 0.5)

	// Separation exceeds the interaction range: no force at all.
	x := sim.State{0, 1, 0, 0}
	dx := c.Derive(x, 0)

	if dx[2] != 0 || dx[3] != 0 {
		t.Errorf("out-of-range pair should not interact: %v, %v", dx[2], dx[3])
	}
}

func TestRepulsive_PushesApart(t *testing.T) {
	shape := mustEllipse(t, 2, 2)
	c := NewRepulsive(shape, 2, 1.0, 1.0)

	// Separation 0.5 is clamped to the cutoff, so the force magnitude is
	// coupling / cutoff^2 on each, directed apart.
	x := sim.State{0, 0.5, 0, 0}
	dx := c.Derive(x, 0)

	if math.Abs(dx[2]+1) > 1e-14 {
		t.Errorf("particle 0 accel = %v, want -1", dx[2])
	}
	if math.Abs(dx[3]-1) > 1e-14 {
		t.Errorf("particle 1 accel = %v, want 1", dx[3])
	}
}

func TestRepulsive_CoincidentParticlesFinite(t *testing.T) {
	shape := mustEllipse(t, 2, 2)
	c := NewRepulsive(shape, 2, 1.0, 1.0)

	// Exactly coincident angles exert no force rather than a singular one.
	x := sim.State{0.3, 0.3, 0, 0}
	dx := c.Derive(x, 0)

	if dx[2] != 0 || dx[3] != 0 {
		t.Errorf("coincident pair force should vanish: %v, %v", dx[2], dx[3])
	}
}

func TestVicsek_AlignsVelocities(t *testing.T) {
	shape := mustEllipse(t, 2, 2)
	c := NewVicsek(shape, 2, 2.0, 0, 1)

	// Mean velocity is 2; each particle is pulled toward it with gain 2.
	x := sim.State{0, math.Pi, 1, 3}
	dx := c.Derive(x, 0)

	if math.Abs(dx[2]-2) > 1e-14 {
		t.Errorf("particle 0 accel = %v, want 2", dx[2])
	}
	if math.Abs(dx[3]+2) > 1e-14 {
		t.Errorf("particle 1 accel = %v, want -2", dx[3])
	}
}

func TestVicsek_NoiseIsSeeded(t *testing.T) {
	shape := mustEllipse(t, 2, 2)
	x := sim.State{0, math.Pi, 1, 3}

	a := NewVicsek(shape, 2, 1.0, 0.3, 42).Derive(x, 0)
	b := NewVicsek(shape, 2, 1.0, 0.3, 42).Derive(x, 0)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed must reproduce: %v vs %v", a, b)
		}
	}

	quiet := NewVicsek(shape, 2, 1.0, 0, 42).Derive(x, 0)
	if a[2] == quiet[2] && a[3] == quiet[3] {
		t.Error("noise amplitude had no effect on the forces")
	}
}

func TestCollective_CouplingParamRebuildsInteraction(t *testing.T) {
	shape := mustEllipse(t, 2, 2)
	c := NewKuramoto(shape, 2, 1.0)

	x := sim.State{0, 0.5, 0, 0}
	if dx := c.Derive(x, 0); dx[2] <= 0 {
		t.Fatalf("coupled collective should interact, got accel %v", dx[2])
	}

	if err := c.SetParam("coupling", 0); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if dx := c.Derive(x, 0); dx[2] != 0 {
		t.Errorf("decoupled resting particle on a circle should not accelerate, got %v", dx[2])
	}
}
