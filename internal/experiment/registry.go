package experiment

import (
	"fmt"

	"github.com/ellipsim/ellipsim/internal/config"
	"github.com/ellipsim/ellipsim/internal/dynamics"
	"github.com/ellipsim/ellipsim/internal/geom"
	"github.com/ellipsim/ellipsim/internal/integrators"
	"github.com/ellipsim/ellipsim/internal/metrics"
	"github.com/ellipsim/ellipsim/internal/sim"
)

// Registry maps model and integrator names to factories. Model factories
// receive a validated shape plus the run configuration.
type Registry struct {
	models      map[string]func(shape geom.Ellipse, cfg *config.Config) sim.System
	integrators map[string]func() sim.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func(geom.Ellipse, *config.Config) sim.System),
		integrators: make(map[string]func() sim.Integrator),
	}

	r.models["geodesic"] = func(shape geom.Ellipse, cfg *config.Config) sim.System {
		m := dynamics.NewGeodesic(shape)
		m.Mass = cfg.Mass
		m.Damping = cfg.Damping
		return m
	}
	r.models["curvature"] = func(shape geom.Ellipse, cfg *config.Config) sim.System {
		return dynamics.NewCurvatureDriven(shape, cfg.Gain, cfg.Damping)
	}
	r.models["kuramoto"] = func(shape geom.Ellipse, cfg *config.Config) sim.System {
		m := dynamics.NewKuramoto(shape, cfg.NumParticles(), cfg.Coupling)
		m.Mass = cfg.Mass
		m.Damping = cfg.Damping
		return m
	}
	r.models["attractive"] = func(shape geom.Ellipse, cfg *config.Config) sim.System {
		m := dynamics.NewAttractive(shape, cfg.NumParticles(), cfg.Coupling, cfg.Range)
		m.Mass = cfg.Mass
		m.Damping = cfg.Damping
		return m
	}
	r.models["repulsive"] = func(shape geom.Ellipse, cfg *config.Config) sim.System {
		m := dynamics.NewRepulsive(shape, cfg.NumParticles(), cfg.Coupling, cfg.Cutoff)
		m.Mass = cfg.Mass
		m.Damping = cfg.Damping
		return m
	}
	r.models["vicsek"] = func(shape geom.Ellipse, cfg *config.Config) sim.System {
		m := dynamics.NewVicsek(shape, cfg.NumParticles(), cfg.Coupling, cfg.Noise, cfg.Seed)
		m.Mass = cfg.Mass
		m.Damping = cfg.Damping
		return m
	}

	r.integrators["euler"] = func() sim.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() sim.Integrator { return integrators.NewRK4() }
	r.integrators["leapfrog"] = func() sim.Integrator { return integrators.NewLeapfrog() }
	r.integrators["rk45"] = func() sim.Integrator { return integrators.NewRK45() }

	return r
}

func (r *Registry) GetModel(name string, shape geom.Ellipse, cfg *config.Config) (sim.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(shape, cfg), nil
}

func (r *Registry) GetIntegrator(name string) (sim.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics returns the diagnostics collected for every run: mean
// kinetic energy, conserved-energy drift, and the transport-norm drift for
// single-particle models.
func (r *Registry) DefaultMetrics(model string, shape geom.Ellipse, mass float64, dyn sim.System) []sim.Metric {
	ms := []sim.Metric{
		metrics.NewEnergy(shape, mass),
		metrics.NewEnergyDrift(dyn),
	}
	if !config.MultiParticle(model) {
		ms = append(ms, metrics.NewNormDrift(shape))
	}
	return ms
}
