package experiment

import (
	"context"
	"fmt"

	"github.com/ellipsim/ellipsim/internal/sim"
)

type Config struct {
	Model      string
	Integrator string
	InitState  []float64
	Dt         float64
	Duration   float64
	Seed       int64
}

type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(dyn sim.System, integrator sim.Integrator, ms []sim.Metric) error {
	e.simulator = sim.New(dyn, integrator)
	for _, m := range ms {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	x0 := make(sim.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)

	simCfg := sim.DefaultConfig()
	simCfg.Dt = e.cfg.Dt
	simCfg.Duration = e.cfg.Duration
	simCfg.Seed = e.cfg.Seed

	return e.simulator.Run(ctx, x0, simCfg)
}

// Simulator exposes the underlying simulator for attaching observers.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}
