package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultA        = 2.0
	DefaultB        = 1.0
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultTheta    = 0.0
	DefaultOmega    = 1.0
	DefaultMass     = 1.0
	DefaultN        = 8
)

type Config struct {
	Model      string          `yaml:"model"`
	Integrator string          `yaml:"integrator"`
	A          float64         `yaml:"a"`
	B          float64         `yaml:"b"`
	Dt         float64         `yaml:"dt"`
	Duration   float64         `yaml:"duration"`
	Seed       int64           `yaml:"seed"`
	Mass       float64         `yaml:"mass"`
	Damping    float64         `yaml:"damping"`
	Coupling   float64         `yaml:"coupling"`
	Gain       float64         `yaml:"gain"`
	Range      float64         `yaml:"range"`
	Cutoff     float64         `yaml:"cutoff"`
	Noise      float64         `yaml:"noise"`
	Particles  int             `yaml:"particles"`
	InitState  InitStateConfig `yaml:"init_state"`
}

type InitStateConfig struct {
	Theta float64 `yaml:"theta"`
	Omega float64 `yaml:"omega"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "geodesic",
		Integrator: "rk4",
		A:          DefaultA,
		B:          DefaultB,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Mass:       DefaultMass,
		Particles:  DefaultN,
		InitState: InitStateConfig{
			Theta: DefaultTheta,
			Omega: DefaultOmega,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MultiParticle reports whether a model simulates an interacting
// collective rather than a single particle.
func MultiParticle(model string) bool {
	switch model {
	case "kuramoto", "attractive", "repulsive", "vicsek":
		return true
	}
	return false
}

// GetInitState builds the initial state vector for the configured model.
// Collective particles start spread evenly in angle, all with the
// configured angular velocity.
func (c *Config) GetInitState() []float64 {
	switch {
	case MultiParticle(c.Model):
		n := c.Particles
		if n <= 0 {
			n = DefaultN
		}
		state := make([]float64, 2*n)
		for i := 0; i < n; i++ {
			state[i] = c.InitState.Theta + 2*math.Pi*float64(i)/float64(n)
			state[n+i] = c.InitState.Omega
		}
		return state
	default:
		return []float64{c.InitState.Theta, c.InitState.Omega}
	}
}

// NumParticles returns how many particles the configured model simulates.
func (c *Config) NumParticles() int {
	if MultiParticle(c.Model) {
		if c.Particles <= 0 {
			return DefaultN
		}
		return c.Particles
	}
	return 1
}
