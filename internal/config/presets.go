package config

var Presets = map[string]map[string]*Config{
	"geodesic": {
		"circle": {
			Model: "geodesic", Integrator: "rk4", A: 1.0, B: 1.0, Dt: 0.01, Duration: 20.0,
			Mass: 1.0, InitState: InitStateConfig{Theta: 0.0, Omega: 1.0},
		},
		"gentle": {
			Model: "geodesic", Integrator: "rk4", A: 2.0, B: 1.0, Dt: 0.01, Duration: 20.0,
			Mass: 1.0, InitState: InitStateConfig{Theta: 0.0, Omega: 1.0},
		},
		"eccentric": {
			Model: "geodesic", Integrator: "rk4", A: 5.0, B: 1.0, Dt: 0.005, Duration: 30.0,
			Mass: 1.0, InitState: InitStateConfig{Theta: 0.3, Omega: 2.0},
		},
		"damped": {
			Model: "geodesic", Integrator: "rk4", A: 2.0, B: 1.0, Dt: 0.01, Duration: 30.0,
			Mass: 1.0, Damping: 0.2, InitState: InitStateConfig{Theta: 0.0, Omega: 3.0},
		},
	},
	"curvature": {
		"attract": {
			Model: "curvature", Integrator: "rk4", A: 2.0, B: 1.0, Dt: 0.01, Duration: 30.0,
			Mass: 1.0, Gain: 0.5, Damping: 0.1, InitState: InitStateConfig{Theta: 1.0, Omega: 0.0},
		},
		"repel": {
			Model: "curvature", Integrator: "rk4", A: 2.0, B: 1.0, Dt: 0.01, Duration: 30.0,
			Mass: 1.0, Gain: -0.5, Damping: 0.1, InitState: InitStateConfig{Theta: 1.0, Omega: 0.0},
		},
	},
	"kuramoto": {
		"sync": {
			Model: "kuramoto", Integrator: "rk4", A: 2.0, B: 1.0, Dt: 0.005, Duration: 60.0,
			Mass: 1.0, Particles: 12, Coupling: 1.0, Damping: 0.05,
			InitState: InitStateConfig{Theta: 0.0, Omega: 0.5},
		},
		"weak": {
			Model: "kuramoto", Integrator: "rk4", A: 2.0, B: 1.0, Dt: 0.005, Duration: 60.0,
			Mass: 1.0, Particles: 12, Coupling: 0.1,
			InitState: InitStateConfig{Theta: 0.0, Omega: 0.5},
		},
	},
	"attractive": {
		"cluster": {
			Model: "attractive", Integrator: "rk4", A: 2.0, B: 1.0, Dt: 0.005, Duration: 60.0,
			Mass: 1.0, Particles: 10, Coupling: 0.5, Damping: 0.2,
			InitState: InitStateConfig{Theta: 0.0, Omega: 0.0},
		},
		"shortrange": {
			Model: "attractive", Integrator: "rk4", A: 2.0, B: 1.0, Dt: 0.005, Duration: 60.0,
			Mass: 1.0, Particles: 10, Coupling: 0.5, Range: 1.0, Damping: 0.2,
			InitState: InitStateConfig{Theta: 0.0, Omega: 0.0},
		},
	},
	"repulsive": {
		"spread": {
			Model: "repulsive", Integrator: "rk4", A: 2.0, B: 1.0, Dt: 0.005, Duration: 60.0,
			Mass: 1.0, Particles: 10, Coupling: 0.3, Cutoff: 0.5, Damping: 0.3,
			InitState: InitStateConfig{Theta: 0.0, Omega: 0.0},
		},
	},
	"vicsek": {
		"flock": {
			Model: "vicsek", Integrator: "rk4", A: 2.0, B: 1.0, Dt: 0.005, Duration: 60.0,
			Mass: 1.0, Particles: 12, Coupling: 1.0,
			InitState: InitStateConfig{Theta: 0.0, Omega: 0.5},
		},
		"noisy": {
			Model: "vicsek", Integrator: "rk4", A: 2.0, B: 1.0, Dt: 0.005, Duration: 60.0,
			Mass: 1.0, Particles: 12, Coupling: 1.0, Noise: 0.1, Seed: 7,
			InitState: InitStateConfig{Theta: 0.0, Omega: 0.5},
		},
	},
}

func GetPreset(model, name string) *Config {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	return group[name]
}

func ListPresets(model string) []string {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
