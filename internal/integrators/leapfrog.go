package integrators

import "github.com/ellipsim/ellipsim/internal/sim"

// Leapfrog is a kick-drift-kick scheme for states laid out as
// [positions..., velocities...]. Symplectic on separable systems, which
// keeps long geodesic runs from drifting in energy; the parallel-transport
// ODE is integrated elsewhere with RK4 since it is not separable.
type Leapfrog struct {
	scratch sim.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(dyn sim.System, x sim.State, t, dt float64) sim.State {
	n := len(x)
	half := n / 2

	if len(l.scratch) != n {
		l.scratch = make(sim.State, n)
	}

	result := make(sim.State, n)
	dx := dyn.Derive(x, t)
	halfDt := dt * 0.5

	for i := 0; i < half; i++ {
		l.scratch[half+i] = x[half+i] + dx[half+i]*halfDt
	}

	for i := 0; i < half; i++ {
		result[i] = x[i] + l.scratch[half+i]*dt
		l.scratch[i] = result[i]
	}

	dxNew := dyn.Derive(l.scratch, t+dt)

	for i := 0; i < half; i++ {
		result[half+i] = l.scratch[half+i] + dxNew[half+i]*halfDt
	}

	return result
}
