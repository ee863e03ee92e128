package marionette

import "math"

// physicsVars is the state vector of a pendulum model. Rigid pendulums use
// the first two slots, spring pendulums all four.
type physicsVars [4]float32

// derivFunc returns d(vars)/dt at vars.
type derivFunc func(vars physicsVars) physicsVars

// rk4Step advances the first n slots of vars by h with the classic
// fourth-order Runge-Kutta scheme. If any resulting slot is not finite the
// step is discarded, vars keeps its previous value and false is returned.
func rk4Step(vars *physicsVars, n int, h float32, f derivFunc) bool {
	cur := *vars

	var tmp physicsVars
	k1 := f(cur)
	for i := 0; i < n; i++ {
		tmp[i] = cur[i] + h*k1[i]/2
	}
	k2 := f(tmp)
	for i := 0; i < n; i++ {
		tmp[i] = cur[i] + h*k2[i]/2
	}
	k3 := f(tmp)
	for i := 0; i < n; i++ {
		tmp[i] = cur[i] + h*k3[i]
	}
	k4 := f(tmp)

	next := cur
	for i := 0; i < n; i++ {
		next[i] = cur[i] + h*(k1[i]+2*k2[i]+2*k3[i]+k4[i])/6
		if !isFinite(next[i]) {
			return false
		}
	}
	*vars = next
	return true
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
