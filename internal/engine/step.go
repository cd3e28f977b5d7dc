package engine

import "time"

// Step ticks e n times by dt, standing in for a host scheduler.
func Step(e *Engine, n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		e.Tick(dt)
	}
}

// RunFor ticks e by dt until total simulated time has elapsed and returns the
// number of ticks. A partial last step is taken at the remaining duration.
func RunFor(e *Engine, total, dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	n := 0
	for total > 0 {
		step := min(dt, total)
		e.Tick(step)
		total -= step
		n++
	}
	return n
}
