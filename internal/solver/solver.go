package solver

import (
	"time"
)

// Func returns a signed quantity at time t whose zero crossings we want,
// e.g. a body's angular distance past a sign cusp.
type Func func(t time.Time) float64

// Direction describes which way the function must cross zero.
type Direction int

const (
	// CrossingUp means the value is increasing through zero.
	CrossingUp Direction = iota
	// CrossingDown means the value is decreasing through zero.
	CrossingDown
	// CrossingAny accepts a sign change either way.
	CrossingAny
)

// Result holds the output of a crossing search.
type Result struct {
	Time time.Time // approximate time of the crossing
	Up   bool      // true if the value was increasing through zero
	OK   bool      // true if a crossing was found
}

// FindCrossing searches [start, end] for the first time f crosses zero in
// the given direction. It samples the interval at steps points, then
// bisects the first bracket found down to tol.
//
// Sampling must be fine enough that f changes sign at most once between
// samples, and f must be continuous inside a bracket; a wrapped angle that
// jumps by 360° produces a spurious bracket, which bisect rejects.
func FindCrossing(f Func, start, end time.Time, dir Direction, steps int, tol time.Duration) Result {
	if !start.Before(end) {
		return Result{OK: false}
	}
	if steps < 2 {
		steps = 2
	}

	interval := end.Sub(start) / time.Duration(steps-1)

	var (
		prevT = start
		prevV = f(prevT)
	)

	for i := 1; i < steps; i++ {
		t := start.Add(time.Duration(i) * interval)
		if i == steps-1 {
			t = end
		}
		v := f(t)

		if hasCrossing(prevV, v, dir) {
			if res := bisect(f, prevT, t, dir, tol); res.OK {
				return res
			}
		}

		prevT, prevV = t, v
	}

	return Result{OK: false}
}

func hasCrossing(a1, a2 float64, dir Direction) bool {
	switch dir {
	case CrossingUp:
		return a1 < 0 && a2 >= 0
	case CrossingDown:
		return a1 > 0 && a2 <= 0
	default:
		return (a1 < 0 && a2 >= 0) || (a1 > 0 && a2 <= 0)
	}
}

func bisect(f Func, a, b time.Time, dir Direction, tol time.Duration) Result {
	var (
		valA = f(a)
		valB = f(b)
	)

	if !hasCrossing(valA, valB, dir) {
		return Result{OK: false}
	}
	up := valA < valB

	for b.Sub(a) > tol {
		mid := a.Add(b.Sub(a) / 2)
		valM := f(mid)

		if hasCrossing(valA, valM, dir) {
			b = mid
			valB = valM
		} else {
			a = mid
			valA = valM
		}
	}

	// A bracket that collapsed around a discontinuity rather than a root
	// still shows a large jump.
	const maxJump = 90.0
	if d := valB - valA; d > maxJump || d < -maxJump {
		return Result{OK: false}
	}

	return Result{
		Time: a.Add(b.Sub(a) / 2),
		Up:   up,
		OK:   true,
	}
}
