package reverb

import "math"

// rotator is a unit phasor advanced by complex multiplication. It is
// re-seeded from exact trigonometry every sub-block so the recurrence never
// drifts off the unit circle.
type rotator struct {
	re, im         float64
	stepRe, stepIm float64
}

// begin seeds the phasor at phase and sets the per-sample increment.
func (r *rotator) begin(phase, increment float64) {
	r.im, r.re = math.Sincos(phase)
	r.stepIm, r.stepRe = math.Sincos(increment)
}

func (r *rotator) tick() (re, im float64) {
	r.re, r.im = r.re*r.stepRe-r.im*r.stepIm, r.re*r.stepIm+r.im*r.stepRe
	return r.re, r.im
}

// wrapPhase maps phase into [0, 2π).
func wrapPhase(phase float64) float64 {
	phase = math.Mod(phase, 2*math.Pi)
	if phase < 0 {
		phase += 2 * math.Pi
	}

	return phase
}
