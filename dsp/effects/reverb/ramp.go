package reverb

import "math"

// linearRamp moves a control value to its target over one sub-block.
type linearRamp struct {
	current float64
	target  float64
	delta   float64
}

// begin starts a ramp from the current value to target over n samples.
func (r *linearRamp) begin(target float64, n int) {
	r.target = target
	r.delta = (target - r.current) / float64(n)
}

// snap jumps to target without ramping.
func (r *linearRamp) snap(target float64) {
	r.current = target
	r.target = target
	r.delta = 0
}

func (r *linearRamp) tick() float64 {
	r.current += r.delta
	return r.current
}

// finish lands exactly on the target so rounding does not accumulate
// across sub-blocks.
func (r *linearRamp) finish() {
	r.current = r.target
	r.delta = 0
}

func (r *linearRamp) steady() bool { return r.delta == 0 }

// smoothingCoefficient returns the per-sample coefficient of a one-pole
// follower with time constant tau seconds.
func smoothingCoefficient(tau, sampleRate float64) float64 {
	return 1 - math.Exp(-1/(tau*sampleRate))
}
