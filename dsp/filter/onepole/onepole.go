// Package onepole provides a topology-preserving (zero-delay feedback)
// one-pole filter and first-order shelf blends built on it.
//
// Coefficients are computed once per block with [ComputeCoefficient] and
// passed per sample, so a coefficient ramp can be applied without touching
// filter state.
package onepole

import (
	"math"

	"github.com/cwbudde/algo-verb/dsp/core"
)

// ComputeCoefficient maps a digital angular cutoff w (radians per sample) to
// the TPT one-pole coefficient g/(1+g), g = tan(w/2). The mapping saturates:
// w <= 0 yields 0 (the lowpass blocks everything) and w >= π yields 1 (the
// lowpass passes everything).
func ComputeCoefficient(w float64) float64 {
	if !(w > 0) {
		return 0
	}
	if w >= math.Pi {
		return 1
	}

	g := math.Tan(0.5 * w)
	return g / (1 + g)
}

// AngularFrequency converts a cutoff in Hz to radians per sample.
func AngularFrequency(hz, sampleRate float64) float64 {
	return 2 * math.Pi * hz / sampleRate
}

// PitchToAngular converts a MIDI-note pitch to radians per sample.
func PitchToAngular(pitch, sampleRate float64) float64 {
	return AngularFrequency(core.MidiToFrequency(pitch), sampleRate)
}

// Filter holds the integrator state of one TPT one-pole section.
type Filter struct {
	state float64
}

// TickLowpass advances the filter with coefficient c and returns the lowpass output.
// A saturated coefficient (c >= 1) passes x and parks the state on it, since
// the integrator has no stable fixed point there.
func (f *Filter) TickLowpass(x, c float64) float64 {
	if c >= 1 {
		f.state = x
		return x
	}

	v := (x - f.state) * c
	lp := v + f.state
	f.state = core.FlushDenormals(lp + v)

	return lp
}

// TickHighpass advances the filter with coefficient c and returns the highpass output.
func (f *Filter) TickHighpass(x, c float64) float64 {
	return x - f.TickLowpass(x, c)
}

// State returns the integrator state.
func (f *Filter) State() float64 { return f.state }

// Reset clears the integrator state.
func (f *Filter) Reset() { f.state = 0 }

// LowShelf attenuates the band below the lowpass cutoff: x - amount*lp, with
// amount = 1 - DBToLinear(cutDb). amount in [0,1] keeps |H| <= 1.
func LowShelf(x, lp, amount float64) float64 {
	return x - amount*lp
}

// HighShelf attenuates the band above the lowpass cutoff: lp + gain*(x-lp),
// with gain = DBToLinear(cutDb). gain in [0,1] keeps |H| <= 1.
func HighShelf(x, lp, gain float64) float64 {
	return lp + gain*(x-lp)
}

// LowShelfAmount returns the LowShelf blend amount for a cut in dB (<= 0).
func LowShelfAmount(cutDb float64) float64 {
	return 1 - core.DBToLinear(cutDb)
}

// HighShelfGain returns the HighShelf blend gain for a cut in dB (<= 0).
func HighShelfGain(cutDb float64) float64 {
	return core.DBToLinear(cutDb)
}
