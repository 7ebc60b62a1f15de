package decay

import (
	"errors"
	"fmt"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-verb/dsp/core"
)

// ErrInvalidBandEdges is returned when band edges are not ascending and positive.
var ErrInvalidBandEdges = errors.New("decay: band edges must be ascending and positive")

const minFFTSize = 16

// BandEnergies splits the power spectrum of x at the given edge frequencies
// and returns len(edgesHz)+1 band energies, lowest band first. x is zero
// padded to a power of two of at least 16 samples. DC and Nyquist bins are
// excluded; a bin exactly on an edge belongs to the lower band.
func BandEnergies(x []float64, sampleRate float64, edgesHz ...float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyIR
	}
	if !(sampleRate > 0) {
		return nil, ErrInvalidSampleRate
	}
	if !sort.Float64sAreSorted(edgesHz) || (len(edgesHz) > 0 && !(edgesHz[0] > 0)) {
		return nil, ErrInvalidBandEdges
	}

	n := max(core.NextPowerOfTwo(len(x)), minFFTSize)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("decay: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	spectrum := make([]complex128, n)
	if err := plan.Forward(spectrum, in); err != nil {
		return nil, fmt.Errorf("decay: forward FFT failed: %w", err)
	}

	bands := make([]float64, len(edgesHz)+1)
	for k := 1; k < n/2; k++ {
		freq := float64(k) * sampleRate / float64(n)
		re, im := real(spectrum[k]), imag(spectrum[k])
		bands[sort.SearchFloat64s(edgesHz, freq)] += re*re + im*im
	}

	return bands, nil
}
