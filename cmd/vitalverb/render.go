package main

import (
	"github.com/cwbudde/algo-verb/dsp/effects/reverb"
)

// render returns the processed input followed by tail frames of reverb tail,
// handing the reverb blockSize frames per call like a host would.
func render(rev *reverb.Reverb, left, right []float64, tail, blockSize int, progress *progressTracker) ([]float64, []float64) {
	total := len(left) + tail
	outL := make([]float64, total)
	outR := make([]float64, total)
	copy(outL, left)
	copy(outR, right)

	for start := 0; start < total; start += blockSize {
		end := min(start+blockSize, total)
		rev.ProcessInPlace(outL[start:end], outR[start:end])
		progress.reportIfNeeded(int64(end))
	}

	return outL, outR
}

// impulse returns a stereo unit impulse of the given length.
func impulse(frames int) ([]float64, []float64) {
	left := make([]float64, frames)
	right := make([]float64, frames)
	if frames > 0 {
		left[0] = 1
		right[0] = 1
	}
	return left, right
}
