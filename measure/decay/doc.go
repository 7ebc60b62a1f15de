// Package decay analyses reverb impulse responses.
//
// The decay curve is the Schroeder backward integral of the squared
// response. Reverberation times are fitted by least squares on a slice of
// that curve and extrapolated to -60 dB:
//
//   - EDT: 0 to -10 dB
//   - T20: -5 to -25 dB
//   - T30: -5 to -35 dB (preferred for RT60)
//
// Spectral balance of a tail segment is measured with [BandEnergies], and
// short-time level with [WindowedRMS].
//
// # Usage
//
//	a := decay.NewAnalyzer(48000)
//	m, err := a.Analyze(left)
//	fmt.Printf("RT60 = %.2f s, EDT = %.2f s\n", m.RT60, m.EDT)
package decay
