// Package reverb implements a modulated 16-line feedback delay network
// reverb with an allpass input diffuser, shelving damping, T60-calibrated
// per-line decay and a smoothed predelay.
//
// The engine processes planar stereo blocks and never allocates after
// construction. Parameters are written from any goroutine through the
// setters (or a shared [Controls]) and are sampled once per internal
// sub-block of at most [MaxBlockSize] frames; every derived value is ramped
// across the sub-block so parameter changes do not click.
//
// Network layout: 4 groups of 4 lanes. Each sample the lines are read at
// chorus-modulated fractional offsets, the diffused input is injected (even
// lanes carry mid, odd lanes side), the 16-vector is scattered by the
// orthogonal matrix (I - J/2)⊗(I - J/2), damped, scaled by the decay gain
// and written back.
package reverb
