// Package delay provides power-of-two circular delay buffers with fractional
// (interpolated) reads for modulated delay effects.
package delay
