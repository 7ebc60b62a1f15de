// Package interp provides interpolation primitives used by delay-based DSP blocks.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite (Catmull-Rom slopes)
//   - [PCHIP4]:   4-point monotone cubic Hermite (Fritsch-Carlson slopes)
//
// PCHIP4 never overshoots the two centre samples, which keeps the magnitude
// and slope of a modulated delay read continuous without ringing. It is the
// default kernel of [delay.Buffer].
//
// The [Mode] enum selects the kernel at construction time.
package interp
