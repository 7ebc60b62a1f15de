package interp

// Mode selects a 4-point fractional interpolation kernel.
type Mode int

const (
	// PCHIP is the monotone piecewise cubic Hermite kernel.
	PCHIP Mode = iota
	// Hermite is the Catmull-Rom cubic Hermite kernel.
	Hermite
	// Linear interpolates between the two centre samples only.
	Linear
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case PCHIP:
		return "pchip"
	case Hermite:
		return "hermite"
	case Linear:
		return "linear"
	default:
		return "unknown"
	}
}

// Valid reports whether m names a known kernel.
func (m Mode) Valid() bool {
	return m >= PCHIP && m <= Linear
}

// Interpolate4 evaluates the selected kernel between x0 (t=0) and x1 (t=1).
func (m Mode) Interpolate4(t, xm1, x0, x1, x2 float64) float64 {
	switch m {
	case Hermite:
		return Hermite4(t, xm1, x0, x1, x2)
	case Linear:
		return Linear2(t, x0, x1)
	default:
		return PCHIP4(t, xm1, x0, x1, x2)
	}
}

// Linear2 interpolates linearly from x0 (t=0) to x1 (t=1).
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// PCHIP4 computes monotone cubic 4-point interpolation from x0 to x1.
//
// The end slopes are the harmonic mean of the adjacent secants, or zero when
// the secants disagree in sign, so the curve stays within [x0, x1] whenever
// the data is locally monotone.
func PCHIP4(t, xm1, x0, x1, x2 float64) float64 {
	d0 := x0 - xm1
	d1 := x1 - x0
	d2 := x2 - x1

	m0 := pchipSlope(d0, d1)
	m1 := pchipSlope(d1, d2)

	c2 := 3*d1 - 2*m0 - m1
	c3 := m0 + m1 - 2*d1
	return ((c3*t+c2)*t+m0)*t + x0
}

func pchipSlope(a, b float64) float64 {
	if a*b <= 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}
