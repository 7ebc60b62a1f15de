package delay

import (
	"fmt"

	"github.com/cwbudde/algo-verb/dsp/core"
	"github.com/cwbudde/algo-verb/dsp/interp"
)

// Stencil is the number of samples a fractional read touches. Callers keep
// fractional offsets at or above Stencil-1 so the newest neighbour exists.
const Stencil = 4

// Option configures a Buffer at construction time.
type Option func(*config) error

type config struct {
	mode interp.Mode
}

// WithMode selects the fractional interpolation kernel (default interp.PCHIP).
func WithMode(mode interp.Mode) Option {
	return func(cfg *config) error {
		if !mode.Valid() {
			return fmt.Errorf("delay interpolation mode is invalid: %d", mode)
		}
		cfg.mode = mode
		return nil
	}
}

// Buffer is a circular delay buffer whose length is a power of two, so index
// wraparound is a mask. All storage is allocated by New.
type Buffer struct {
	data []float64
	mask int
	pos  int
	mode interp.Mode
}

// New returns a buffer that serves fractional reads up to maxDelay samples.
func New(maxDelay int, opts ...Option) (*Buffer, error) {
	if maxDelay <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", maxDelay)
	}

	cfg := config{mode: interp.PCHIP}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	size := core.NextPowerOfTwo(maxDelay + Stencil - 1)

	return &Buffer{
		data: make([]float64, size),
		mask: size - 1,
		mode: cfg.mode,
	}, nil
}

// Len returns the internal buffer length (a power of two).
func (b *Buffer) Len() int {
	return len(b.data)
}

// Mode returns the interpolation kernel.
func (b *Buffer) Mode() interp.Mode {
	return b.mode
}

// MaxDelay returns the largest offset ReadFractional may be called with.
func (b *Buffer) MaxDelay() float64 {
	return float64(len(b.data) - Stencil + 1)
}

// Push writes one sample at the write position and advances it.
func (b *Buffer) Push(x float64) {
	b.data[b.pos] = x
	b.pos = (b.pos + 1) & b.mask
}

// Read returns the sample delay samples behind the newest write (0 = newest).
func (b *Buffer) Read(delay int) float64 {
	return b.data[(b.pos-1-delay)&b.mask]
}

// ReadFractional returns the interpolated value delay samples behind the
// newest write. The stencil spans integer offsets floor(delay)-1 through
// floor(delay)+2, so delay must lie in [1, MaxDelay()]; this is not checked.
func (b *Buffer) ReadFractional(delay float64) float64 {
	p := int(delay)
	t := delay - float64(p)

	i := b.pos - 1 - p
	xm1 := b.data[(i+1)&b.mask]
	x0 := b.data[i&b.mask]
	x1 := b.data[(i-1)&b.mask]
	x2 := b.data[(i-2)&b.mask]

	return b.mode.Interpolate4(t, xm1, x0, x1, x2)
}

// Reset zeroes the buffer and rewinds the write position.
func (b *Buffer) Reset() {
	clear(b.data)
	b.pos = 0
}
