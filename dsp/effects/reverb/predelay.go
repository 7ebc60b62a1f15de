package reverb

import (
	"math"

	"github.com/cwbudde/algo-verb/dsp/delay"
)

// predelayLine delays the stereo wet signal by a smoothed, fractional length.
type predelayLine struct {
	left, right *delay.Buffer
	length      float64
	target      float64
	follow      float64
}

func newPredelayLine(maxLength, follow float64, opts ...delay.Option) (predelayLine, error) {
	size := int(math.Ceil(maxLength)) + 1

	left, err := delay.New(size, opts...)
	if err != nil {
		return predelayLine{}, err
	}

	right, err := delay.New(size, opts...)
	if err != nil {
		return predelayLine{}, err
	}

	return predelayLine{
		left:   left,
		right:  right,
		length: minDelaySamples,
		target: minDelaySamples,
		follow: follow,
	}, nil
}

func (p *predelayLine) retarget(length float64, snap bool) {
	p.target = max(length, minDelaySamples)
	if snap {
		p.length = p.target
	}
}

func (p *predelayLine) tick(l, r float64) (float64, float64) {
	p.length += (p.target - p.length) * p.follow
	p.left.Push(l)
	p.right.Push(r)

	return p.left.ReadFractional(p.length), p.right.ReadFractional(p.length)
}

func (p *predelayLine) reset() {
	p.left.Reset()
	p.right.Reset()
}
