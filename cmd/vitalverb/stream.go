package main

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-verb/dsp/effects/reverb"
)

// bytesPerFrame is one stereo float32 frame.
const bytesPerFrame = 2 * 4

// stream renders the reverb on demand as interleaved little-endian float32
// frames: the input, then tail frames of silence through the reverb.
type stream struct {
	rev         *reverb.Reverb
	left, right []float64
	total       int
	pos         int

	inL, inR    []float64
	outL, outR  []float64
	interleaved []float64
}

func newStream(rev *reverb.Reverb, left, right []float64, tail int) *stream {
	return &stream{
		rev:         rev,
		left:        left,
		right:       right,
		total:       len(left) + tail,
		inL:         make([]float64, reverb.MaxBlockSize),
		inR:         make([]float64, reverb.MaxBlockSize),
		outL:        make([]float64, reverb.MaxBlockSize),
		outR:        make([]float64, reverb.MaxBlockSize),
		interleaved: make([]float64, 2*reverb.MaxBlockSize),
	}
}

// Read fills p with whole frames. It returns io.EOF once the tail is done.
func (s *stream) Read(p []byte) (int, error) {
	if s.pos >= s.total {
		return 0, io.EOF
	}
	if len(p) < bytesPerFrame {
		return 0, io.ErrShortBuffer
	}

	n := 0
	for len(p)-n >= bytesPerFrame && s.pos < s.total {
		frames := min((len(p)-n)/bytesPerFrame, reverb.MaxBlockSize, s.total-s.pos)
		inL, inR := s.fill(frames)
		outL, outR := s.outL[:frames], s.outR[:frames]
		s.rev.Process(inL, inR, outL, outR)

		samples := s.interleaved[:2*frames]
		f64.Interleave2(samples, outL, outR)
		for _, v := range samples {
			binary.LittleEndian.PutUint32(p[n:], math.Float32bits(float32(v)))
			n += 4
		}
		s.pos += frames
	}

	return n, nil
}

// fill loads the next input frames, zero past the end of the input.
func (s *stream) fill(frames int) ([]float64, []float64) {
	inL, inR := s.inL[:frames], s.inR[:frames]
	clear(inL)
	clear(inR)
	if s.pos < len(s.left) {
		copy(inL, s.left[s.pos:])
		copy(inR, s.right[s.pos:])
	}
	return inL, inR
}

// remaining returns the number of frames not yet rendered.
func (s *stream) remaining() int {
	return s.total - s.pos
}
