package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"
)

const (
	maxInt16 = 32767
	maxInt24 = 8388607
	maxInt32 = 2147483647

	wavFormatPCM = 1

	// chunkFrames is the number of frames decoded or encoded per call.
	chunkFrames = 8192
)

// signal is a decoded file, always stereo. Mono input is duplicated.
type signal struct {
	left, right []float64
	sampleRate  int
	bitDepth    int
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return maxInt16, nil
	case 24:
		return maxInt24, nil
	case 32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}

// readWAV decodes a mono or stereo integer PCM file into [-1, 1] floats.
func readWAV(path string) (*signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	channels := format.NumChannels
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}

	bitDepth := int(decoder.BitDepth)
	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	sig := &signal{sampleRate: format.SampleRate, bitDepth: bitDepth}
	buf := &audio.IntBuffer{
		Data:   make([]int, chunkFrames*channels),
		Format: format,
	}

	for {
		buf.Data = buf.Data[:cap(buf.Data)]
		n, err := decoder.PCMBuffer(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			break
		}
		sig.left, sig.right = appendDeinterleaved(sig.left, sig.right, buf.Data[:n], channels, 1/scale)
	}

	return sig, nil
}

// appendDeinterleaved converts interleaved integer samples and appends them.
func appendDeinterleaved(left, right []float64, data []int, channels int, invScale float64) ([]float64, []float64) {
	frames := len(data) / channels
	for i := range frames {
		l := float64(data[i*channels]) * invScale
		r := l
		if channels == 2 {
			r = float64(data[i*channels+1]) * invScale
		}
		left = append(left, l)
		right = append(right, r)
	}
	return left, right
}

// writeWAV encodes a stereo signal as integer PCM.
func writeWAV(path string, left, right []float64, sampleRate, bitDepth int) (err error) {
	scale, err := fullScale(bitDepth)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	encoder := wav.NewEncoder(f, sampleRate, bitDepth, 2, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
	interleaved := make([]float64, 2*chunkFrames)
	data := make([]int, 2*chunkFrames)

	for start := 0; start < len(left); start += chunkFrames {
		end := min(start+chunkFrames, len(left))
		n := 2 * (end - start)
		f64.Interleave2(interleaved[:n], left[start:end], right[start:end])
		quantize(data[:n], interleaved[:n], scale)
		buf.Data = data[:n]
		if err := encoder.Write(buf); err != nil {
			return fmt.Errorf("failed to write audio data: %w", err)
		}
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// quantize scales src to rounded integers, clamped to the symmetric
// full-scale range. NaN becomes silence.
func quantize(dst []int, src []float64, scale float64) {
	for i, v := range src {
		v *= scale
		switch {
		case math.IsNaN(v):
			v = 0
		case v > scale:
			v = scale
		case v < -scale:
			v = -scale
		}
		if v >= 0 {
			dst[i] = int(v + 0.5)
		} else {
			dst[i] = int(v - 0.5)
		}
	}
}
