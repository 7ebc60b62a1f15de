// Command vitalverb renders audio through the modulated FDN reverb.
//
// Usage:
//
//	vitalverb [flags] input.wav output.wav
//	vitalverb -ir [flags] output.wav
//	vitalverb -play [flags] input.wav
//
// The output carries the input followed by the reverb tail. Without -tail
// the tail length follows the decay time.
//
// Examples:
//
//	vitalverb -mix 0.3 -decay 2500 drums.wav drums_verb.wav
//	vitalverb -ir -rate 48000 -size 0.7 -report ir.wav
//	vitalverb -play -chorus 0.6 -chorus-freq 1.5 vocal.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cwbudde/algo-verb/dsp/effects/reverb"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	switch {
	case opts.ir:
		return renderImpulseResponse(opts)
	case opts.play:
		return playFile(opts)
	default:
		return renderFile(opts)
	}
}

func newReverb(opts options, sampleRate int) (*reverb.Reverb, error) {
	rev, err := reverb.New(float64(sampleRate),
		reverb.WithParameters(opts.params),
		reverb.WithInterpolation(opts.mode),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reverb: %w", err)
	}
	return rev, nil
}

// renderFile processes opts.input into opts.output.
func renderFile(opts options) error {
	sig, err := readWAV(opts.input)
	if err != nil {
		return err
	}
	if opts.verbose {
		log.Printf("Input: %d Hz, %d-bit, %d frames", sig.sampleRate, sig.bitDepth, len(sig.left))
	}

	rev, err := newReverb(opts, sig.sampleRate)
	if err != nil {
		return err
	}

	tail := opts.tailFrames(sig.sampleRate)
	progress := newProgressTracker(int64(len(sig.left)+tail), opts.verbose || stderrIsTerminal())
	sig.left, sig.right = render(rev, sig.left, sig.right, tail, opts.processor.BlockSize, progress)

	bitDepth := sig.bitDepth
	if opts.bitDepth != 0 {
		bitDepth = opts.bitDepth
	}
	if err := writeWAV(opts.output, sig.left, sig.right, sig.sampleRate, bitDepth); err != nil {
		return err
	}
	if opts.verbose {
		log.Printf("Wrote %d frames (%d tail) to %s", len(sig.left), tail, opts.output)
	}

	if opts.report {
		return writeReport(os.Stdout, sig.sampleRate, sig.left, sig.right)
	}
	return nil
}

// renderImpulseResponse writes the response to a unit impulse.
func renderImpulseResponse(opts options) error {
	sampleRate := int(opts.processor.SampleRate)
	rev, err := newReverb(opts, sampleRate)
	if err != nil {
		return err
	}

	frames := max(opts.tailFrames(sampleRate), 1)
	left, right := impulse(frames)
	progress := newProgressTracker(int64(frames), opts.verbose || stderrIsTerminal())
	left, right = render(rev, left, right, 0, opts.processor.BlockSize, progress)

	bitDepth := opts.bitDepth
	if bitDepth == 0 {
		bitDepth = defaultIRBitDepth
	}
	if err := writeWAV(opts.output, left, right, sampleRate, bitDepth); err != nil {
		return err
	}
	if opts.verbose {
		log.Printf("Wrote %d-frame impulse response to %s", frames, opts.output)
	}

	if opts.report {
		return writeReport(os.Stdout, sampleRate, left, right)
	}
	return nil
}
