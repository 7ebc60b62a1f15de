package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-verb/dsp/core"
	"github.com/cwbudde/algo-verb/dsp/effects/reverb"
	"github.com/cwbudde/algo-verb/dsp/interp"
)

const (
	defaultIRBitDepth = 24

	// maxAutoTailSeconds caps the automatic tail for very long decays.
	maxAutoTailSeconds = 30.0
)

var errUsage = errors.New("invalid arguments")

type options struct {
	params      reverb.Parameters
	mode        interp.Mode
	processor   core.ProcessorConfig // impulse response rate, frames per Process call
	tailSeconds float64              // negative selects the automatic tail
	bitDepth    int                  // 0 keeps the input depth
	ir          bool
	report      bool
	play        bool
	verbose     bool
	input       string
	output      string
}

// parseFlags parses args into options. Usage and flag errors go to output.
func parseFlags(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("vitalverb", flag.ContinueOnError)
	fs.SetOutput(output)

	opts := options{params: reverb.DefaultParameters()}
	p := &opts.params

	fs.Float64Var(&p.Mix, "mix", p.Mix, "Dry/wet mix, 0 = dry, 1 = wet")
	fs.Float64Var(&p.Size, "size", p.Size, "Room size [0,1]")
	fs.Float64Var(&p.DecayMs, "decay", p.DecayMs, "Decay time to -60 dB in ms [15,64000]")
	fs.Float64Var(&p.PreDelayMs, "predelay", p.PreDelayMs, "Predelay in ms [0,300]")
	fs.Float64Var(&p.ChorusAmount, "chorus", p.ChorusAmount, "Delay modulation depth [0,1]")
	fs.Float64Var(&p.ChorusFreqHz, "chorus-freq", p.ChorusFreqHz, "Delay modulation rate in Hz [0,16]")
	fs.Float64Var(&p.PreLowpassPitch, "pre-lowpass", p.PreLowpassPitch, "Input lowpass cutoff as MIDI note (69 = 440 Hz)")
	fs.Float64Var(&p.PreHighpassPitch, "pre-highpass", p.PreHighpassPitch, "Input highpass cutoff as MIDI note (69 = 440 Hz)")
	fs.Float64Var(&p.LowDampPitch, "low-damp-pitch", p.LowDampPitch, "Low shelf corner as MIDI note")
	fs.Float64Var(&p.HighDampPitch, "high-damp-pitch", p.HighDampPitch, "High shelf corner as MIDI note")
	fs.Float64Var(&p.LowDampDb, "low-damp", p.LowDampDb, "Low shelf gain per pass in dB [-6,0]")
	fs.Float64Var(&p.HighDampDb, "high-damp", p.HighDampDb, "High shelf gain per pass in dB [-6,0]")

	mode := fs.String("interp", interp.PCHIP.String(), "Delay interpolation: pchip, hermite, linear")
	fs.Float64Var(&opts.tailSeconds, "tail", -1, "Tail length in seconds (negative = twice the decay)")
	defaults := core.DefaultProcessorConfig()
	rate := fs.Float64("rate", defaults.SampleRate, "Sample rate in Hz for -ir")
	block := fs.Int("block", defaults.BlockSize, "Frames per Process call")
	fs.IntVar(&opts.bitDepth, "bits", 0, "Output bit depth: 16, 24, 32 (0 = input depth, 24 for -ir)")
	fs.BoolVar(&opts.ir, "ir", false, "Render the impulse response instead of processing a file")
	fs.BoolVar(&opts.report, "report", false, "Print decay metrics of the rendered output")
	fs.BoolVar(&opts.play, "play", false, "Play the processed input on the default audio device")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(output, "Usage: vitalverb [flags] input.wav output.wav\n")
		_, _ = fmt.Fprintf(output, "       vitalverb -ir [flags] output.wav\n")
		_, _ = fmt.Fprintf(output, "       vitalverb -play [flags] input.wav\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	// An impulse response is wet only unless the mix is given explicitly.
	if opts.ir && !isFlagSet(fs, "mix") {
		p.Mix = 1
	}

	var err error
	if opts.mode, err = parseMode(*mode); err != nil {
		return options{}, err
	}
	if !(*rate > 0) || *rate > core.MaxSampleRate || *rate != math.Trunc(*rate) {
		return options{}, fmt.Errorf("sample rate must be a whole number in (0,%g]: %f", core.MaxSampleRate, *rate)
	}
	if *block <= 0 {
		return options{}, fmt.Errorf("block size must be > 0: %d", *block)
	}
	opts.processor = core.ApplyProcessorOptions(core.WithSampleRate(*rate), core.WithBlockSize(*block))
	if err := opts.positional(fs.Args()); err != nil {
		fs.Usage()
		return options{}, err
	}
	if err := opts.validate(); err != nil {
		return options{}, err
	}

	return opts, nil
}

func (o *options) positional(args []string) error {
	switch {
	case o.ir && o.play:
		return fmt.Errorf("%w: -ir and -play are exclusive", errUsage)
	case o.ir, o.play:
		if len(args) != 1 {
			return fmt.Errorf("%w: expected one file, got %d", errUsage, len(args))
		}
		if o.ir {
			o.output = args[0]
		} else {
			o.input = args[0]
		}
	default:
		if len(args) != 2 {
			return fmt.Errorf("%w: expected input and output files, got %d", errUsage, len(args))
		}
		o.input, o.output = args[0], args[1]
	}
	return nil
}

func (o *options) validate() error {
	if err := o.params.Validate(); err != nil {
		return err
	}
	switch o.bitDepth {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("unsupported bit depth: %d", o.bitDepth)
	}
	if math.IsNaN(o.tailSeconds) || math.IsInf(o.tailSeconds, 0) {
		return fmt.Errorf("tail must be finite: %f", o.tailSeconds)
	}
	return nil
}

// tailFrames returns the number of frames rendered after the input.
func (o *options) tailFrames(sampleRate int) int {
	seconds := o.tailSeconds
	if seconds < 0 {
		seconds = min(2*o.params.DecayMs/1000+o.params.PreDelayMs/1000, maxAutoTailSeconds)
	}
	return int(math.Round(seconds * float64(sampleRate)))
}

func parseMode(name string) (interp.Mode, error) {
	for _, m := range []interp.Mode{interp.PCHIP, interp.Hermite, interp.Linear} {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown interpolation %q (use pchip, hermite or linear)", name)
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
