package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-verb/dsp/core"
	"github.com/cwbudde/algo-verb/dsp/delay"
	"github.com/cwbudde/algo-verb/dsp/filter/onepole"
	"github.com/cwbudde/algo-verb/dsp/interp"
)

// MaxBlockSize is the largest number of frames processed per parameter
// update. Process splits longer blocks internally.
const MaxBlockSize = 128

const (
	referenceSampleRate = 44100.0

	minDelaySamples = 3.0
	chorusClearance = 8 * minDelaySamples
	maxChorusDrift  = 2500.0 // reference samples at full chorus amount
	t60Amplitude    = 0.001  // -60 dB
	earlyGain       = 0.5

	minSizePower   = -3.0
	sizePowerRange = 4.0
	maxSizeMult    = 2.0 // 2^(minSizePower+sizePowerRange)

	offsetSmoothingSeconds   = 0.01
	predelaySmoothingSeconds = 0.05
)

// Option configures a Reverb at construction time.
type Option func(*config) error

type config struct {
	params    Parameters
	hasParams bool
	controls  *Controls
	mode      interp.Mode
}

// WithParameters sets the initial parameters.
func WithParameters(p Parameters) Option {
	return func(cfg *config) error {
		if err := p.Validate(); err != nil {
			return err
		}
		cfg.params = p
		cfg.hasParams = true
		return nil
	}
}

// WithControls makes the reverb read its parameters from c, so a host can
// share one store between a control goroutine and the audio goroutine. The
// current contents of c are kept unless WithParameters is also given.
func WithControls(c *Controls) Option {
	return func(cfg *config) error {
		if c == nil {
			return fmt.Errorf("reverb controls must not be nil")
		}
		cfg.controls = c
		return nil
	}
}

// WithInterpolation selects the fractional delay kernel (default interp.PCHIP).
func WithInterpolation(mode interp.Mode) Option {
	return func(cfg *config) error {
		if !mode.Valid() {
			return fmt.Errorf("reverb interpolation mode is invalid: %d", mode)
		}
		cfg.mode = mode
		return nil
	}
}

// Reverb is a stereo modulated feedback delay network reverb.
//
// Process must be called from one goroutine at a time. Setters and the
// shared Controls may be used concurrently with Process.
type Reverb struct {
	sampleRate float64
	ratio      float64
	mode       interp.Mode
	controls   *Controls
	primed     bool

	diffuser diffuser
	network  feedbackNetwork
	predelay predelayLine

	preLowpass  [2]onepole.Filter
	preHighpass [2]onepole.Filter
	preLowCoef  linearRamp
	preHighCoef linearRamp

	lowCoef   linearRamp
	highCoef  linearRamp
	lowAmount linearRamp
	highGain  linearRamp

	wet linearRamp
	dry linearRamp

	chorusPhase float64

	wetL [MaxBlockSize]float64
	wetR [MaxBlockSize]float64
}

// New creates a reverb for sampleRate with DefaultParameters unless
// overridden by options.
func New(sampleRate float64, opts ...Option) (*Reverb, error) {
	cfg := config{params: DefaultParameters(), mode: interp.PCHIP}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	r := &Reverb{mode: cfg.mode, controls: cfg.controls}
	switch {
	case r.controls == nil:
		r.controls = NewControls(cfg.params)
	case cfg.hasParams:
		r.controls.Store(cfg.params)
	}

	if err := r.Init(sampleRate); err != nil {
		return nil, err
	}

	return r, nil
}

// Init allocates every buffer for sampleRate and resets the state. It is not
// real-time safe.
func (r *Reverb) Init(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) || sampleRate > core.MaxSampleRate {
		return fmt.Errorf("reverb sample rate must be > 0 and finite: %f", sampleRate)
	}
	if r.controls == nil {
		r.controls = NewControls(DefaultParameters())
	}

	ratio := sampleRate / referenceSampleRate
	maxScale := maxSizeMult * ratio

	var maxDelay float64
	for _, d := range feedbackDelays {
		maxDelay = max(maxDelay, d)
	}

	mode := delay.WithMode(r.mode)

	diff, err := newDiffuser(maxScale, mode)
	if err != nil {
		return fmt.Errorf("reverb diffuser: %w", err)
	}

	network, err := newFeedbackNetwork(maxDelay*maxScale+maxChorusDrift*ratio, smoothingCoefficient(offsetSmoothingSeconds, sampleRate), mode)
	if err != nil {
		return fmt.Errorf("reverb network: %w", err)
	}

	predelay, err := newPredelayLine(MaxPreDelayMs*0.001*sampleRate, smoothingCoefficient(predelaySmoothingSeconds, sampleRate), mode)
	if err != nil {
		return fmt.Errorf("reverb predelay: %w", err)
	}

	r.sampleRate = sampleRate
	r.ratio = ratio
	r.diffuser = diff
	r.network = network
	r.predelay = predelay
	r.Reset()

	return nil
}

// Reset clears every buffer, filter and modulation phase. The next block
// starts from the current parameters without ramping. It does not allocate.
func (r *Reverb) Reset() {
	r.diffuser.reset()
	r.network.reset()
	r.predelay.reset()

	for i := range r.preLowpass {
		r.preLowpass[i].Reset()
		r.preHighpass[i].Reset()
	}

	r.chorusPhase = 0
	r.primed = false
}

// Process renders min(len) frames of planar stereo audio. Outputs may alias
// the inputs.
func (r *Reverb) Process(inL, inR, outL, outR []float64) {
	n := min(len(inL), len(inR), len(outL), len(outR))
	for start := 0; start < n; start += MaxBlockSize {
		end := min(start+MaxBlockSize, n)
		r.processBlock(inL[start:end], inR[start:end], outL[start:end], outR[start:end])
	}
}

// ProcessInPlace renders left and right in place.
func (r *Reverb) ProcessInPlace(left, right []float64) {
	r.Process(left, right, left, right)
}

func (r *Reverb) processBlock(inL, inR, outL, outR []float64) {
	n := len(inL)
	r.beginBlock(r.controls.Load().clamped(), n)

	for i := range n {
		mid := 0.5 * (inL[i] + inR[i])
		side := 0.5 * (inL[i] - inR[i])

		lowCoef := r.preLowCoef.tick()
		highCoef := r.preHighCoef.tick()
		mid = r.preHighpass[0].TickHighpass(r.preLowpass[0].TickLowpass(mid, lowCoef), highCoef)
		side = r.preHighpass[1].TickHighpass(r.preLowpass[1].TickLowpass(side, lowCoef), highCoef)

		mid, side, earlyMid, earlySide := r.diffuser.tick(mid, side)

		d := damping{
			lowCoef:   r.lowCoef.tick(),
			highCoef:  r.highCoef.tick(),
			lowAmount: r.lowAmount.tick(),
			highGain:  r.highGain.tick(),
		}
		tapMid, tapSide := r.network.tick(mid, side, d)

		m := tapMid + earlyGain*earlyMid
		s := tapSide + earlyGain*earlySide
		r.wetL[i], r.wetR[i] = r.predelay.tick(m+s, m-s)
	}

	r.mix(inL, inR, outL, outR)
	r.endBlock()
}

// beginBlock derives every per-sample target from p and starts the ramps.
func (r *Reverb) beginBlock(p Parameters, n int) {
	snap := !r.primed
	r.primed = true

	sizeMult := math.Exp2(p.Size*sizePowerRange + minSizePower)
	scale := sizeMult * r.ratio
	period := sizeMult / (p.DecayMs * 0.001 * referenceSampleRate)

	wet, dry := math.Sincos(p.Mix * math.Pi / 2)
	retarget(&r.wet, wet, n, snap)
	retarget(&r.dry, dry, n, snap)

	retarget(&r.preLowCoef, r.coefficient(p.PreLowpassPitch), n, snap)
	retarget(&r.preHighCoef, r.coefficient(p.PreHighpassPitch), n, snap)
	retarget(&r.lowCoef, r.coefficient(p.LowDampPitch), n, snap)
	retarget(&r.highCoef, r.coefficient(p.HighDampPitch), n, snap)
	retarget(&r.lowAmount, onepole.LowShelfAmount(p.LowDampDb), n, snap)
	retarget(&r.highGain, onepole.HighShelfGain(p.HighDampDb), n, snap)

	r.diffuser.retarget(scale, n, snap)
	r.network.retarget(scale, period, p.ChorusAmount*maxChorusDrift*r.ratio, n, snap)

	increment := 2 * math.Pi * p.ChorusFreqHz / r.sampleRate
	r.network.startRotators(r.chorusPhase, increment)
	r.chorusPhase = wrapPhase(r.chorusPhase + float64(n)*increment)

	r.predelay.retarget(p.PreDelayMs*0.001*r.sampleRate, snap)
}

func (r *Reverb) endBlock() {
	r.wet.finish()
	r.dry.finish()
	r.preLowCoef.finish()
	r.preHighCoef.finish()
	r.lowCoef.finish()
	r.highCoef.finish()
	r.lowAmount.finish()
	r.highGain.finish()
	r.diffuser.finish()
	r.network.finish()
}

// mix writes dry*in + wet*reverb. Steady gains take the vectorised path.
func (r *Reverb) mix(inL, inR, outL, outR []float64) {
	n := len(inL)
	wetL := r.wetL[:n]
	wetR := r.wetR[:n]

	if r.wet.steady() && r.dry.steady() {
		vecmath.ScaleBlock(wetL, wetL, r.wet.current)
		vecmath.ScaleBlock(wetR, wetR, r.wet.current)
		vecmath.ScaleBlock(outL, inL, r.dry.current)
		vecmath.ScaleBlock(outR, inR, r.dry.current)
		vecmath.AddBlockInPlace(outL, wetL)
		vecmath.AddBlockInPlace(outR, wetR)
		return
	}

	for i := range n {
		wet := r.wet.tick()
		dry := r.dry.tick()
		outL[i] = dry*inL[i] + wet*wetL[i]
		outR[i] = dry*inR[i] + wet*wetR[i]
	}
}

func (r *Reverb) coefficient(pitch float64) float64 {
	return onepole.ComputeCoefficient(onepole.PitchToAngular(pitch, r.sampleRate))
}

func retarget(ramp *linearRamp, target float64, n int, snap bool) {
	if snap {
		ramp.snap(target)
		return
	}
	ramp.begin(target, n)
}

// SampleRate returns the sample rate in Hz.
func (r *Reverb) SampleRate() float64 { return r.sampleRate }

// Latency returns the processing latency in samples. The dry path is not
// delayed; the wet path starts after the predelay.
func (r *Reverb) Latency() int { return 0 }

// Controls returns the parameter store the reverb reads from.
func (r *Reverb) Controls() *Controls { return r.controls }

// Parameters returns the most recently written parameters, unclamped.
func (r *Reverb) Parameters() Parameters { return r.controls.Load() }

// SetParameters replaces every parameter. The change takes effect at the
// next sub-block.
func (r *Reverb) SetParameters(p Parameters) { r.controls.Store(p) }

// SetMix sets the dry/wet balance in [0,1] (equal-power law).
func (r *Reverb) SetMix(v float64) { r.controls.SetMix(v) }

// SetSize sets the room size in [0,1].
func (r *Reverb) SetSize(v float64) { r.controls.SetSize(v) }

// SetDecayMs sets the time to -60 dB in milliseconds.
func (r *Reverb) SetDecayMs(v float64) { r.controls.SetDecayMs(v) }

// SetPreDelayMs sets the wet predelay in milliseconds.
func (r *Reverb) SetPreDelayMs(v float64) { r.controls.SetPreDelayMs(v) }

// SetChorusAmount sets the delay modulation depth in [0,1].
func (r *Reverb) SetChorusAmount(v float64) { r.controls.SetChorusAmount(v) }

// SetChorusFreqHz sets the delay modulation rate in Hz.
func (r *Reverb) SetChorusFreqHz(v float64) { r.controls.SetChorusFreqHz(v) }

// SetPreLowpassPitch sets the input lowpass cutoff as a MIDI pitch.
func (r *Reverb) SetPreLowpassPitch(v float64) { r.controls.SetPreLowpassPitch(v) }

// SetPreHighpassPitch sets the input highpass cutoff as a MIDI pitch.
func (r *Reverb) SetPreHighpassPitch(v float64) { r.controls.SetPreHighpassPitch(v) }

// SetLowDampPitch sets the low shelf corner as a MIDI pitch.
func (r *Reverb) SetLowDampPitch(v float64) { r.controls.SetLowDampPitch(v) }

// SetHighDampPitch sets the high shelf corner as a MIDI pitch.
func (r *Reverb) SetHighDampPitch(v float64) { r.controls.SetHighDampPitch(v) }

// SetLowDampDb sets the low shelf cut per pass in dB.
func (r *Reverb) SetLowDampDb(v float64) { r.controls.SetLowDampDb(v) }

// SetHighDampDb sets the high shelf cut per pass in dB.
func (r *Reverb) SetHighDampDb(v float64) { r.controls.SetHighDampDb(v) }
