package reverb

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-verb/dsp/core"
)

// Parameter ranges. Values outside these ranges are clamped by the engine.
const (
	MinDampDb     = -6.0
	MaxDampDb     = 0.0
	MinDecayMs    = 15.0
	MaxDecayMs    = 64000.0
	MaxPreDelayMs = 300.0
	MaxChorusHz   = 16.0

	minPitch = -128.0
	maxPitch = 256.0
)

// Parameters is one snapshot of the reverb controls. Pitches are MIDI note
// numbers (69 = 440 Hz) and may be fractional.
type Parameters struct {
	Mix              float64 // dry/wet, 0 = dry only, 1 = wet only
	PreLowpassPitch  float64 // input lowpass cutoff
	PreHighpassPitch float64 // input highpass cutoff
	LowDampPitch     float64 // low shelf corner in the feedback path
	HighDampPitch    float64 // high shelf corner in the feedback path
	LowDampDb        float64 // low shelf cut per pass, [-6, 0]
	HighDampDb       float64 // high shelf cut per pass, [-6, 0]
	Size             float64 // room size, [0, 1]; scales every delay by 2^(4*size-3)
	DecayMs          float64 // time to -60 dB, [15, 64000]
	PreDelayMs       float64 // wet path predelay, [0, 300]
	ChorusAmount     float64 // delay modulation depth, [0, 1]
	ChorusFreqHz     float64 // delay modulation rate, [0, 16]
}

// DefaultParameters returns a medium plate-like setting.
func DefaultParameters() Parameters {
	return Parameters{
		Mix:              0.5,
		PreLowpassPitch:  110,
		PreHighpassPitch: 0,
		LowDampPitch:     0,
		HighDampPitch:    90,
		LowDampDb:        0,
		HighDampDb:       -1,
		Size:             0.5,
		DecayMs:          1000,
		PreDelayMs:       0,
		ChorusAmount:     0.25,
		ChorusFreqHz:     0.25,
	}
}

// Validate reports the first field that is not finite or lies outside its range.
func (p Parameters) Validate() error {
	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"mix", p.Mix, 0, 1},
		{"pre lowpass pitch", p.PreLowpassPitch, minPitch, maxPitch},
		{"pre highpass pitch", p.PreHighpassPitch, minPitch, maxPitch},
		{"low damp pitch", p.LowDampPitch, minPitch, maxPitch},
		{"high damp pitch", p.HighDampPitch, minPitch, maxPitch},
		{"low damp dB", p.LowDampDb, MinDampDb, MaxDampDb},
		{"high damp dB", p.HighDampDb, MinDampDb, MaxDampDb},
		{"size", p.Size, 0, 1},
		{"decay ms", p.DecayMs, MinDecayMs, MaxDecayMs},
		{"pre-delay ms", p.PreDelayMs, 0, MaxPreDelayMs},
		{"chorus amount", p.ChorusAmount, 0, 1},
		{"chorus frequency", p.ChorusFreqHz, 0, MaxChorusHz},
	}

	for _, c := range checks {
		if math.IsNaN(c.value) || c.value < c.min || c.value > c.max {
			return fmt.Errorf("reverb %s must be in [%g,%g]: %f", c.name, c.min, c.max, c.value)
		}
	}

	return nil
}

// clamped maps every field into range. NaN falls back to the default.
func (p Parameters) clamped() Parameters {
	d := DefaultParameters()

	return Parameters{
		Mix:              core.ClampFinite(p.Mix, 0, 1, d.Mix),
		PreLowpassPitch:  core.ClampFinite(p.PreLowpassPitch, minPitch, maxPitch, d.PreLowpassPitch),
		PreHighpassPitch: core.ClampFinite(p.PreHighpassPitch, minPitch, maxPitch, d.PreHighpassPitch),
		LowDampPitch:     core.ClampFinite(p.LowDampPitch, minPitch, maxPitch, d.LowDampPitch),
		HighDampPitch:    core.ClampFinite(p.HighDampPitch, minPitch, maxPitch, d.HighDampPitch),
		LowDampDb:        core.ClampFinite(p.LowDampDb, MinDampDb, MaxDampDb, d.LowDampDb),
		HighDampDb:       core.ClampFinite(p.HighDampDb, MinDampDb, MaxDampDb, d.HighDampDb),
		Size:             core.ClampFinite(p.Size, 0, 1, d.Size),
		DecayMs:          core.ClampFinite(p.DecayMs, MinDecayMs, MaxDecayMs, d.DecayMs),
		PreDelayMs:       core.ClampFinite(p.PreDelayMs, 0, MaxPreDelayMs, d.PreDelayMs),
		ChorusAmount:     core.ClampFinite(p.ChorusAmount, 0, 1, d.ChorusAmount),
		ChorusFreqHz:     core.ClampFinite(p.ChorusFreqHz, 0, MaxChorusHz, d.ChorusFreqHz),
	}
}

const (
	fieldMix = iota
	fieldPreLowpassPitch
	fieldPreHighpassPitch
	fieldLowDampPitch
	fieldHighDampPitch
	fieldLowDampDb
	fieldHighDampDb
	fieldSize
	fieldDecayMs
	fieldPreDelayMs
	fieldChorusAmount
	fieldChorusFreqHz
	fieldCount
)

// Controls is a lock-free parameter store shared between a control goroutine
// and the audio goroutine. Each field is updated atomically, so a reader sees
// every field either before or after a concurrent write, never torn. A Load
// racing a Store may mix old and new fields. The zero value holds all zeros;
// use Store to initialize it.
type Controls struct {
	fields [fieldCount]atomic.Uint64
}

// NewControls returns a Controls holding p.
func NewControls(p Parameters) *Controls {
	c := &Controls{}
	c.Store(p)
	return c
}

func (c *Controls) set(field int, v float64) {
	c.fields[field].Store(math.Float64bits(v))
}

func (c *Controls) get(field int) float64 {
	return math.Float64frombits(c.fields[field].Load())
}

// Store writes every field of p.
func (c *Controls) Store(p Parameters) {
	c.set(fieldMix, p.Mix)
	c.set(fieldPreLowpassPitch, p.PreLowpassPitch)
	c.set(fieldPreHighpassPitch, p.PreHighpassPitch)
	c.set(fieldLowDampPitch, p.LowDampPitch)
	c.set(fieldHighDampPitch, p.HighDampPitch)
	c.set(fieldLowDampDb, p.LowDampDb)
	c.set(fieldHighDampDb, p.HighDampDb)
	c.set(fieldSize, p.Size)
	c.set(fieldDecayMs, p.DecayMs)
	c.set(fieldPreDelayMs, p.PreDelayMs)
	c.set(fieldChorusAmount, p.ChorusAmount)
	c.set(fieldChorusFreqHz, p.ChorusFreqHz)
}

// Load reads every field.
func (c *Controls) Load() Parameters {
	return Parameters{
		Mix:              c.get(fieldMix),
		PreLowpassPitch:  c.get(fieldPreLowpassPitch),
		PreHighpassPitch: c.get(fieldPreHighpassPitch),
		LowDampPitch:     c.get(fieldLowDampPitch),
		HighDampPitch:    c.get(fieldHighDampPitch),
		LowDampDb:        c.get(fieldLowDampDb),
		HighDampDb:       c.get(fieldHighDampDb),
		Size:             c.get(fieldSize),
		DecayMs:          c.get(fieldDecayMs),
		PreDelayMs:       c.get(fieldPreDelayMs),
		ChorusAmount:     c.get(fieldChorusAmount),
		ChorusFreqHz:     c.get(fieldChorusFreqHz),
	}
}

func (c *Controls) SetMix(v float64)              { c.set(fieldMix, v) }
func (c *Controls) SetPreLowpassPitch(v float64)  { c.set(fieldPreLowpassPitch, v) }
func (c *Controls) SetPreHighpassPitch(v float64) { c.set(fieldPreHighpassPitch, v) }
func (c *Controls) SetLowDampPitch(v float64)     { c.set(fieldLowDampPitch, v) }
func (c *Controls) SetHighDampPitch(v float64)    { c.set(fieldHighDampPitch, v) }
func (c *Controls) SetLowDampDb(v float64)        { c.set(fieldLowDampDb, v) }
func (c *Controls) SetHighDampDb(v float64)       { c.set(fieldHighDampDb, v) }
func (c *Controls) SetSize(v float64)             { c.set(fieldSize, v) }
func (c *Controls) SetDecayMs(v float64)          { c.set(fieldDecayMs, v) }
func (c *Controls) SetPreDelayMs(v float64)       { c.set(fieldPreDelayMs, v) }
func (c *Controls) SetChorusAmount(v float64)     { c.set(fieldChorusAmount, v) }
func (c *Controls) SetChorusFreqHz(v float64)     { c.set(fieldChorusFreqHz, v) }
