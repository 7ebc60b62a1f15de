package decay

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Errors returned by the analysis functions.
var (
	ErrEmptyIR           = errors.New("decay: empty impulse response")
	ErrInvalidSampleRate = errors.New("decay: sample rate must be positive")
	ErrInvalidWindow     = errors.New("decay: window and hop must be positive")
	ErrNoDecay           = errors.New("decay: insufficient decay for RT calculation")
)

// floorDB is the decay curve value once no energy remains.
const floorDB = -200.0

// Metrics holds the decay measurements of one impulse response.
type Metrics struct {
	RT60       float64 // seconds, from T30 or T20
	EDT        float64 // seconds, 0 to -10 dB slope
	T20        float64 // seconds, -5 to -25 dB slope
	T30        float64 // seconds, -5 to -35 dB slope
	C80        float64 // early (80 ms) to late energy ratio in dB
	CenterTime float64 // energy centroid in seconds
	Onset      int     // first sample within 20 dB of the peak
	PeakIndex  int     // sample index of the absolute maximum
}

// Analyzer measures impulse responses recorded at SampleRate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer returns an analyzer for sampleRate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

func (a *Analyzer) check(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}
	if !(a.SampleRate > 0) {
		return ErrInvalidSampleRate
	}
	return nil
}

// Analyze computes every metric. Times are measured from the onset, so
// predelay and diffuser transit do not bias the decay fits.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if err := a.check(ir); err != nil {
		return Metrics{}, err
	}

	onset := onsetIndex(ir, 0.1)
	tail := ir[onset:]
	curve := energyDecayCurve(tail)

	m := Metrics{
		Onset:      onset,
		PeakIndex:  floats.MaxIdx(absCopy(ir)),
		EDT:        a.reverbTime(curve, 0, -10),
		T20:        a.reverbTime(curve, -5, -25),
		T30:        a.reverbTime(curve, -5, -35),
		C80:        a.clarity(tail, 80),
		CenterTime: a.centerTime(tail),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// EnergyDecayCurve returns the Schroeder curve of ir in dB, 0 dB at the start.
func (a *Analyzer) EnergyDecayCurve(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	return energyDecayCurve(ir), nil
}

// RT60 fits the -5 to -35 dB range, falling back to -5 to -25 dB.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}

	curve := energyDecayCurve(ir)
	if rt := a.reverbTime(curve, -5, -35); rt > 0 {
		return rt, nil
	}
	if rt := a.reverbTime(curve, -5, -25); rt > 0 {
		return rt, nil
	}

	return 0, ErrNoDecay
}

// EDT returns the early decay time in seconds.
func (a *Analyzer) EDT(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}
	if rt := a.reverbTime(energyDecayCurve(ir), 0, -10); rt > 0 {
		return rt, nil
	}
	return 0, ErrNoDecay
}

// Onset returns the first sample whose magnitude is within 20 dB of the peak.
func (a *Analyzer) Onset(ir []float64) (int, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}
	return onsetIndex(ir, 0.1), nil
}

func energyDecayCurve(ir []float64) []float64 {
	curve := make([]float64, len(ir))
	vecmath.MulBlock(curve, ir, ir)

	floats.Reverse(curve)
	floats.CumSum(curve, curve)
	floats.Reverse(curve)

	total := curve[0]
	for i, e := range curve {
		if total <= 0 || e <= 0 {
			curve[i] = floorDB
			continue
		}
		curve[i] = 10 * math.Log10(e/total)
	}

	return curve
}

// reverbTime fits a line to the curve between startDB and endDB and
// returns the time to fall 60 dB, or 0 when the range is not reached.
func (a *Analyzer) reverbTime(curve []float64, startDB, endDB float64) float64 {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}

	if start < 0 || end-start < 2 {
		return 0
	}

	x := make([]float64, end-start+1)
	for i := range x {
		x[i] = float64(i)
	}

	_, slope := stat.LinearRegression(x, curve[start:end+1], nil, false)
	if !(slope < 0) {
		return 0
	}

	return -60 / (slope * a.SampleRate)
}

func (a *Analyzer) clarity(ir []float64, ms float64) float64 {
	boundary := min(int(math.Round(ms*0.001*a.SampleRate)), len(ir))

	early := floats.Dot(ir[:boundary], ir[:boundary])
	late := floats.Dot(ir[boundary:], ir[boundary:])

	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}

	return 10 * math.Log10(early/late)
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var num, den float64
	for i, v := range ir {
		e := v * v
		num += float64(i) * e
		den += e
	}

	if den <= 0 {
		return 0
	}

	return num / den / a.SampleRate
}

func onsetIndex(ir []float64, ratio float64) int {
	peak := floats.Max(absCopy(ir))
	threshold := peak * ratio
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i
		}
	}
	return 0
}

func absCopy(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Abs(v)
	}
	return out
}

// WindowedRMS returns the RMS of consecutive windows of x advanced by hop
// samples. A trailing partial window is dropped.
func WindowedRMS(x []float64, window, hop int) ([]float64, error) {
	if window <= 0 || hop <= 0 {
		return nil, ErrInvalidWindow
	}
	if len(x) < window {
		return nil, nil
	}

	sq := make([]float64, len(x))
	vecmath.MulBlock(sq, x, x)

	out := make([]float64, 0, (len(x)-window)/hop+1)
	for start := 0; start+window <= len(x); start += hop {
		out = append(out, math.Sqrt(floats.Sum(sq[start:start+window])/float64(window)))
	}

	return out, nil
}
