package reverb

import (
	"math"

	"github.com/cwbudde/algo-verb/dsp/delay"
)

const diffuserStages = 4

// Base allpass periods at 44.1 kHz and size multiplier 1, {mid, side}.
var diffuserPeriods = [diffuserStages][2]float64{
	{1001.3, 799.7},
	{933.1, 876.9},
	{711.4, 567.2},
	{463.8, 399.6},
}

var diffuserGains = [diffuserStages]float64{0.75, 0.75, 0.625, 0.625}

type allpassLane struct {
	buf    *delay.Buffer
	period linearRamp
}

// tick runs one Schroeder allpass step and also returns the delayed state.
func (a *allpassLane) tick(x, gain float64) (y, wd float64) {
	wd = a.buf.ReadFractional(a.period.tick())
	w := x + gain*wd
	y = wd - gain*w
	a.buf.Push(w)

	return y, wd
}

// diffuser is a cascade of allpass stages running a mid and a side lane.
type diffuser struct {
	lanes [diffuserStages][2]allpassLane
}

func newDiffuser(maxScale float64, opts ...delay.Option) (diffuser, error) {
	var d diffuser
	for s := range d.lanes {
		for l := range d.lanes[s] {
			buf, err := delay.New(int(math.Ceil(diffuserPeriods[s][l]*maxScale))+1, opts...)
			if err != nil {
				return diffuser{}, err
			}
			d.lanes[s][l].buf = buf
		}
	}

	return d, nil
}

// retarget ramps every period to its base value times scale over n samples.
func (d *diffuser) retarget(scale float64, n int, snap bool) {
	for s := range d.lanes {
		for l := range d.lanes[s] {
			period := max(diffuserPeriods[s][l]*scale, minDelaySamples)
			if snap {
				d.lanes[s][l].period.snap(period)
			} else {
				d.lanes[s][l].period.begin(period, n)
			}
		}
	}
}

func (d *diffuser) finish() {
	for s := range d.lanes {
		d.lanes[s][0].period.finish()
		d.lanes[s][1].period.finish()
	}
}

// tick diffuses one mid/side pair. early holds the delayed state of the
// last stage, which feeds the early reflection tap.
func (d *diffuser) tick(mid, side float64) (outMid, outSide, earlyMid, earlySide float64) {
	for s := range d.lanes {
		g := diffuserGains[s]
		mid, earlyMid = d.lanes[s][0].tick(mid, g)
		side, earlySide = d.lanes[s][1].tick(side, g)
	}

	return mid, side, earlyMid, earlySide
}

func (d *diffuser) reset() {
	for s := range d.lanes {
		d.lanes[s][0].buf.Reset()
		d.lanes[s][1].buf.Reset()
	}
}
