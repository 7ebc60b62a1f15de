package reverb

import (
	"math"

	"github.com/cwbudde/algo-verb/dsp/core"
	"github.com/cwbudde/algo-verb/dsp/delay"
	"github.com/cwbudde/algo-verb/dsp/filter/onepole"
)

const (
	networkGroups = 4
	networkLanes  = 4
	networkSize   = networkGroups * networkLanes

	injectionGain = 0.25
	outputGain    = 0.25
)

// Base feedback delays in samples at 44.1 kHz and size multiplier 1,
// indexed group*networkLanes + lane.
var feedbackDelays = [networkSize]float64{
	6753.2, 9278.4, 7704.5, 11328.5,
	9701.12, 5512.5, 8480.45, 5638.65,
	3120.73, 3429.5, 3626.37, 7713.52,
	4521.54, 6518.97, 5265.56, 5630.25,
}

const minFeedbackDelay = 3120.73

// Output tap signs: rows 5 and 10 of the 16-point Sylvester Hadamard matrix.
// They are orthogonal to each other, so mid and side decorrelate.
var (
	tapMid = [networkSize]float64{
		1, -1, 1, -1, -1, 1, -1, 1,
		1, -1, 1, -1, -1, 1, -1, 1,
	}
	tapSide = [networkSize]float64{
		1, 1, -1, -1, 1, 1, -1, -1,
		-1, -1, 1, 1, -1, -1, 1, 1,
	}
)

// damping carries the per-sample shelf settings shared by all lines.
type damping struct {
	lowCoef   float64
	highCoef  float64
	lowAmount float64
	highGain  float64
}

type networkLine struct {
	buf      *delay.Buffer
	offset   float64 // smoothed read offset
	base     linearRamp
	decay    linearRamp
	lowDamp  onepole.Filter
	highDamp onepole.Filter
}

// feedbackNetwork is the 16-line FDN core.
type feedbackNetwork struct {
	lines    [networkSize]networkLine
	rotators [networkGroups]rotator
	depth    linearRamp
	follow   float64 // offset follower coefficient
}

func newFeedbackNetwork(maxOffset, follow float64, opts ...delay.Option) (feedbackNetwork, error) {
	n := feedbackNetwork{follow: follow}
	for i := range n.lines {
		buf, err := delay.New(int(math.Ceil(maxOffset))+1, opts...)
		if err != nil {
			return feedbackNetwork{}, err
		}
		n.lines[i].buf = buf
	}

	return n, nil
}

// retarget sets the per-line offsets, decay gains and chorus depth for the
// next n samples. scale is the size multiplier times the sample-rate ratio;
// period is the size multiplier over the decay time in reference samples.
func (n *feedbackNetwork) retarget(scale, period, depth float64, samples int, snap bool) {
	maxDepth := max(minFeedbackDelay*scale-chorusClearance, 0)
	depth = core.Clamp(depth, 0, maxDepth)

	for i := range n.lines {
		line := &n.lines[i]
		base := feedbackDelays[i] * scale
		gain := math.Pow(t60Amplitude, feedbackDelays[i]*period)
		if snap {
			line.base.snap(base)
			line.decay.snap(gain)
			line.offset = base
		} else {
			line.base.begin(base, samples)
			line.decay.begin(gain, samples)
		}
	}

	if snap {
		n.depth.snap(depth)
	} else {
		n.depth.begin(depth, samples)
	}
}

// startRotators seeds the group phasors. Groups are spread by 2π/16.
func (n *feedbackNetwork) startRotators(phase, increment float64) {
	for g := range n.rotators {
		n.rotators[g].begin(phase+float64(g)*2*math.Pi/networkSize, increment)
	}
}

func (n *feedbackNetwork) finish() {
	for i := range n.lines {
		n.lines[i].base.finish()
		n.lines[i].decay.finish()
	}
	n.depth.finish()
}

// tick advances the network by one sample with the diffused mid/side input
// and returns the mid and side output taps.
func (n *feedbackNetwork) tick(mid, side float64, d damping) (outMid, outSide float64) {
	var reads, v [networkSize]float64

	depth := n.depth.tick()
	for g := range n.rotators {
		re, im := n.rotators[g].tick()
		mods := [networkLanes]float64{re, im, -re, -im}
		for l := range mods {
			line := &n.lines[g*networkLanes+l]
			target := max(line.base.tick()+depth*mods[l], minDelaySamples)
			line.offset += (target - line.offset) * n.follow
			reads[g*networkLanes+l] = line.buf.ReadFractional(line.offset)
		}
	}

	inject := [2]float64{mid * injectionGain, side * injectionGain}
	for i := range v {
		v[i] = reads[i] + inject[i&1]
	}

	scatter(&v)

	for i := range n.lines {
		line := &n.lines[i]
		x := v[i]
		x = onepole.HighShelf(x, line.highDamp.TickLowpass(x, d.highCoef), d.highGain)
		x = onepole.LowShelf(x, line.lowDamp.TickLowpass(x, d.lowCoef), d.lowAmount)
		line.buf.Push(core.FlushDenormals(x * line.decay.tick()))
	}

	for i, r := range reads {
		outMid += tapMid[i] * r
		outSide += tapSide[i] * r
	}

	return outMid * outputGain, outSide * outputGain
}

func (n *feedbackNetwork) reset() {
	for i := range n.lines {
		line := &n.lines[i]
		line.buf.Reset()
		line.lowDamp.Reset()
		line.highDamp.Reset()
	}
}

// scatter applies the 16x16 orthogonal mixing matrix (I - J/2)⊗(I - J/2)
// to v in two passes and writes the result transposed (group and lane
// swap roles), so energy from one group spreads to every group next pass.
//
//	y[g][l] = v[g][l] - laneSum[l]/2 - groupSum[g]/2 + total/4
func scatter(v *[networkSize]float64) {
	var laneSum [networkLanes]float64
	var groupSum [networkGroups]float64
	var total float64

	for g := range networkGroups {
		for l := range networkLanes {
			x := v[g*networkLanes+l]
			laneSum[l] += x
			groupSum[g] += x
		}
		total += groupSum[g]
	}

	var out [networkSize]float64
	for g := range networkGroups {
		for l := range networkLanes {
			out[l*networkGroups+g] = v[g*networkLanes+l] - 0.5*laneSum[l] - 0.5*groupSum[g] + 0.25*total
		}
	}

	*v = out
}
