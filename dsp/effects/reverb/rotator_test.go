package reverb

import (
	"math"
	"testing"
)

func TestRotatorTracksExactPhase(t *testing.T) {
	tests := []struct {
		phase, increment float64
	}{
		{0, 2 * math.Pi * 0.25 / 48000},
		{1.3, 2 * math.Pi * 16 / 44100},
		{5.9, 0},
	}

	for _, tc := range tests {
		var r rotator
		r.begin(tc.phase, tc.increment)

		for k := 1; k <= MaxBlockSize; k++ {
			re, im := r.tick()
			want := tc.phase + float64(k)*tc.increment
			if math.Abs(re-math.Cos(want)) > 1e-12 || math.Abs(im-math.Sin(want)) > 1e-12 {
				t.Fatalf("phase %g step %d: got=(%g,%g) want=(%g,%g)", tc.phase, k, re, im, math.Cos(want), math.Sin(want))
			}
		}
	}
}

func TestRotatorStaysOnUnitCircle(t *testing.T) {
	var r rotator
	r.begin(0.5, 0.37)

	for k := range 100000 {
		re, im := r.tick()
		if mag := math.Hypot(re, im); math.Abs(mag-1) > 1e-9 {
			t.Fatalf("step %d: magnitude drifted to %g", k, mag)
		}
	}
}

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{2*math.Pi + 1, 1},
		{-1, 2*math.Pi - 1},
	}

	for _, tc := range tests {
		if got := wrapPhase(tc.in); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("wrapPhase(%g)=%g want %g", tc.in, got, tc.want)
		}
	}
}

func TestLinearRampLandsOnTarget(t *testing.T) {
	var r linearRamp
	r.snap(1)
	r.begin(0.3, 7)

	prev := r.current
	for range 7 {
		v := r.tick()
		if v > prev {
			t.Fatalf("ramp moved away from target: %g -> %g", prev, v)
		}
		prev = v
	}
	r.finish()

	if r.current != 0.3 || !r.steady() {
		t.Fatalf("ramp did not land: current=%g steady=%v", r.current, r.steady())
	}

	r.begin(0.3, 7)
	if !r.steady() {
		t.Fatal("ramp to the current value should be steady")
	}
}

func TestSmoothingCoefficient(t *testing.T) {
	c := smoothingCoefficient(0.01, 48000)
	if c <= 0 || c >= 1 {
		t.Fatalf("coefficient out of range: %g", c)
	}

	// After one time constant the follower covers 1 - 1/e of a step.
	y := 0.0
	for range 480 {
		y += (1 - y) * c
	}
	if want := 1 - 1/math.E; math.Abs(y-want) > 1e-3 {
		t.Fatalf("follower after tau: got=%g want=%g", y, want)
	}
}
