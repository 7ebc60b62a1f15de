package interp

import (
	"math"
	"testing"
)

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestPCHIP4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := 1.0, 3.0, 5.0, 7.0
	for _, ft := range []float64{0, 0.1, 0.5, 0.9, 1} {
		got := PCHIP4(ft, xm1, x0, x1, x2)
		want := 3 + 2*ft
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", ft, got, want)
		}
	}
}

func TestPCHIP4HitsEndpoints(t *testing.T) {
	xm1, x0, x1, x2 := 0.3, -0.7, 0.9, 0.1
	if got := PCHIP4(0, xm1, x0, x1, x2); got != x0 {
		t.Fatalf("t=0: got %v want %v", got, x0)
	}
	if got := PCHIP4(1, xm1, x0, x1, x2); math.Abs(got-x1) > 1e-12 {
		t.Fatalf("t=1: got %v want %v", got, x1)
	}
}

func TestPCHIP4DoesNotOvershootStep(t *testing.T) {
	xm1, x0, x1, x2 := 0.0, 0.0, 1.0, 1.0
	for i := 0; i <= 100; i++ {
		ft := float64(i) / 100
		got := PCHIP4(ft, xm1, x0, x1, x2)
		if got < -1e-12 || got > 1+1e-12 {
			t.Fatalf("t=%v: got %v outside [0,1]", ft, got)
		}
	}
}

func TestPCHIP4FlatAtLocalExtremum(t *testing.T) {
	// x0 is a local peak: the slope at t=0 must be zero, so values just after
	// t=0 may not exceed x0.
	got := PCHIP4(0.01, 0.5, 1.0, 0.5, 0.0)
	if got > 1.0 {
		t.Fatalf("got %v, want <= 1", got)
	}
}

func TestModeInterpolate4Dispatch(t *testing.T) {
	xm1, x0, x1, x2 := 0.2, 0.4, -0.3, 0.8
	ft := 0.37
	if got, want := PCHIP.Interpolate4(ft, xm1, x0, x1, x2), PCHIP4(ft, xm1, x0, x1, x2); got != want {
		t.Fatalf("pchip: got %v want %v", got, want)
	}
	if got, want := Hermite.Interpolate4(ft, xm1, x0, x1, x2), Hermite4(ft, xm1, x0, x1, x2); got != want {
		t.Fatalf("hermite: got %v want %v", got, want)
	}
	if got, want := Linear.Interpolate4(ft, xm1, x0, x1, x2), Linear2(ft, x0, x1); got != want {
		t.Fatalf("linear: got %v want %v", got, want)
	}
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{PCHIP: "pchip", Hermite: "hermite", Linear: "linear", Mode(9): "unknown"} {
		if got := m.String(); got != want {
			t.Fatalf("Mode(%d).String() = %q, want %q", m, got, want)
		}
	}
	if Mode(-1).Valid() || !Linear.Valid() {
		t.Fatal("Valid() mismatch")
	}
}
