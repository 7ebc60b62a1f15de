package reverb

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-verb/internal/testutil"
)

func BenchmarkReverbProcess(b *testing.B) {
	for _, size := range []int{64, 512} {
		b.Run(strconv.Itoa(size), func(b *testing.B) {
			r, err := New(48000)
			if err != nil {
				b.Fatalf("New: %v", err)
			}

			inL := testutil.DeterministicNoise(1, 0.5, size)
			inR := testutil.DeterministicNoise(2, 0.5, size)
			outL := make([]float64, size)
			outR := make([]float64, size)

			b.SetBytes(int64(size * 16))
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				r.Process(inL, inR, outL, outR)
			}
		})
	}
}

func BenchmarkScatter(b *testing.B) {
	var v [networkSize]float64
	copy(v[:], testutil.DeterministicNoise(3, 1, networkSize))

	b.ReportAllocs()
	for range b.N {
		scatter(&v)
	}
}
