package decay_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-verb/measure/decay"
)

func ExampleAnalyzer_Analyze() {
	const sampleRate = 48000.0

	// Synthetic response falling 60 dB in 1.2 s.
	ir := make([]float64, int(3*sampleRate))
	for i := range ir {
		ir[i] = math.Exp(-math.Log(1000) / 1.2 * float64(i) / sampleRate)
	}

	m, err := decay.NewAnalyzer(sampleRate).Analyze(ir)
	if err != nil {
		panic(err)
	}

	fmt.Printf("RT60 = %.2f s\n", m.RT60)
	fmt.Printf("EDT  = %.2f s\n", m.EDT)
	// Output:
	// RT60 = 1.20 s
	// EDT  = 1.20 s
}

func ExampleWindowedRMS() {
	levels, err := decay.WindowedRMS([]float64{1, -1, 1, -1, 0.5, -0.5, 0.5, -0.5}, 4, 4)
	if err != nil {
		panic(err)
	}
	fmt.Println(levels)
	// Output: [1 0.5]
}
