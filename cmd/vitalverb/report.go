package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-verb/measure/decay"
)

// writeReport prints the decay metrics of both output channels.
func writeReport(w io.Writer, sampleRate int, left, right []float64) error {
	analyzer := decay.NewAnalyzer(float64(sampleRate))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tRT60 [s]\tEDT [s]\tC80 [dB]\tCenter [ms]\tOnset [ms]\n"); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	channels := []struct {
		name string
		ir   []float64
	}{
		{"left", left},
		{"right", right},
	}
	for _, ch := range channels {
		m, err := analyzer.Analyze(ch.ir)
		if err != nil {
			return fmt.Errorf("failed to analyze %s channel: %w", ch.name, err)
		}
		onsetMs := 1000 * float64(m.Onset) / float64(sampleRate)
		if _, err := fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%+.1f\t%.1f\t%.1f\n",
			ch.name, m.RT60, m.EDT, m.C80, 1000*m.CenterTime, onsetMs); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	return tw.Flush()
}
