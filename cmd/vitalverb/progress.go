package main

import (
	"log"
	"os"

	"golang.org/x/term"
)

const (
	percentScale     = 100
	progressInterval = 10
)

// progressTracker logs every progressInterval percent.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	enabled      bool
}

func newProgressTracker(totalFrames int64, enabled bool) *progressTracker {
	return &progressTracker{totalFrames: totalFrames, enabled: enabled}
}

// reportIfNeeded logs progress when a threshold is crossed. A nil tracker
// is silent.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if p == nil || !p.enabled || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

func stderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
