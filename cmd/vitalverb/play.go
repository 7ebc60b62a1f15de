//go:build !headless

package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitengine/oto/v3"
)

const playPollInterval = 50 * time.Millisecond

// playFile streams opts.input through the reverb to the default audio device.
func playFile(opts options) error {
	sig, err := readWAV(opts.input)
	if err != nil {
		return err
	}

	rev, err := newReverb(opts, sig.sampleRate)
	if err != nil {
		return err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sig.sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	src := newStream(rev, sig.left, sig.right, opts.tailFrames(sig.sampleRate))
	player := ctx.NewPlayer(src)
	defer func() { _ = player.Close() }()

	if opts.verbose {
		log.Printf("Playing %s: %d Hz, %.1f s", opts.input, sig.sampleRate,
			float64(src.remaining())/float64(sig.sampleRate))
	}

	player.Play()
	for player.IsPlaying() {
		time.Sleep(playPollInterval)
	}

	if err := player.Err(); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}
