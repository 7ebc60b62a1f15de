package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-verb/dsp/core"
	"github.com/cwbudde/algo-verb/dsp/effects/reverb"
	"github.com/cwbudde/algo-verb/dsp/interp"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags([]string{"in.wav", "out.wav"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, reverb.DefaultParameters(), opts.params)
	assert.Equal(t, interp.PCHIP, opts.mode)
	assert.Equal(t, "in.wav", opts.input)
	assert.Equal(t, "out.wav", opts.output)
	assert.Equal(t, 0, opts.bitDepth)
	assert.InDelta(t, -1.0, opts.tailSeconds, 0)
	assert.False(t, opts.ir)
	assert.False(t, opts.play)
}

func TestParseFlags_ReverbParameters(t *testing.T) {
	opts, err := parseFlags([]string{
		"-mix", "0.3", "-size", "0.75", "-decay", "2500", "-predelay", "40",
		"-chorus", "0.6", "-chorus-freq", "1.5", "-high-damp", "-3",
		"-interp", "hermite", "-bits", "16",
		"in.wav", "out.wav",
	}, io.Discard)
	require.NoError(t, err)

	assert.InDelta(t, 0.3, opts.params.Mix, 0)
	assert.InDelta(t, 0.75, opts.params.Size, 0)
	assert.InDelta(t, 2500.0, opts.params.DecayMs, 0)
	assert.InDelta(t, 40.0, opts.params.PreDelayMs, 0)
	assert.InDelta(t, 0.6, opts.params.ChorusAmount, 0)
	assert.InDelta(t, 1.5, opts.params.ChorusFreqHz, 0)
	assert.InDelta(t, -3.0, opts.params.HighDampDb, 0)
	assert.Equal(t, interp.Hermite, opts.mode)
	assert.Equal(t, 16, opts.bitDepth)
}

func TestParseFlags_ImpulseResponseIsWetByDefault(t *testing.T) {
	opts, err := parseFlags([]string{"-ir", "ir.wav"}, io.Discard)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, opts.params.Mix, 0)
	assert.Equal(t, "ir.wav", opts.output)
	assert.Equal(t, core.DefaultProcessorConfig(), opts.processor)

	opts, err = parseFlags([]string{"-ir", "-mix", "0.4", "ir.wav"}, io.Discard)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, opts.params.Mix, 0)
}

func TestParseFlags_ProcessorConfig(t *testing.T) {
	opts, err := parseFlags([]string{"-ir", "-rate", "96000", "-block", "64", "ir.wav"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, core.ProcessorConfig{SampleRate: 96000, BlockSize: 64}, opts.processor)
}

func TestParseFlags_Play(t *testing.T) {
	opts, err := parseFlags([]string{"-play", "in.wav"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, opts.play)
	assert.Equal(t, "in.wav", opts.input)
	assert.Empty(t, opts.output)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing output", []string{"in.wav"}},
		{"extra file for ir", []string{"-ir", "a.wav", "b.wav"}},
		{"ir and play", []string{"-ir", "-play", "a.wav"}},
		{"mix out of range", []string{"-mix", "1.5", "in.wav", "out.wav"}},
		{"decay too short", []string{"-decay", "5", "in.wav", "out.wav"}},
		{"unknown interpolation", []string{"-interp", "sinc", "in.wav", "out.wav"}},
		{"bad bit depth", []string{"-bits", "8", "in.wav", "out.wav"}},
		{"bad rate", []string{"-ir", "-rate", "0", "ir.wav"}},
		{"fractional rate", []string{"-ir", "-rate", "44100.5", "ir.wav"}},
		{"rate too high", []string{"-ir", "-rate", "1e6", "ir.wav"}},
		{"bad block size", []string{"-block", "0", "in.wav", "out.wav"}},
		{"unknown flag", []string{"-loud", "in.wav", "out.wav"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard)
			require.Error(t, err)
		})
	}
}

func TestParseFlags_PositionalErrorsWrapUsage(t *testing.T) {
	_, err := parseFlags([]string{"in.wav"}, io.Discard)
	require.ErrorIs(t, err, errUsage)
}

func TestParseFlags_Help(t *testing.T) {
	_, err := parseFlags([]string{"-h"}, io.Discard)
	require.ErrorIs(t, err, flag.ErrHelp)
}

func TestTailFrames(t *testing.T) {
	opts := options{params: reverb.DefaultParameters(), tailSeconds: 0.5}
	assert.Equal(t, 24000, opts.tailFrames(48000))

	opts.tailSeconds = -1
	opts.params.DecayMs = 1000
	opts.params.PreDelayMs = 100
	assert.Equal(t, 100800, opts.tailFrames(48000))

	opts.params.DecayMs = reverb.MaxDecayMs
	assert.Equal(t, int(maxAutoTailSeconds*44100), opts.tailFrames(44100))

	opts.tailSeconds = 0
	assert.Equal(t, 0, opts.tailFrames(44100))
}

func TestParseMode(t *testing.T) {
	for _, m := range []interp.Mode{interp.PCHIP, interp.Hermite, interp.Linear} {
		got, err := parseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := parseMode("cubic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown interpolation")
}
