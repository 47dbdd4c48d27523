// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/iquedec/internal/avi"
	"github.com/retroenv/iquedec/internal/layout"
	"github.com/retroenv/retrogolib/audio"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// AVIConfig returns the stream configuration of the output file for a ROM
// layout. The video stream is uncompressed 24-bit RGB, the signed ROM
// samples are stored as unsigned 8-bit PCM.
func AVIConfig(l layout.Layout) avi.Config {
	return avi.Config{
		Width:     l.Width,
		Height:    l.Height,
		FrameRate: l.FrameRate,
		Audio: &audio.Format{
			Channels:   l.AudioChannels,
			SampleRate: l.AudioSampleRate,
			Format:     audio.FormatU8,
		},
	}
}
