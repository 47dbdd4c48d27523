package config

import (
	"testing"

	"github.com/retroenv/iquedec/internal/layout"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/audio"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestAVIConfig(t *testing.T) {
	cfg := AVIConfig(layout.Default())

	assert.Equal(t, 240, cfg.Width)
	assert.Equal(t, 160, cfg.Height)
	assert.Equal(t, 15, cfg.FrameRate)
	assert.Equal(t, [4]byte{}, cfg.FourCC)
	assert.NotNil(t, cfg.Audio)
	assert.Equal(t, 1, cfg.Audio.Channels)
	assert.Equal(t, audio.FormatU8, cfg.Audio.Format)
	assert.Equal(t, 1, cfg.Audio.BytesPerSample())
	assert.Equal(t, 9000, cfg.Audio.SampleRate)
}
