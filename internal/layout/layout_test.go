package layout

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/audio"
)

func TestDefault(t *testing.T) {
	l := Default()
	assert.NoError(t, l.Validate())

	assert.Equal(t, 240*160, l.Pixels())
	assert.Equal(t, 240*160*3, l.FrameSize())
	assert.Equal(t, 512, l.PaletteSize())
	assert.Equal(t, 512+240*160*2, l.CompressedWindow())

	// the palette table directly follows the frame table
	assert.Equal(t, l.FrameTable+int64(l.TableSize()), l.PaletteTable)
	assert.Equal(t, int64(AudioOffset+AudioLength), l.MinROMSize())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(l *Layout)
	}{
		{name: "zero width", modify: func(l *Layout) { l.Width = 0 }},
		{name: "negative height", modify: func(l *Layout) { l.Height = -1 }},
		{name: "palette size", modify: func(l *Layout) { l.PaletteEntries = 16 }},
		{name: "no frames", modify: func(l *Layout) { l.FrameCount = 0 }},
		{name: "frame rate", modify: func(l *Layout) { l.FrameRate = 0 }},
		{name: "negative offset", modify: func(l *Layout) { l.Audio = -1 }},
		{name: "negative audio length", modify: func(l *Layout) { l.AudioLength = -1 }},
		{name: "no audio channels", modify: func(l *Layout) { l.AudioChannels = 0 }},
		{name: "audio sample rate", modify: func(l *Layout) { l.AudioSampleRate = 0 }},
		{name: "unsigned audio", modify: func(l *Layout) { l.AudioFormat = audio.FormatU8 }},
		{name: "16-bit audio", modify: func(l *Layout) { l.AudioFormat = audio.FormatS16 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Default()
			tt.modify(&l)
			assert.Error(t, l.Validate())
		})
	}
}

func TestMinROMSize(t *testing.T) {
	l := Default()
	l.Audio = 0x100
	l.AudioLength = 0x10
	assert.Equal(t, l.PaletteTable+int64(l.TableSize()), l.MinROMSize())
}
