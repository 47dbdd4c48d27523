// Package romtest builds synthetic ROM images for tests.
package romtest

import (
	"encoding/binary"

	"github.com/retroenv/iquedec/internal/layout"
	"github.com/retroenv/iquedec/internal/palette"
)

const tableStart = 0x10

// ROM describes the content of a synthetic ROM image.
type ROM struct {
	Width    int
	Height   int
	Images   [][]byte // indexed images, stored as literal-only compressed blocks
	Palettes []palette.Raw
	Audio    []byte
}

// CompressLiterals encodes data as a compressed block of literal tokens.
func CompressLiterals(data []byte) []byte {
	block := make([]byte, 4, 4+len(data)+len(data)/8+1)
	binary.LittleEndian.PutUint32(block, uint32(len(data))<<8|0x10)
	for i, b := range data {
		if i%8 == 0 {
			block = append(block, 0x00)
		}
		block = append(block, b)
	}
	return block
}

// Layout returns the layout of the image built by Build.
func (r ROM) Layout() layout.Layout {
	frames := int64(len(r.Images))
	return layout.Layout{
		Width:          r.Width,
		Height:         r.Height,
		PaletteEntries: palette.Entries,
		LoadBase:       layout.LoadBase,
		FrameTable:     tableStart,
		PaletteTable:   tableStart + frames*4,
		FrameCount:     len(r.Images),
		FrameRate:      layout.FrameRate,

		Audio:           tableStart + frames*8,
		AudioLength:     len(r.Audio),
		AudioChannels:   layout.AudioChannels,
		AudioFormat:     layout.AudioFormat,
		AudioSampleRate: layout.AudioSampleRate,
	}
}

// Build returns the layout and the image data. The audio block follows the
// address tables, compressed images and palettes are appended after it.
func (r ROM) Build() (layout.Layout, []byte) {
	l := r.Layout()
	data := make([]byte, l.Audio, l.Audio+int64(len(r.Audio)))
	data = append(data, r.Audio...)

	for i, img := range r.Images {
		binary.LittleEndian.PutUint32(data[l.FrameTable+int64(i)*4:], layout.LoadBase+uint32(len(data)))
		data = append(data, CompressLiterals(img)...)
	}
	for i, pal := range r.Palettes {
		binary.LittleEndian.PutUint32(data[l.PaletteTable+int64(i)*4:], layout.LoadBase+uint32(len(data)))
		for _, c := range pal {
			data = binary.LittleEndian.AppendUint16(data, c)
		}
	}
	return l, data
}
