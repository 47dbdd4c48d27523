// Package layout defines where the video stream lives inside the ROM image
// and the fixed format parameters of its frames and audio track.
package layout

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/audio"
)

// Default ROM layout of the iQue video cartridge.
const (
	ScreenWidth    = 240
	ScreenHeight   = 160
	PaletteEntries = 256

	LoadBase = 0x08000000 // GBA cartridge ROM mapping

	FrameTableOffset   = 0xB0BFB8
	PaletteTableOffset = 0xB0D8D0
	AudioOffset        = 0xCE2C80
	AudioLength        = 0xEB6C0

	FrameCount = 1606
	FrameRate  = 15

	AudioChannels   = 1
	AudioSampleRate = 9000

	// AudioFormat is the sample format stored in the ROM, the extracted
	// track is unsigned 8-bit.
	AudioFormat = audio.FormatS8
)

const (
	bytesPerPixel = 3
	addressSize   = 4
	colorSize     = 2
)

var errInvalid = errors.New("invalid layout")

// Layout describes the location of the frame tables and the audio block
// inside a ROM image together with the geometry of the decoded stream.
type Layout struct {
	Width          int
	Height         int
	PaletteEntries int

	LoadBase uint32

	FrameTable   int64
	PaletteTable int64
	FrameCount   int
	FrameRate    int

	Audio           int64
	AudioLength     int
	AudioChannels   int
	AudioFormat     audio.SampleFormat
	AudioSampleRate int
}

// Default returns the layout of the iQue video cartridge.
func Default() Layout {
	return Layout{
		Width:          ScreenWidth,
		Height:         ScreenHeight,
		PaletteEntries: PaletteEntries,

		LoadBase: LoadBase,

		FrameTable:   FrameTableOffset,
		PaletteTable: PaletteTableOffset,
		FrameCount:   FrameCount,
		FrameRate:    FrameRate,

		Audio:           AudioOffset,
		AudioLength:     AudioLength,
		AudioChannels:   AudioChannels,
		AudioFormat:     AudioFormat,
		AudioSampleRate: AudioSampleRate,
	}
}

// Pixels returns the number of pixels of a frame, which is also the size of
// a decompressed indexed image.
func (l Layout) Pixels() int {
	return l.Width * l.Height
}

// FrameSize returns the size of a reconstructed 24-bit frame in bytes.
func (l Layout) FrameSize() int {
	return l.Pixels() * bytesPerPixel
}

// PaletteSize returns the size of a raw palette in bytes.
func (l Layout) PaletteSize() int {
	return l.PaletteEntries * colorSize
}

// TableSize returns the size of one address table in bytes.
func (l Layout) TableSize() int {
	return l.FrameCount * addressSize
}

// CompressedWindow returns the number of bytes read for a compressed frame.
// The real compressed length is only known after decoding, the window covers
// the worst case of a frame that did not compress at all including the
// token control bytes.
func (l Layout) CompressedWindow() int {
	return l.PaletteSize() + l.Pixels()*2
}

// Validate checks the layout for values that can not describe a video stream.
func (l Layout) Validate() error {
	switch {
	case l.Width <= 0 || l.Height <= 0:
		return fmt.Errorf("%w: geometry %dx%d", errInvalid, l.Width, l.Height)
	case l.PaletteEntries != PaletteEntries:
		return fmt.Errorf("%w: %d palette entries", errInvalid, l.PaletteEntries)
	case l.FrameCount <= 0:
		return fmt.Errorf("%w: frame count %d", errInvalid, l.FrameCount)
	case l.FrameRate <= 0:
		return fmt.Errorf("%w: frame rate %d", errInvalid, l.FrameRate)
	case l.FrameTable < 0 || l.PaletteTable < 0 || l.Audio < 0:
		return fmt.Errorf("%w: negative offset", errInvalid)
	case l.AudioLength < 0:
		return fmt.Errorf("%w: audio length %d", errInvalid, l.AudioLength)
	case l.AudioChannels <= 0 || l.AudioSampleRate <= 0:
		return fmt.Errorf("%w: %d audio channels at %d Hz", errInvalid, l.AudioChannels, l.AudioSampleRate)
	case l.AudioFormat != audio.FormatS8:
		return fmt.Errorf("%w: audio sample format %#x", errInvalid, l.AudioFormat)
	}
	return nil
}

// MinROMSize returns the smallest ROM image size that contains both address
// tables and the audio block.
func (l Layout) MinROMSize() int64 {
	size := l.FrameTable + int64(l.TableSize())
	if end := l.PaletteTable + int64(l.TableSize()); end > size {
		size = end
	}
	if end := l.Audio + int64(l.AudioLength); end > size {
		size = end
	}
	return size
}
