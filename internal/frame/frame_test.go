package frame

import (
	"testing"

	"github.com/retroenv/iquedec/internal/palette"
	"github.com/retroenv/retrogolib/assert"
)

func testPalette() *palette.Expanded {
	var raw palette.Raw
	for i := range raw {
		raw[i] = uint16(i) | uint16(i)<<7
	}
	var pal palette.Expanded
	palette.ExpandTable(&pal, &raw)
	return &pal
}

func TestReconstructSolidColor(t *testing.T) {
	const width, height = 8, 4
	pal := testPalette()

	for _, k := range []byte{0, 1, 0x7F, 0xFF} {
		indexed := make([]byte, width*height)
		for i := range indexed {
			indexed[i] = k
		}

		dst := make([]byte, width*height*BytesPerPixel)
		assert.NoError(t, Reconstruct(dst, indexed, pal, width, height))

		for i := 0; i < len(dst); i += BytesPerPixel {
			assert.Equal(t, byte(pal[k]>>16), dst[i])
			assert.Equal(t, byte(pal[k]>>8), dst[i+1])
			assert.Equal(t, byte(pal[k]), dst[i+2])
		}
	}
}

func TestReconstructFlipsRows(t *testing.T) {
	const width, height = 3, 4
	pal := testPalette()

	indexed := make([]byte, width*height)
	for y := range height {
		for x := range width {
			indexed[y*width+x] = byte(y*16 + x)
		}
	}

	dst := make([]byte, width*height*BytesPerPixel)
	assert.NoError(t, Reconstruct(dst, indexed, pal, width, height))

	stride := width * BytesPerPixel
	for y := range height {
		outRow := dst[(height-1-y)*stride:]
		for x := range width {
			px := pal[indexed[y*width+x]]
			assert.Equal(t, byte(px>>16), outRow[x*BytesPerPixel])
			assert.Equal(t, byte(px>>8), outRow[x*BytesPerPixel+1])
			assert.Equal(t, byte(px), outRow[x*BytesPerPixel+2])
		}
	}
}

func TestReconstructSizeMismatch(t *testing.T) {
	pal := testPalette()

	err := Reconstruct(make([]byte, 12), make([]byte, 3), pal, 2, 2)
	assert.ErrorContains(t, err, "indexed image")

	err = Reconstruct(make([]byte, 11), make([]byte, 4), pal, 2, 2)
	assert.ErrorContains(t, err, "frame buffer")
}

func TestToImage(t *testing.T) {
	const width, height = 2, 2
	var pal palette.Expanded
	pal[1] = 0xF80000 // high channel, blue on the GBA
	pal[2] = 0x0000F8

	indexed := []byte{1, 0, 0, 2}
	dst := make([]byte, width*height*BytesPerPixel)
	assert.NoError(t, Reconstruct(dst, indexed, &pal, width, height))

	img, err := ToImage(dst, width, height)
	assert.NoError(t, err)

	c := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(0xF8), c.B)
	assert.Equal(t, uint8(0), c.R)
	c = img.RGBAAt(1, 1)
	assert.Equal(t, uint8(0xF8), c.R)
	assert.Equal(t, uint8(0xFF), c.A)
	c = img.RGBAAt(1, 0)
	assert.Equal(t, uint8(0), c.R|c.G|c.B)

	_, err = ToImage(dst[1:], width, height)
	assert.Error(t, err)
}
