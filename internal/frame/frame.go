// Package frame resolves decompressed indexed images to 24-bit frames.
package frame

import (
	"fmt"
	"image"
	"image/color"

	"github.com/retroenv/iquedec/internal/palette"
)

// BytesPerPixel is the size of a pixel of a reconstructed frame.
const BytesPerPixel = 3

// Reconstruct resolves every pixel of the indexed image through the palette
// and writes the colors to dst, bottom row first as expected by a
// bottom-up DIB. The channel from the high bits of the palette value is
// written first, for BGR555 source colors this results in the blue, green,
// red byte order of 24-bit DIB pixels.
func Reconstruct(dst, indexed []byte, pal *palette.Expanded, width, height int) error {
	pixels := width * height
	if len(indexed) != pixels {
		return fmt.Errorf("indexed image has %d bytes, expected %d", len(indexed), pixels)
	}
	if len(dst) != pixels*BytesPerPixel {
		return fmt.Errorf("frame buffer has %d bytes, expected %d", len(dst), pixels*BytesPerPixel)
	}

	out := 0
	for y := height - 1; y >= 0; y-- {
		row := indexed[y*width : (y+1)*width]
		for _, index := range row {
			px := pal[index]
			dst[out] = byte(px >> 16)
			dst[out+1] = byte(px >> 8)
			dst[out+2] = byte(px)
			out += BytesPerPixel
		}
	}
	return nil
}

// ToImage converts a reconstructed frame back to a top-down image.
func ToImage(buf []byte, width, height int) (*image.RGBA, error) {
	if len(buf) != width*height*BytesPerPixel {
		return nil, fmt.Errorf("frame buffer has %d bytes, expected %d", len(buf), width*height*BytesPerPixel)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	i := 0
	for y := height - 1; y >= 0; y-- {
		for x := range width {
			img.SetRGBA(x, y, color.RGBA{R: buf[i+2], G: buf[i+1], B: buf[i], A: 0xFF})
			i += BytesPerPixel
		}
	}
	return img, nil
}
