package pipeline

import (
	"fmt"

	"github.com/retroenv/iquedec/internal/frame"
	"github.com/retroenv/iquedec/internal/layout"
	"github.com/retroenv/iquedec/internal/lz77"
	"github.com/retroenv/iquedec/internal/palette"
	"github.com/retroenv/iquedec/internal/rom"
	"github.com/retroenv/retrogolib/log"
)

// source contains the raw ROM data of a single frame.
type source struct {
	index      int
	compressed []byte // compressed block followed by unrelated ROM data
	palette    []byte
}

// readSource reads the compressed image and the palette of frame i into the
// given buffers.
func (p *Pipeline) readSource(img *rom.Image, tables addressTables, i int, window, pal []byte) (source, error) {
	frameOffset, err := img.Translate(tables.frames[i])
	if err != nil {
		return source{}, fmt.Errorf("frame %d: image address: %w", i, err)
	}
	paletteOffset, err := img.Translate(tables.palettes[i])
	if err != nil {
		return source{}, fmt.Errorf("frame %d: palette address: %w", i, err)
	}

	compressed, err := img.ReadWindow(window, frameOffset)
	if err != nil {
		return source{}, fmt.Errorf("frame %d: reading image: %w", i, err)
	}
	if err := img.ReadFull(pal, paletteOffset); err != nil {
		return source{}, fmt.Errorf("frame %d: reading palette: %w", i, err)
	}

	p.logger.Debug("Frame read",
		log.Int("frame", i),
		log.Hex("image", frameOffset),
		log.Hex("palette", paletteOffset))

	return source{
		index:      i,
		compressed: compressed,
		palette:    pal,
	}, nil
}

// decoder owns the work buffers of the per frame transformations.
type decoder struct {
	width    int
	height   int
	indexed  []byte
	raw      palette.Raw
	expanded palette.Expanded
}

func newDecoder(l layout.Layout) *decoder {
	return &decoder{
		width:   l.Width,
		height:  l.Height,
		indexed: make([]byte, l.Pixels()),
	}
}

// decode decompresses the indexed image, expands the palette and writes
// the reconstructed frame to out.
func (d *decoder) decode(out []byte, src source) error {
	n, err := lz77.Decompress(src.compressed, d.indexed)
	if err != nil {
		return fmt.Errorf("decompressing image: %w", err)
	}
	if n != len(d.indexed) {
		return fmt.Errorf("%w: image has %d bytes, expected %d", lz77.ErrDecode, n, len(d.indexed))
	}

	if err := palette.Decode(&d.raw, src.palette); err != nil {
		return fmt.Errorf("decoding palette: %w", err)
	}
	palette.ExpandTable(&d.expanded, &d.raw)

	if err := frame.Reconstruct(out, d.indexed, &d.expanded, d.width, d.height); err != nil {
		return fmt.Errorf("reconstructing frame: %w", err)
	}
	return nil
}
