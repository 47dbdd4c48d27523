// Package palette converts GBA 15-bit color palettes to 24-bit truecolor.
package palette

import (
	"encoding/binary"
	"fmt"
)

// Entries is the number of colors of a palette.
const Entries = 256

// Size is the size of a raw palette in bytes.
const Size = Entries * 2

// Raw is a palette as stored in the ROM, every entry packs three 5-bit
// channels into the low 15 bits.
type Raw [Entries]uint16

// Expanded is a palette of 24-bit colors, the channel of bits 10-14 of the
// raw entry is stored in bits 16-23.
type Expanded [Entries]uint32

// Expand converts a single 15-bit color to 24-bit. Every channel is shifted
// into the top of its output byte, the low 3 bits stay zero.
func Expand(c uint16) uint32 {
	v := uint32(c)
	return (v&0x7C00)<<9 | (v&0x03E0)<<6 | (v&0x001F)<<3
}

// Decode reads a raw palette of little endian entries from b.
func Decode(raw *Raw, b []byte) error {
	if len(b) != Size {
		return fmt.Errorf("palette data has %d bytes, expected %d", len(b), Size)
	}
	for i := range raw {
		raw[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return nil
}

// ExpandTable converts all entries of raw into dst.
func ExpandTable(dst *Expanded, raw *Raw) {
	for i, c := range raw {
		dst[i] = Expand(c)
	}
}
