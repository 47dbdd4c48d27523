// Package audio converts 8-bit PCM samples between signed and unsigned
// representation.
package audio

import "fmt"

const signBit = 0x80

// Convert writes the samples of src with flipped sign bit to dst. Applying
// it twice restores the original samples. dst and src may be the same slice.
func Convert(dst, src []byte) error {
	if len(dst) != len(src) {
		return fmt.Errorf("destination has %d bytes, source %d", len(dst), len(src))
	}
	for i, b := range src {
		dst[i] = b ^ signBit
	}
	return nil
}

// ConvertInPlace flips the sign bit of every sample of buf.
func ConvertInPlace(buf []byte) {
	_ = Convert(buf, buf)
}
