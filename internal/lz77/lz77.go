// Package lz77 implements a decoder for the LZ77 variant used by the GBA BIOS
// decompression calls.
//
// A block starts with a 4 byte little endian header, the upper 24 bits hold
// the decompressed length. The payload is a sequence of control bytes, each
// followed by up to 8 tokens. The control bits are consumed from the most
// significant bit down, a set bit marks a 2 byte back-reference and a clear
// bit a literal byte.
package lz77

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	headerSize = 4

	minMatch    = 3
	minDistance = 1
)

// ErrDecode is the base error of all decoding failures.
var ErrDecode = errors.New("lz77 decode error")

// Decoding errors, all of them wrap ErrDecode.
var (
	ErrHeader    = fmt.Errorf("%w: block shorter than header", ErrDecode)
	ErrCapacity  = fmt.Errorf("%w: declared length exceeds output buffer", ErrDecode)
	ErrTruncated = fmt.Errorf("%w: unexpected end of input", ErrDecode)
	ErrDistance  = fmt.Errorf("%w: back-reference before start of output", ErrDecode)
)

// DecodedLength returns the decompressed length declared in the block header.
func DecodedLength(src []byte) (int, error) {
	if len(src) < headerSize {
		return 0, ErrHeader
	}
	return int(binary.LittleEndian.Uint32(src) >> 8), nil
}

// Decompress decodes the block at the start of src into dst and returns the
// number of bytes written, which is always the length declared in the header.
// Bytes of src after the end of the block are ignored.
func Decompress(src, dst []byte) (int, error) {
	length, err := DecodedLength(src)
	if err != nil {
		return 0, err
	}
	if length > len(dst) {
		return 0, fmt.Errorf("%w: declared=%d capacity=%d", ErrCapacity, length, len(dst))
	}

	in := headerSize
	out := 0

	for out < length {
		if in >= len(src) {
			return out, fmt.Errorf("%w: control byte at input offset %d", ErrTruncated, in)
		}
		flags := src[in]
		in++

		for mask := byte(0x80); mask != 0 && out < length; mask >>= 1 {
			if flags&mask == 0 {
				if in >= len(src) {
					return out, fmt.Errorf("%w: literal at input offset %d", ErrTruncated, in)
				}
				dst[out] = src[in]
				in++
				out++
				continue
			}

			if in+2 > len(src) {
				return out, fmt.Errorf("%w: back-reference at input offset %d", ErrTruncated, in)
			}
			b0, b1 := src[in], src[in+1]
			in += 2

			distance := (int(b0&0x0F)<<8 | int(b1)) + minDistance
			count := int(b0>>4) + minMatch
			if distance > out {
				return out, fmt.Errorf("%w: distance=%d written=%d", ErrDistance, distance, out)
			}
			if out+count > length {
				count = length - out
			}

			// source and destination overlap when distance < count, every
			// copied byte has to be visible to the next read
			for ; count > 0; count-- {
				dst[out] = dst[out-distance]
				out++
			}
		}
	}

	return out, nil
}
