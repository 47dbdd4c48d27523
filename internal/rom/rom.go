// Package rom provides bounded random access reads of a ROM image and the
// translation of ROM space addresses to file offsets.
package rom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const addressSize = 4

var (
	// ErrShortRead is returned when the image ends before the requested number of bytes.
	ErrShortRead = errors.New("short read")
	// ErrAddress is returned for addresses that are not mapped into the image.
	ErrAddress = errors.New("address outside of ROM image")
)

// Image is a ROM image of known size mapped at a fixed load address.
type Image struct {
	r        io.ReaderAt
	size     int64
	loadBase uint32
}

// New returns an image that reads from r. The size limits all reads and
// translated addresses.
func New(r io.ReaderAt, size int64, loadBase uint32) *Image {
	return &Image{
		r:        r,
		size:     size,
		loadBase: loadBase,
	}
}

// Size returns the size of the image in bytes.
func (img *Image) Size() int64 {
	return img.size
}

// Translate converts an address in ROM space to a file offset.
func (img *Image) Translate(address uint32) (int64, error) {
	if address < img.loadBase {
		return 0, fmt.Errorf("%w: 0x%08X below load base 0x%08X", ErrAddress, address, img.loadBase)
	}
	offset := int64(address - img.loadBase)
	if offset >= img.size {
		return 0, fmt.Errorf("%w: 0x%08X maps to offset 0x%X, image size 0x%X",
			ErrAddress, address, offset, img.size)
	}
	return offset, nil
}

// ReadFull fills buf with the bytes at the given offset. Reads that end
// beyond the image return ErrShortRead.
func (img *Image) ReadFull(buf []byte, offset int64) error {
	if offset < 0 || offset+int64(len(buf)) > img.size {
		return fmt.Errorf("%w: %d bytes at offset 0x%X, image size 0x%X",
			ErrShortRead, len(buf), offset, img.size)
	}

	n, err := img.r.ReadAt(buf, offset)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: got %d of %d bytes at offset 0x%X", ErrShortRead, n, len(buf), offset)
	}
	return fmt.Errorf("reading %d bytes at offset 0x%X: %w", len(buf), offset, err)
}

// ReadWindow reads up to len(buf) bytes at the given offset, the read is
// clamped to the end of the image. It returns the filled part of buf.
func (img *Image) ReadWindow(buf []byte, offset int64) ([]byte, error) {
	if offset < 0 || offset >= img.size {
		return nil, fmt.Errorf("%w: offset 0x%X, image size 0x%X", ErrAddress, offset, img.size)
	}
	if remaining := img.size - offset; int64(len(buf)) > remaining {
		buf = buf[:remaining]
	}
	if err := img.ReadFull(buf, offset); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadTable reads count little endian 32-bit addresses at the given offset.
func (img *Image) ReadTable(offset int64, count int) ([]uint32, error) {
	buf := make([]byte, count*addressSize)
	if err := img.ReadFull(buf, offset); err != nil {
		return nil, fmt.Errorf("reading address table: %w", err)
	}

	table := make([]uint32, count)
	for i := range table {
		table[i] = binary.LittleEndian.Uint32(buf[i*addressSize:])
	}
	return table, nil
}
