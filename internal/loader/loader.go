// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/iquedec/internal/layout"
	"github.com/retroenv/iquedec/internal/rom"
)

// ErrTooSmall is returned for ROM files that do not contain the address
// tables and the audio block of the layout.
var ErrTooSmall = errors.New("ROM image too small for layout")

// Loader handles opening ROM files from disk.
type Loader struct {
	layout layout.Layout
}

// New creates a new ROM loader for the given layout.
func New(l layout.Layout) *Loader {
	return &Loader{
		layout: l,
	}
}

// Load opens the ROM file and returns an image reading from it. The
// returned closer releases the file and has to be called once the image is
// no longer used.
func (l *Loader) Load(path string) (*rom.Image, io.Closer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file %s: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, nil, fmt.Errorf("reading file info %s: %w", path, err)
	}
	if stat.IsDir() {
		_ = file.Close()
		return nil, nil, fmt.Errorf("opening file %s: is a directory", path)
	}

	if minSize := l.layout.MinROMSize(); stat.Size() < minSize {
		_ = file.Close()
		return nil, nil, fmt.Errorf("%w: %s has 0x%X bytes, expected at least 0x%X",
			ErrTooSmall, path, stat.Size(), minSize)
	}

	return rom.New(file, stat.Size(), l.layout.LoadBase), file, nil
}
