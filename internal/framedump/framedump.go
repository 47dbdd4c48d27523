// Package framedump writes reconstructed frames as numbered BMP files.
package framedump

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/iquedec/internal/frame"
	"golang.org/x/image/bmp"
)

// AudioFile is the name of the raw unsigned 8-bit PCM file written to the
// dump directory.
const AudioFile = "audio.pcm"

// Dumper writes every frame to its own BMP file in a directory.
type Dumper struct {
	dir    string
	width  int
	height int
	frames int
}

// New creates the dump directory if needed.
func New(dir string, width, height int) (*Dumper, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory '%s': %w", dir, err)
	}
	return &Dumper{
		dir:    dir,
		width:  width,
		height: height,
	}, nil
}

// FrameName returns the file name of the frame with the given index.
func FrameName(index int) string {
	return fmt.Sprintf("frame_%04d.bmp", index)
}

// AddVideoFrame writes the next frame.
func (d *Dumper) AddVideoFrame(buf []byte) error {
	img, err := frame.ToImage(buf, d.width, d.height)
	if err != nil {
		return err
	}

	path := filepath.Join(d.dir, FrameName(d.frames))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", path, err)
	}
	if err := bmp.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding bmp '%s': %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing file '%s': %w", path, err)
	}

	d.frames++
	return nil
}

// AddAudio writes the samples to the raw audio file.
func (d *Dumper) AddAudio(samples []byte) error {
	path := filepath.Join(d.dir, AudioFile)
	if err := os.WriteFile(path, samples, 0o644); err != nil {
		return fmt.Errorf("writing file '%s': %w", path, err)
	}
	return nil
}
