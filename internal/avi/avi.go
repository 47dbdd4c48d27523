// Package avi writes uncompressed RIFF AVI files with one 24-bit video
// stream and an optional PCM audio stream.
package avi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/audio"
)

// ErrMux is the base error of all failures to write an AVI file.
var ErrMux = errors.New("avi mux error")

const (
	flagHasIndex = 0x10 // AVIF_HASINDEX
	flagKeyFrame = 0x10 // AVIIF_KEYFRAME

	bitsPerPixel = 24
	formatPCM    = 1

	qualityDefault = 0xFFFFFFFF
)

var (
	videoChunkID = [4]byte{'0', '0', 'd', 'b'}
	audioChunkID = [4]byte{'0', '1', 'w', 'b'}
)

// blockAlign returns the size of one sample frame of all channels.
func blockAlign(f *audio.Format) int {
	return f.Channels * f.BytesPerSample()
}

// pcmFormat reports whether samples of the format can be stored as WAVE
// PCM, which is unsigned for 8-bit and signed little endian for 16-bit.
func pcmFormat(f audio.SampleFormat) bool {
	return f == audio.FormatU8 || f == audio.FormatS16LSB
}

// Config describes the streams of the file.
type Config struct {
	Width     int
	Height    int
	FourCC    [4]byte // all zero for uncompressed RGB
	FrameRate int
	Audio     *audio.Format // nil for a file without audio stream, Samples is unused
}

func (c Config) validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: invalid geometry %dx%d", ErrMux, c.Width, c.Height)
	case c.FrameRate <= 0:
		return fmt.Errorf("%w: invalid frame rate %d", ErrMux, c.FrameRate)
	case c.Audio != nil && (c.Audio.Channels <= 0 || c.Audio.SampleRate <= 0 || !pcmFormat(c.Audio.Format)):
		return fmt.Errorf("%w: invalid audio format %+v", ErrMux, *c.Audio)
	}
	return nil
}

type indexEntry struct {
	ChunkID [4]byte
	Flags   uint32
	Offset  uint32
	Size    uint32
}

// Writer writes an AVI file. The header is written on creation and
// rewritten with the final stream lengths on Close.
type Writer struct {
	ws     io.WriteSeeker
	closer io.Closer
	cfg    Config

	frameSize  int
	moviSize   int64 // bytes written after the movi list type
	maxChunk   int
	frames     int
	audioBytes int
	index      []indexEntry
	closed     bool
}

// Create creates the file at path and writes the AVI header.
func Create(path string, cfg Config) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: creating file '%s': %w", ErrMux, path, err)
	}

	w, err := New(f, cfg)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// New returns a writer that writes to ws, the header is written immediately.
func New(ws io.WriteSeeker, cfg Config) (*Writer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	w := &Writer{
		ws:        ws,
		cfg:       cfg,
		frameSize: cfg.Width * cfg.Height * bitsPerPixel / 8,
	}
	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

// Frames returns the number of video frames written.
func (w *Writer) Frames() int {
	return w.frames
}

// AddVideoFrame writes one frame of bottom-up 24-bit pixels.
func (w *Writer) AddVideoFrame(frame []byte) error {
	if len(frame) != w.frameSize {
		return fmt.Errorf("%w: frame has %d bytes, expected %d", ErrMux, len(frame), w.frameSize)
	}
	if err := w.writeChunk(videoChunkID, frame); err != nil {
		return err
	}
	w.frames++
	return nil
}

// AddAudio writes a block of PCM samples.
func (w *Writer) AddAudio(samples []byte) error {
	if w.cfg.Audio == nil {
		return fmt.Errorf("%w: file has no audio stream", ErrMux)
	}
	if err := w.writeChunk(audioChunkID, samples); err != nil {
		return err
	}
	w.audioBytes += len(samples)
	return nil
}

// Close writes the index, updates the header and closes the file if the
// writer was created by Create.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.finish()
	if w.closer != nil {
		if closeErr := w.closer.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: closing file: %w", ErrMux, closeErr)
		}
	}
	return err
}

func (w *Writer) finish() error {
	var idx bytes.Buffer
	writeFourCC(&idx, "idx1")
	_ = binary.Write(&idx, binary.LittleEndian, uint32(len(w.index)*binary.Size(indexEntry{})))
	_ = binary.Write(&idx, binary.LittleEndian, w.index)
	if _, err := w.ws.Write(idx.Bytes()); err != nil {
		return fmt.Errorf("%w: writing index: %w", ErrMux, err)
	}

	if _, err := w.ws.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: seeking to header: %w", ErrMux, err)
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	if _, err := w.ws.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("%w: seeking to end: %w", ErrMux, err)
	}
	return nil
}

func (w *Writer) writeChunk(id [4]byte, data []byte) error {
	if w.closed {
		return fmt.Errorf("%w: writer is closed", ErrMux)
	}

	var hdr [8]byte
	copy(hdr[:4], id[:])
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(data)))
	if _, err := w.ws.Write(hdr[:]); err != nil {
		return fmt.Errorf("%w: writing chunk header: %w", ErrMux, err)
	}
	if _, err := w.ws.Write(data); err != nil {
		return fmt.Errorf("%w: writing chunk data: %w", ErrMux, err)
	}
	size := int64(len(hdr) + len(data))
	if len(data)%2 == 1 {
		if _, err := w.ws.Write([]byte{0}); err != nil {
			return fmt.Errorf("%w: writing chunk padding: %w", ErrMux, err)
		}
		size++
	}

	w.index = append(w.index, indexEntry{
		ChunkID: id,
		Flags:   flagKeyFrame,
		Offset:  uint32(4 + w.moviSize), // relative to the movi list type
		Size:    uint32(len(data)),
	})
	w.moviSize += size
	w.maxChunk = max(w.maxChunk, len(data))
	return nil
}
