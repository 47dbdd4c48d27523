// Package pipeline orchestrates the extraction of the video frames and the
// audio track from a ROM image.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/iquedec/internal/audio"
	"github.com/retroenv/iquedec/internal/layout"
	"github.com/retroenv/iquedec/internal/rom"
	"github.com/retroenv/retrogolib/log"
)

// ErrMux is returned when the sink rejects a frame or the audio block.
var ErrMux = errors.New("output rejected data")

// Sink receives the extracted stream. Frames are passed in index order
// followed by a single audio block. The buffers are only valid for the
// duration of the call.
type Sink interface {
	AddVideoFrame(frame []byte) error
	AddAudio(samples []byte) error
}

// Result summarizes a completed extraction.
type Result struct {
	Frames     int
	AudioBytes int
}

// Pipeline orchestrates the complete extraction workflow.
type Pipeline struct {
	logger  *log.Logger
	layout  layout.Layout
	workers int
}

// New creates a new extraction pipeline. With more than one worker the
// frames are decoded concurrently while still being passed to the sink in
// order.
func New(logger *log.Logger, l layout.Layout, workers int) *Pipeline {
	return &Pipeline{
		logger:  logger,
		layout:  l,
		workers: max(workers, 1),
	}
}

// Execute extracts all frames and the audio block of the image and passes
// them to the sink. Any read, decode or sink error aborts the run.
func (p *Pipeline) Execute(ctx context.Context, img *rom.Image, sink Sink) (Result, error) {
	var result Result

	if err := p.layout.Validate(); err != nil {
		return result, err
	}

	tables, err := p.readTables(img)
	if err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	p.logger.Info("Extracting frames",
		log.Int("frames", p.layout.FrameCount),
		log.Int("workers", p.workers))

	if p.workers == 1 {
		err = p.runSequential(ctx, img, tables, sink)
	} else {
		err = p.runConcurrent(ctx, img, tables, sink)
	}
	if err != nil {
		return result, err
	}
	result.Frames = p.layout.FrameCount

	p.logger.Info("Writing audio", log.Int("bytes", p.layout.AudioLength))

	samples, err := p.readAudio(img)
	if err != nil {
		return result, err
	}
	if err := sink.AddAudio(samples); err != nil {
		return result, fmt.Errorf("%w: audio: %w", ErrMux, err)
	}
	result.AudioBytes = len(samples)

	return result, nil
}

// addressTables holds the frame and palette address tables, frame i uses
// palette i.
type addressTables struct {
	frames   []uint32
	palettes []uint32
}

func (p *Pipeline) readTables(img *rom.Image) (addressTables, error) {
	frames, err := img.ReadTable(p.layout.FrameTable, p.layout.FrameCount)
	if err != nil {
		return addressTables{}, fmt.Errorf("reading frame table: %w", err)
	}
	palettes, err := img.ReadTable(p.layout.PaletteTable, p.layout.FrameCount)
	if err != nil {
		return addressTables{}, fmt.Errorf("reading palette table: %w", err)
	}

	p.logger.Debug("Address tables loaded",
		log.Hex("frame_table", p.layout.FrameTable),
		log.Hex("palette_table", p.layout.PaletteTable))

	return addressTables{
		frames:   frames,
		palettes: palettes,
	}, nil
}

func (p *Pipeline) readAudio(img *rom.Image) ([]byte, error) {
	samples := make([]byte, p.layout.AudioLength)
	if err := img.ReadFull(samples, p.layout.Audio); err != nil {
		return nil, fmt.Errorf("reading audio: %w", err)
	}
	audio.ConvertInPlace(samples)
	return samples, nil
}

func (p *Pipeline) runSequential(ctx context.Context, img *rom.Image, tables addressTables, sink Sink) error {
	window := make([]byte, p.layout.CompressedWindow())
	pal := make([]byte, p.layout.PaletteSize())
	out := make([]byte, p.layout.FrameSize())
	dec := newDecoder(p.layout)

	for i := range p.layout.FrameCount {
		if err := ctx.Err(); err != nil {
			return err
		}

		src, err := p.readSource(img, tables, i, window, pal)
		if err != nil {
			return err
		}
		if err := dec.decode(out, src); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := p.emit(sink, i, out); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) emit(sink Sink, index int, frame []byte) error {
	if err := sink.AddVideoFrame(frame); err != nil {
		return fmt.Errorf("%w: frame %d: %w", ErrMux, index, err)
	}
	p.logger.Debug("Frame written",
		log.Int("frame", index+1),
		log.Int("total", p.layout.FrameCount))
	return nil
}
