package pipeline

import (
	"context"
	"fmt"

	"github.com/retroenv/iquedec/internal/rom"
	"golang.org/x/sync/errgroup"
)

type frameResult struct {
	frame []byte
	err   error
}

type job struct {
	src    source
	result chan<- frameResult
}

// runConcurrent reads the frames sequentially, decodes them on a pool of
// workers and passes them to the sink in index order. The ordering queue
// holds one result channel per frame in read order and bounds the number
// of frames in flight.
func (p *Pipeline) runConcurrent(ctx context.Context, img *rom.Image, tables addressTables, sink Sink) error {
	g, ctx := errgroup.WithContext(ctx)

	jobs := make(chan job, p.workers)
	order := make(chan chan frameResult, 2*p.workers)

	g.Go(func() error {
		defer close(jobs)
		defer close(order)
		return p.readFrames(ctx, img, tables, jobs, order)
	})

	for range p.workers {
		g.Go(func() error {
			return p.decodeFrames(ctx, jobs)
		})
	}

	g.Go(func() error {
		return p.emitFrames(ctx, sink, order)
	})

	return g.Wait()
}

func (p *Pipeline) readFrames(ctx context.Context, img *rom.Image, tables addressTables,
	jobs chan<- job, order chan<- chan frameResult) error {

	for i := range p.layout.FrameCount {
		if err := ctx.Err(); err != nil {
			return err
		}

		window := make([]byte, p.layout.CompressedWindow())
		pal := make([]byte, p.layout.PaletteSize())

		src, err := p.readSource(img, tables, i, window, pal)
		if err != nil {
			return err
		}

		result := make(chan frameResult, 1)
		select {
		case order <- result:
		case <-ctx.Done():
			return ctx.Err()
		}
		select {
		case jobs <- job{src: src, result: result}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (p *Pipeline) decodeFrames(ctx context.Context, jobs <-chan job) error {
	dec := newDecoder(p.layout)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case j, ok := <-jobs:
			if !ok {
				return nil
			}

			out := make([]byte, p.layout.FrameSize())
			err := dec.decode(out, j.src)
			if err != nil {
				err = fmt.Errorf("frame %d: %w", j.src.index, err)
			}
			j.result <- frameResult{frame: out, err: err}
		}
	}
}

func (p *Pipeline) emitFrames(ctx context.Context, sink Sink, order <-chan chan frameResult) error {
	index := 0
	for result := range order {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case res := <-result:
			if res.err != nil {
				return res.err
			}
			if err := p.emit(sink, index, res.frame); err != nil {
				return err
			}
			index++
		}
	}
	return nil
}
