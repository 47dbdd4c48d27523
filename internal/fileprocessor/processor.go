// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/iquedec/internal/avi"
	"github.com/retroenv/iquedec/internal/config"
	"github.com/retroenv/iquedec/internal/framedump"
	"github.com/retroenv/iquedec/internal/layout"
	"github.com/retroenv/iquedec/internal/loader"
	"github.com/retroenv/iquedec/internal/options"
	"github.com/retroenv/iquedec/internal/pipeline"
	"github.com/retroenv/iquedec/internal/verification"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrOpenInput is returned when the ROM file can not be opened.
	ErrOpenInput = errors.New("opening ROM failed")
	// ErrOpenOutput is returned when the output file can not be created.
	ErrOpenOutput = errors.New("opening output failed")
)

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, l layout.Layout) error {
	img, closer, err := loader.New(l).Load(opts.Input)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenInput, err)
	}
	defer func() { _ = closer.Close() }()

	logger.Debug("ROM loaded",
		log.String("file", opts.Input),
		log.Hex("size", img.Size()))

	writer, err := avi.Create(opts.Output, config.AVIConfig(l))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenOutput, err)
	}
	defer func() { _ = writer.Close() }()

	sinks := []pipeline.Sink{writer}
	if opts.FramesDir != "" {
		dumper, err := framedump.New(opts.FramesDir, l.Width, l.Height)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrOpenOutput, err)
		}
		sinks = append(sinks, dumper)
	}
	var digest *verification.Digest
	if opts.Verify {
		digest = verification.NewDigest()
		sinks = append(sinks, digest)
	}
	sink := pipeline.MultiSink(sinks...)

	result, err := pipeline.New(logger, l, opts.Workers).Execute(ctx, img, sink)
	if err != nil {
		return fmt.Errorf("extracting video: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finishing output: %w", err)
	}

	logger.Info("Output written",
		log.String("file", opts.Output),
		log.Int("frames", writer.Frames()),
		log.Int("audio_bytes", result.AudioBytes))

	if opts.Verify {
		if err := verification.VerifyOutput(logger, opts, l, result, digest); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}

	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("iquedec", log.String("version", buildinfo.Version(version, commit, date)))
}
