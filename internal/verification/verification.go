// Package verification verifies that the written output file contains the
// complete extracted stream.
package verification

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/iquedec/internal/avi"
	"github.com/retroenv/iquedec/internal/layout"
	"github.com/retroenv/iquedec/internal/options"
	"github.com/retroenv/iquedec/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

// ErrMismatch is returned when the output file does not match the
// extraction result.
var ErrMismatch = errors.New("output verification failed")

// VerifyOutput reads back the written AVI file and compares its stream
// content with the extraction result and the digest of the extracted data.
func VerifyOutput(logger *log.Logger, opts options.Program, l layout.Layout,
	result pipeline.Result, digest *Digest) error {

	file, err := os.Open(opts.Output)
	if err != nil {
		return fmt.Errorf("opening file '%s': %w", opts.Output, err)
	}
	defer func() { _ = file.Close() }()

	info, err := avi.ReadInfo(file)
	if err != nil {
		return fmt.Errorf("reading file '%s': %w", opts.Output, err)
	}

	mismatches := compareInfo(logger, info, l, result)
	mismatches += compareDigest(logger, info, digest)
	if mismatches == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d mismatches", ErrMismatch, mismatches)
}

func compareInfo(logger *log.Logger, info avi.Info, l layout.Layout, result pipeline.Result) int {
	checks := []struct {
		name     string
		expected int
		got      int
	}{
		{name: "width", expected: l.Width, got: info.Width},
		{name: "height", expected: l.Height, got: info.Height},
		{name: "declared frames", expected: result.Frames, got: info.TotalFrames},
		{name: "video chunks", expected: result.Frames, got: info.VideoChunks},
		{name: "audio bytes", expected: result.AudioBytes, got: info.AudioBytes},
		{name: "index entries", expected: result.Frames + 1, got: info.IndexLength},
	}

	var mismatches int
	for _, check := range checks {
		if check.expected == check.got {
			continue
		}

		mismatches++
		logger.Error("Output mismatch",
			log.String("field", check.name),
			log.Int("expected", check.expected),
			log.Int("got", check.got))
	}
	return mismatches
}

func compareDigest(logger *log.Logger, info avi.Info, digest *Digest) int {
	checks := []struct {
		name     string
		expected uint64
		got      uint64
	}{
		{name: "video data", expected: digest.Video(), got: info.VideoDigest},
		{name: "audio data", expected: digest.Audio(), got: info.AudioDigest},
	}

	var mismatches int
	for _, check := range checks {
		if check.expected == check.got {
			continue
		}

		mismatches++
		logger.Error("Output content mismatch",
			log.String("stream", check.name),
			log.Hex("expected", check.expected),
			log.Hex("got", check.got))
	}
	return mismatches
}
