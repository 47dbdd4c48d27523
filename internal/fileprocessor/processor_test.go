package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/iquedec/internal/avi"
	"github.com/retroenv/iquedec/internal/framedump"
	"github.com/retroenv/iquedec/internal/layout"
	"github.com/retroenv/iquedec/internal/options"
	"github.com/retroenv/iquedec/internal/palette"
	"github.com/retroenv/iquedec/internal/romtest"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/bmp"
)

// writeTestROM writes a ROM with three 8x4 frames to dir.
func writeTestROM(t *testing.T, dir string) (layout.Layout, string) {
	t.Helper()

	r := romtest.ROM{
		Width:  8,
		Height: 4,
		Audio:  []byte{0x80, 0x00, 0xFF, 0x7F, 0x81},
	}
	for i := range 3 {
		r.Images = append(r.Images, bytes.Repeat([]byte{byte(i)}, r.Width*r.Height))
		var pal palette.Raw
		pal[i] = 0x7FFF
		r.Palettes = append(r.Palettes, pal)
	}
	l, data := r.Build()

	path := filepath.Join(dir, "video.gba")
	assert.NoError(t, os.WriteFile(path, data, 0o644))
	return l, path
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	l, input := writeTestROM(t, dir)

	for _, workers := range []int{1, 2} {
		opts := options.Program{
			Parameters: options.Parameters{
				Input:     input,
				Output:    filepath.Join(dir, "out.avi"),
				FramesDir: filepath.Join(dir, "frames"),
			},
			Flags: options.Flags{
				Workers: workers,
				Verify:  true,
			},
		}

		err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, l)
		assert.NoError(t, err)

		f, err := os.Open(opts.Output)
		assert.NoError(t, err)
		info, err := avi.ReadInfo(f)
		_ = f.Close()
		assert.NoError(t, err)
		assert.Equal(t, 3, info.VideoChunks)
		assert.Equal(t, 5, info.AudioBytes)

		samples, err := os.ReadFile(filepath.Join(opts.FramesDir, framedump.AudioFile))
		assert.NoError(t, err)
		assert.True(t, bytes.Equal([]byte{0x00, 0x80, 0x7F, 0xFF, 0x01}, samples))

		bmpFile, err := os.Open(filepath.Join(opts.FramesDir, framedump.FrameName(2)))
		assert.NoError(t, err)
		img, err := bmp.Decode(bmpFile)
		_ = bmpFile.Close()
		assert.NoError(t, err)

		r, g, b, _ := img.At(0, 0).RGBA()
		assert.Equal(t, uint32(0xF8F8), r)
		assert.Equal(t, uint32(0xF8F8), g)
		assert.Equal(t, uint32(0xF8F8), b)
	}
}

func TestProcessFileOpenErrors(t *testing.T) {
	dir := t.TempDir()
	l, input := writeTestROM(t, dir)

	t.Run("missing input", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{
				Input:  filepath.Join(dir, "missing.gba"),
				Output: filepath.Join(dir, "out.avi"),
			},
			Flags: options.Flags{Workers: 1},
		}
		err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, l)
		assert.True(t, errors.Is(err, ErrOpenInput))
	})

	t.Run("input too small", func(t *testing.T) {
		small := filepath.Join(dir, "small.gba")
		assert.NoError(t, os.WriteFile(small, []byte{1, 2, 3}, 0o644))

		opts := options.Program{
			Parameters: options.Parameters{
				Input:  small,
				Output: filepath.Join(dir, "out.avi"),
			},
			Flags: options.Flags{Workers: 1},
		}
		err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, l)
		assert.True(t, errors.Is(err, ErrOpenInput))
	})

	t.Run("unwritable output", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{
				Input:  input,
				Output: filepath.Join(dir, "missing", "out.avi"),
			},
			Flags: options.Flags{Workers: 1},
		}
		err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, l)
		assert.True(t, errors.Is(err, ErrOpenOutput))
	})
}

func TestProcessFileCancelled(t *testing.T) {
	dir := t.TempDir()
	l, input := writeTestROM(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options.Program{
		Parameters: options.Parameters{
			Input:  input,
			Output: filepath.Join(dir, "out.avi"),
		},
		Flags: options.Flags{Workers: 1},
	}
	err := ProcessFile(ctx, log.NewTestLogger(t), opts, l)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	cfg := log.DefaultConfig()
	cfg.Output = &buf
	cfg.TimeFormat = "-"
	logger := log.NewWithConfig(cfg)

	PrintBanner(logger, options.Program{}, "v1.2.0", "0123456789abcdef", "2026-01-02")
	output := buf.String()
	assert.True(t, strings.Contains(output, "v1.2.0"), output)
	assert.True(t, strings.Contains(output, "commit: 0123456789abcdef"), output)
	assert.True(t, strings.Contains(output, "built at: 2026-01-02"), output)

	buf.Reset()
	PrintBanner(logger, options.Program{Flags: options.Flags{Quiet: true}}, "v1.2.0", "", "")
	assert.Equal(t, 0, buf.Len())
}
