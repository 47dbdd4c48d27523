package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/iquedec/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "rom.gba", "out.avi"},
			want: options.Program{
				Parameters: options.Parameters{Input: "rom.gba", Output: "out.avi"},
				Flags:      options.Flags{Workers: 1},
			},
		},
		{
			name: "all flags",
			args: []string{"prog", "-workers", "4", "-frames", "dump", "-verify", "-q", "rom.gba", "out.avi"},
			want: options.Program{
				Parameters: options.Parameters{Input: "rom.gba", Output: "out.avi", FramesDir: "dump"},
				Flags:      options.Flags{Workers: 4, Verify: true, Quiet: true},
			},
		},
		{
			name: "debug overrides quiet",
			args: []string{"prog", "-debug", "-q", "rom.gba", "out.avi"},
			want: options.Program{
				Parameters: options.Parameters{Input: "rom.gba", Output: "out.avi"},
				Flags:      options.Flags{Workers: 1, Debug: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsUsage(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{name: "no arguments", args: []string{"prog"}, usage: true},
		{name: "missing output", args: []string{"prog", "rom.gba"}, usage: true},
		{name: "too many arguments", args: []string{"prog", "a", "b", "c"}, usage: true},
		{name: "option after files", args: []string{"prog", "rom.gba", "-q"}, usage: true},
		{name: "flag after files", args: []string{"prog", "rom.gba", "-debug"}, usage: true},
		{name: "invalid worker count", args: []string{"prog", "-workers", "0", "rom.gba", "out.avi"}, usage: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestValidateArgs(t *testing.T) {
	assert.NoError(t, validateArgs([]string{"rom.gba", "out.avi"}))
	assert.NoError(t, validateArgs([]string{"-", "out.avi"}))
	assert.Error(t, validateArgs([]string{"rom.gba", "-verify"}))
}
