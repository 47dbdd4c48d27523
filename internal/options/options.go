// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input     string `arg:"positional" usage:"ROM image to extract the video from"`
	Output    string `arg:"positional" usage:"output .avi file"`
	FramesDir string `flag:"frames" usage:"also write every frame as .bmp file to this directory"`
}

// Flags contains behavior options.
type Flags struct {
	Workers int  `flag:"workers" usage:"number of frames decoded in parallel" default:"1"`
	Verify  bool `flag:"verify" usage:"verify the written .avi file by reading it back"`
	Debug   bool `flag:"debug" usage:"enable debug logging"`
	Quiet   bool `flag:"q" usage:"quiet mode"`
}

// Program options of the extractor.
type Program struct {
	Parameters
	Flags
}
