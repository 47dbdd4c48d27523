package verification

import (
	"github.com/cespare/xxhash/v2"
)

// Digest is a sink that hashes the extracted stream so that it can be
// compared with the content read back from the output file.
type Digest struct {
	video *xxhash.Digest
	audio *xxhash.Digest
}

// NewDigest returns an empty stream digest.
func NewDigest() *Digest {
	return &Digest{
		video: xxhash.New(),
		audio: xxhash.New(),
	}
}

// AddVideoFrame adds the frame to the video digest.
func (d *Digest) AddVideoFrame(frame []byte) error {
	_, err := d.video.Write(frame)
	return err
}

// AddAudio adds the samples to the audio digest.
func (d *Digest) AddAudio(samples []byte) error {
	_, err := d.audio.Write(samples)
	return err
}

// Video returns the xxhash64 of all frames added so far.
func (d *Digest) Video() uint64 {
	return d.video.Sum64()
}

// Audio returns the xxhash64 of all audio samples added so far.
func (d *Digest) Audio() uint64 {
	return d.audio.Sum64()
}
