package avi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

var errFormat = errors.New("invalid avi file")

// Info summarizes the content of an AVI file.
type Info struct {
	Width       int
	Height      int
	Streams     int
	TotalFrames int // frame count declared in the main header
	VideoChunks int
	AudioBytes  int
	IndexLength int
	VideoDigest uint64 // xxhash64 of all video chunk payloads in file order
	AudioDigest uint64 // xxhash64 of all audio chunk payloads in file order
}

// ReadInfo walks the chunks of an AVI file and counts the stream data.
func ReadInfo(r io.ReadSeeker) (Info, error) {
	var info Info

	id, size, err := readChunkHeader(r)
	if err != nil {
		return info, err
	}
	kind, err := readFourCC(r)
	if err != nil {
		return info, err
	}
	if id != "RIFF" || kind != "AVI " {
		return info, fmt.Errorf("%w: file type %q %q", errFormat, id, kind)
	}

	remaining := int64(size) - 4
	for remaining > 0 {
		id, size, err := readChunkHeader(r)
		if err != nil {
			return info, err
		}
		padded := int64(size) + int64(size%2)
		remaining -= 8 + padded

		switch id {
		case "LIST":
			if err := readList(r, int64(size), &info); err != nil {
				return info, err
			}
			if size%2 == 1 {
				if err := skip(r, 1); err != nil {
					return info, err
				}
			}

		case "idx1":
			info.IndexLength = int(size) / binary.Size(indexEntry{})
			if err := skip(r, padded); err != nil {
				return info, err
			}

		default:
			if err := skip(r, padded); err != nil {
				return info, err
			}
		}
	}

	return info, nil
}

func readList(r io.ReadSeeker, size int64, info *Info) error {
	kind, err := readFourCC(r)
	if err != nil {
		return err
	}
	size -= 4

	switch kind {
	case "hdrl":
		return readHeaderList(r, size, info)
	case "movi":
		return readMovieList(r, size, info)
	default:
		return skip(r, size)
	}
}

func readHeaderList(r io.ReadSeeker, size int64, info *Info) error {
	id, chunkSize, err := readChunkHeader(r)
	if err != nil {
		return err
	}
	if id != "avih" || int(chunkSize) != binary.Size(mainHeader{}) {
		return fmt.Errorf("%w: missing main header", errFormat)
	}

	var hdr mainHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("%w: reading main header: %w", errFormat, err)
	}
	info.Width = int(hdr.Width)
	info.Height = int(hdr.Height)
	info.Streams = int(hdr.Streams)
	info.TotalFrames = int(hdr.TotalFrames)

	return skip(r, size-8-int64(chunkSize))
}

func readMovieList(r io.ReadSeeker, size int64, info *Info) error {
	video := xxhash.New()
	audio := xxhash.New()

	for size > 0 {
		id, chunkSize, err := readChunkHeader(r)
		if err != nil {
			return err
		}
		padded := int64(chunkSize) + int64(chunkSize%2)
		size -= 8 + padded

		var digest *xxhash.Digest
		switch id {
		case string(videoChunkID[:]):
			info.VideoChunks++
			digest = video
		case string(audioChunkID[:]):
			info.AudioBytes += int(chunkSize)
			digest = audio
		}

		if digest != nil {
			if _, err := io.CopyN(digest, r, int64(chunkSize)); err != nil {
				return fmt.Errorf("%w: reading chunk %q: %w", errFormat, id, err)
			}
			padded -= int64(chunkSize)
		}
		if err := skip(r, padded); err != nil {
			return err
		}
	}

	info.VideoDigest = video.Sum64()
	info.AudioDigest = audio.Sum64()
	return nil
}

func readChunkHeader(r io.Reader) (string, uint32, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return "", 0, fmt.Errorf("%w: reading chunk header: %w", errFormat, err)
	}
	return string(hdr[:4]), binary.LittleEndian.Uint32(hdr[4:]), nil
}

func readFourCC(r io.Reader) (string, error) {
	var id [4]byte
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return "", fmt.Errorf("%w: reading type: %w", errFormat, err)
	}
	return string(id[:]), nil
}

func skip(r io.Seeker, n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: chunk exceeds parent size", errFormat)
	}
	if _, err := r.Seek(n, io.SeekCurrent); err != nil {
		return fmt.Errorf("seeking: %w", err)
	}
	return nil
}
