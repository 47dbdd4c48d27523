package avi

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

type mainHeader struct {
	MicroSecPerFrame    uint32
	MaxBytesPerSec      uint32
	PaddingGranularity  uint32
	Flags               uint32
	TotalFrames         uint32
	InitialFrames       uint32
	Streams             uint32
	SuggestedBufferSize uint32
	Width               uint32
	Height              uint32
	Reserved            [4]uint32
}

type streamHeader struct {
	Type                [4]byte
	Handler             [4]byte
	Flags               uint32
	Priority            uint16
	Language            uint16
	InitialFrames       uint32
	Scale               uint32
	Rate                uint32
	Start               uint32
	Length              uint32
	SuggestedBufferSize uint32
	Quality             uint32
	SampleSize          uint32
	Frame               [4]int16
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32 // positive for bottom-up rows
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type waveFormat struct {
	FormatTag      uint16
	Channels       uint16
	SamplesPerSec  uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	Size           uint16
}

// writeHeader writes everything up to and including the movi list type.
// The header has the same size for every stream length so that it can be
// rewritten in place.
func (w *Writer) writeHeader() error {
	var streams [][]byte
	streams = append(streams, list("strl",
		chunk("strh", w.videoStreamHeader()),
		chunk("strf", w.bitmapInfo()),
	))
	if w.cfg.Audio != nil {
		streams = append(streams, list("strl",
			chunk("strh", w.audioStreamHeader()),
			chunk("strf", w.waveFormat()),
		))
	}

	hdrl := list("hdrl", append([][]byte{chunk("avih", w.mainHeader(len(streams)))}, streams...)...)

	var buf bytes.Buffer
	writeFourCC(&buf, "RIFF")
	riffSize := int64(4+len(hdrl)+12) + w.moviSize
	if w.closed {
		riffSize += int64(8 + len(w.index)*binary.Size(indexEntry{}))
	}
	_ = binary.Write(&buf, binary.LittleEndian, uint32(riffSize))
	writeFourCC(&buf, "AVI ")
	buf.Write(hdrl)
	writeFourCC(&buf, "LIST")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(4+w.moviSize))
	writeFourCC(&buf, "movi")

	if _, err := w.ws.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: writing header: %w", ErrMux, err)
	}
	return nil
}

func (w *Writer) mainHeader(streams int) mainHeader {
	maxBytesPerSec := w.frameSize * w.cfg.FrameRate
	if w.cfg.Audio != nil {
		maxBytesPerSec += w.cfg.Audio.SampleRate * blockAlign(w.cfg.Audio)
	}
	return mainHeader{
		MicroSecPerFrame:    uint32(1000000 / w.cfg.FrameRate),
		MaxBytesPerSec:      uint32(maxBytesPerSec),
		Flags:               flagHasIndex,
		TotalFrames:         uint32(w.frames),
		Streams:             uint32(streams),
		SuggestedBufferSize: uint32(max(w.maxChunk, w.frameSize)),
		Width:               uint32(w.cfg.Width),
		Height:              uint32(w.cfg.Height),
	}
}

func (w *Writer) videoStreamHeader() streamHeader {
	return streamHeader{
		Type:                [4]byte{'v', 'i', 'd', 's'},
		Handler:             w.cfg.FourCC,
		Scale:               1,
		Rate:                uint32(w.cfg.FrameRate),
		Length:              uint32(w.frames),
		SuggestedBufferSize: uint32(w.frameSize),
		Quality:             qualityDefault,
		Frame:               [4]int16{0, 0, int16(w.cfg.Width), int16(w.cfg.Height)},
	}
}

func (w *Writer) bitmapInfo() bitmapInfoHeader {
	return bitmapInfoHeader{
		Size:        uint32(binary.Size(bitmapInfoHeader{})),
		Width:       int32(w.cfg.Width),
		Height:      int32(w.cfg.Height),
		Planes:      1,
		BitCount:    bitsPerPixel,
		Compression: binary.LittleEndian.Uint32(w.cfg.FourCC[:]),
		SizeImage:   uint32(w.frameSize),
	}
}

func (w *Writer) audioStreamHeader() streamHeader {
	align := blockAlign(w.cfg.Audio)
	return streamHeader{
		Type:                [4]byte{'a', 'u', 'd', 's'},
		Scale:               uint32(align),
		Rate:                uint32(w.cfg.Audio.SampleRate * align),
		Length:              uint32(w.audioBytes / align),
		SuggestedBufferSize: uint32(w.audioBytes),
		Quality:             qualityDefault,
		SampleSize:          uint32(align),
	}
}

func (w *Writer) waveFormat() waveFormat {
	align := blockAlign(w.cfg.Audio)
	return waveFormat{
		FormatTag:      formatPCM,
		Channels:       uint16(w.cfg.Audio.Channels),
		SamplesPerSec:  uint32(w.cfg.Audio.SampleRate),
		AvgBytesPerSec: uint32(w.cfg.Audio.SampleRate * align),
		BlockAlign:     uint16(align),
		BitsPerSample:  uint16(w.cfg.Audio.BytesPerSample() * 8),
	}
}

func writeFourCC(buf *bytes.Buffer, id string) {
	buf.WriteString(id)
}

// chunk encodes v as a RIFF chunk.
func chunk(id string, v any) []byte {
	var buf bytes.Buffer
	writeFourCC(&buf, id)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(binary.Size(v)))
	_ = binary.Write(&buf, binary.LittleEndian, v)
	if buf.Len()%2 == 1 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// list encodes a RIFF list of the given type containing the parts.
func list(kind string, parts ...[]byte) []byte {
	size := 4
	for _, part := range parts {
		size += len(part)
	}

	var buf bytes.Buffer
	writeFourCC(&buf, "LIST")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(size))
	writeFourCC(&buf, kind)
	for _, part := range parts {
		buf.Write(part)
	}
	return buf.Bytes()
}
