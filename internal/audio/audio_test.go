package audio

import (
	"bytes"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestConvert(t *testing.T) {
	src := []byte{0x00, 0x7F, 0x80, 0xFF, 0x01}
	dst := make([]byte, len(src))

	assert.NoError(t, Convert(dst, src))
	assert.True(t, bytes.Equal([]byte{0x80, 0xFF, 0x00, 0x7F, 0x81}, dst))

	assert.Error(t, Convert(dst[:2], src))
}

func TestConvertInvolution(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}

	buf := bytes.Clone(src)
	ConvertInPlace(buf)
	assert.False(t, bytes.Equal(src, buf))
	ConvertInPlace(buf)
	assert.True(t, bytes.Equal(src, buf))

	once := make([]byte, len(src))
	twice := make([]byte, len(src))
	assert.NoError(t, Convert(once, src))
	assert.NoError(t, Convert(twice, once))
	assert.True(t, bytes.Equal(src, twice))
}

func TestConvertInPlaceMatchesConvert(t *testing.T) {
	src := []byte{0x00, 0x10, 0x7F, 0x80, 0xC0, 0xFF}
	want := make([]byte, len(src))
	assert.NoError(t, Convert(want, src))

	buf := bytes.Clone(src)
	ConvertInPlace(buf)
	assert.True(t, bytes.Equal(want, buf))
}
