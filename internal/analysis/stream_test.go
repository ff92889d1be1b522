package analysis

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader returns one chunk per Read call.
type chunkReader struct {
	chunks [][]byte
	err    error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func chunks(parts ...string) *chunkReader {
	r := &chunkReader{}
	for _, p := range parts {
		r.chunks = append(r.chunks, []byte(p))
	}
	return r
}

func TestConsumeStreamPushesAccumulatedText(t *testing.T) {
	var pushed []string
	text, err := ConsumeStream(chunks("Hello", " world"), func(s string) { pushed = append(pushed, s) })
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
	assert.Equal(t, []string{"Hello", "Hello world"}, pushed)
}

func TestConsumeStreamHoldsBackSplitRunes(t *testing.T) {
	word := []byte("你好")
	r := &chunkReader{chunks: [][]byte{word[:2], word[2:4], word[4:]}}

	var pushed []string
	text, err := ConsumeStream(r, func(s string) { pushed = append(pushed, s) })
	require.NoError(t, err)
	assert.Equal(t, "你好", text)
	assert.Equal(t, []string{"你", "你好"}, pushed)
}

func TestConsumeStreamReturnsReadError(t *testing.T) {
	boom := errors.New("connection reset")
	r := chunks("par")
	r.err = boom

	var pushed []string
	text, err := ConsumeStream(r, func(s string) { pushed = append(pushed, s) })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "par", text)
	assert.Equal(t, []string{"par"}, pushed)
}

func TestConsumeStreamEmptyBody(t *testing.T) {
	called := false
	text, err := ConsumeStream(chunks(), func(string) { called = true })
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.False(t, called)
}
