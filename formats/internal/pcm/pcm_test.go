// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceReader struct {
	data []int
	err  error
}

func (r *sliceReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n := copy(buf.Data, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestSourceScalesByBitDepth(t *testing.T) {
	t.Parallel()

	format := &goaudio.Format{NumChannels: 2, SampleRate: 8000}
	src := NewSource(&sliceReader{data: []int{0, 16384, -32768, 32767}}, format, 16)

	assert.Equal(t, 8000, src.SampleRate())
	assert.Equal(t, 2, src.Channels())
	assert.Equal(t, DefaultBufSize, src.BufSize())

	dst := make([]float32, 4)
	n, err := src.ReadSamples(dst)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	assert.InDeltaSlice(t, []float32{0, 0.5, -1, 32767.0 / 32768}, dst, 1e-6)

	n, err = src.ReadSamples(dst)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)

	n, err = src.ReadSamples(dst)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSourceShortReadIsEOF(t *testing.T) {
	t.Parallel()

	src := NewSource(&sliceReader{data: []int{64}}, &goaudio.Format{NumChannels: 1, SampleRate: 100}, 8)
	dst := make([]float32, 8)

	n, err := src.ReadSamples(dst)
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.InDelta(t, 0.5, dst[0], 1e-6)
}

func TestSourceWrapsDecoderErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := NewSource(&sliceReader{err: boom}, &goaudio.Format{NumChannels: 1, SampleRate: 100}, 16)

	_, err := src.ReadSamples(make([]float32, 4))
	assert.ErrorIs(t, err, boom)
}

func TestSourceGrowsBuffer(t *testing.T) {
	t.Parallel()

	data := make([]int, 2*DefaultBufSize)
	src := NewSource(&sliceReader{data: data}, &goaudio.Format{NumChannels: 1, SampleRate: 100}, 16)

	n, err := src.ReadSamples(make([]float32, len(data)))
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.GreaterOrEqual(t, src.BufSize(), len(data))
}

func TestSourceClose(t *testing.T) {
	t.Parallel()

	src := NewSource(&sliceReader{}, &goaudio.Format{NumChannels: 1, SampleRate: 100}, 16)
	require.NoError(t, src.Close())

	closed := false
	src.OnClose(func() error { closed = true; return nil })
	require.NoError(t, src.Close())
	assert.True(t, closed)
}

func TestSeekable(t *testing.T) {
	t.Parallel()

	sr := strings.NewReader("abc")
	rs, err := Seekable(sr)
	require.NoError(t, err)
	assert.Same(t, sr, rs)

	rs, err = Seekable(io.MultiReader(strings.NewReader("ab"), strings.NewReader("cd")))
	require.NoError(t, err)
	pos, err := rs.Seek(-1, io.SeekEnd)
	require.NoError(t, err)
	assert.EqualValues(t, 3, pos)
	b, err := io.ReadAll(rs)
	require.NoError(t, err)
	assert.Equal(t, "d", string(b))
}
