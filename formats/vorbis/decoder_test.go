// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceReader struct {
	channels int
	data     []float32
	err      error
}

func (r *sliceReader) SampleRate() int { return 48000 }
func (r *sliceReader) Channels() int   { return r.channels }

func (r *sliceReader) Read(p []float32) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestSourceReadsWholeFrames(t *testing.T) {
	t.Parallel()

	s := &source{dec: &sliceReader{channels: 2, data: []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}}, channels: 2}

	dst := make([]float32, 5)
	n, err := s.ReadSamples(dst)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, dst[:n])

	n, err = s.ReadSamples(dst)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.6}, dst[:n])

	n, err = s.ReadSamples(dst)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSourceShortDestination(t *testing.T) {
	t.Parallel()

	s := &source{dec: &sliceReader{channels: 2, data: []float32{1, 1}}, channels: 2}
	n, err := s.ReadSamples(make([]float32, 1))
	assert.Zero(t, n)
	assert.NoError(t, err)
}

func TestSourceMetadata(t *testing.T) {
	t.Parallel()

	s := &source{dec: &sliceReader{channels: 1}, channels: 1, bufSize: defaultBufSize}
	assert.Equal(t, 48000, s.SampleRate())
	assert.Equal(t, 1, s.Channels())
	assert.Equal(t, defaultBufSize, s.BufSize())
	assert.NoError(t, s.Close())
}

func TestSourceWrapsErrors(t *testing.T) {
	t.Parallel()

	s := &source{dec: &sliceReader{channels: 1, err: io.ErrUnexpectedEOF}, channels: 1}
	_, err := s.ReadSamples(make([]float32, 4))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("OggS but not really")))
	assert.Error(t, err)
}
