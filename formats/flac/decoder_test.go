// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/mewkiz/flac/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameList struct {
	frames []*frame.Frame
	err    error
}

func (l *frameList) ParseNext() (*frame.Frame, error) {
	if len(l.frames) == 0 {
		if l.err != nil {
			return nil, l.err
		}
		return nil, io.EOF
	}
	f := l.frames[0]
	l.frames = l.frames[1:]
	return f, nil
}

func newFrame(bits uint8, channels ...[]int32) *frame.Frame {
	f := &frame.Frame{Header: frame.Header{BitsPerSample: bits}}
	for _, samples := range channels {
		f.Subframes = append(f.Subframes, &frame.Subframe{Samples: samples, NSamples: len(samples)})
	}
	return f
}

func TestSourceInterleavesFrames(t *testing.T) {
	t.Parallel()

	s := &source{
		frames: &frameList{frames: []*frame.Frame{
			newFrame(16, []int32{0, 16384}, []int32{-16384, 32767}),
			newFrame(8, []int32{64}, []int32{-128}),
		}},
		sampleRate: 44100,
		channels:   2,
	}

	var got []float32
	dst := make([]float32, 3)
	for {
		n, err := s.ReadSamples(dst)
		got = append(got, dst[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	assert.InDeltaSlice(t, []float32{0, -0.5, 0.5, 32767.0 / 32768, 0.5, -1}, got, 1e-6)
}

func TestSourceRejectsChannelMismatch(t *testing.T) {
	t.Parallel()

	s := &source{
		frames:   &frameList{frames: []*frame.Frame{newFrame(16, []int32{1})}},
		channels: 2,
	}
	_, err := s.ReadSamples(make([]float32, 4))
	assert.ErrorIs(t, err, ErrUnsupportedFlacLayout)
}

func TestSourceWrapsParseErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt frame")
	s := &source{frames: &frameList{err: boom}, channels: 1}
	_, err := s.ReadSamples(make([]float32, 4))
	assert.ErrorIs(t, err, boom)
}

func TestSourceMetadata(t *testing.T) {
	t.Parallel()

	closed := false
	s := &source{
		frames:     &frameList{},
		closeFn:    func() error { closed = true; return nil },
		sampleRate: 96000,
		channels:   2,
	}
	assert.Equal(t, 96000, s.SampleRate())
	assert.Equal(t, 2, s.Channels())
	assert.Positive(t, s.BufSize())
	require.NoError(t, s.Close())
	assert.True(t, closed)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("not a flac stream")))
	assert.Error(t, err)
}
