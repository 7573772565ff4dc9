// SPDX-License-Identifier: EPL-2.0

package source

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noxmore/ambisonic/audio"
	"github.com/Noxmore/ambisonic/bmixer"
	"github.com/Noxmore/ambisonic/internal/audiotest"
)

var (
	_ bmixer.Producer = (*Streamer)(nil)
	_ bmixer.Producer = (*Limited)(nil)
	_ bmixer.Producer = audio.Source(nil)
)

func drain(t *testing.T, p bmixer.Producer, size int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, size)
	for range 1 << 16 {
		n, err := p.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
	}
	t.Fatal("producer never ended")
	return nil
}

func TestFromSourcePassesThroughMatchingMono(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 1, 10, 0.25)
	p, err := FromSource(src, 44100)
	require.NoError(t, err)
	assert.Same(t, src, p)
}

func TestFromSourceFoldsChannels(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 6, func(_ int, ch int) float32 {
		if ch == 0 {
			return 1
		}
		return 0
	})
	p, err := FromSource(src, 8000)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Channels())

	got := drain(t, p, 4)
	require.Len(t, got, 6)
	for _, v := range got {
		assert.InDelta(t, 0.5, v, 1e-6)
	}

	require.NoError(t, p.Close())
	assert.True(t, src.Closed())
}

func TestFromSourceResamples(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(22050, 2, 2205, 0.5)
	p, err := FromSource(src, 44100)
	require.NoError(t, err)
	assert.Equal(t, 44100, p.SampleRate())
	assert.Equal(t, 1, p.Channels())

	got := drain(t, p, 512)
	assert.InDelta(t, 4410, len(got), 8)
	assert.InDelta(t, 0.5, got[len(got)/2], 1e-3)
}

func TestFromSourceRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := FromSource(nil, 44100)
	assert.ErrorIs(t, err, ErrNilSource)

	_, err = FromSource(audiotest.NewConstantSource(44100, 1, 1, 0), 0)
	assert.ErrorIs(t, err, audio.ErrInvalidRate)

	_, err = FromSource(audiotest.NewConstantSource(0, 1, 1, 0), 44100)
	assert.ErrorIs(t, err, audio.ErrInvalidRate)
}

// frames is a finite beep.Streamer over fixed stereo frames.
type frames struct {
	data [][2]float64
	err  error
}

func (f *frames) Stream(samples [][2]float64) (int, bool) {
	if len(f.data) == 0 {
		return 0, false
	}
	n := copy(samples, f.data)
	f.data = f.data[n:]
	return n, true
}

func (f *frames) Err() error { return f.err }

func TestFromStreamerAveragesChannels(t *testing.T) {
	t.Parallel()

	s := FromStreamer(&frames{data: [][2]float64{{1, 0}, {0.5, 0.5}, {-1, 1}}})
	got := drain(t, s, 2)
	assert.InDeltaSlice(t, []float32{0.5, 0.5, 0}, got, 1e-6)

	n, err := s.ReadSamples(make([]float32, 2))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestFromStreamerSurfacesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("device gone")
	s := FromStreamer(&frames{err: boom})
	_, err := s.ReadSamples(make([]float32, 8))
	assert.ErrorIs(t, err, boom)
}

func TestFromStreamerLargeReads(t *testing.T) {
	t.Parallel()

	s := FromStreamer(beep.Silence(3 * streamChunk))
	got := drain(t, s, 5*streamChunk)
	assert.Len(t, got, 3*streamChunk)
}

func TestSine(t *testing.T) {
	t.Parallel()

	s, err := Sine(8000, 1000)
	require.NoError(t, err)

	buf := make([]float32, 8)
	n, err := s.ReadSamples(buf)
	require.NoError(t, err)
	require.Equal(t, 8, n)

	// Eight samples per cycle: 0, √½, 1, √½, 0, ...
	for i, v := range buf {
		want := math.Sin(2 * math.Pi * float64(i) / 8)
		assert.InDelta(t, want, v, 1e-3, "sample %d", i)
	}
}

func TestSineRejectsBadFrequency(t *testing.T) {
	t.Parallel()

	for _, f := range []float64{0, -5, 4000, 10000} {
		_, err := Sine(8000, f)
		assert.ErrorIs(t, err, ErrInvalidFrequency, "freq %g", f)
	}
}

func TestTake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
		size int
		want int
	}{
		{"exact block", 8, 8, 8},
		{"many blocks", 100, 7, 100},
		{"zero", 0, 8, 0},
		{"negative", -3, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := Take(audiotest.NewConstantSource(100, 1, audiotest.Infinite, 1), tt.n)
			got := drain(t, l, tt.size)
			assert.Len(t, got, tt.want)
			assert.Zero(t, l.Remaining())
		})
	}
}

func TestTakeShorterProducer(t *testing.T) {
	t.Parallel()

	l := Take(audiotest.NewConstantSource(100, 1, 5, 1), 50)
	assert.Len(t, drain(t, l, 16), 5)
	assert.Equal(t, 45, l.Remaining())
}
