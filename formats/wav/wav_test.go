// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noxmore/ambisonic/audio"
)

func writeTemp(t *testing.T, rate, channels int, samples []int16) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWAV16(f, rate, channels, samples))
	require.NoError(t, f.Close())
	return path
}

func readAll(t *testing.T, src audio.Source) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 3)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
	}
}

func TestRoundTripStereo(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768, 8192}
	path := writeTemp(t, 22050, 2, samples)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	src, err := Decoder{}.Decode(f)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 22050, src.SampleRate())
	assert.Equal(t, 2, src.Channels())
	assert.Positive(t, src.BufSize())

	got := readAll(t, src)
	require.Len(t, got, len(samples))
	for i, s := range samples {
		assert.InDelta(t, float32(s)/32768, got[i], 1e-6, "sample %d", i)
	}
}

func TestDecodeFromPlainReader(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, 8000, 1, []int16{100, 200, 300, 400})
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	require.NoError(t, err)
	assert.Equal(t, 1, src.Channels())
	assert.Len(t, readAll(t, src), 4)
}

func TestWriteLargeInput(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 3*writeChunk+7)
	for i := range samples {
		samples[i] = int16(i)
	}
	// One channel keeps the odd length valid.
	path := writeTemp(t, 44100, 1, samples)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	src, err := Decoder{}.Decode(f)
	require.NoError(t, err)
	got := readAll(t, src)
	require.Len(t, got, len(samples))
	assert.InDelta(t, float32(len(samples)-1)/32768, got[len(got)-1], 1e-6)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("this is not a wav file at all")))
	assert.ErrorIs(t, err, ErrNotWavFile)

	_, err = Decoder{}.Decode(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestWriteRejectsBadChannels(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	require.NoError(t, err)
	defer f.Close()

	assert.ErrorIs(t, WriteWAV16(f, 8000, 0, nil), ErrInvalidChannels)
	assert.ErrorIs(t, WriteWAV16(f, 8000, 2, []int16{1, 2, 3}), ErrInvalidChannels)
}
