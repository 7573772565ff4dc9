// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildAIFF assembles a minimal FORM/AIFF file with COMM and SSND chunks.
func buildAIFF(rate, channels, bitDepth int, samples []int16) []byte {
	var comm bytes.Buffer
	_ = binary.Write(&comm, binary.BigEndian, int16(channels))
	_ = binary.Write(&comm, binary.BigEndian, uint32(len(samples)/channels))
	_ = binary.Write(&comm, binary.BigEndian, int16(bitDepth))
	// 80-bit IEEE extended sample rate.
	e := bits.Len(uint(rate)) - 1
	_ = binary.Write(&comm, binary.BigEndian, uint16(16383+e))
	_ = binary.Write(&comm, binary.BigEndian, uint64(rate)<<(63-e))

	var ssnd bytes.Buffer
	_ = binary.Write(&ssnd, binary.BigEndian, uint32(0)) // offset
	_ = binary.Write(&ssnd, binary.BigEndian, uint32(0)) // block size
	_ = binary.Write(&ssnd, binary.BigEndian, samples)

	var out bytes.Buffer
	out.WriteString("FORM")
	_ = binary.Write(&out, binary.BigEndian, uint32(4+8+comm.Len()+8+ssnd.Len()))
	out.WriteString("AIFF")
	out.WriteString("COMM")
	_ = binary.Write(&out, binary.BigEndian, uint32(comm.Len()))
	out.Write(comm.Bytes())
	out.WriteString("SSND")
	_ = binary.Write(&out, binary.BigEndian, uint32(ssnd.Len()))
	out.Write(ssnd.Bytes())
	return out.Bytes()
}

func TestDecodeStereo16(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768, 1}
	src, err := Decoder{}.Decode(bytes.NewReader(buildAIFF(8000, 2, 16, samples)))
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 8000, src.SampleRate())
	assert.Equal(t, 2, src.Channels())

	dst := make([]float32, 16)
	n, err := src.ReadSamples(dst)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, len(samples), n)
	for i, s := range samples {
		assert.InDelta(t, float32(s)/32768, dst[i], 1e-6, "sample %d", i)
	}
}

func TestDecodeNonSeekableInput(t *testing.T) {
	t.Parallel()

	data := buildAIFF(44100, 1, 16, []int16{1, 2, 3, 4})
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	require.NoError(t, err)
	assert.Equal(t, 44100, src.SampleRate())
	assert.Equal(t, 1, src.Channels())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("definitely not an aiff file")))
	assert.ErrorIs(t, err, ErrNotAiffFile)

	_, err = Decoder{}.Decode(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestDecodeRejectsOddBitDepth(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader(buildAIFF(8000, 1, 12, []int16{1, 2})))
	assert.ErrorIs(t, err, ErrUnsupportedBitDepth)
}
