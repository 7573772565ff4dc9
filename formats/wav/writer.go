// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const writeChunk = 8192

// WriteWAV16 writes interleaved 16-bit PCM samples as a WAV file.
// len(samples) must be a multiple of channels.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	if channels <= 0 || len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d channels for %d samples", ErrInvalidChannels, channels, len(samples))
	}

	enc := wav.NewEncoder(w, sampleRate, 16, channels, formatPCM)

	n := min(len(samples), writeChunk-writeChunk%channels)
	buf := &goaudio.IntBuffer{
		Data:           make([]int, n),
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}

	for len(samples) > 0 {
		chunk := samples[:min(len(samples), cap(buf.Data))]
		buf.Data = buf.Data[:len(chunk)]
		for i, s := range chunk {
			buf.Data[i] = int(s)
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
		samples = samples[len(chunk):]
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}
