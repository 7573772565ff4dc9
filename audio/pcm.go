// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/Noxmore/ambisonic/utils"
)

// maxPrealloc caps the samples ReadPCM16 reserves before reading.
const maxPrealloc = 1 << 20

// ReadPCM16 pulls up to frames frames from src and converts them to 16-bit
// PCM. It stops early when src ends; io.EOF is not returned as an error.
// bufferSize is the number of frames read per call. A negative frames is
// rejected with ErrInvalidFrames.
//
// The renderer never ends, so this is how a fixed length of it is captured:
//
//	pcm, err := audio.ReadPCM16(stereo, 5*44100, 4096)
func ReadPCM16(src Source, frames, bufferSize int) ([]int16, error) {
	if frames < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrames, frames)
	}

	channels := src.Channels()
	total := frames * channels

	// Large requests grow as samples arrive instead of up front.
	pcm := make([]int16, 0, min(total, maxPrealloc))
	buf := make([]float32, max(bufferSize, 1)*channels)

	for len(pcm) < total {
		want := min(len(buf), total-len(pcm))
		n, err := src.ReadSamples(buf[:want])
		for _, v := range buf[:n] {
			pcm = append(pcm, utils.Float32ToInt16(v))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return pcm, fmt.Errorf("%w", err)
		}
		if n == 0 {
			break
		}
	}

	return pcm, nil
}
