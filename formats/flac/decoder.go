// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/Noxmore/ambisonic/audio"
)

const defaultBufSize = 4096

var ErrUnsupportedFlacLayout = errors.New("unsupported FLAC layout")

// frameReader is the part of flac.Stream the source needs.
type frameReader interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	frames     frameReader
	closeFn    func() error
	sampleRate int
	channels   int

	// cur is the frame being drained and pos the next unread sample in it.
	cur   *frame.Frame
	pos   int
	scale float32
	done  bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }

func (s *source) BufSize() int { return defaultBufSize }

func (s *source) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	dst = dst[:len(dst)-len(dst)%s.channels]
	n := 0
	for n < len(dst) {
		if s.cur == nil || s.pos >= len(s.cur.Subframes[0].Samples) {
			if s.done {
				break
			}
			if err := s.next(); err != nil {
				if err == io.EOF {
					s.done = true
					break
				}
				return n, err
			}
			continue
		}

		for ch := range s.channels {
			dst[n+ch] = float32(s.cur.Subframes[ch].Samples[s.pos]) * s.scale
		}
		s.pos++
		n += s.channels
	}

	if s.done && n == 0 && len(dst) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (s *source) next() error {
	f, err := s.frames.ParseNext()
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("flac: parsing frame: %w", err)
	}
	if len(f.Subframes) != s.channels || f.BitsPerSample == 0 {
		return fmt.Errorf("%w: frame has %d channels at %d bits",
			ErrUnsupportedFlacLayout, len(f.Subframes), f.BitsPerSample)
	}
	s.cur = f
	s.pos = 0
	s.scale = 1 / float32(int64(1)<<(f.BitsPerSample-1))
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("flac: %w", err)
	}
	if stream.Info.NChannels == 0 || stream.Info.SampleRate == 0 {
		stream.Close()
		return nil, ErrUnsupportedFlacLayout
	}

	return &source{
		frames:     stream,
		closeFn:    stream.Close,
		sampleRate: int(stream.Info.SampleRate),
		channels:   int(stream.Info.NChannels),
	}, nil
}
