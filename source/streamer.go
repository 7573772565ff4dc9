// SPDX-License-Identifier: EPL-2.0

package source

import (
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"

	"github.com/Noxmore/ambisonic/bmixer"
)

const streamChunk = 512

// Streamer reads a beep.Streamer as mono by averaging its two channels.
type Streamer struct {
	s   beep.Streamer
	buf [][2]float64
	end bool
}

// FromStreamer wraps s. The streamer must already run at the mixer's rate.
func FromStreamer(s beep.Streamer) *Streamer {
	return &Streamer{s: s, buf: make([][2]float64, streamChunk)}
}

func (m *Streamer) ReadSamples(dst []float32) (int, error) {
	if m.end {
		return 0, m.endErr()
	}

	n := 0
	for n < len(dst) {
		want := min(len(dst)-n, len(m.buf))
		k, ok := m.s.Stream(m.buf[:want])
		for i := range k {
			dst[n+i] = float32((m.buf[i][0] + m.buf[i][1]) / 2)
		}
		n += k

		if !ok {
			m.end = true
			if n == 0 {
				return 0, m.endErr()
			}
			break
		}
		// A short read means the streamer has drained.
		if k < want {
			m.end = true
			break
		}
	}
	return n, nil
}

func (m *Streamer) endErr() error {
	if err := m.s.Err(); err != nil {
		return fmt.Errorf("streamer: %w", err)
	}
	return io.EOF
}

// Sine returns an endless sine tone at freq Hz, mono at rate.
func Sine(rate int, freq float64) (*Streamer, error) {
	if freq <= 0 || freq >= float64(rate)/2 {
		return nil, fmt.Errorf("%w: %g Hz at %d Hz", ErrInvalidFrequency, freq, rate)
	}
	tone, err := generators.SineTone(beep.SampleRate(rate), freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone: %w", err)
	}
	return FromStreamer(tone), nil
}

// Limited passes through at most a fixed number of samples of its producer.
type Limited struct {
	p    bmixer.Producer
	left int
}

// Take returns a producer that yields the first n samples of p and then
// io.EOF.
func Take(p bmixer.Producer, n int) *Limited {
	return &Limited{p: p, left: max(n, 0)}
}

func (l *Limited) ReadSamples(dst []float32) (int, error) {
	if l.left == 0 {
		return 0, io.EOF
	}
	if len(dst) > l.left {
		dst = dst[:l.left]
	}

	n, err := l.p.ReadSamples(dst)
	l.left -= n
	if err == nil && l.left == 0 {
		err = io.EOF
	}
	return n, err
}

// Remaining reports how many samples Take will still pass through.
func (l *Limited) Remaining() int { return l.left }
