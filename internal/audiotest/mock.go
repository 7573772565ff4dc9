// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds fake sources and producers shared by tests.
package audiotest

import (
	"io"
	"math"
	"sync/atomic"
)

// Infinite makes a MockSource that never reaches the end.
const Infinite = -1

// MockSource generates audio from a waveform function. It implements
// audio.Source (without importing it to avoid cycles) and, when mono, the
// mixer's Producer.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total frames to generate, Infinite for no end
	generated    int // Frames generated so far
	waveform     func(sample int, channel int) float32

	reads  atomic.Int64
	closed atomic.Bool
}

// NewMockSource creates a new mock audio source.
// totalSamples is the number of frames to generate, or Infinite.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewConstantSource creates a mock source with a constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewRampSource creates a mono source whose n-th sample is start + n*step.
func NewRampSource(sampleRate, totalSamples int, start, step float32) *MockSource {
	return NewMockSource(sampleRate, 1, totalSamples, func(sample int, _ int) float32 {
		return start + float32(sample)*step
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed.Store(true)
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed.Load() }

// Reads returns how many times ReadSamples was called.
func (m *MockSource) Reads() int { return int(m.reads.Load()) }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	m.reads.Add(1)

	if m.totalSamples != Infinite && m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := len(dst) / m.channels
	if m.totalSamples != Infinite {
		frames = min(frames, m.totalSamples-m.generated)
	}

	for frame := range frames {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}
	m.generated += frames

	if m.totalSamples != Infinite && m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}

// FailingProducer yields value for n samples and then fails with Err.
type FailingProducer struct {
	Value float32
	N     int
	Err   error
	done  int
}

func (f *FailingProducer) ReadSamples(dst []float32) (int, error) {
	n := min(len(dst), f.N-f.done)
	for i := range n {
		dst[i] = f.Value
	}
	f.done += n
	if f.done >= f.N {
		return n, f.Err
	}
	return n, nil
}

// StalledProducer never returns samples and never ends.
type StalledProducer struct {
	reads atomic.Int64
}

func (s *StalledProducer) ReadSamples([]float32) (int, error) {
	s.reads.Add(1)
	return 0, nil
}

// Reads returns how many times ReadSamples was called.
func (s *StalledProducer) Reads() int { return int(s.reads.Load()) }

// PanickingProducer panics on every read.
type PanickingProducer struct{}

func (PanickingProducer) ReadSamples([]float32) (int, error) {
	panic("audiotest: producer exploded")
}
