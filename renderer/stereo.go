// SPDX-License-Identifier: EPL-2.0

package renderer

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/tphakala/simd/f32"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Noxmore/ambisonic/audio"
	"github.com/Noxmore/ambisonic/bformat"
)

// BSource is an endless B-format stream, typically a *bmixer.Mixer.
type BSource interface {
	// Fill overwrites dst with the next frames and returns len(dst).
	Fill(dst []bformat.Bformat) int
	SampleRate() int
}

// Coefficients of a two-speaker first-order decode.
type Coefficients struct {
	G0     float32 // W gain, shared by both speakers
	XL, YL float32 // left speaker
	XR, YR float32 // right speaker
}

// NewCoefficients derives decode gains for speakers at ±angleDeg from the
// front with virtual microphone directivity pattern.
func NewCoefficients(angleDeg, pattern float64) Coefficients {
	theta := angleDeg * math.Pi / 180
	front := r3.Vec{Y: 1}
	up := r3.Vec{Z: 1}

	left := r3.Rotate(front, theta, up)
	right := r3.Rotate(front, -theta, up)
	d := 1 - pattern

	return Coefficients{
		G0: float32(pattern * math.Sqrt2),
		XL: float32(d * left.X),
		YL: float32(d * left.Y),
		XR: float32(d * right.X),
		YR: float32(d * right.Y),
	}
}

// Decode maps one B-format sample to a speaker pair.
func (c Coefficients) Decode(b bformat.Bformat) (left, right float32) {
	w := b.W * c.G0
	return w + b.X*c.XL + b.Y*c.YL, w + b.X*c.XR + b.Y*c.YR
}

// Stereo pulls B-format frames from a BSource and decodes them to stereo.
// It is meant for a single render goroutine.
type Stereo struct {
	src  BSource
	coef Coefficients
	gain float32

	block       []bformat.Bformat
	left, right []float32
	inter       []float32
	one         [1]bformat.Bformat
}

// New builds a renderer over src. The decode coefficients are fixed here.
func New(src BSource, opts ...Option) (*Stereo, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	n := cfg.blockSize
	return &Stereo{
		src:   src,
		coef:  NewCoefficients(cfg.angle, cfg.pattern),
		gain:  cfg.gain,
		block: make([]bformat.Bformat, n),
		left:  make([]float32, n),
		right: make([]float32, n),
		inter: make([]float32, 2*n),
	}, nil
}

// Coefficients returns the decode gains in use.
func (s *Stereo) Coefficients() Coefficients { return s.coef }

// Next renders a single stereo frame.
func (s *Stereo) Next() (left, right float32) {
	s.src.Fill(s.one[:])
	left, right = s.coef.Decode(s.one[0])
	return left * s.gain, right * s.gain
}

// decode renders n frames (n <= block size) into s.left and s.right.
func (s *Stereo) decode(n int) {
	block := s.block[:n]
	s.src.Fill(block)

	left, right := s.left[:n], s.right[:n]
	for i, b := range block {
		left[i], right[i] = s.coef.Decode(b)
	}

	if s.gain != 1 {
		f32.Scale(left, left, s.gain)
		f32.Scale(right, right, s.gain)
	}
}

// ReadSamples fills dst with interleaved left/right frames. len(dst) must
// be even. The stream never ends, so err is only set for a bad dst.
func (s *Stereo) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	frames := len(dst) / 2
	for off := 0; off < frames; off += len(s.block) {
		n := min(len(s.block), frames-off)
		s.decode(n)
		f32.Interleave2(dst[2*off:2*(off+n)], s.left[:n], s.right[:n])
	}

	return len(dst), nil
}

// Read fills p with interleaved float32 little-endian frames. Trailing bytes
// that do not make up a whole frame are left untouched, and a non-empty p
// shorter than one frame gets io.ErrShortBuffer.
func (s *Stereo) Read(p []byte) (int, error) {
	const frameBytes = 8

	if len(p) > 0 && len(p) < frameBytes {
		return 0, io.ErrShortBuffer
	}

	frames := len(p) / frameBytes
	for off := 0; off < frames; {
		n := min(len(s.block), frames-off)
		chunk := s.inter[:2*n]
		_, _ = s.ReadSamples(chunk)

		out := p[off*frameBytes:]
		for i, v := range chunk {
			binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
		}
		off += n
	}

	return frames * frameBytes, nil
}

// Stream fills samples for beep. It always fills the whole slice.
func (s *Stereo) Stream(samples [][2]float64) (int, bool) {
	for off := 0; off < len(samples); {
		n := min(len(s.block), len(samples)-off)
		s.decode(n)
		for i := range n {
			samples[off+i][0] = float64(s.left[i])
			samples[off+i][1] = float64(s.right[i])
		}
		off += n
	}

	return len(samples), true
}

// Err is part of beep.Streamer; rendering never fails.
func (s *Stereo) Err() error { return nil }

func (s *Stereo) SampleRate() int { return s.src.SampleRate() }
func (s *Stereo) Channels() int   { return 2 }
func (s *Stereo) BufSize() int    { return len(s.inter) }
func (s *Stereo) Close() error    { return nil }
