// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/Noxmore/ambisonic/utils"
)

// errNoData reports a source that returned neither samples nor an error.
var errNoData = errors.New("source returned no data")

// Resampler converts src to another sample rate with Catmull-Rom cubic
// interpolation. It keeps the channel count and reads the source in blocks
// of src.BufSize() frames. When downsampling a one-pole low-pass takes the
// edge off aliasing.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	// hist holds frames t-1, t0, t+1, t+2 around the output position.
	// real is false for frames padded past the end of the source.
	hist [4][]float32
	real [4]bool
	pos  float64

	in      []float32
	inPos   int
	inLen   int
	eof     bool
	started bool

	lowpass []float32
	alpha   float32
}

// NewResampler streams src at dstRate. dstRate must be positive.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		in:       make([]float32, max(src.BufSize(), 1)*channels),
		lowpass:  make([]float32, channels),
	}
	if step > 1 {
		r.alpha = 0.5
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// fill makes sure a source frame is buffered unless the source ended.
func (r *Resampler) fill() error {
	for r.inPos >= r.inLen && !r.eof {
		n, err := r.src.ReadSamples(r.in)
		r.inLen = n - n%r.channels
		r.inPos = 0

		switch {
		case errors.Is(err, io.EOF):
			r.eof = true
		case err != nil:
			return fmt.Errorf("%w", err)
		case n == 0:
			return errNoData
		}
	}
	return nil
}

// take copies the next buffered frame into dst.
func (r *Resampler) take(dst []float32) {
	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.alpha == 0 {
		return
	}
	for c := range dst {
		dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.lowpass[c]
		r.lowpass[c] = dst[c]
	}
}

// start loads the first frame into every history slot and positions the
// stream two frames early so that the regular advance path fills the rest.
func (r *Resampler) start() error {
	if err := r.fill(); err != nil {
		return err
	}
	if r.inPos >= r.inLen {
		return io.EOF
	}

	copy(r.lowpass, r.in[r.inPos:r.inPos+r.channels])
	r.take(r.hist[0])
	for i := 1; i < len(r.hist); i++ {
		copy(r.hist[i], r.hist[0])
	}
	r.real = [4]bool{true, true, true, true}
	r.pos = 2
	r.started = true

	return nil
}

// advance shifts the history by one source frame.
func (r *Resampler) advance() error {
	if err := r.fill(); err != nil {
		return err
	}

	oldest := r.hist[0]
	copy(r.hist[:3], r.hist[1:])
	copy(r.real[:3], r.real[1:])
	r.hist[3] = oldest

	if r.inPos < r.inLen {
		r.take(r.hist[3])
		r.real[3] = true
	} else {
		copy(r.hist[3], r.hist[2])
		r.real[3] = false
	}

	return nil
}

// ReadSamples produces interleaved frames at the target rate. len(dst) must
// be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	ch := r.channels
	if len(dst)%ch != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.started {
		if err := r.start(); err != nil {
			if errors.Is(err, errNoData) {
				return 0, nil
			}
			return 0, err
		}
	}

	frames := len(dst) / ch
	written := 0
	for written < frames {
		for r.pos >= 1 {
			if err := r.advance(); err != nil {
				if errors.Is(err, errNoData) {
					return written * ch, nil
				}
				return written * ch, err
			}
			r.pos--
		}

		if !r.real[1] {
			return written * ch, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*ch : (written+1)*ch]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.pos += r.step
	}

	return written * ch, nil
}
