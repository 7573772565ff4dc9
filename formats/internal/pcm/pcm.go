// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer PCM decoders to audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// DefaultBufSize is the sample capacity allocated when a caller never asks
// for more.
const DefaultBufSize = 4096

// Reader is the subset of the go-audio wav and aiff decoders used here.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM read from a Reader to float32 samples in
// [-1, 1).
type Source struct {
	r        Reader
	format   *goaudio.Format
	scale    float32
	buf      *goaudio.IntBuffer
	closeFn  func() error
	finished bool
}

// NewSource returns a Source reading frames described by format whose
// samples are bitDepth wide.
func NewSource(r Reader, format *goaudio.Format, bitDepth int) *Source {
	return &Source{
		r:      r,
		format: format,
		scale:  1 / float32(int64(1)<<(bitDepth-1)),
		buf: &goaudio.IntBuffer{
			Data:           make([]int, DefaultBufSize),
			Format:         format,
			SourceBitDepth: bitDepth,
		},
	}
}

// OnClose registers fn to run from Close.
func (s *Source) OnClose(fn func() error) { s.closeFn = fn }

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BufSize() int    { return cap(s.buf.Data) }

func (s *Source) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.finished {
		return 0, io.EOF
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	for i := range n {
		dst[i] = float32(s.buf.Data[i]) * s.scale
	}

	switch {
	case err != nil && err != io.EOF:
		return n, fmt.Errorf("pcm: %w", err)
	case err == io.EOF, n < len(dst):
		// go-audio decoders signal the end of data with a short read.
		s.finished = true
		return n, io.EOF
	}
	return n, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek on its own.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
