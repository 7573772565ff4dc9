// SPDX-License-Identifier: EPL-2.0

package bmixer

import (
	"sync/atomic"

	"github.com/Noxmore/ambisonic/bformat"
)

// Producer is a mono sample stream at the mixer's sample rate.
//
// ReadSamples fills dst and returns the number of samples written. io.EOF
// marks the end of the stream; samples returned together with io.EOF are
// still played. Any other error ends the source as if it were exhausted.
// Every mono audio.Source satisfies Producer.
type Producer interface {
	ReadSamples(dst []float32) (n int, err error)
}

// source is the state shared by a Handle and the Mixer.
type source struct {
	id       uint64
	producer Producer
	dir      atomic.Pointer[bformat.Direction]
	stopped  atomic.Bool

	// Written by the render path only. err is published by closing done.
	ending bool
	err    error
	done   chan struct{}
}

func newSource(id uint64, p Producer, d bformat.Direction) *source {
	s := &source{
		id:       id,
		producer: p,
		done:     make(chan struct{}),
	}
	s.setDirection(d)
	return s
}

func (s *source) setDirection(d bformat.Direction) {
	d = d.Sanitize()
	s.dir.Store(&d)
}

// end flags the source for removal after the current pass.
func (s *source) end(err error) {
	s.ending = true
	if s.err == nil {
		s.err = err
	}
}

// retire releases the producer and wakes Done waiters. Render path only,
// called once when the source leaves the active set.
func (s *source) retire() {
	s.producer = nil
	close(s.done)
}

// Handle controls one playing source. It is safe for concurrent use and
// stays valid after the source ended; operations on an ended source are
// no-ops.
type Handle struct {
	s *source
}

// ID returns the identifier the mixer assigned to the source.
func (h *Handle) ID() uint64 { return h.s.id }

// SetPosition moves the source. The new direction is used from the next
// frame the mixer produces. Non-finite components are replaced with zero.
func (h *Handle) SetPosition(d bformat.Direction) {
	h.s.setDirection(d)
}

// Position returns the last direction set on the source.
func (h *Handle) Position() bformat.Direction {
	return *h.s.dir.Load()
}

// Stop ends the source. It contributes to at most one more frame and is
// removed from the mix by the pull that observes the flag.
func (h *Handle) Stop() {
	h.s.stopped.Store(true)
}

// Stopped reports whether Stop was called.
func (h *Handle) Stopped() bool {
	return h.s.stopped.Load()
}

// Done is closed once the mixer has removed the source, whether it was
// stopped, ran out of samples or failed.
func (h *Handle) Done() <-chan struct{} {
	return h.s.done
}

// Err returns the producer error that ended the source. It is nil while the
// source plays and when it ended through Stop or io.EOF.
func (h *Handle) Err() error {
	select {
	case <-h.s.done:
		return h.s.err
	default:
		return nil
	}
}
