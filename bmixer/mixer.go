// SPDX-License-Identifier: EPL-2.0

package bmixer

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/Noxmore/ambisonic/bformat"
)

const (
	// DefaultCapacity is the number of source slots reserved up front.
	DefaultCapacity = 64
	// DefaultBlockSize is the largest number of frames mixed in one pass.
	DefaultBlockSize = 1024
)

// Option configures a Mixer.
type Option func(*Mixer)

// WithCapacity reserves room for n concurrently playing sources so that the
// render path does not grow the active set below that count.
func WithCapacity(n int) Option {
	return func(m *Mixer) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// WithBlockSize sets the largest number of frames pulled from every producer
// in one pass.
func WithBlockSize(n int) Option {
	return func(m *Mixer) {
		if n > 0 {
			m.blockSize = n
		}
	}
}

// Mixer encodes every active producer at its current direction and sums the
// results into one B-format stream.
//
// Play and the Handle methods may be called from any goroutine. Next and
// Fill belong to a single render goroutine.
type Mixer struct {
	sampleRate int
	capacity   int
	blockSize  int

	nextID atomic.Uint64
	count  atomic.Int64

	mu      sync.Mutex
	pending []*source

	// Render path only.
	active  []*source
	scratch []float32
	one     [1]bformat.Bformat
}

// New creates an empty Mixer running at sampleRate.
func New(sampleRate int, opts ...Option) *Mixer {
	m := &Mixer{
		sampleRate: sampleRate,
		capacity:   DefaultCapacity,
		blockSize:  DefaultBlockSize,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.pending = make([]*source, 0, m.capacity)
	m.active = make([]*source, 0, m.capacity)
	m.scratch = make([]float32, m.blockSize)

	return m
}

// SampleRate of the mix in Hz.
func (m *Mixer) SampleRate() int { return m.sampleRate }

// BlockSize is the largest number of frames mixed in one pass.
func (m *Mixer) BlockSize() int { return m.blockSize }

// Active returns the number of registered sources that have not been
// removed yet, including ones waiting to be merged.
func (m *Mixer) Active() int { return int(m.count.Load()) }

// Play registers p at direction d and returns its handle. The source starts
// contributing with the first pull that merges it.
func (m *Mixer) Play(p Producer, d bformat.Direction) *Handle {
	s := newSource(m.nextID.Add(1), p, d)

	// Counted before a pass can merge and retire it.
	m.count.Add(1)

	m.mu.Lock()
	m.pending = append(m.pending, s)
	m.mu.Unlock()

	return &Handle{s: s}
}

// Next mixes and returns a single frame.
func (m *Mixer) Next() bformat.Bformat {
	m.mix(m.one[:])
	return m.one[0]
}

// Fill overwrites dst with the next len(dst) mixed frames and returns
// len(dst). The mix never runs out; an empty mixer yields silence.
func (m *Mixer) Fill(dst []bformat.Bformat) int {
	for off := 0; off < len(dst); off += m.blockSize {
		end := min(off+m.blockSize, len(dst))
		m.mix(dst[off:end])
	}
	return len(dst)
}

// mix runs one pass: merge pending sources, pull a block from every active
// source, then drop the ones that ended.
func (m *Mixer) mix(dst []bformat.Bformat) {
	clear(dst)
	m.merge()

	buf := m.scratch[:len(dst)]
	ended := false
	for _, s := range m.active {
		if !pull(s, dst, buf) {
			ended = true
		}
	}

	if ended {
		m.compact()
	}
}

// merge moves pending sources into the active set when the registration
// lock is free. On contention the merge waits for the next pass.
func (m *Mixer) merge() {
	if !m.mu.TryLock() {
		return
	}
	if len(m.pending) > 0 {
		m.active = append(m.active, m.pending...)
		clear(m.pending)
		m.pending = m.pending[:0]
	}
	m.mu.Unlock()
}

// compact removes ended sources in place and releases them.
func (m *Mixer) compact() {
	kept := m.active[:0]
	for _, s := range m.active {
		if s.ending {
			s.retire()
			m.count.Add(-1)
			continue
		}
		kept = append(kept, s)
	}
	clear(m.active[len(kept):])
	m.active = kept
}

// pull adds one block of s to dst and reports whether s stays active.
func pull(s *source, dst []bformat.Bformat, buf []float32) bool {
	if s.stopped.Load() || s.producer == nil {
		s.end(nil)
		return false
	}

	n, err := readFull(s.producer, buf)
	for i := range n {
		if s.stopped.Load() {
			s.end(nil)
			return false
		}
		dst[i] = dst[i].Add(bformat.Encode(buf[i], *s.dir.Load()))
	}

	if err != nil {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		s.end(err)
		return false
	}

	return true
}

// readFull reads from p until buf is full, p fails, or p makes no progress.
// A stalled producer leaves the rest of the block silent and is pulled again
// on the next pass.
func readFull(p Producer, buf []float32) (filled int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrProducerPanic, r)
		}
	}()

	for filled < len(buf) {
		n, rerr := p.ReadSamples(buf[filled:])
		n = max(0, min(n, len(buf)-filled))
		filled += n
		if rerr != nil {
			return filled, rerr
		}
		if n == 0 {
			break
		}
	}

	return filled, nil
}
