// SPDX-License-Identifier: EPL-2.0

package ambisonic

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/Noxmore/ambisonic/audio"
	"github.com/Noxmore/ambisonic/bformat"
	"github.com/Noxmore/ambisonic/bmixer"
	"github.com/Noxmore/ambisonic/internal/output"
	"github.com/Noxmore/ambisonic/renderer"
	"github.com/Noxmore/ambisonic/source"
)

// closePasses bounds the mix passes Close drives to retire owned sources.
const closePasses = 8

// Ambisonic is a running mix: a mixer, a stereo renderer and the backend
// pulling from it. All methods are safe for concurrent use.
type Ambisonic struct {
	mixer    *bmixer.Mixer
	stereo   *renderer.Stereo
	backend  output.Backend
	registry *audio.Registry
	log      *slog.Logger

	// renderMu serializes the callers that drive the mixer directly:
	// Render and the retire passes in Close.
	renderMu sync.Mutex

	mu     sync.Mutex
	closed bool
	// owned are sources holding resources that are released once the
	// mixer lets go of them.
	owned map[uint64]*bmixer.Handle
	wg    sync.WaitGroup
}

func (a *Ambisonic) SampleRate() int { return a.mixer.SampleRate() }

// Mixer returns the underlying mixer.
func (a *Ambisonic) Mixer() *bmixer.Mixer { return a.mixer }

// Renderer returns the stereo renderer the backend pulls from.
func (a *Ambisonic) Renderer() *renderer.Stereo { return a.stereo }

// Backend reports the name of the playback backend.
func (a *Ambisonic) Backend() string { return a.backend.Name() }

// Play adds a mono producer at direction d. p must produce samples at the
// mix rate.
func (a *Ambisonic) Play(p bmixer.Producer, d bformat.Direction) (*bmixer.Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrClosed
	}
	h := a.mixer.Play(p, d)
	a.log.Debug("source playing", slog.Uint64("id", h.ID()), slog.Any("direction", d))
	return h, nil
}

// PlaySource adds a decoded stream at direction d, converting it to mono
// at the mix rate. src is closed after the mixer drops it.
func (a *Ambisonic) PlaySource(src audio.Source, d bformat.Direction) (*bmixer.Handle, error) {
	return a.playOwned(src, d, "source", src)
}

// PlayFile decodes path with the decoder registered for its extension and
// plays it at direction d. The file is read into memory first so the
// render path never waits on disk.
func (a *Ambisonic) PlayFile(path string, d bformat.Direction) (*bmixer.Handle, error) {
	dec, ok := a.registry.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return a.playOwned(src, d, path, src)
}

func (a *Ambisonic) playOwned(src audio.Source, d bformat.Direction, name string, closers ...io.Closer) (*bmixer.Handle, error) {
	p, err := source.FromSource(src, a.SampleRate())
	if err != nil {
		src.Close()
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		src.Close()
		return nil, ErrClosed
	}

	h := a.mixer.Play(p, d)
	a.owned[h.ID()] = h
	a.log.Debug("source playing",
		slog.Uint64("id", h.ID()),
		slog.String("name", name),
		slog.Int("source_rate", src.SampleRate()),
		slog.Int("channels", src.Channels()),
		slog.Any("direction", d),
	)

	a.wg.Add(1)
	go a.release(h, name, closers)
	return h, nil
}

// release waits for the mixer to drop h and closes what it owned.
func (a *Ambisonic) release(h *bmixer.Handle, name string, closers []io.Closer) {
	defer a.wg.Done()
	<-h.Done()

	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	a.mu.Lock()
	delete(a.owned, h.ID())
	a.mu.Unlock()

	attrs := []any{slog.Uint64("id", h.ID()), slog.String("name", name)}
	switch {
	case h.Err() != nil:
		a.log.Warn("source failed", append(attrs, slog.Any("error", h.Err()))...)
	case h.Stopped():
		a.log.Debug("source stopped", attrs...)
	default:
		a.log.Debug("source finished", attrs...)
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Warn("closing source", append(attrs, slog.Any("error", err))...)
	}
}

// Render pulls frames stereo frames as interleaved 16-bit PCM. Only the
// null backend leaves the renderer free for this.
func (a *Ambisonic) Render(frames int) ([]int16, error) {
	if frames < 0 {
		return nil, fmt.Errorf("%w: %d", audio.ErrInvalidFrames, frames)
	}
	if _, ok := a.backend.(*output.Null); !ok {
		return nil, fmt.Errorf("%w: %s", ErrLiveBackend, a.backend.Name())
	}

	a.renderMu.Lock()
	defer a.renderMu.Unlock()

	a.mu.Lock()
	closed := a.closed
	a.mu.Unlock()

	if closed {
		return nil, ErrClosed
	}
	return audio.ReadPCM16(a.stereo, frames, a.mixer.BlockSize())
}

// Close stops playback and releases every file and source the context
// opened. Handles from Play are left to their owners.
func (a *Ambisonic) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	a.closed = true
	owned := make([]*bmixer.Handle, 0, len(a.owned))
	for _, h := range a.owned {
		owned = append(owned, h)
	}
	a.mu.Unlock()

	err := a.backend.Close()

	// The backend no longer pulls, so this goroutine is now the render
	// path and may run the passes that retire stopped sources.
	for _, h := range owned {
		h.Stop()
	}
	a.renderMu.Lock()
	frame := make([]bformat.Bformat, 1)
	for range closePasses {
		if allDone(owned) {
			break
		}
		a.mixer.Fill(frame)
	}
	a.renderMu.Unlock()
	a.wg.Wait()

	a.log.Info("ambisonic closed", slog.Int("released", len(owned)))
	if err != nil {
		return fmt.Errorf("closing %s backend: %w", a.backend.Name(), err)
	}
	return nil
}

func allDone(hs []*bmixer.Handle) bool {
	for _, h := range hs {
		select {
		case <-h.Done():
		default:
			return false
		}
	}
	return true
}
