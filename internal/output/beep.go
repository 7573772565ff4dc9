// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/Noxmore/ambisonic/internal/config"
	"github.com/Noxmore/ambisonic/renderer"
)

// Beep plays through the gopxl/beep speaker, which pulls the renderer as a
// beep.Streamer.
type Beep struct {
	opts Options

	mu      sync.Mutex
	started bool
}

func newBeep(o Options) *Beep { return &Beep{opts: o} }

func (b *Beep) Name() string { return "beep" }

func (b *Beep) Start(r *renderer.Stereo) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return ErrStarted
	}

	sr := beep.SampleRate(r.SampleRate())
	if err := speaker.Init(sr, config.BufferFrames(int(sr), b.opts.Buffer)); err != nil {
		return fmt.Errorf("%w: %w", ErrNoDevice, err)
	}
	speaker.Play(r)
	b.started = true
	return nil
}

func (b *Beep) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	b.started = false
	return nil
}
