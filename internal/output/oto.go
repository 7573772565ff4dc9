// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/Noxmore/ambisonic/renderer"
)

// oto allows one context per process; it is created on first use and
// shared by every oto backend.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
)

func otoContext(o Options) (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   o.SampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
			BufferSize:   o.Buffer,
		})
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoCtx, otoRate = ctx, o.SampleRate
	})
	if otoErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDevice, otoErr)
	}
	if otoRate != o.SampleRate {
		return nil, fmt.Errorf("%w: oto already running at %d Hz", ErrNoDevice, otoRate)
	}
	return otoCtx, nil
}

// Oto plays through ebitengine/oto, which pulls float32 bytes from the
// renderer's Read method.
type Oto struct {
	opts Options

	mu     sync.Mutex
	player *oto.Player
}

func newOto(o Options) *Oto { return &Oto{opts: o} }

func (b *Oto) Name() string { return "oto" }

func (b *Oto) Start(r *renderer.Stereo) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player != nil {
		return ErrStarted
	}
	if r.SampleRate() != b.opts.SampleRate {
		return fmt.Errorf("%w: renderer at %d Hz, device at %d Hz", ErrNoDevice, r.SampleRate(), b.opts.SampleRate)
	}

	ctx, err := otoContext(b.opts)
	if err != nil {
		return err
	}

	b.player = ctx.NewPlayer(r)
	b.player.Play()
	return nil
}

func (b *Oto) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player == nil {
		return nil
	}
	b.player.Pause()
	err := b.player.Close()
	b.player = nil
	if err != nil {
		return fmt.Errorf("closing oto player: %w", err)
	}
	return nil
}
