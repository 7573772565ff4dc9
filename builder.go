// SPDX-License-Identifier: EPL-2.0

package ambisonic

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Noxmore/ambisonic/audio"
	"github.com/Noxmore/ambisonic/bmixer"
	"github.com/Noxmore/ambisonic/internal/config"
	"github.com/Noxmore/ambisonic/internal/output"
	"github.com/Noxmore/ambisonic/renderer"
)

// Builder collects settings for an Ambisonic context. Settings are only
// validated by Build.
type Builder struct {
	sampleRate int
	backend    string
	buffer     time.Duration
	blockSize  int
	capacity   int
	registry   *audio.Registry
	logger     *slog.Logger
	render     []renderer.Option
}

// NewBuilder returns a builder with the defaults: 44100 Hz, the oto
// backend, a 100 ms device buffer and a cardioid pair at ±30°.
func NewBuilder() *Builder {
	return &Builder{
		sampleRate: config.SampleRate,
		backend:    config.Backend,
		buffer:     config.BufferDuration,
		blockSize:  config.BlockSize,
		capacity:   config.MixerCapacity,
	}
}

// WithSampleRate sets the rate of the mix and of the device.
func (b *Builder) WithSampleRate(rate int) *Builder {
	b.sampleRate = rate
	return b
}

// WithBackend selects the playback backend: "oto", "beep" or "null".
func (b *Builder) WithBackend(name string) *Builder {
	b.backend = name
	return b
}

// WithBufferDuration sets how much audio the device buffers ahead.
func (b *Builder) WithBufferDuration(d time.Duration) *Builder {
	b.buffer = d
	return b
}

// WithBlockSize sets the frames mixed and decoded per pass.
func (b *Builder) WithBlockSize(n int) *Builder {
	b.blockSize = n
	return b
}

// WithCapacity pre-reserves room for n simultaneous sources.
func (b *Builder) WithCapacity(n int) *Builder {
	b.capacity = n
	return b
}

// WithSpeakerAngle sets the half-angle between the speakers, in degrees.
func (b *Builder) WithSpeakerAngle(deg float64) *Builder {
	b.render = append(b.render, renderer.WithSpeakerAngle(deg))
	return b
}

// WithPattern sets the virtual microphone pattern: 0 figure-of-eight,
// 0.5 cardioid, 1 omnidirectional.
func (b *Builder) WithPattern(p float64) *Builder {
	b.render = append(b.render, renderer.WithPattern(p))
	return b
}

// WithGain sets the master gain applied after decoding.
func (b *Builder) WithGain(g float64) *Builder {
	b.render = append(b.render, renderer.WithGain(g))
	return b
}

// WithRegistry replaces the decoders used by PlayFile.
func (b *Builder) WithRegistry(r *audio.Registry) *Builder {
	b.registry = r
	return b
}

// WithLogger sets the logger for control-path events. Nothing is logged
// by default.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Build assembles the mixer, renderer and backend and starts playback.
// A device that cannot be opened fails here, before anything plays.
func (b *Builder) Build() (*Ambisonic, error) {
	if b.sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", audio.ErrInvalidRate, b.sampleRate)
	}

	log := b.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	reg := b.registry
	if reg == nil {
		reg = DefaultRegistry()
	}

	mixer := bmixer.New(b.sampleRate,
		bmixer.WithCapacity(b.capacity),
		bmixer.WithBlockSize(b.blockSize),
	)

	opts := append([]renderer.Option{renderer.WithBlockSize(b.blockSize)}, b.render...)
	stereo, err := renderer.New(mixer, opts...)
	if err != nil {
		return nil, fmt.Errorf("configuring renderer: %w", err)
	}

	backend, err := output.New(b.backend, output.Options{SampleRate: b.sampleRate, Buffer: b.buffer})
	if err != nil {
		return nil, err
	}
	if err := backend.Start(stereo); err != nil {
		return nil, fmt.Errorf("starting %s backend: %w", backend.Name(), err)
	}

	c := stereo.Coefficients()
	log.Info("ambisonic started",
		slog.String("backend", backend.Name()),
		slog.Int("sample_rate", b.sampleRate),
		slog.Duration("buffer", b.buffer),
		slog.Int("block_size", b.blockSize),
	)
	log.Debug("stereo decode",
		slog.Float64("g0", float64(c.G0)),
		slog.Float64("xl", float64(c.XL)),
		slog.Float64("yl", float64(c.YL)),
		slog.Float64("xr", float64(c.XR)),
		slog.Float64("yr", float64(c.YR)),
	)

	return &Ambisonic{
		mixer:    mixer,
		stereo:   stereo,
		backend:  backend,
		registry: reg,
		log:      log,
		owned:    make(map[uint64]*bmixer.Handle),
	}, nil
}
