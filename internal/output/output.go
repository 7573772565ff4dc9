// SPDX-License-Identifier: EPL-2.0

// Package output sends rendered stereo to an audio device.
//
// Every backend pulls from a *renderer.Stereo on its own goroutine. That
// goroutine is the render path, so the renderer and the mixer behind it
// are only ever read from there.
package output

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Noxmore/ambisonic/internal/config"
	"github.com/Noxmore/ambisonic/renderer"
)

// Backend plays a renderer until closed.
type Backend interface {
	// Start begins pulling from r. It fails with ErrNoDevice when the
	// device cannot be opened.
	Start(r *renderer.Stereo) error
	Close() error
	Name() string
}

// Options configures a backend at construction.
type Options struct {
	SampleRate int
	Buffer     time.Duration
}

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = config.SampleRate
	}
	if o.Buffer <= 0 {
		o.Buffer = config.BufferDuration
	}
	return o
}

var backends = map[string]func(Options) Backend{
	config.BackendOto:  func(o Options) Backend { return newOto(o) },
	config.BackendBeep: func(o Options) Backend { return newBeep(o) },
	config.BackendNull: func(Options) Backend { return NewNull() },
}

// New returns the backend registered under name. Names are
// case-insensitive.
func New(name string, opts Options) (Backend, error) {
	ctor, ok := backends[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownBackend, name, strings.Join(Names(), ", "))
	}
	return ctor(opts.withDefaults()), nil
}

// Names lists the registered backends in sorted order.
func Names() []string {
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
