// SPDX-License-Identifier: EPL-2.0

package output

import (
	"sync"

	"github.com/Noxmore/ambisonic/renderer"
)

// Null accepts a renderer without pulling from it. Offline rendering
// drives the renderer directly.
type Null struct {
	mu sync.Mutex
	r  *renderer.Stereo
}

func NewNull() *Null { return &Null{} }

func (n *Null) Name() string { return "null" }

func (n *Null) Start(r *renderer.Stereo) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.r != nil {
		return ErrStarted
	}
	n.r = r
	return nil
}

// Renderer returns the renderer passed to Start, or nil.
func (n *Null) Renderer() *renderer.Stereo {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.r
}

func (n *Null) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.r = nil
	return nil
}
