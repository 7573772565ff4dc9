// SPDX-License-Identifier: EPL-2.0

package renderer

import (
	"fmt"
	"math"
)

const (
	// DefaultSpeakerAngle is the half-angle of a standard stereo pair.
	DefaultSpeakerAngle = 30.0
	// DefaultPattern is a cardioid virtual microphone.
	DefaultPattern = 0.5
	// DefaultBlockSize is the number of frames decoded per upstream pull.
	DefaultBlockSize = 1024
)

// Option mutates construction-time parameters.
type Option func(*config) error

type config struct {
	angle     float64
	pattern   float64
	gain      float32
	blockSize int
}

func defaultConfig() config {
	return config{
		angle:     DefaultSpeakerAngle,
		pattern:   DefaultPattern,
		gain:      1,
		blockSize: DefaultBlockSize,
	}
}

// WithSpeakerAngle sets the angle in degrees between the front axis and each
// virtual speaker.
func WithSpeakerAngle(deg float64) Option {
	return func(cfg *config) error {
		if !(deg > 0 && deg <= 90) {
			return fmt.Errorf("%w: %v", ErrInvalidAngle, deg)
		}
		cfg.angle = deg
		return nil
	}
}

// WithPattern sets the virtual microphone directivity.
func WithPattern(p float64) Option {
	return func(cfg *config) error {
		if !(p >= 0 && p <= 1) {
			return fmt.Errorf("%w: %v", ErrInvalidPattern, p)
		}
		cfg.pattern = p
		return nil
	}
}

// WithGain sets a linear master gain applied after decoding.
func WithGain(g float64) Option {
	return func(cfg *config) error {
		if g < 0 || math.IsNaN(g) || math.IsInf(g, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidGain, g)
		}
		cfg.gain = float32(g)
		return nil
	}
}

// WithBlockSize sets how many frames are pulled from upstream at once.
func WithBlockSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidBlockSize, n)
		}
		cfg.blockSize = n
		return nil
	}
}
