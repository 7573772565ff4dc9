// SPDX-License-Identifier: EPL-2.0

package renderer

import "errors"

var (
	ErrInvalidAngle     = errors.New("speaker angle must be in (0, 90] degrees")
	ErrInvalidPattern   = errors.New("pattern must be in [0, 1]")
	ErrInvalidGain      = errors.New("gain must be finite and non-negative")
	ErrInvalidBlockSize = errors.New("block size must be positive")
)
