// SPDX-License-Identifier: EPL-2.0

package source

import "errors"

var (
	ErrInvalidFrequency = errors.New("frequency must be positive and below the Nyquist limit")
	ErrNilSource        = errors.New("nil source")
)
