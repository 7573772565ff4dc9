// SPDX-License-Identifier: EPL-2.0

package bmixer

import "errors"

var (
	// ErrProducerPanic wraps a panic raised by a producer during a pull. The
	// source is removed and the panic does not reach the render path.
	ErrProducerPanic = errors.New("producer panicked")
)
