// SPDX-License-Identifier: EPL-2.0

package ambisonic

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrClosed            = errors.New("ambisonic context closed")
	ErrLiveBackend       = errors.New("cannot render offline while a device backend is pulling")
)
