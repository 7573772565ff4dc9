// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

var (
	ErrUnknownBackend = errors.New("unknown playback backend")
	ErrNoDevice       = errors.New("audio device unavailable")
	ErrStarted        = errors.New("backend already started")
)
