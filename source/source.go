// SPDX-License-Identifier: EPL-2.0

package source

import (
	"fmt"

	"github.com/Noxmore/ambisonic/audio"
)

// FromSource returns src as a mono stream at rate. The result is src itself
// when it already matches; otherwise a resampler and a mono fold are chained
// in front of it. Closing the result closes src.
func FromSource(src audio.Source, rate int) (audio.Source, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", audio.ErrInvalidRate, rate)
	}
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: source rate %d", audio.ErrInvalidRate, src.SampleRate())
	}

	out := src
	if out.SampleRate() != rate {
		out = audio.NewResampler(out, rate)
	}
	if out.Channels() > 1 {
		out = audio.NewMonoMixer(out)
	}
	return out, nil
}
