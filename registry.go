// SPDX-License-Identifier: EPL-2.0

package ambisonic

import (
	"github.com/Noxmore/ambisonic/audio"
	"github.com/Noxmore/ambisonic/formats/aiff"
	"github.com/Noxmore/ambisonic/formats/flac"
	"github.com/Noxmore/ambisonic/formats/mp3"
	"github.com/Noxmore/ambisonic/formats/vorbis"
	"github.com/Noxmore/ambisonic/formats/wav"
)

// DefaultRegistry returns a registry with every bundled decoder, keyed by
// file extension.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})
	return reg
}
