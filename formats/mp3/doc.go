// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo; mono files are duplicated
// to both channels by go-mp3 itself. Samples are float32 in [-1, 1).
//
//	f, _ := os.Open("theme.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
package mp3
