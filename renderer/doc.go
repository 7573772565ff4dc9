// SPDX-License-Identifier: EPL-2.0

// Package renderer decodes a first-order B-format stream to stereo.
//
// The decoder points two virtual microphones at a symmetric speaker pair in
// front of the listener. With speaker half-angle θ and directivity p
// (0 = figure-of-eight, 0.5 = cardioid, 1 = omni) the gains are:
//
//	left  = W·p√2 + X·(1-p)(-sin θ) + Y·(1-p)cos θ
//	right = W·p√2 + X·(1-p)( sin θ) + Y·(1-p)cos θ
//
// The height channel Z does not reach a horizontal speaker pair.
//
// # Output Surfaces
//
// A Stereo renderer can be consumed several ways, all pulling from the same
// upstream mix:
//   - Next returns a single (left, right) frame
//   - ReadSamples fills interleaved float32 frames (audio.Source)
//   - Read fills little-endian float32 bytes (an io.Reader for oto)
//   - Stream fills beep sample pairs (beep.Streamer)
//
// None of them reports end of stream: an idle mix renders silence.
package renderer
