// SPDX-License-Identifier: EPL-2.0

// Package bformat defines the first-order ambisonic B-format sample and the
// directional encoder that places a mono sample into it.
//
// A B-format sample carries one omnidirectional channel (W) and three
// figure-of-eight channels along the listener axes:
//   - X points to the listener's right
//   - Y points to the front
//   - Z points up
//
// Samples from independent sources superpose by plain componentwise
// addition, which is what makes mixing a sum:
//
//	var mix bformat.Bformat
//	mix = mix.Add(bformat.Encode(0.5, bformat.Direction{1, 0, 0}))
//	mix = mix.Add(bformat.Encode(0.2, bformat.Direction{0, 1, 0}))
package bformat
