// SPDX-License-Identifier: EPL-2.0

// Package bmixer sums a dynamic set of mono producers into one B-format
// stream.
//
// Producers are registered with Mixer.Play from any goroutine. Each call
// returns a Handle that repositions or stops the source while the render
// path keeps pulling frames:
//
//	m := bmixer.New(44100)
//	h := m.Play(producer, bformat.Right)
//
//	// control path, any goroutine
//	h.SetPosition(bformat.Front)
//	h.Stop()
//	<-h.Done()
//
//	// render path
//	frame := m.Next()
//
// # Real-time Contract
//
// Next and Fill never block: new sources are merged at the start of a pull
// only when the registration lock is free, otherwise on a later pull.
// Positions and stop flags are atomics read once per produced frame, so a
// position is never observed half written. After the active set has grown
// to its peak size the render path does not allocate.
//
// A Mixer with no sources produces silence forever; it never reports end of
// stream.
package bmixer
