// SPDX-License-Identifier: EPL-2.0

// Package ambisonic plays mono sounds placed around the listener through a
// pair of stereo speakers.
//
// Sounds are first encoded into a first-order B-format sound field, which
// describes what the listener should hear independent of the playback
// equipment. The field is then decoded for two virtual microphones aimed
// at the speakers. Composition and rendering stay separate: sources can be
// added, moved and stopped from any goroutine while the audio device pulls
// frames on its own.
//
// # Quick Start
//
//	amb, err := ambisonic.NewBuilder().Build()
//	if err != nil {
//	    return err
//	}
//	defer amb.Close()
//
//	tone, _ := source.Sine(amb.SampleRate(), 440)
//	h, _ := amb.Play(tone, bformat.Right)
//	time.Sleep(time.Second)
//	h.SetPosition(bformat.Front)
//
// Files are decoded by extension, resampled to the mix rate and folded to
// mono:
//
//	h, err := amb.PlayFile("footsteps.flac", bformat.Azimuth(-45, 0))
//	<-h.Done()
//
// # Packages
//
//   - bformat: the B-format sample and the directional encoder
//   - bmixer: the mixer and per-source handles
//   - renderer: the stereo decoder
//   - source: producer adapters for decoded files and beep streamers
//   - audio and formats/...: decoding, resampling and channel folding
//
// # Offline Rendering
//
// With the "null" backend nothing pulls the renderer, and Render captures a
// fixed number of frames as 16-bit PCM:
//
//	amb, _ := ambisonic.NewBuilder().WithBackend("null").Build()
//	amb.Play(tone, bformat.Left)
//	pcm, _ := amb.Render(5 * amb.SampleRate())
//	wav.WriteWAV16(out, amb.SampleRate(), 2, pcm)
package ambisonic
