// SPDX-License-Identifier: EPL-2.0

// Package source adapts audio streams into mono producers for the mixer.
//
// A producer is anything with a ReadSamples method that fills mono float32
// samples at the mixer's rate and ends with io.EOF. Decoded files go
// through FromSource, which resamples and folds channels to mono. beep
// streamers, including the tone generators, go through FromStreamer. Take
// cuts any producer down to a fixed length.
//
//	f, _ := os.Open("step.wav")
//	dec, _ := wav.Decoder{}.Decode(f)
//	p, _ := source.FromSource(dec, mixer.SampleRate())
//	h := mixer.Play(p, bformat.Left)
package source
