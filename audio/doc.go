// SPDX-License-Identifier: EPL-2.0

// Package audio provides the pull-based PCM plumbing around the B-format
// pipeline.
//
// This package contains:
//   - Source interface for decoded and rendered streams
//   - Decoder interface and a Registry keyed by file extension
//   - Resampler to bring a decoded file to the mix rate
//   - MonoMixer to fold a multi-channel file into a mono producer
//   - ReadPCM16 to capture a stretch of a stream as 16-bit PCM
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// A mono Source is directly usable as a mixer producer. Decoders in the
// formats subpackages return Sources with whatever rate and layout the file
// has, so a typical file source is wrapped before it is played:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 44100))
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.Lookup("voice.WAV")
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0]. ReadSamples counts float32 values,
// not frames, and io.EOF marks the end of a stream.
package audio
