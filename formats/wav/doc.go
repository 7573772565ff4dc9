// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files.
//
// Decoding is backed by github.com/go-audio/wav and accepts 16, 24 and
// 32-bit PCM at any channel count and sample rate. Samples come out of the
// returned audio.Source as float32 values in [-1, 1).
//
//	f, _ := os.Open("voice.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// Inputs that cannot seek are buffered in memory first, since the RIFF
// chunk walk needs random access.
//
// WriteWAV16 writes interleaved 16-bit samples with any channel count:
//
//	out, _ := os.Create("mix.wav")
//	err := wav.WriteWAV16(out, 48000, 2, interleaved)
//
// The writer seeks back to patch chunk sizes, so it needs an
// io.WriteSeeker such as *os.File.
package wav
