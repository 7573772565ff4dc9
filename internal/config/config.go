// SPDX-License-Identifier: EPL-2.0

// Package config holds the defaults shared by the library and the CLI.
package config

import "time"

// Audio settings
const (
	SampleRate     = 44100
	BufferDuration = 100 * time.Millisecond
	BlockSize      = 1024
	MixerCapacity  = 64
)

// Stereo decode settings
const (
	SpeakerAngle = 30.0 // degrees either side of front
	Pattern      = 0.5  // 0 = figure-of-eight, 0.5 = cardioid, 1 = omni
	Gain         = 1.0
)

// Playback backends
const (
	BackendOto  = "oto"
	BackendBeep = "beep"
	BackendNull = "null"

	Backend = BackendOto
)

// CLI settings
const (
	OrbitStep     = 15.0 // degrees per key press
	DemoStep      = time.Second
	DemoFrequency = 440.0
)

// BufferFrames converts a buffer duration into a frame count at rate,
// never less than one frame.
func BufferFrames(rate int, d time.Duration) int {
	return max(int(int64(rate)*int64(d)/int64(time.Second)), 1)
}
