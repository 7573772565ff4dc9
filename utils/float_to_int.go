// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a [-1, 1] sample to 16-bit PCM, clamping values
// outside the range. Positive full scale maps to 32767.
func Float32ToInt16(x float32) int16 {
	x = max(-1, min(x, 1))
	return int16(x * 32767.0)
}
