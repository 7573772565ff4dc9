// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files using github.com/go-audio/aiff.
//
// Signed PCM at 8, 16, 24 and 32 bits is accepted. Non-seekable inputs are
// read into memory before decoding.
package aiff
