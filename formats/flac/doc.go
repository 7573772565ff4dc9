// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams with github.com/mewkiz/flac.
//
// Frames are decoded lazily as samples are read. Each frame's own bit
// depth drives the conversion to float32.
package flac
