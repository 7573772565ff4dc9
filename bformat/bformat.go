// SPDX-License-Identifier: EPL-2.0

package bformat

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// WGain scales the omnidirectional channel so that it is power matched to
// the directional channels.
const WGain = float32(math.Sqrt2 / 2)

// Bformat is a single first-order B-format sample.
type Bformat struct {
	W, X, Y, Z float32
}

// Add returns the componentwise sum of b and o.
func (b Bformat) Add(o Bformat) Bformat {
	return Bformat{W: b.W + o.W, X: b.X + o.X, Y: b.Y + o.Y, Z: b.Z + o.Z}
}

// Scale multiplies every channel by g.
func (b Bformat) Scale(g float32) Bformat {
	return Bformat{W: b.W * g, X: b.X * g, Y: b.Y * g, Z: b.Z * g}
}

// Encode places the mono sample s at direction d.
// d is expected to be unit length; a zero direction yields a sample that is
// only present in W.
func Encode(s float32, d Direction) Bformat {
	return Bformat{
		W: s * WGain,
		X: s * d[0],
		Y: s * d[1],
		Z: s * d[2],
	}
}

// Direction is a position relative to the listener (x right, y front, z up).
type Direction [3]float32

var (
	Right = Direction{1, 0, 0}
	Left  = Direction{-1, 0, 0}
	Front = Direction{0, 1, 0}
	Back  = Direction{0, -1, 0}
	Up    = Direction{0, 0, 1}
)

// FromVec converts a gonum vector to a Direction.
func FromVec(v r3.Vec) Direction {
	return Direction{float32(v.X), float32(v.Y), float32(v.Z)}.Sanitize()
}

// Vec returns d as a gonum vector.
func (d Direction) Vec() r3.Vec {
	return r3.Vec{X: float64(d[0]), Y: float64(d[1]), Z: float64(d[2])}
}

// Sanitize replaces NaN and infinite components with zero.
func (d Direction) Sanitize() Direction {
	for i, c := range d {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			d[i] = 0
		}
	}
	return d
}

// Normalize returns d scaled to unit length. Zero length and non-finite
// vectors normalize to the zero direction.
func (d Direction) Normalize() Direction {
	v := d.Sanitize().Vec()
	n := r3.Norm(v)
	if n == 0 || math.IsInf(n, 0) {
		return Direction{}
	}
	return FromVec(r3.Scale(1/n, v))
}

// Azimuth builds a horizontal-plane direction from an angle in degrees
// measured clockwise from the front, raised by elevation degrees.
func Azimuth(azimuthDeg, elevationDeg float64) Direction {
	az := azimuthDeg * math.Pi / 180
	el := elevationDeg * math.Pi / 180
	return FromVec(r3.Vec{
		X: math.Sin(az) * math.Cos(el),
		Y: math.Cos(az) * math.Cos(el),
		Z: math.Sin(el),
	})
}
