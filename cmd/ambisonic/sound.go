// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Noxmore/ambisonic"
	"github.com/Noxmore/ambisonic/bformat"
	"github.com/Noxmore/ambisonic/bmixer"
	"github.com/Noxmore/ambisonic/source"
)

var errBadSound = errors.New("invalid sound argument")

// soundArg is one positional argument: "FILE[@POS]" or "sine:HZ[@POS]".
// POS is either "x,y,z" or a single azimuth in degrees.
type soundArg struct {
	raw  string
	path string
	freq float64
	dir  bformat.Direction
}

func (s soundArg) String() string { return s.raw }

// finite reports whether the sound ends on its own.
func (s soundArg) finite() bool { return s.freq == 0 }

func parseSound(raw string) (soundArg, error) {
	snd := soundArg{raw: raw, dir: bformat.Front}

	name, pos, hasPos := strings.Cut(raw, "@")
	if name == "" {
		return snd, fmt.Errorf("%w %q: missing sound", errBadSound, raw)
	}

	if f, ok := strings.CutPrefix(name, "sine:"); ok {
		hz, err := strconv.ParseFloat(f, 64)
		if err != nil || hz <= 0 {
			return snd, fmt.Errorf("%w %q: bad frequency", errBadSound, raw)
		}
		snd.freq = hz
	} else {
		snd.path = name
	}

	if hasPos {
		d, err := parseDirection(pos)
		if err != nil {
			return snd, fmt.Errorf("%w %q: %w", errBadSound, raw, err)
		}
		snd.dir = d
	}
	return snd, nil
}

func parseDirection(s string) (bformat.Direction, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return bformat.Direction{}, fmt.Errorf("bad coordinate %q", p)
		}
		vals[i] = v
	}

	switch len(vals) {
	case 1:
		return bformat.Azimuth(vals[0], 0), nil
	case 3:
		return bformat.Direction{float32(vals[0]), float32(vals[1]), float32(vals[2])}.Sanitize(), nil
	default:
		return bformat.Direction{}, fmt.Errorf("want azimuth or x,y,z, got %d values", len(vals))
	}
}

func parseSounds(raw []string) ([]soundArg, error) {
	sounds := make([]soundArg, 0, len(raw))
	for _, r := range raw {
		s, err := parseSound(r)
		if err != nil {
			return nil, err
		}
		sounds = append(sounds, s)
	}
	return sounds, nil
}

// start plays snd in amb.
func start(amb *ambisonic.Ambisonic, snd soundArg) (*bmixer.Handle, error) {
	if snd.finite() {
		return amb.PlayFile(snd.path, snd.dir)
	}

	tone, err := source.Sine(amb.SampleRate(), snd.freq)
	if err != nil {
		return nil, err
	}
	return amb.Play(tone, snd.dir)
}
