// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter(t *testing.T) {
	t.Parallel()

	var out, errs bytes.Buffer
	p := Printer{Out: &out, Err: &errs}

	p.Info("Rate", "44100 Hz")
	p.Success("done")
	p.Error("no device")
	p.Version("v1.2.3")

	assert.Contains(t, out.String(), "Rate:")
	assert.Contains(t, out.String(), "44100 Hz")
	assert.Contains(t, out.String(), "done")
	assert.Contains(t, out.String(), "v1.2.3")
	assert.Contains(t, errs.String(), "no device")
	assert.NotContains(t, out.String(), "no device")
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
}

type helpCLI struct {
	Rate int `help:"Sample rate." default:"44100"`

	Play struct {
		Specs []string `arg:"" help:"Sources to play."`
	} `cmd:"" help:"Play sources."`
}

func TestStyledHelpPrinter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	var c helpCLI
	parser, err := kong.New(&c,
		kong.Name("ambisonic"),
		kong.Writers(&out, &out),
		kong.Help(StyledHelpPrinter(kong.HelpOptions{})),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	help := out.String()
	assert.Contains(t, help, "ambisonic")
	assert.Contains(t, help, "--rate")
	assert.Contains(t, help, "44100")
	assert.Contains(t, help, "play")
}
