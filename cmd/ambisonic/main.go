// SPDX-License-Identifier: EPL-2.0

// Command ambisonic places sounds around the listener and plays or renders
// them on a stereo pair.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Noxmore/ambisonic"
	"github.com/Noxmore/ambisonic/bformat"
	"github.com/Noxmore/ambisonic/bmixer"
	"github.com/Noxmore/ambisonic/formats/wav"
	"github.com/Noxmore/ambisonic/internal/cli"
	"github.com/Noxmore/ambisonic/internal/config"
	"github.com/Noxmore/ambisonic/internal/ui"
	"github.com/Noxmore/ambisonic/source"
)

// version is set via ldflags at build time.
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Rate    int           `help:"Mix sample rate in Hz." default:"44100" env:"AMBISONIC_RATE"`
	Backend string        `help:"Playback backend." default:"oto" enum:"oto,beep,null" env:"AMBISONIC_BACKEND"`
	Angle   float64       `help:"Speaker half-angle in degrees." default:"30" env:"AMBISONIC_ANGLE"`
	Pattern float64       `help:"Virtual microphone pattern, 0 figure-of-eight to 1 omni." default:"0.5" env:"AMBISONIC_PATTERN"`
	Gain    float64       `help:"Master gain." default:"1" env:"AMBISONIC_GAIN"`
	Buffer  time.Duration `help:"Device buffer length." default:"100ms" env:"AMBISONIC_BUFFER"`
	Verbose bool          `short:"v" help:"Log debug detail to stderr." env:"AMBISONIC_VERBOSE"`
	Version versionFlag   `help:"Show version information."`
}

var out cli.Printer

type versionFlag bool

func (versionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	cli.Printer{Out: app.Stdout}.Version(vars["version"])
	app.Exit(0)
	return nil
}

func (g *Globals) logger() *slog.Logger {
	level := slog.LevelWarn
	if g.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (g *Globals) builder() *ambisonic.Builder {
	return ambisonic.NewBuilder().
		WithSampleRate(g.Rate).
		WithBackend(g.Backend).
		WithBufferDuration(g.Buffer).
		WithSpeakerAngle(g.Angle).
		WithPattern(g.Pattern).
		WithGain(g.Gain).
		WithLogger(g.logger())
}

var CLI struct {
	Globals

	Play   PlayCmd   `cmd:"" help:"Play sounds at fixed positions."`
	Render RenderCmd `cmd:"" help:"Render sounds offline to a stereo WAV file."`
	Orbit  OrbitCmd  `cmd:"" help:"Move a sound around with the arrow keys."`
	Demo   DemoCmd   `cmd:"" help:"Two tones trading places."`
}

type PlayCmd struct {
	Sounds   []string      `arg:"" name:"sound" help:"FILE[@POS] or sine:HZ[@POS]; POS is x,y,z or an azimuth in degrees."`
	Duration time.Duration `help:"Stop after this long (0 plays until the files end)."`
}

func (c *PlayCmd) Run(g *Globals) error {
	sounds, err := parseSounds(c.Sounds)
	if err != nil {
		return err
	}

	amb, err := g.builder().Build()
	if err != nil {
		return err
	}
	defer amb.Close()

	var finite []*bmixer.Handle
	for _, s := range sounds {
		h, err := start(amb, s)
		if err != nil {
			return err
		}
		out.Info("Playing", fmt.Sprintf("%s at %v", s, h.Position()))
		if s.finite() {
			finite = append(finite, h)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if c.Duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.Duration)
		defer cancel()
	}

	// Tones never end, so with only tones playing wait for the deadline or
	// an interrupt.
	if len(finite) == len(sounds) {
		for _, h := range finite {
			select {
			case <-h.Done():
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	}
	<-ctx.Done()
	return nil
}

type RenderCmd struct {
	Sounds   []string      `arg:"" name:"sound" help:"FILE[@POS] or sine:HZ[@POS]."`
	Out      string        `short:"o" required:"" type:"path" help:"Output WAV file."`
	Duration time.Duration `default:"5s" help:"Length of the render."`
}

func (c *RenderCmd) Run(g *Globals) error {
	sounds, err := parseSounds(c.Sounds)
	if err != nil {
		return err
	}

	amb, err := g.builder().WithBackend(config.BackendNull).Build()
	if err != nil {
		return err
	}
	defer amb.Close()

	for _, s := range sounds {
		if _, err := start(amb, s); err != nil {
			return err
		}
	}

	began := time.Now()
	frames := int(c.Duration.Seconds() * float64(amb.SampleRate()))
	pcm, err := amb.Render(frames)
	if err != nil {
		return err
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := wav.WriteWAV16(f, amb.SampleRate(), 2, pcm); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	out.Success(fmt.Sprintf("wrote %s", c.Out))
	out.Info("Length", cli.FormatDuration(c.Duration))
	out.Info("Took", cli.FormatDuration(time.Since(began)))
	return nil
}

type OrbitCmd struct {
	Sound string `arg:"" name:"sound" help:"FILE or sine:HZ."`
}

func (c *OrbitCmd) Run(g *Globals) error {
	snd, err := parseSound(c.Sound)
	if err != nil {
		return err
	}

	amb, err := g.builder().Build()
	if err != nil {
		return err
	}
	defer amb.Close()

	h, err := start(amb, snd)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(ui.NewOrbitModel(h, snd.String())).Run()
	return err
}

type DemoCmd struct {
	Step time.Duration `default:"1s" help:"Pause between demo steps."`
}

func (c *DemoCmd) Run(g *Globals) error {
	amb, err := g.builder().Build()
	if err != nil {
		return err
	}
	defer amb.Close()

	high, err := source.Sine(amb.SampleRate(), config.DemoFrequency)
	if err != nil {
		return err
	}
	first, err := amb.Play(high, bformat.Right)
	if err != nil {
		return err
	}
	out.Info("Right", "440 Hz")
	time.Sleep(c.Step)

	low, err := source.Sine(amb.SampleRate(), config.DemoFrequency*3/4)
	if err != nil {
		return err
	}
	second, err := amb.Play(low, bformat.Left)
	if err != nil {
		return err
	}
	out.Info("Left", "330 Hz")
	time.Sleep(c.Step)

	first.Stop()
	second.SetPosition(bformat.Front)
	out.Info("Front", "330 Hz")
	time.Sleep(c.Step)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ambisonic"),
		kong.Description("Place sounds around the listener and hear them on stereo speakers."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if err := ctx.Run(&CLI.Globals); err != nil {
		out.Error(err.Error())
		os.Exit(1)
	}
}
