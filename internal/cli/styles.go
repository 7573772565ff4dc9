// SPDX-License-Identifier: EPL-2.0

// Package cli holds the terminal styling used by the ambisonic command.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const appName = "ambisonic"

// Palette
var (
	primaryColor   = lipgloss.Color("#2E86AB") // sound-field blue
	accentColor    = lipgloss.Color("#F6AE2D")
	successColor   = lipgloss.Color("#3BB273")
	errorColor     = lipgloss.Color("#E15554")
	mutedColor     = lipgloss.Color("#888888")
	highlightColor = lipgloss.Color("#F6F930")
	textColor      = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlightColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// Printer writes styled status lines. The zero value writes to stdout and
// errors to stderr.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

func (p Printer) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

func (p Printer) err() io.Writer {
	if p.Err == nil {
		return os.Stderr
	}
	return p.Err
}

func (p Printer) Version(version string) {
	fmt.Fprintln(p.out(), TitleStyle.Render(appName))
	fmt.Fprintf(p.out(), "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

func (p Printer) Error(message string) {
	fmt.Fprintf(p.err(), "%s %s\n", ErrorStyle.Render("Error:"), message)
}

func (p Printer) Warning(message string) {
	fmt.Fprintf(p.err(), "%s %s\n", HighlightStyle.Render("Warning:"), message)
}

func (p Printer) Success(message string) {
	fmt.Fprintf(p.out(), "%s %s\n", SuccessStyle.Render("✓"), message)
}

func (p Printer) Info(key, value string) {
	fmt.Fprintf(p.out(), "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

func (p Printer) Section(title string) {
	fmt.Fprintln(p.out(), HeaderStyle.Render(title))
}

// FormatDuration formats d as milliseconds below a second and as seconds
// with one decimal otherwise.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
