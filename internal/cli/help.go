// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Italic(true)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

const description = "Place sounds around the listener and hear them on stereo speakers."

// StyledHelpPrinter renders kong help with the palette above.
func StyledHelpPrinter(kong.HelpOptions) kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		sb.WriteString(helpTitleStyle.Render(appName))
		sb.WriteString("\n")
		sb.WriteString(helpDescStyle.Render(description))
		sb.WriteString("\n")

		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(node.FullPath())
		if s := node.Summary(); s != "" && node != ctx.Model.Node {
			sb.WriteString(strings.TrimPrefix(s, node.Name))
		} else {
			sb.WriteString(" <command> [flags]")
		}
		sb.WriteString("\n")

		if cmds := commands(node); len(cmds) > 0 {
			sb.WriteString(helpSectionStyle.Render("Commands:"))
			sb.WriteString("\n")
			for _, c := range cmds {
				fmt.Fprintf(&sb, "  %s  %s\n", helpFlagStyle.Render(c.flags), c.help)
			}
		}

		if len(node.Positional) > 0 {
			sb.WriteString(helpSectionStyle.Render("Arguments:"))
			sb.WriteString("\n")
			for _, arg := range node.Positional {
				fmt.Fprintf(&sb, "  %s  %s\n", helpFlagStyle.Render(arg.Summary()), arg.Help)
			}
		}

		sb.WriteString(helpSectionStyle.Render("Flags:"))
		sb.WriteString("\n")
		for _, f := range flags(node) {
			sb.WriteString("  ")
			sb.WriteString(helpFlagStyle.Render(f.flags))
			if f.help != "" {
				sb.WriteString("  ")
				sb.WriteString(f.help)
			}
			if f.defaultVal != "" {
				sb.WriteString(" ")
				sb.WriteString(helpDefaultStyle.Render("(default: " + f.defaultVal + ")"))
			}
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

type entry struct {
	flags      string
	help       string
	defaultVal string
}

func commands(node *kong.Node) []entry {
	var out []entry
	for _, c := range node.Children {
		if c.Hidden {
			continue
		}
		out = append(out, entry{flags: c.Name, help: c.Help})
	}
	return out
}

// flags lists the node's own flags followed by those inherited from its
// parents, help first.
func flags(node *kong.Node) []entry {
	out := []entry{{flags: "-h, --help", help: "Show context-sensitive help."}}

	for n := node; n != nil; n = n.Parent {
		for _, f := range n.Flags {
			if f.Name == "help" || f.Hidden {
				continue
			}
			out = append(out, flagEntry(f))
		}
	}
	return out
}

func flagEntry(f *kong.Flag) entry {
	s := fmt.Sprintf("--%s", f.Name)
	if f.Short != 0 {
		s = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
	}
	if !f.IsBool() && f.PlaceHolder != "" {
		s += "=" + strings.ToUpper(f.PlaceHolder)
	}

	def := ""
	if f.HasDefault && !f.IsBool() && f.Default != "" {
		def = f.Default
	}
	return entry{flags: s, help: f.Help, defaultVal: def}
}
