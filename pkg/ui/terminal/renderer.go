// Package terminal renders colored output with status badges
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/dfm/pkg/ui/display"
	"github.com/arthur-debert/dfm/pkg/ui/styles"
)

// Renderer writes styled output to a terminal
type Renderer struct {
	output io.Writer
}

// New creates a terminal renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// StatusStyle returns the badge style for a file status
func StatusStyle(status string) *pterm.Style {
	switch status {
	case display.StatusLinked:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case display.StatusPlanned:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case display.StatusConflict:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case display.StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// RenderSummary renders one line per file followed by the totals
func (r *Renderer) RenderSummary(s *display.Summary) error {
	var b strings.Builder

	header := fmt.Sprintf("%s -> %s -> %s", s.InputRoot, s.OutputRoot, s.HomeDir)
	if s.DryRun {
		header += " (dry run)"
	}
	b.WriteString(styles.GetStyle("Header").Render(header))
	b.WriteString("\n")

	if s.ValuesFile != "" {
		b.WriteString(styles.GetStyle("Muted").Render("values: " + s.ValuesFile))
		b.WriteString("\n")
	}

	for _, f := range s.Files {
		badge := StatusStyle(f.Status).Sprint(fmt.Sprintf(" %-8s ", f.Status))
		action := styles.GetStyle("Muted").Render(fmt.Sprintf("%-6s", f.Action))
		source := styles.GetStyle("FilePath").Render(f.Source)
		fmt.Fprintf(&b, "%s %s %s -> %s", badge, action, source, styles.GetStyle("Target").Render(f.Link))
		if f.Replaced != "" {
			b.WriteString(styles.GetStyle("Muted").Render(" (replaced " + f.Replaced + ")"))
		}
		b.WriteString("\n")
		if f.Error != "" {
			b.WriteString("  ")
			b.WriteString(styles.GetStyle("Error").Render(f.Error))
			b.WriteString("\n")
		}
	}

	totals := fmt.Sprintf("%d file(s): %d rendered, %d copied, %d linked, %d failed",
		s.Totals.Files, s.Totals.Rendered, s.Totals.Copied, s.Totals.Linked, s.Totals.Failed)
	if s.OK() {
		b.WriteString(styles.GetStyle("Success").Render(totals))
	} else {
		b.WriteString(styles.GetStyle("Warning").Render(totals))
	}
	b.WriteString("\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, styles.GetStyle("Error").Render("Error: "+err.Error()))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.GetStyle("Info").Render(msg))
	return err
}
