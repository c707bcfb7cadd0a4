// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dfm/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderSummary renders one line per file followed by the totals
func (r *Renderer) RenderSummary(s *display.Summary) error {
	header := fmt.Sprintf("%s -> %s -> %s", s.InputRoot, s.OutputRoot, s.HomeDir)
	if s.DryRun {
		header += " (dry run)"
	}
	if _, err := fmt.Fprintln(r.output, header); err != nil {
		return err
	}
	if s.ValuesFile != "" {
		if _, err := fmt.Fprintf(r.output, "values: %s\n", s.ValuesFile); err != nil {
			return err
		}
	}

	for _, f := range s.Files {
		line := fmt.Sprintf("%-8s %-6s %s -> %s", f.Status, f.Action, f.Source, f.Link)
		if f.Replaced != "" {
			line += " (replaced " + f.Replaced + ")"
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
		if f.Error != "" {
			if _, err := fmt.Fprintf(r.output, "  error: %s\n", f.Error); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(r.output, "%d file(s): %d rendered, %d copied, %d linked, %d failed\n",
		s.Totals.Files, s.Totals.Rendered, s.Totals.Copied, s.Totals.Linked, s.Totals.Failed)
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
