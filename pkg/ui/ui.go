// Package ui renders the summary of a run as colored terminal output,
// plain text, or JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/ui/display"
	"github.com/arthur-debert/dfm/pkg/ui/json"
	"github.com/arthur-debert/dfm/pkg/ui/terminal"
	"github.com/arthur-debert/dfm/pkg/ui/text"
)

// Renderer is implemented by every output format
type Renderer interface {
	// RenderSummary renders what a run did or would do
	RenderSummary(summary *display.Summary) error

	// RenderError renders an error that ended the run
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output
// when it is a file and falls back to text otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
