// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/ui/display"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderSummary renders the summary as a single JSON document
func (r *Renderer) RenderSummary(s *display.Summary) error {
	return r.encoder.Encode(s)
}

// errorObject carries the structured fields of a dfm error
type errorObject struct {
	Error   string                 `json:"error"`
	Code    errors.ErrorCode       `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RenderError renders an error as JSON, with its code and details
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(errorObject{
		Error:   err.Error(),
		Code:    errors.GetErrorCode(err),
		Details: errors.GetErrorDetails(err),
	})
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
