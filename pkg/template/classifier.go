package template

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dfm/pkg/paths"
)

// DefaultMarker is the extension that marks a file as a Handlebars template
const DefaultMarker = "hbs"

// Classifier routes files to rendering or copying by extension
type Classifier struct {
	marker string
}

// NewClassifier creates a Classifier for marker. An empty marker selects
// DefaultMarker; a leading dot is ignored.
func NewClassifier(marker string) Classifier {
	marker = strings.TrimPrefix(marker, ".")
	if marker == "" {
		marker = DefaultMarker
	}
	return Classifier{marker: marker}
}

// Marker returns the configured template extension without the dot
func (c Classifier) Marker() string {
	return c.marker
}

// IsTemplate reports whether path's final extension is the marker
func (c Classifier) IsTemplate(path string) bool {
	return IsTemplate(path, c.marker)
}

// OutputName returns the materialized name for path: the marker extension is
// stripped from templates, everything else is unchanged.
func (c Classifier) OutputName(path string) string {
	if !c.IsTemplate(path) {
		return path
	}
	return strings.TrimSuffix(path, "."+c.marker)
}

// IsTemplate reports whether path's final extension equals marker,
// case-sensitively. Files without an extension are never templates.
func IsTemplate(path, marker string) bool {
	if marker == "" {
		return false
	}
	return paths.Ext(filepath.Base(path)) == marker
}
