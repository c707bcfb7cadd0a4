package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/dfm/pkg/errors"
)

// Format selects how the run summary is printed
type Format int

const (
	FormatAuto Format = iota
	// FormatTerminal prints status badges and colored paths
	FormatTerminal
	// FormatText prints one aligned line per deployed file, for logs and pipes
	FormatText
	// FormatJSON prints the summary as a single JSON document for scripts
	FormatJSON
)

// FormatNames lists the accepted --format values, canonical names only
var FormatNames = []string{"auto", "term", "text", "json"}

// formatAliases also accepts the long and legacy spellings
var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

func (f Format) String() string {
	if f >= FormatAuto && int(f) < len(FormatNames) {
		return FormatNames[f]
	}
	return "unknown"
}

// ParseFormat reads a --format value, ignoring case and surrounding space
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s (expected one of %s)",
		s, strings.Join(FormatNames, ", ")).
		WithDetail("format", s)
}

// DetectFormat resolves FormatAuto for the file the summary goes to.
// Badges are only worth printing on a color terminal; with NO_COLOR set or
// the summary redirected to a file, plain text is used.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	fd := output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(output).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
