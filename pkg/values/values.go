// Package values loads the key/value document that templates render against.
package values

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/logging"
)

// DefaultFile is the values document looked up in the working directory
const DefaultFile = "values.toml"

// Table maps value names to strings, numbers, booleans, nested tables and
// sequences. It is read-only once loaded.
type Table map[string]any

// Format identifies the syntax of a values document
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// FormatFor picks the document format from the file extension.
// Unknown extensions are read as TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".hcl":
		return FormatHCL
	default:
		return FormatTOML
	}
}

// Load reads and parses the values document at path. A missing file is a
// CONFIG_MISSING error and a malformed one is CONFIG_PARSE; nothing is
// recovered from a partially valid document.
func Load(path string) (Table, error) {
	logger := logging.GetLogger("values").With().Str("path", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrConfigMissing,
				"template files found, but values file %s does not exist", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read values file %s", path).
			WithDetail("path", path)
	}

	format := FormatFor(path)
	table, err := Parse(data, format, path)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("format", string(format)).Int("keys", len(table)).
		Msg("Using values file as templating values")
	return table, nil
}

// Parse decodes data in the given format. name is used in error messages.
func Parse(data []byte, format Format, name string) (Table, error) {
	var (
		table Table
		err   error
	)

	switch format {
	case FormatYAML:
		table, err = parseYAML(data)
	case FormatHCL:
		table, err = parseHCL(data, name)
	default:
		table, err = parseTOML(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse values file %s", name).
			WithDetail("path", name).
			WithDetail("format", string(format))
	}

	if table == nil {
		table = Table{}
	}
	return table, nil
}

func parseTOML(data []byte) (Table, error) {
	var table map[string]any
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}

func parseYAML(data []byte) (Table, error) {
	var table map[string]any
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}
