package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/logging"
	"github.com/arthur-debert/dfm/pkg/paths"
)

// EnvPrefix marks environment variables read as settings
const EnvPrefix = "DFM_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions controls where Load looks for settings
type LoadOptions struct {
	// WorkDir is searched for .dfm.toml and .dfm.yaml. Empty means ".".
	WorkDir string
	// UserConfig overrides $XDG_CONFIG_HOME/dfm/config.toml
	UserConfig string
	// SkipUser disables the user config layer
	SkipUser bool
	// Overrides win over every other layer. Keys are dotted (see Key*).
	Overrides map[string]interface{}
}

// UserConfigPath returns $XDG_CONFIG_HOME/dfm/config.toml
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "dfm", "config.toml")
}

// Load merges every settings layer into Settings
func Load(opts LoadOptions) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load embedded defaults")
	}

	// 2. User config
	if !opts.SkipUser {
		userPath := opts.UserConfig
		if userPath == "" {
			userPath = UserConfigPath()
		}
		if err := loadFileIfExists(k, userPath, toml.Parser()); err != nil {
			return nil, err
		}
	}

	// 3. Working directory config, .dfm.toml first
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	candidates := []struct {
		name   string
		parser koanf.Parser
	}{
		{".dfm.toml", toml.Parser()},
		{".dfm.yaml", yaml.Parser()},
	}
	for _, c := range candidates {
		path := filepath.Join(workDir, c.name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFile(k, path, c.parser); err != nil {
			return nil, err
		}
		break
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to load environment settings")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to apply overrides")
		}
	}

	var settings Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &settings,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				expandHomeHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &settings, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to unmarshal settings")
	}

	if err := validate(&settings); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("input", settings.Paths.Input).
		Str("output", settings.Paths.Output).
		Str("values", settings.Paths.Values).
		Str("extension", settings.Template.Extension).
		Msg("Settings loaded")
	return &settings, nil
}

// LogFilePath is the log file the settings ask for, or "" when file
// logging is disabled
func (s *Settings) LogFilePath() string {
	if !s.Logging.File {
		return ""
	}
	if s.Logging.Path != "" {
		return s.Logging.Path
	}
	return logging.DefaultLogFilePath()
}

func loadFileIfExists(k *koanf.Koanf, path string, parser koanf.Parser) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrSettingsLoad, "cannot read settings file %s", path).
			WithDetail("path", path)
	}
	return loadFile(k, path, parser)
}

func loadFile(k *koanf.Koanf, path string, parser koanf.Parser) error {
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrSettingsLoad, "failed to load settings from %s", path).
			WithDetail("path", path)
	}
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Loaded settings file")
	return nil
}

// expandHomeHookFunc expands a leading ~ in string settings
func expandHomeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.String {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		return paths.ExpandHome(s), nil
	}
}

func validate(s *Settings) error {
	required := []struct {
		key   string
		value string
	}{
		{KeyInput, s.Paths.Input},
		{KeyOutput, s.Paths.Output},
		{KeyValues, s.Paths.Values},
		{KeyTemplateExt, s.Template.Extension},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Newf(errors.ErrInvalidInput, "setting %s must not be empty", r.key).
				WithDetail("key", r.key)
		}
	}
	if paths.Overlap(s.Paths.Input, s.Paths.Output) {
		return errors.Newf(errors.ErrInvalidInput, "input root %s and output root %s must not contain each other",
			s.Paths.Input, s.Paths.Output).
			WithDetail("key", KeyOutput)
	}
	return nil
}
