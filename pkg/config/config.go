package config

// Settings is the fully merged configuration of a run
type Settings struct {
	Paths    Paths    `koanf:"paths"`
	Template Template `koanf:"template"`
	Logging  Logging  `koanf:"logging"`
}

// Paths locates the trees and documents a run works on
type Paths struct {
	Input  string `koanf:"input"`
	Output string `koanf:"output"`
	Values string `koanf:"values"`
}

// Template configures template classification
type Template struct {
	Extension string `koanf:"extension"`
}

// Logging configures the log file
type Logging struct {
	File bool   `koanf:"file"`
	Path string `koanf:"path"`
}

// Keys accepted in LoadOptions.Overrides
const (
	KeyInput       = "paths.input"
	KeyOutput      = "paths.output"
	KeyValues      = "paths.values"
	KeyTemplateExt = "template.extension"
	KeyLogFile     = "logging.file"
	KeyLogPath     = "logging.path"
)
