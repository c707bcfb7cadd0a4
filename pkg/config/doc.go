// Package config loads dfm's own settings: where the input and output roots
// live, which values document to read, and which extension marks a
// template. It is unrelated to the values table handed to templates.
//
// Settings are layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/dfm/config.toml
//  3. .dfm.toml or .dfm.yaml in the working directory
//  4. DFM_* environment variables, DFM_PATHS_INPUT mapping to paths.input
//  5. explicit overrides, normally command line flags
package config
