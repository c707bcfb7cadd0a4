package cli

// Command descriptions
const (
	MsgRootUse   = "dfm"
	MsgRootShort = "Deploy dotfiles by rendering templates and linking them into your home"
	MsgRootLong  = `dfm mirrors an input tree (default "home") into an output tree (default
"out"). Files ending in .hbs are rendered as Handlebars templates against a
values document (default "values.toml"), every other file is copied as is.
Each file of the output tree is then symlinked into your home directory at
the same relative path, replacing whatever was there.

The values document is only read when at least one template exists. It may
be TOML, YAML (.yaml, .yml) or HCL (.hcl).

Settings are read from ` + "`$XDG_CONFIG_HOME/dfm/config.toml`" + `, then ` + "`.dfm.toml`" + ` or
` + "`.dfm.yaml`" + ` in the working directory, then ` + "`DFM_*`" + ` environment variables, then
flags.`
	MsgRootExample = `  # Render, copy and link ./home into $HOME
  dfm

  # Use another values document and show what happens
  dfm -c ~/secrets/values.toml -d

  # Preview without writing anything
  dfm --dry-run

  # Machine-readable summary
  dfm --format json`
)

// Flag usage
const (
	MsgFlagConfig = "Values document used to render templates"
	MsgFlagDebug  = "Increase verbosity (-d INFO, -dd DEBUG, -ddd TRACE)"
	MsgFlagInput  = "Input tree to mirror"
	MsgFlagOutput = "Output tree receiving rendered and copied files"
	MsgFlagDryRun = "Show what would be rendered and linked without changing anything"
	MsgFlagFormat = "Output format: auto, term, text or json"
)

// Status messages
const (
	MsgDryRunNotice = "DRY RUN MODE - No changes were made"
	MsgNothingToDo  = "No files found in %s, nothing to do."
)
