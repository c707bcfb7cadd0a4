// Package cli builds the dfm command line.
package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dfm/internal/version"
	"github.com/arthur-debert/dfm/pkg/config"
	"github.com/arthur-debert/dfm/pkg/logging"
	"github.com/arthur-debert/dfm/pkg/pipeline"
	"github.com/arthur-debert/dfm/pkg/ui"
	"github.com/arthur-debert/dfm/pkg/ui/display"
)

// flagKeys maps flags to the settings they override
var flagKeys = map[string]string{
	"config": config.KeyValues,
	"input":  config.KeyInput,
	"output": config.KeyOutput,
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(config.LoadOptions{})
}

func newRootCmd(loadOpts config.LoadOptions) *cobra.Command {
	var (
		verbosity int
		dryRun    bool
		format    string
		settings  *config.Settings
	)

	rootCmd := &cobra.Command{
		Use:     MsgRootUse,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.String(),
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := loadOpts
			opts.Overrides = overridesFromFlags(cmd)

			var err error
			settings, err = config.Load(opts)
			if err != nil {
				return err
			}

			logging.SetupLogger(verbosity, settings.LogFilePath())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}
			renderer, err := ui.NewRenderer(outFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			result, err := pipeline.Run(pipeline.Options{
				InputRoot:   settings.Paths.Input,
				OutputRoot:  settings.Paths.Output,
				ValuesPath:  settings.Paths.Values,
				TemplateExt: settings.Template.Extension,
				DryRun:      dryRun,
			})
			if err != nil {
				return err
			}

			if len(result.Entries) == 0 && outFormat != ui.FormatJSON {
				return renderer.RenderMessage(fmt.Sprintf(MsgNothingToDo, result.InputRoot))
			}

			if err := renderer.RenderSummary(display.FromResult(result)); err != nil {
				return err
			}
			if dryRun && outFormat != ui.FormatJSON {
				if err := renderer.RenderMessage(MsgDryRunNotice); err != nil {
					return err
				}
			}
			return result.Err()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags := rootCmd.Flags()
	flags.StringP("config", "c", "", MsgFlagConfig)
	flags.StringP("input", "i", "", MsgFlagInput)
	flags.StringP("output", "o", "", MsgFlagOutput)
	flags.CountVarP(&verbosity, "debug", "d", MsgFlagDebug)
	flags.BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVar(&format, "format", "auto", MsgFlagFormat)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkFlagFilename("config", "toml", "yaml", "yml", "hcl")
	_ = rootCmd.MarkFlagDirname("input")
	_ = rootCmd.MarkFlagDirname("output")

	return rootCmd
}

// overridesFromFlags returns the settings of flags given on the command line.
// Unset flags leave lower layers alone.
func overridesFromFlags(cmd *cobra.Command) map[string]interface{} {
	overrides := make(map[string]interface{})
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag != nil && flag.Changed {
			overrides[key] = flag.Value.String()
		}
	}
	return overrides
}
