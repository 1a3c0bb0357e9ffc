package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/settings"
)

type rootOptions struct {
	file     string
	reset    bool
	logLevel string
}

// newRootCmd builds the command tree. Each call returns fresh state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and edit application settings",
		Long: `Inspect and edit the persisted application settings.

Settings are read from the file given by --file, the NAPARI_SETTINGS
environment variable, or the user config directory, in that order.

Examples:
  settings --reset
  settings list
  settings get application.language
  settings set appearance.highlight_thickness 5
  settings reset appearance`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.reset {
				return cmd.Help()
			}
			s, err := opts.open()
			if err != nil {
				return err
			}
			if err := s.ResetAll(); err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings reset to defaults in %s\n", s.Path())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.file, "file", "", "settings file path")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.Flags().BoolVar(&opts.reset, "reset", false, "reset all settings to defaults and exit")

	root.AddCommand(
		newGetCmd(opts),
		newSetCmd(opts),
		newUnsetCmd(opts),
		newListCmd(opts),
		newSchemaCmd(opts),
		newResetCmd(opts),
		newPathCmd(opts),
	)
	return root
}

// open builds settings for one command invocation.
func (o *rootOptions) open(extra ...func(*settings.Builder)) (*settings.Settings, error) {
	level, err := zerolog.ParseLevel(o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	b := settings.NewBuilder().WithLogger(logger)
	if o.file != "" {
		b.WithFile(o.file)
	}
	for _, fn := range extra {
		fn(b)
	}
	return b.Build()
}
