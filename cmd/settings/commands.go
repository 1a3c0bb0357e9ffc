package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/settings"
)

const checkMark = "✓"

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <section.key>",
		Short: "Print the current value of an option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			value, err := s.GetPath(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), settings.FormatValue(value))
			return nil
		},
	}
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <section.key> <value>",
		Short: "Validate, store and save an option value",
		Long: `Validate, store and save an option value.

Lists are comma separated (a,b,c). Pairs are written WxH (800x600).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			if err := s.SetPath(args[0], args[1]); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Set %s\n", checkMark, args[0])
			return nil
		},
	}
}

func newUnsetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <section.key>",
		Short: "Clear an optional option and save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			if err := s.SetPath(args[0], settings.Unset); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Unset %s\n", checkMark, args[0])
			return nil
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		all    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List current values",
		Long: `List current values.

Option flags such as --appearance.theme=light preview an override
without saving it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(func(b *settings.Builder) {
				b.WithFlags(cmd.Flags())
			})
			if err != nil {
				return err
			}

			infos := s.Describe(all)
			if asJSON {
				return writeJSON(cmd, infos)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "OPTION\tVALUE\t")
			for _, info := range infos {
				marker := ""
				if info.Configured {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Path, info.Current, marker)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include hidden options")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	settings.NewStore(settings.DefaultSchema(), nil).AddFlags(cmd.Flags())
	return cmd
}

func newSchemaCmd(opts *rootOptions) *cobra.Command {
	var (
		all    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Describe every option: type, default and allowed values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := settings.NewStore(settings.DefaultSchema(), nil)
			if asJSON {
				return writeJSON(cmd, st.Describe(all))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "OPTION\tTYPE\tDEFAULT\tDESCRIPTION")
			for _, info := range st.Describe(all) {
				typ := info.Type
				if len(info.Choices) > 0 {
					typ = fmt.Sprintf("%s%v", typ, info.Choices)
				}
				if info.Optional {
					typ += "?"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Path, typ, info.Default, info.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include hidden options")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [section]",
		Short: "Restore a section, or every section, to defaults and save",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if err := s.ResetAll(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Reset all settings\n", checkMark)
				return nil
			}

			if err := s.ResetSection(settings.Section(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Reset %s\n", checkMark, args[0])
			return nil
		},
	}
}

func newPathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Path())
			return nil
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
