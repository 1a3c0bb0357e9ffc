package settings

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// AddFlags registers one flag per option on fs, named by its dotted path
// (e.g. --appearance.theme). Flag defaults show the current values.
// Apply parsed flags with BindFlags.
func (st *Store) AddFlags(fs *pflag.FlagSet) {
	snap := st.Snapshot()

	for _, section := range st.schema.Sections() {
		for _, spec := range st.schema.Specs(section) {
			name := spec.Path()
			if fs.Lookup(name) != nil {
				continue
			}

			usage := spec.Description
			if usage == "" {
				usage = fmt.Sprintf("Setting: %s", name)
			}
			if spec.Type == TypeEnum {
				usage += fmt.Sprintf(" (%s)", strings.Join(spec.Choices, "|"))
			}

			current := snap[section][spec.Key]
			switch v := current.(type) {
			case bool:
				fs.Bool(name, v, usage)
			case int64:
				fs.Int64(name, v, usage)
			case float64:
				fs.Float64(name, v, usage)
			case []string:
				fs.StringSlice(name, v, usage)
			default:
				fs.String(name, FormatValue(v), usage)
			}
			fs.Lookup(name).Hidden = spec.Hidden
		}
	}
}

// FlagSet returns a new flag set holding every option flag.
func (st *Store) FlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("settings", pflag.ContinueOnError)
	st.AddFlags(fs)
	return fs
}

// BindFlags applies every option flag that was set on the command line, with SourceCLI.
func (st *Store) BindFlags(fs *pflag.FlagSet) error {
	var errors []error

	fs.Visit(func(f *pflag.Flag) {
		spec, err := st.schema.LookupPath(f.Name)
		if err != nil {
			return // Not an option flag
		}

		var value any = f.Value.String()
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			value = sv.GetSlice()
		}

		if _, err := st.setWithSource(spec.Section, spec.Key, value, SourceCLI); err != nil {
			errors = append(errors, fmt.Errorf("flag --%s: %w", f.Name, err))
		}
	})

	if len(errors) > 0 {
		return fmt.Errorf("failed to bind %d flags: %w", len(errors), errors[0])
	}

	return nil
}
