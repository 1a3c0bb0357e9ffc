package settings

import (
	"errors"
	"fmt"
	"os"
)

// DefaultEnvPrefix is prepended to environment variable names.
// application.language maps to NAPARI_APPLICATION_LANGUAGE.
const DefaultEnvPrefix = "NAPARI_"

// MaxValueSize bounds the length of a value read from the environment.
const MaxValueSize = 64 * 1024

// LoadEnv applies environment overrides for every registered option.
// Invalid values are skipped and returned joined; valid ones are applied
// with SourceEnv.
func (st *Store) LoadEnv(prefix string) error {
	var errs []error

	for _, section := range st.schema.Sections() {
		for _, key := range st.schema.Keys(section) {
			name := envName(prefix, section, key)
			value, exists := os.LookupEnv(name)
			if !exists {
				continue
			}
			if len(value) > MaxValueSize {
				errs = append(errs, fmt.Errorf("env %s: value exceeds %d bytes", name, MaxValueSize))
				continue
			}

			if _, err := st.setWithSource(section, key, parseEnvValue(value), SourceEnv); err != nil {
				errs = append(errs, fmt.Errorf("env %s: %w", name, err))
			}
		}
	}

	return errors.Join(errs...)
}

// DiscoverEnv returns path -> variable name for every set override variable.
func (st *Store) DiscoverEnv(prefix string) map[string]string {
	discovered := make(map[string]string)
	for _, section := range st.schema.Sections() {
		for _, key := range st.schema.Keys(section) {
			name := envName(prefix, section, key)
			if _, exists := os.LookupEnv(name); exists {
				discovered[string(section)+"."+key] = name
			}
		}
	}
	return discovered
}

// ExportEnv returns variable name -> value for options that differ from their default.
func (st *Store) ExportEnv(prefix string) map[string]string {
	exports := make(map[string]string)
	snap := st.Snapshot()

	for _, section := range st.schema.Sections() {
		for _, spec := range st.schema.Specs(section) {
			value := snap[section][spec.Key]
			if value == nil || equalValues(value, spec.Default) {
				continue
			}
			exports[envName(prefix, section, spec.Key)] = FormatValue(value)
		}
	}
	return exports
}

// parseEnvValue strips surrounding quotes. Type conversion is left to the option's coercion.
func parseEnvValue(s string) any {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
