// FILE: lixenwraith/settings/schema.go
package settings

import (
	"fmt"
	"iter"
	"sync"
)

// DefaultSchemaVersion is written to settings files when a schema has no version.
const DefaultSchemaVersion = "0.1.0"

// Schema is the registry of every option the store recognizes, grouped by section.
// It is populated once at startup and frozen when a Store is created from it.
type Schema struct {
	mu       sync.RWMutex
	sections map[Section]map[string]OptionSpec
	order    []Section // Registration order of sections
	version  string
	frozen   bool
}

// NewSchema creates an empty schema with the given version string.
func NewSchema(version string) *Schema {
	if version == "" {
		version = DefaultSchemaVersion
	}
	return &Schema{
		sections: make(map[Section]map[string]OptionSpec),
		version:  version,
	}
}

// Version returns the schema version written alongside persisted settings.
func (s *Schema) Version() string {
	return s.version
}

// Register adds an option to the schema.
// It fails with *DuplicateKeyError if (section, key) is taken and with
// *InvalidDefaultError if the default does not pass the option's own validation.
func (s *Schema) Register(spec OptionSpec) error {
	if !isValidKeySegment(string(spec.Section)) {
		return fmt.Errorf("%w: invalid section name %q", ErrInvalidPath, spec.Section)
	}
	if !isValidKeySegment(spec.Key) {
		return fmt.Errorf("%w: invalid key %q in section %q", ErrInvalidPath, spec.Key, spec.Section)
	}
	if spec.Type == TypeEnum && len(spec.Choices) == 0 {
		return &InvalidDefaultError{Section: spec.Section, Key: spec.Key, Default: spec.Default,
			Err: fmt.Errorf("enum option has no choices")}
	}

	canon, err := spec.normalize(spec.Default)
	if err != nil {
		return &InvalidDefaultError{Section: spec.Section, Key: spec.Key, Default: spec.Default, Err: err}
	}
	spec.Default = canon

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return fmt.Errorf("%w: cannot register %s", ErrSchemaFrozen, spec.Path())
	}

	options, exists := s.sections[spec.Section]
	if !exists {
		options = make(map[string]OptionSpec)
		s.sections[spec.Section] = options
		s.order = append(s.order, spec.Section)
	}
	if _, dup := options[spec.Key]; dup {
		return &DuplicateKeyError{Section: spec.Section, Key: spec.Key}
	}

	options[spec.Key] = spec
	return nil
}

// MustRegister is like Register but panics on error.
// Schema errors are authoring bugs and should stop the program at startup.
func (s *Schema) MustRegister(specs ...OptionSpec) *Schema {
	for _, spec := range specs {
		if err := s.Register(spec); err != nil {
			panic(fmt.Sprintf("settings schema registration failed: %v", err))
		}
	}
	return s
}

// Lookup returns the spec of a registered option.
func (s *Schema) Lookup(section Section, key string) (OptionSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	spec, ok := s.sections[section][key]
	if !ok {
		return OptionSpec{}, &UnknownOptionError{Section: section, Key: key}
	}
	return spec, nil
}

// LookupPath returns the spec addressed by a dotted "section.key" path.
func (s *Schema) LookupPath(path string) (OptionSpec, error) {
	section, key, err := splitPath(path)
	if err != nil {
		return OptionSpec{}, err
	}
	return s.Lookup(section, key)
}

// HasSection reports whether any option is registered under section.
func (s *Schema) HasSection(section Section) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sections[section]
	return ok
}

// Sections returns the registered sections in registration order.
func (s *Schema) Sections() []Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Section(nil), s.order...)
}

// Keys returns the option keys of a section in lexical order.
func (s *Schema) Keys(section Section) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.sections[section])
}

// Specs returns the option specs of a section in key order.
func (s *Schema) Specs(section Section) []OptionSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()

	options := s.sections[section]
	specs := make([]OptionSpec, 0, len(options))
	for _, key := range sortedKeys(options) {
		specs = append(specs, options[key])
	}
	return specs
}

// Defaults yields (key, default) pairs of a section in key order.
// The sequence is finite and may be ranged over any number of times.
func (s *Schema) Defaults(section Section) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, spec := range s.Specs(section) {
			if !yield(spec.Key, cloneValue(spec.Default)) {
				return
			}
		}
	}
}

// Freeze makes the schema immutable. Further Register calls fail.
func (s *Schema) Freeze() {
	s.mu.Lock()
	s.frozen = true
	s.mu.Unlock()
}

// Frozen reports whether the schema has been frozen.
func (s *Schema) Frozen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frozen
}
