package settings

import (
	"fmt"
	"strings"
)

// Section names a group of related options. Section names follow TOML bare key rules.
type Section string

const (
	SectionAppearance  Section = "appearance"
	SectionApplication Section = "application"
	SectionPlugins     Section = "plugins"
)

// OptionType is the semantic type of an option value.
type OptionType int

const (
	TypeBool OptionType = iota
	TypeInt
	TypeFloat
	TypeString
	TypeEnum
	TypeStringList
	TypeIntPair
)

// String returns the type name used in schema descriptions.
func (t OptionType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeStringList:
		return "string_list"
	case TypeIntPair:
		return "int_pair"
	default:
		return "unknown"
	}
}

// Source identifies where a value change came from.
type Source string

const (
	// SourceDefault marks values restored from the schema default
	SourceDefault Source = "default"
	// SourceFile marks values read from the settings file
	SourceFile Source = "file"
	// SourceEnv marks values read from environment variables
	SourceEnv Source = "env"
	// SourceCLI marks values given as command-line flags
	SourceCLI Source = "cli"
	// SourceUser marks programmatic Set calls
	SourceUser Source = "set"
	// SourceReset marks values restored by a reset
	SourceReset Source = "reset"
)

type unsetValue struct{}

func (unsetValue) String() string { return "<unset>" }

// Unset is passed to Set to explicitly clear an optional option.
// An explicitly unset option reads as nil, while an option that was never
// configured reads as its default.
var Unset = unsetValue{}

// OptionSpec declares one option. Specs are immutable once registered.
type OptionSpec struct {
	Section Section
	Key     string
	Type    OptionType

	// Default is canonicalized at registration (ints become int64, and so on).
	Default any

	// Validator runs on the canonical value after type coercion. Optional.
	Validator Validator

	// Optional allows nil (Unset) as a value.
	Optional bool

	// Choices lists the allowed values of a TypeEnum option, matched case-insensitively.
	Choices []string

	Description string

	// Hidden options are persisted but not shown in preference listings.
	Hidden bool
}

// Path returns the dotted "section.key" path of the option.
func (o OptionSpec) Path() string {
	return string(o.Section) + "." + o.Key
}

// Validate coerces value to the option's canonical type and runs the validator.
// The returned value is what the store keeps.
func (o OptionSpec) Validate(value any) (any, error) {
	canon, err := o.normalize(value)
	if err != nil {
		return nil, &ValidationError{Section: o.Section, Key: o.Key, Value: value, Reason: err.Error()}
	}
	return canon, nil
}

// normalize returns the canonical value or a reason error
func (o OptionSpec) normalize(value any) (any, error) {
	if value == nil || value == any(Unset) {
		if !o.Optional {
			return nil, fmt.Errorf("option is not optional")
		}
		return nil, nil
	}

	canon, err := coerce(o, value)
	if err != nil {
		return nil, err
	}

	if o.Validator != nil {
		if err := o.Validator(canon); err != nil {
			return nil, err
		}
	}
	return canon, nil
}

// splitPath splits a dotted "section.key" path.
func splitPath(path string) (Section, string, error) {
	section, key, ok := strings.Cut(path, ".")
	if !ok || section == "" || key == "" || strings.Contains(key, ".") {
		return "", "", fmt.Errorf("%w: %q (want section.key)", ErrInvalidPath, path)
	}
	return Section(section), key, nil
}
