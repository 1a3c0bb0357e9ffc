// FILE: lixenwraith/settings/errors.go
package settings

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is against the typed errors below.
var (
	ErrUnknownOption  = errors.New("unknown option")
	ErrValidation     = errors.New("validation failed")
	ErrDuplicateKey   = errors.New("option already registered")
	ErrInvalidDefault = errors.New("invalid default value")
	ErrCorruptState   = errors.New("corrupt settings state")
	ErrPersistence    = errors.New("settings persistence failed")
	ErrSchemaFrozen   = errors.New("schema is frozen")
	ErrInvalidPath    = errors.New("invalid settings path")
)

// UnknownOptionError is returned when a section or key has no OptionSpec.
// Key is empty when the whole section is unknown.
type UnknownOptionError struct {
	Section Section
	Key     string
}

func (e *UnknownOptionError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("unknown section %q", e.Section)
	}
	return fmt.Sprintf("unknown option %s.%s", e.Section, e.Key)
}

func (e *UnknownOptionError) Is(target error) bool { return target == ErrUnknownOption }

// ValidationError describes a value rejected by an option's type or validator.
// The store is left unchanged whenever one is returned.
type ValidationError struct {
	Section Section
	Key     string
	Value   any
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %v for %s.%s: %s", e.Value, e.Section, e.Key, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DuplicateKeyError is returned by Register for an already registered (section, key).
type DuplicateKeyError struct {
	Section Section
	Key     string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("option %s.%s already registered", e.Section, e.Key)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// InvalidDefaultError is returned by Register when a default fails its own validation.
type InvalidDefaultError struct {
	Section Section
	Key     string
	Default any
	Err     error
}

func (e *InvalidDefaultError) Error() string {
	return fmt.Sprintf("invalid default %v for %s.%s: %v", e.Default, e.Section, e.Key, e.Err)
}

func (e *InvalidDefaultError) Unwrap() error { return e.Err }

func (e *InvalidDefaultError) Is(target error) bool { return target == ErrInvalidDefault }

// CorruptStateError means the persisted document itself could not be parsed.
// Missing or extra keys never produce this error.
type CorruptStateError struct {
	Path   string
	Format Format
	Err    error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("failed to parse %s settings file '%s': %v", e.Format, e.Path, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

func (e *CorruptStateError) Is(target error) bool { return target == ErrCorruptState }

// PersistenceError reports a failed durable write. In-memory state stays valid.
type PersistenceError struct {
	Path string
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s settings file '%s': %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
