// File: lixenwraith/settings/doc.go

// Package settings provides a typed, persisted settings store for desktop applications.
//
// Options are declared once in a Schema, grouped into sections, each with a type,
// a default and an optional validator. A Store holds the current values, validates
// every write, and emits a ChangeEvent through its Notifier for each value that
// actually changed. A FileStore reads and atomically writes the store as YAML,
// JSON or TOML. A ResetController restores sections to their defaults.
//
// Features:
//   - Schema with typed options, enum choices, ranges and custom validators
//   - Struct registration with tag support
//   - Explicit unset for optional options, distinct from "use the default"
//   - Synchronous, ordered change notification with section and key wildcards
//   - Tolerant loading: unknown keys are dropped, invalid values fall back to defaults
//   - Atomic saves that never leave a partially written file
//   - Environment variable and command-line flag overrides
//   - File watching with debounced reloads
//
// Quick Start:
//
//	s, err := settings.NewBuilder().Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	s.Subscribe(settings.SectionAppearance, "theme", func(ev settings.ChangeEvent) {
//	    applyTheme(ev.New.(string))
//	})
//
//	if err := s.Set(settings.SectionAppearance, "theme", "light"); err != nil {
//	    var verr *settings.ValidationError
//	    if errors.As(err, &verr) {
//	        // value rejected, nothing changed
//	    }
//	}
//	_ = s.Save()
//
// Source order (later wins):
//  1. Schema defaults
//  2. Settings file
//  3. Environment variables (NAPARI_APPEARANCE_THEME=light)
//  4. Command-line flags (--appearance.theme=light)
//
// File discovery: --file, then $NAPARI_SETTINGS, then settings.{yaml,yml,json,toml}
// in the XDG config directories. The default path is <user config dir>/napari/settings.yaml.
//
// Thread safety: all Store methods are safe for concurrent use. Observers run
// synchronously on the writing goroutine and must not write to the store they observe.
package settings
