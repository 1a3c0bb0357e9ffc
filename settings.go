// FILE: lixenwraith/settings/settings.go
package settings

import (
	"sync"

	"github.com/rs/zerolog"
)

// Settings ties a Store to its file, reset controller and optional file watcher.
// Build one with NewBuilder and pass it to the components that need it.
type Settings struct {
	*Store

	files  *FileStore
	resets *ResetController
	logger zerolog.Logger
	report *LoadReport

	mu       sync.Mutex // Protects watcher and autoSave
	watcher  *watcher
	autoSave *Subscription
}

// Save writes the current values to the settings file.
func (s *Settings) Save() error {
	return s.files.Save(s.Store)
}

// ResetSection restores a section to defaults and saves. See ResetController.ResetSection.
func (s *Settings) ResetSection(section Section) error {
	return s.resets.ResetSection(section)
}

// ResetAll restores every section to defaults and saves.
func (s *Settings) ResetAll() error {
	return s.resets.ResetAll()
}

// Path returns the settings file path.
func (s *Settings) Path() string {
	return s.files.Path()
}

// Format returns the settings file format.
func (s *Settings) Format() Format {
	return s.files.Format()
}

// LoadReport returns what the initial load dropped or replaced.
func (s *Settings) LoadReport() *LoadReport {
	return s.report
}

// EnableAutoSave saves after every change. Save failures are logged, not returned.
func (s *Settings) EnableAutoSave() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.autoSave != nil {
		return
	}
	s.autoSave = s.Notifier().SubscribeAll(func(ev ChangeEvent) {
		if ev.Source == SourceFile || ev.Source == SourceReset {
			return // File reloads are already durable; resets save themselves
		}
		if err := s.Save(); err != nil {
			s.logger.Warn().Err(err).Str("option", ev.Path()).Msg("auto-save failed")
		}
	})
}

// DisableAutoSave stops saving after every change.
func (s *Settings) DisableAutoSave() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autoSave.Unsubscribe()
	s.autoSave = nil
}

// Close stops the file watcher and flushes unsaved changes.
func (s *Settings) Close() error {
	s.StopWatch()
	s.DisableAutoSave()

	if s.Dirty() {
		return s.Save()
	}
	return nil
}
