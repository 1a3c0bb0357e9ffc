// FILE: lixenwraith/settings/watch.go
package settings

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions configures file watching behavior
type WatchOptions struct {
	// Debounce duration to coalesce bursts of writes into one reload
	Debounce time.Duration
}

// DefaultWatchOptions returns sensible defaults for file watching
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{Debounce: DefaultDebounce}
}

// watcher reloads settings when the settings file changes on disk
type watcher struct {
	fs       *fsnotify.Watcher
	filename string
	debounce time.Duration
	stopCh   chan struct{}
	done     chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// Reload re-reads the settings file and applies the differences with SourceFile.
// Options absent from the file fall back to their defaults. Invalid stored values
// are skipped and keep their current value. On a read or parse error nothing changes.
func (s *Settings) Reload() error {
	doc, found, err := s.files.read()
	if err != nil {
		s.logger.Error().Err(err).Str("path", s.Path()).Msg("settings reload failed, keeping current values")
		return err
	}
	if !found {
		s.logger.Debug().Str("path", s.Path()).Msg("settings file gone, keeping current values")
		return nil
	}

	values, report := mergeDocument(s.Schema(), doc, s.logger)
	invalid := make(map[string]bool, len(report.Invalid))
	for _, path := range report.Invalid {
		invalid[path] = true
	}

	changed := 0
	for _, section := range s.Schema().Sections() {
		for _, spec := range s.Schema().Specs(section) {
			if invalid[spec.Path()] {
				continue
			}

			var (
				did bool
				err error
			)
			if value, ok := values[section][spec.Key]; ok {
				did, err = s.setWithSource(section, spec.Key, value, SourceFile)
			} else {
				did, err = s.clearWithSource(section, spec.Key, SourceFile)
			}
			if err != nil {
				return err
			}
			if did {
				changed++
			}
		}
	}

	s.logger.Info().Str("path", s.Path()).Int("changed", changed).Msg("settings reloaded")
	return nil
}

// Watch starts reloading the settings whenever the settings file changes.
// It watches the parent directory so atomic saves by editors are seen.
func (s *Settings) Watch(opts WatchOptions) error {
	if opts.Debounce < MinDebounce {
		opts.Debounce = MinDebounce
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	path, err := filepath.Abs(s.Path())
	if err != nil {
		fw.Close()
		return fmt.Errorf("absolute path: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	w := &watcher{
		fs:       fw,
		filename: filepath.Base(path),
		debounce: opts.Debounce,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	s.watcher = w
	go w.loop(s)

	s.logger.Info().Str("path", path).Msg("watching settings file for changes")
	return nil
}

// StopWatch stops the file watcher if one is running.
func (s *Settings) StopWatch() {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w != nil {
		if err := w.stop(); err != nil {
			s.logger.Warn().Err(err).Msg("settings watcher stopped uncleanly")
		}
	}
}

// IsWatching reports whether the settings file is being watched.
func (s *Settings) IsWatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watcher != nil
}

func (w *watcher) loop(s *Settings) {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.filename {
				continue
			}
			// Atomic save shows up as create or rename, in-place edits as write
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Debug().Str("event", event.Op.String()).Str("file", event.Name).Msg("settings file changed")
			w.schedule(s)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			s.logger.Error().Err(err).Msg("file watcher error")

		case <-w.stopCh:
			return
		}
	}
}

func (w *watcher) schedule(s *Settings) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.stopCh:
			return
		default:
		}
		_ = s.Reload() // Logged by Reload
	})
}

func (w *watcher) stop() error {
	close(w.stopCh)

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fs.Close()
	select {
	case <-w.done:
	case <-time.After(ShutdownTimeout):
		err = errors.Join(err, errors.New("watcher loop did not exit in time"))
	}
	return err
}
