package settings

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var (
	global     atomic.Pointer[Settings]
	globalOnce sync.Once
)

// Global returns the process-wide settings, building them with NewBuilder on first use.
// Use SetGlobal to install explicitly built settings first; components that can
// should receive *Settings as a parameter instead.
func Global() *Settings {
	if s := global.Load(); s != nil {
		return s
	}
	globalOnce.Do(func() {
		s, err := NewBuilder().Build()
		if err != nil {
			s, err = NewBuilder().WithFile(DefaultPath(DefaultAppName)).WithoutEnv().Build()
		}
		if err != nil {
			s = defaultSettings(DefaultPath(DefaultAppName))
		}
		global.CompareAndSwap(nil, s)
	})
	return global.Load()
}

// defaultSettings returns in-memory defaults backed by path, without reading it.
func defaultSettings(path string) *Settings {
	logger := zerolog.Nop()
	files := NewFileStore(path, WithFileLogger(logger))
	st := NewStore(DefaultSchema(), nil)
	return &Settings{
		Store:  st,
		files:  files,
		resets: NewResetController(st, files, logger),
		logger: logger,
		report: &LoadReport{Path: path},
	}
}

// SetGlobal installs s as the process-wide settings and returns the previous instance.
func SetGlobal(s *Settings) *Settings {
	return global.Swap(s)
}
