// FILE: lixenwraith/settings/timing.go
package settings

import "time"

// Timing constants for file watching.
const (
	MinDebounce     = 10 * time.Millisecond  // Hard floor for change coalescence
	ShutdownTimeout = 100 * time.Millisecond // Graceful watcher termination window
	DefaultDebounce = 250 * time.Millisecond // File change coalescence period
)
