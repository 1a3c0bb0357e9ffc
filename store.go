// FILE: lixenwraith/settings/store.go
package settings

import (
	"sync"
)

// Snapshot holds the value of every option across all sections at one point in time.
type Snapshot map[Section]map[string]any

// Store is the in-memory, section-partitioned value store.
//
// Reads and writes are guarded by a store-wide RWMutex. Mutations are additionally
// serialized by writeMu, held until change events have been delivered, so subscribers
// see events in the order values were written. Subscribers may read the store from a
// callback but must not call Set, Unset or a reset on it: that deadlocks.
type Store struct {
	schema   *Schema
	notifier *Notifier

	writeMu  sync.Mutex   // Serializes mutation plus notification
	mu       sync.RWMutex // Protects sections, dirty and revision
	sections map[Section]map[string]any
	dirty    bool
	revision uint64 // Bumped by every change to sections
}

// NewStore creates a store where every option reads as its default.
// The schema is frozen. A nil notifier gets a fresh one.
func NewStore(schema *Schema, notifier *Notifier) *Store {
	schema.Freeze()
	if notifier == nil {
		notifier = NewNotifier()
	}

	st := &Store{
		schema:   schema,
		notifier: notifier,
		sections: make(map[Section]map[string]any),
	}
	for _, section := range schema.Sections() {
		st.sections[section] = make(map[string]any)
	}
	return st
}

// Schema returns the schema backing the store.
func (st *Store) Schema() *Schema {
	return st.schema
}

// Notifier returns the change notifier of the store.
func (st *Store) Notifier() *Notifier {
	return st.notifier
}

// Get returns the current value of an option, or its default if it was never configured.
// Explicitly unset optional options return nil.
func (st *Store) Get(section Section, key string) (any, error) {
	spec, err := st.schema.Lookup(section, key)
	if err != nil {
		return nil, err
	}

	st.mu.RLock()
	defer st.mu.RUnlock()
	return cloneValue(st.currentLocked(spec)), nil
}

// GetPath is Get addressed by a dotted "section.key" path.
func (st *Store) GetPath(path string) (any, error) {
	section, key, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	return st.Get(section, key)
}

// Set validates value and stores it.
// On failure the store is unchanged and a *ValidationError or *UnknownOptionError is returned.
// Setting a value equal to the current value emits no ChangeEvent and leaves the store clean.
// Pass Unset (or nil) to clear an optional option.
func (st *Store) Set(section Section, key string, value any) error {
	_, err := st.setWithSource(section, key, value, SourceUser)
	return err
}

// SetPath is Set addressed by a dotted "section.key" path.
func (st *Store) SetPath(path string, value any) error {
	section, key, err := splitPath(path)
	if err != nil {
		return err
	}
	return st.Set(section, key, value)
}

// Unset explicitly clears an optional option.
func (st *Store) Unset(section Section, key string) error {
	return st.Set(section, key, Unset)
}

// IsConfigured reports whether the option holds an explicit value (including Unset)
// rather than falling back to its default.
func (st *Store) IsConfigured(section Section, key string) (bool, error) {
	if _, err := st.schema.Lookup(section, key); err != nil {
		return false, err
	}

	st.mu.RLock()
	defer st.mu.RUnlock()
	_, ok := st.sections[section][key]
	return ok, nil
}

// Snapshot returns a deep copy of all current values, defaults filled in.
func (st *Store) Snapshot() Snapshot {
	snap, _ := st.SnapshotRevision()
	return snap
}

// SnapshotRevision returns a Snapshot together with the store revision it was taken at.
// Pass the revision to MarkClean once the snapshot is durable.
func (st *Store) SnapshotRevision() (Snapshot, uint64) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	snap := make(Snapshot, len(st.sections))
	for _, section := range st.schema.Sections() {
		values := make(map[string]any)
		for _, spec := range st.schema.Specs(section) {
			values[spec.Key] = cloneValue(st.currentLocked(spec))
		}
		snap[section] = values
	}
	return snap, st.revision
}

// Dirty reports whether the store changed since it was loaded or last saved.
func (st *Store) Dirty() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.dirty
}

// MarkClean clears the dirty flag after a snapshot taken at revision was saved.
// It reports false and leaves the store dirty if a change landed since.
func (st *Store) MarkClean(revision uint64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.revision != revision {
		return false
	}
	st.dirty = false
	return true
}

// setWithSource validates and applies one value, then notifies subscribers.
// It reports whether the value changed.
func (st *Store) setWithSource(section Section, key string, value any, source Source) (bool, error) {
	spec, err := st.schema.Lookup(section, key)
	if err != nil {
		return false, err
	}

	canon, err := spec.Validate(value)
	if err != nil {
		return false, err
	}

	st.writeMu.Lock()
	defer st.writeMu.Unlock()

	st.mu.Lock()
	old := st.currentLocked(spec)
	st.sections[section][key] = canon
	changed := !equalValues(old, canon)
	if changed {
		st.revision++
		if source != SourceFile {
			st.dirty = true
		}
	}
	st.mu.Unlock()

	if changed {
		st.notifier.Notify(ChangeEvent{
			Section: section,
			Key:     key,
			Old:     cloneValue(old),
			New:     cloneValue(canon),
			Source:  source,
		})
	}
	return changed, nil
}

// clearWithSource drops the explicit value of an option so it reads as its default.
func (st *Store) clearWithSource(section Section, key string, source Source) (bool, error) {
	spec, err := st.schema.Lookup(section, key)
	if err != nil {
		return false, err
	}

	st.writeMu.Lock()
	defer st.writeMu.Unlock()

	st.mu.Lock()
	old, configured := st.sections[section][key]
	delete(st.sections[section], key)
	changed := configured && !equalValues(old, spec.Default)
	if configured {
		st.revision++
	}
	if changed && source != SourceFile {
		st.dirty = true
	}
	st.mu.Unlock()

	if changed {
		st.notifier.Notify(ChangeEvent{
			Section: section,
			Key:     key,
			Old:     cloneValue(old),
			New:     cloneValue(spec.Default),
			Source:  source,
		})
	}
	return changed, nil
}

// resetSection restores every option of a section to its default in one step.
// Events are delivered after the whole section is reset, one per changed key.
func (st *Store) resetSection(section Section) (int, error) {
	if !st.schema.HasSection(section) {
		return 0, &UnknownOptionError{Section: section}
	}
	specs := st.schema.Specs(section)

	st.writeMu.Lock()
	defer st.writeMu.Unlock()

	var events []ChangeEvent
	st.mu.Lock()
	for _, spec := range specs {
		old := st.currentLocked(spec)
		if !equalValues(old, spec.Default) {
			events = append(events, ChangeEvent{
				Section: section,
				Key:     spec.Key,
				Old:     cloneValue(old),
				New:     cloneValue(spec.Default),
				Source:  SourceReset,
			})
		}
	}
	if len(st.sections[section]) > 0 {
		st.dirty = true
		st.revision++
	}
	st.sections[section] = make(map[string]any)
	st.mu.Unlock()

	for _, ev := range events {
		st.notifier.Notify(ev)
	}
	return len(events), nil
}

// load replaces the explicit values of the store without emitting events.
// Values must already be canonical.
func (st *Store) load(values map[Section]map[string]any) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for section := range st.sections {
		st.sections[section] = make(map[string]any)
	}
	for section, options := range values {
		if _, ok := st.sections[section]; !ok {
			continue
		}
		for key, value := range options {
			st.sections[section][key] = value
		}
	}
	st.dirty = false
	st.revision++
}

// currentLocked returns the explicit value or the default. Caller holds mu.
func (st *Store) currentLocked(spec OptionSpec) any {
	if v, ok := st.sections[spec.Section][spec.Key]; ok {
		return v
	}
	return spec.Default
}
