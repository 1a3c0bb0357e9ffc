// FILE: lixenwraith/settings/persist.go
package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const (
	schemaVersionKey = "schema_version"

	// DefaultMaxFileSize bounds how much of a settings file is read
	DefaultMaxFileSize = 1 << 20
)

// Saver persists the current state of a store.
type Saver interface {
	Save(st *Store) error
}

// LoadReport lists what Load recovered from. None of it is fatal.
type LoadReport struct {
	Path          string
	FileFound     bool
	SchemaVersion string
	Dropped       []string // Unknown sections or options, removed
	Invalid       []string // Stored values failing validation, default used instead
}

// Clean reports whether the file matched the schema exactly.
func (r *LoadReport) Clean() bool {
	return len(r.Dropped) == 0 && len(r.Invalid) == 0
}

// FileStore reads and writes settings documents on local disk.
type FileStore struct {
	path        string
	format      Format
	logger      zerolog.Logger
	maxFileSize int64
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithFormat forces a format instead of detecting it from the extension.
func WithFormat(format Format) FileStoreOption {
	return func(f *FileStore) {
		f.format = format
	}
}

// WithFileLogger sets the logger used for load warnings.
func WithFileLogger(logger zerolog.Logger) FileStoreOption {
	return func(f *FileStore) {
		f.logger = logger
	}
}

// WithMaxFileSize bounds the size of a readable settings file.
func WithMaxFileSize(size int64) FileStoreOption {
	return func(f *FileStore) {
		f.maxFileSize = size
	}
}

// NewFileStore creates a FileStore for path.
func NewFileStore(path string, opts ...FileStoreOption) *FileStore {
	f := &FileStore{
		path:        path,
		format:      DetectFormat(path),
		logger:      zerolog.Nop(),
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the settings file path.
func (f *FileStore) Path() string {
	return f.path
}

// Format returns the settings file format.
func (f *FileStore) Format() Format {
	return f.format
}

// Load reads the settings file and returns a store populated from it.
// A missing file yields an all-defaults store. Unknown keys are dropped and invalid
// values fall back to defaults, both listed in the report. Only an unparseable file
// fails, with *CorruptStateError.
func (f *FileStore) Load(schema *Schema, notifier *Notifier) (*Store, *LoadReport, error) {
	st := NewStore(schema, notifier)

	doc, found, err := f.read()
	if err != nil {
		return nil, nil, err
	}

	values, report := mergeDocument(schema, doc, f.logger)
	report.Path = f.path
	report.FileFound = found

	st.load(values)

	if !found {
		f.logger.Info().Str("path", f.path).Msg("settings file not found, using defaults")
	} else {
		f.logger.Debug().
			Str("path", f.path).
			Str("schema_version", report.SchemaVersion).
			Int("dropped", len(report.Dropped)).
			Int("invalid", len(report.Invalid)).
			Msg("settings loaded")
	}
	return st, report, nil
}

// Save writes the full snapshot of st atomically and marks it clean.
// A failure is a *PersistenceError; the previous file is left untouched.
func (f *FileStore) Save(st *Store) error {
	snap, revision := st.SnapshotRevision()
	if f.format == FormatTOML {
		if lost := unrepresentableNulls(st.Schema(), snap); len(lost) > 0 {
			return &PersistenceError{Path: f.path, Op: "encode",
				Err: fmt.Errorf("toml cannot store unset options with a non-nil default: %s", strings.Join(lost, ", "))}
		}
	}
	doc := toDocument(snap, st.Schema().Version())

	data, err := encodeDocument(f.format, doc)
	if err != nil {
		return &PersistenceError{Path: f.path, Op: "encode", Err: err}
	}

	if err := atomicWriteFile(f.path, data); err != nil {
		return &PersistenceError{Path: f.path, Op: "write", Err: err}
	}

	if !st.MarkClean(revision) {
		f.logger.Debug().Str("path", f.path).Msg("settings changed during save, store stays dirty")
	}
	f.logger.Debug().Str("path", f.path).Str("format", string(f.format)).Msg("settings saved")
	return nil
}

// unrepresentableNulls lists unset options that would read back as their non-nil default
// once their null is omitted.
func unrepresentableNulls(schema *Schema, snap Snapshot) []string {
	var lost []string
	for _, section := range schema.Sections() {
		for _, spec := range schema.Specs(section) {
			if snap[section][spec.Key] == nil && spec.Default != nil {
				lost = append(lost, spec.Path())
			}
		}
	}
	return lost
}

// read loads and parses the document. found is false when the file does not exist.
func (f *FileStore) read() (doc map[string]any, found bool, err error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, false, nil
		}
		return nil, false, &PersistenceError{Path: f.path, Op: "open", Err: err}
	}
	defer file.Close()

	var reader io.Reader = file
	if f.maxFileSize > 0 {
		// Read one byte past the limit to detect oversized files
		reader = io.LimitReader(file, f.maxFileSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, true, &PersistenceError{Path: f.path, Op: "read", Err: err}
	}
	if f.maxFileSize > 0 && int64(len(data)) > f.maxFileSize {
		return nil, true, &CorruptStateError{Path: f.path, Format: f.format,
			Err: fmt.Errorf("file exceeds maximum size %d bytes", f.maxFileSize)}
	}

	doc, err = decodeDocument(f.format, data)
	if err != nil {
		return nil, true, &CorruptStateError{Path: f.path, Format: f.format, Err: err}
	}
	return doc, true, nil
}

// mergeDocument validates a decoded document against the schema.
// Only options present in the document are returned; absent ones keep their default.
func mergeDocument(schema *Schema, doc map[string]any, logger zerolog.Logger) (map[Section]map[string]any, *LoadReport) {
	report := &LoadReport{}
	values := make(map[Section]map[string]any)

	for _, name := range sortedKeys(doc) {
		raw := doc[name]

		if name == schemaVersionKey {
			report.SchemaVersion = fmt.Sprint(raw)
			continue
		}

		section := Section(name)
		table, isMap := raw.(map[string]any)
		if !schema.HasSection(section) || !isMap {
			report.Dropped = append(report.Dropped, name)
			logger.Warn().Str("section", name).Msg("dropping unknown settings section")
			continue
		}

		options := make(map[string]any)
		for _, key := range sortedKeys(table) {
			spec, err := schema.Lookup(section, key)
			if err != nil {
				report.Dropped = append(report.Dropped, string(section)+"."+key)
				logger.Warn().Str("option", string(section)+"."+key).Msg("dropping unknown settings option")
				continue
			}

			canon, err := spec.Validate(table[key])
			if err != nil {
				report.Invalid = append(report.Invalid, spec.Path())
				logger.Warn().Err(err).Str("option", spec.Path()).Msg("invalid stored value, using default")
				continue
			}
			options[key] = canon
		}
		values[section] = options
	}

	if report.SchemaVersion != "" && report.SchemaVersion != schema.Version() {
		logger.Info().
			Str("file_version", report.SchemaVersion).
			Str("schema_version", schema.Version()).
			Msg("settings file written by a different schema version")
	}
	return values, report
}

// atomicWriteFile writes data to a temporary file in the target directory,
// syncs it, then renames it over path.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	removed := false
	defer func() {
		if !removed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	removed = true

	return nil
}
