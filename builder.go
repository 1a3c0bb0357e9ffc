// File: lixenwraith/settings/builder.go
package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// ValidatorFunc validates a fully loaded Settings at the end of Build.
type ValidatorFunc func(s *Settings) error

// Builder provides a fluent interface for building settings
type Builder struct {
	schema     *Schema
	file       string
	format     Format
	discovery  *FileDiscoveryOptions
	envPrefix  string
	useEnv     bool
	args       []string
	flags      *pflag.FlagSet
	logger     zerolog.Logger
	strict     bool
	autoSave   bool
	watch      *WatchOptions
	validators []ValidatorFunc
}

// NewBuilder creates a builder using the built-in schema, NAPARI_ environment
// overrides and the default settings path.
func NewBuilder() *Builder {
	return &Builder{
		envPrefix: DefaultEnvPrefix,
		useEnv:    true,
		logger:    zerolog.Nop(),
	}
}

// WithSchema replaces the built-in schema.
func (b *Builder) WithSchema(schema *Schema) *Builder {
	b.schema = schema
	return b
}

// WithFile sets the settings file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithFormat forces the file format instead of detecting it from the extension.
func (b *Builder) WithFormat(format Format) *Builder {
	b.format = format
	return b
}

// WithFileDiscovery resolves the file path at build time. An explicit WithFile wins.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithEnvPrefix sets the environment variable prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	b.useEnv = true
	return b
}

// WithoutEnv disables environment overrides.
func (b *Builder) WithoutEnv() *Builder {
	b.useEnv = false
	return b
}

// WithArgs sets command-line arguments parsed into option flags.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithFlags applies option flags from an already parsed flag set (see Store.AddFlags).
func (b *Builder) WithFlags(fs *pflag.FlagSet) *Builder {
	b.flags = fs
	return b
}

// WithLogger sets the logger used by every component.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithStrictLoad makes an unreadable settings file fail Build instead of falling
// back to defaults.
func (b *Builder) WithStrictLoad() *Builder {
	b.strict = true
	return b
}

// WithAutoSave saves after every change.
func (b *Builder) WithAutoSave() *Builder {
	b.autoSave = true
	return b
}

// WithWatch reloads settings when the file changes on disk.
func (b *Builder) WithWatch(opts WatchOptions) *Builder {
	b.watch = &opts
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build loads the settings. Sources apply in order: defaults, file, environment, flags.
// A corrupt file is logged and replaced by defaults unless WithStrictLoad is set.
func (b *Builder) Build() (*Settings, error) {
	schema := b.schema
	if schema == nil {
		schema = DefaultSchema()
	}

	path := b.file
	if path == "" {
		discovery := DefaultDiscoveryOptions(DefaultAppName)
		if b.discovery != nil {
			discovery = *b.discovery
		}
		path = discovery.Discover(b.args)
	}

	opts := []FileStoreOption{WithFileLogger(b.logger)}
	if b.format != "" {
		opts = append(opts, WithFormat(b.format))
	}
	files := NewFileStore(path, opts...)

	st, report, err := files.Load(schema, nil)
	if err != nil {
		var corrupt *CorruptStateError
		if b.strict || !errors.As(err, &corrupt) {
			return nil, err
		}
		b.logger.Warn().Err(err).Str("path", path).Msg("settings file unreadable, using defaults")
		st = NewStore(schema, nil)
		report = &LoadReport{Path: path, FileFound: true}
	}

	s := &Settings{
		Store:  st,
		files:  files,
		resets: NewResetController(st, files, b.logger),
		logger: b.logger,
		report: report,
	}

	if b.useEnv {
		if err := st.LoadEnv(b.envPrefix); err != nil {
			b.logger.Warn().Err(err).Msg("ignoring invalid environment overrides")
		}
	}

	if err := b.applyFlags(st); err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(s); err != nil {
			return nil, fmt.Errorf("settings validation failed: %w", err)
		}
	}

	if b.autoSave {
		s.EnableAutoSave()
	}
	if b.watch != nil {
		if err := s.Watch(*b.watch); err != nil {
			b.logger.Warn().Err(err).Msg("settings file watch unavailable")
		}
	}

	return s, nil
}

// applyFlags parses b.args into option flags, then binds them along with b.flags.
func (b *Builder) applyFlags(st *Store) error {
	if len(b.args) > 0 {
		fs := st.FlagSet()
		fs.ParseErrorsWhitelist.UnknownFlags = true
		fs.String("file", "", "settings file path")
		fs.Usage = func() {}
		if err := fs.Parse(b.args); err != nil {
			return fmt.Errorf("failed to parse arguments: %w", err)
		}
		if err := st.BindFlags(fs); err != nil {
			return err
		}
	}
	if b.flags != nil {
		return st.BindFlags(b.flags)
	}
	return nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Settings {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("settings build failed: %v", err))
	}
	return s
}

// Load builds settings with defaults, reading args from os.Args.
func Load() (*Settings, error) {
	return NewBuilder().WithArgs(os.Args[1:]).Build()
}
