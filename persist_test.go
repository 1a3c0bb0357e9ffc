// FILE: lixenwraith/settings/persist_test.go
package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFileStoreRoundTrip(t *testing.T) {
	for _, ext := range []string{".yaml", ".json", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings"+ext)
			files := NewFileStore(path)

			st := newTestStore(t)
			require.NoError(t, st.Set(SectionAppearance, "theme", "light"))
			require.NoError(t, st.Set(SectionAppearance, "highlight_thickness", 3))
			require.NoError(t, st.Set(SectionApplication, "language", "fr"))
			require.NoError(t, st.Set(SectionApplication, "window_size", [2]int{800, 600}))
			require.NoError(t, st.Set(SectionApplication, "first_time", false))
			require.NoError(t, st.Set(SectionApplication, "window_maximized", Unset))
			require.NoError(t, st.Set(SectionPlugins, "call_order", []string{"svg", "builtins"}))
			require.True(t, st.Dirty())

			require.NoError(t, files.Save(st))
			assert.False(t, st.Dirty())

			loaded, report, err := NewFileStore(path).Load(DefaultSchema(), nil)
			require.NoError(t, err)
			assert.True(t, report.FileFound)
			assert.True(t, report.Clean(), "dropped=%v invalid=%v", report.Dropped, report.Invalid)
			assert.Equal(t, DefaultSchemaVersion, report.SchemaVersion)
			assert.False(t, loaded.Dirty())

			assert.Equal(t, st.Snapshot(), loaded.Snapshot())
		})
	}
}

func TestFileStoreLoad(t *testing.T) {
	t.Run("MissingFileUsesDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

		st, report, err := NewFileStore(path).Load(DefaultSchema(), nil)
		require.NoError(t, err)
		assert.False(t, report.FileFound)
		assert.Equal(t, newTestStore(t).Snapshot(), st.Snapshot())

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "load must not create the file")
	})

	t.Run("EmptyFileUsesDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		writeFile(t, path, "\n")

		st, report, err := NewFileStore(path).Load(DefaultSchema(), nil)
		require.NoError(t, err)
		assert.True(t, report.FileFound)
		v, _ := st.Get(SectionAppearance, "theme")
		assert.Equal(t, "dark", v)
	})

	t.Run("UnknownKeysDropped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		writeFile(t, path, `
schema_version: 0.0.9
appearance:
  theme: light
  bogus_option: 1
legacy:
  foo: bar
`)
		var logBuf bytes.Buffer
		files := NewFileStore(path, WithFileLogger(zerolog.New(&logBuf)))

		st, report, err := files.Load(DefaultSchema(), nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"appearance.bogus_option", "legacy"}, report.Dropped)
		assert.Equal(t, "0.0.9", report.SchemaVersion)
		assert.Contains(t, logBuf.String(), "dropping unknown settings option")

		v, _ := st.Get(SectionAppearance, "theme")
		assert.Equal(t, "light", v)

		_, err = st.Get(SectionAppearance, "bogus_option")
		assert.ErrorIs(t, err, ErrUnknownOption)

		// The next save writes only known options
		require.NoError(t, files.Save(st))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "bogus_option")
		assert.NotContains(t, string(data), "legacy")
		assert.Contains(t, string(data), "schema_version: "+DefaultSchemaVersion)
	})

	t.Run("InvalidValueFallsBackToDefault", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		writeFile(t, path, `{"appearance": {"highlight_thickness": 99, "theme": "light"}}`)

		st, report, err := NewFileStore(path).Load(DefaultSchema(), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"appearance.highlight_thickness"}, report.Invalid)

		v, _ := st.Get(SectionAppearance, "highlight_thickness")
		assert.Equal(t, int64(1), v)
		v, _ = st.Get(SectionAppearance, "theme")
		assert.Equal(t, "light", v)
	})

	t.Run("MissingKeysUseDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		writeFile(t, path, "[application]\nlanguage = \"de\"\n")

		st, report, err := NewFileStore(path).Load(DefaultSchema(), nil)
		require.NoError(t, err)
		assert.True(t, report.Clean())

		v, _ := st.Get(SectionApplication, "language")
		assert.Equal(t, "de", v)
		v, _ = st.Get(SectionAppearance, "highlight_thickness")
		assert.Equal(t, int64(1), v)
	})

	t.Run("CorruptFile", func(t *testing.T) {
		cases := map[string]string{
			"settings.yaml": "appearance: [unclosed",
			"settings.json": "{not json",
			"settings.toml": "[appearance\ntheme = ",
		}
		for name, content := range cases {
			path := filepath.Join(t.TempDir(), name)
			writeFile(t, path, content)

			_, _, err := NewFileStore(path).Load(DefaultSchema(), nil)
			var corrupt *CorruptStateError
			require.ErrorAs(t, err, &corrupt, name)
			assert.ErrorIs(t, err, ErrCorruptState)
			assert.Equal(t, path, corrupt.Path)
		}
	})

	t.Run("OversizedFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		writeFile(t, path, "appearance:\n  theme: light\n")

		_, _, err := NewFileStore(path, WithMaxFileSize(8)).Load(DefaultSchema(), nil)
		assert.ErrorIs(t, err, ErrCorruptState)
	})

	t.Run("FormatOverride", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.conf")
		writeFile(t, path, `{"appearance": {"theme": "light"}}`)

		files := NewFileStore(path, WithFormat(FormatJSON))
		assert.Equal(t, FormatJSON, files.Format())
		st, _, err := files.Load(DefaultSchema(), nil)
		require.NoError(t, err)
		v, _ := st.Get(SectionAppearance, "theme")
		assert.Equal(t, "light", v)
	})
}

func TestFileStoreSaveFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	// A directory in place of the file makes the final rename fail
	require.NoError(t, os.Mkdir(path, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0644))

	st := newTestStore(t)
	require.NoError(t, st.Set(SectionAppearance, "theme", "light"))

	err := NewFileStore(path).Save(st)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, "write", perr.Op)
	assert.True(t, st.Dirty(), "failed save keeps the store dirty")

	v, _ := st.Get(SectionAppearance, "theme")
	assert.Equal(t, "light", v, "in-memory state survives a failed save")

	leftovers, err := filepath.Glob(filepath.Join(dir, "settings.yaml.*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temporary file must be removed")
}

func TestFileStoreSaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	writeFile(t, path, "appearance:\n  theme: light\n")

	st, _, err := NewFileStore(path).Load(DefaultSchema(), nil)
	require.NoError(t, err)
	require.NoError(t, st.Set(SectionAppearance, "highlight_thickness", 7))
	require.NoError(t, NewFileStore(path).Save(st))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the settings file remains")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	reloaded, _, err := NewFileStore(path).Load(DefaultSchema(), nil)
	require.NoError(t, err)
	v, _ := reloaded.Get(SectionAppearance, "highlight_thickness")
	assert.Equal(t, int64(7), v)
	v, _ = reloaded.Get(SectionAppearance, "theme")
	assert.Equal(t, "light", v)
}

func TestFileStoreUnsetWithDefault(t *testing.T) {
	newStore := func() *Store {
		schema := NewSchema("1").MustRegister(OptionSpec{
			Section: "ui", Key: "title", Type: TypeString, Default: "viewer", Optional: true,
		})
		return NewStore(schema, nil)
	}

	t.Run("YAMLKeepsNull", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		st := newStore()
		require.NoError(t, st.Unset("ui", "title"))
		require.NoError(t, NewFileStore(path).Save(st))

		schema := NewSchema("1").MustRegister(OptionSpec{
			Section: "ui", Key: "title", Type: TypeString, Default: "viewer", Optional: true,
		})
		loaded, _, err := NewFileStore(path).Load(schema, nil)
		require.NoError(t, err)
		v, err := loaded.Get("ui", "title")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("TOMLRefuses", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		st := newStore()
		require.NoError(t, st.Unset("ui", "title"))

		err := NewFileStore(path).Save(st)
		var perr *PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "encode", perr.Op)
		assert.Contains(t, err.Error(), "ui.title")
		assert.True(t, st.Dirty())
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "nothing is written")

		require.NoError(t, st.Set("ui", "title", "main"))
		require.NoError(t, NewFileStore(path).Save(st))
	})
}

func TestFileStoreSaveConcurrentSet(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < 100; i++ {
		path := filepath.Join(dir, fmt.Sprintf("settings-%d.yaml", i))
		files := NewFileStore(path)
		st := newTestStore(t)
		require.NoError(t, st.Set(SectionAppearance, "theme", "light"))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, files.Save(st))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, st.Set(SectionAppearance, "highlight_thickness", 7))
		}()
		wg.Wait()

		if st.Dirty() {
			continue // Set landed after the snapshot; a later save picks it up
		}
		reloaded, _, err := files.Load(DefaultSchema(), nil)
		require.NoError(t, err)
		v, _ := reloaded.Get(SectionAppearance, "highlight_thickness")
		require.Equal(t, int64(7), v, "clean store must have every value on disk (run %d)", i)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, FormatTOML, DetectFormat("a/settings.toml"))
	assert.Equal(t, FormatJSON, DetectFormat("settings.JSON"))
	assert.Equal(t, FormatYAML, DetectFormat("settings.yml"))
	assert.Equal(t, DefaultFormat, DetectFormat("settings"))

	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("ini")
	assert.Error(t, err)

	t.Run("TOMLOmitsNulls", func(t *testing.T) {
		data, err := encodeDocument(FormatTOML, map[string]any{
			"application": map[string]any{"window_state": nil, "language": "en"},
		})
		require.NoError(t, err)
		assert.NotContains(t, string(data), "window_state")
		assert.Contains(t, string(data), `language = "en"`)
	})
}
