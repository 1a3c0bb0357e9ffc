// FILE: lixenwraith/settings/reset_test.go
package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSaver struct {
	calls int
}

func (f *failingSaver) Save(*Store) error {
	f.calls++
	return errors.New("disk full")
}

func TestResetController(t *testing.T) {
	t.Run("ResetSectionSaves", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		files := NewFileStore(path)
		st := newTestStore(t)
		require.NoError(t, st.Set(SectionAppearance, "highlight_thickness", 5))
		require.NoError(t, st.Set(SectionApplication, "language", "fr"))

		rec := &recorder{}
		st.Notifier().SubscribeAll(rec.observe)

		rc := NewResetController(st, files, zerolog.Nop())
		require.NoError(t, rc.ResetSection(SectionAppearance))

		events := rec.all()
		require.Len(t, events, 1)
		assert.Equal(t, "appearance.highlight_thickness", events[0].Path())
		assert.False(t, st.Dirty())

		loaded, _, err := NewFileStore(path).Load(DefaultSchema(), nil)
		require.NoError(t, err)
		v, _ := loaded.Get(SectionAppearance, "highlight_thickness")
		assert.Equal(t, int64(1), v)
		v, _ = loaded.Get(SectionApplication, "language")
		assert.Equal(t, "fr", v)
	})

	t.Run("PersistenceFailureKeepsMemoryReset", func(t *testing.T) {
		st := newTestStore(t)
		require.NoError(t, st.Set(SectionAppearance, "theme", "light"))
		saver := &failingSaver{}

		err := NewResetController(st, saver, zerolog.Nop()).ResetSection(SectionAppearance)
		var perr *PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.ErrorIs(t, err, ErrPersistence)
		assert.Equal(t, 1, saver.calls)

		v, _ := st.Get(SectionAppearance, "theme")
		assert.Equal(t, "dark", v)
		assert.True(t, st.Dirty(), "durable state lags until the next save")
	})

	t.Run("PersistenceErrorPassesThrough", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "settings.yaml")
		require.NoError(t, os.Mkdir(path, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0644))

		st := newTestStore(t)
		err := NewResetController(st, NewFileStore(path), zerolog.Nop()).ResetAll()
		var perr *PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, path, perr.Path)
	})

	t.Run("ResetAll", func(t *testing.T) {
		st := newTestStore(t)
		require.NoError(t, st.Set(SectionAppearance, "theme", "light"))
		require.NoError(t, st.Set(SectionApplication, "window_size", "640x480"))
		require.NoError(t, st.Set(SectionPlugins, "call_order", "a,b"))

		require.NoError(t, NewResetController(st, nil, zerolog.Nop()).ResetAll())
		assert.Equal(t, NewStore(DefaultSchema(), nil).Snapshot(), st.Snapshot())
	})

	t.Run("UnknownSection", func(t *testing.T) {
		saver := &failingSaver{}
		err := NewResetController(newTestStore(t), saver, zerolog.Nop()).ResetSection("nope")
		assert.ErrorIs(t, err, ErrUnknownOption)
		assert.Zero(t, saver.calls, "nothing to save")
	})
}
