// FILE: lixenwraith/settings/env_test.go
package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("ENVTEST_APPEARANCE_THEME", "light")
	t.Setenv("ENVTEST_APPLICATION_WINDOW_SIZE", `"1024x768"`)
	t.Setenv("ENVTEST_PLUGINS_CALL_ORDER", "svg,builtins")
	t.Setenv("ENVTEST_APPEARANCE_HIGHLIGHT_THICKNESS", "42")

	st := newTestStore(t)
	rec := &recorder{}
	st.Notifier().SubscribeAll(rec.observe)

	err := st.LoadEnv("ENVTEST_")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "ENVTEST_APPEARANCE_HIGHLIGHT_THICKNESS")

	theme, _ := st.Get(SectionAppearance, "theme")
	assert.Equal(t, "light", theme)
	size, _ := st.Get(SectionApplication, "window_size")
	assert.Equal(t, [2]int64{1024, 768}, size)
	calls, _ := st.Get(SectionPlugins, "call_order")
	assert.Equal(t, []string{"svg", "builtins"}, calls)
	thickness, _ := st.Get(SectionAppearance, "highlight_thickness")
	assert.Equal(t, int64(1), thickness, "invalid override is skipped")

	for _, ev := range rec.all() {
		assert.Equal(t, SourceEnv, ev.Source)
	}
	assert.Len(t, rec.all(), 3)
}

func TestDiscoverAndExportEnv(t *testing.T) {
	t.Setenv("ENVTEST_APPLICATION_LANGUAGE", "de")

	st := newTestStore(t)
	assert.Equal(t, map[string]string{"application.language": "ENVTEST_APPLICATION_LANGUAGE"}, st.DiscoverEnv("ENVTEST_"))

	require.NoError(t, st.Set(SectionAppearance, "theme", "light"))
	require.NoError(t, st.Set(SectionApplication, "window_position", [2]int{10, 20}))

	assert.Equal(t, map[string]string{
		"APP_APPEARANCE_THEME":            "light",
		"APP_APPLICATION_WINDOW_POSITION": "10x20",
	}, st.ExportEnv("APP_"))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "NAPARI_APPEARANCE_HIGHLIGHT_THICKNESS", envName(DefaultEnvPrefix, SectionAppearance, "highlight_thickness"))
	assert.Equal(t, "X_SECTION_SOME_KEY", envName("X_", "section", "some-key"))
}
