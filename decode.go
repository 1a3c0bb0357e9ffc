// FILE: lixenwraith/settings/decode.go
package settings

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the current values of a section into target, a non-nil pointer
// to a struct or map. Struct fields are matched by their `toml` tag.
// Unset optional options decode as nil pointers.
func (st *Store) Scan(section Section, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}
	if !st.schema.HasSection(section) {
		return &UnknownOptionError{Section: section}
	}

	sectionMap := st.Snapshot()[section]

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("decode failed for section %q: %w", section, err)
	}

	return nil
}

// Appearance returns the appearance section as a struct.
func (st *Store) Appearance() (AppearanceSettings, error) {
	var out AppearanceSettings
	err := st.Scan(SectionAppearance, &out)
	return out, err
}

// Application returns the application section as a struct.
func (st *Store) Application() (ApplicationSettings, error) {
	var out ApplicationSettings
	err := st.Scan(SectionApplication, &out)
	return out, err
}

// Plugins returns the plugins section as a struct.
func (st *Store) Plugins() (PluginSettings, error) {
	var out PluginSettings
	err := st.Scan(SectionPlugins, &out)
	return out, err
}
