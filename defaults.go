// FILE: lixenwraith/settings/defaults.go
package settings

// Built-in option defaults.
const (
	DefaultTheme              = "dark"
	DefaultLanguage           = "en"
	DefaultHighlightThickness = 1
)

// Themes lists the themes shipped with the application.
var Themes = []string{"dark", "light"}

// AppearanceSettings mirrors the appearance section, for use with Scan.
type AppearanceSettings struct {
	Theme              string `toml:"theme"`
	HighlightThickness int    `toml:"highlight_thickness"`
}

// ApplicationSettings mirrors the application section, for use with Scan.
// Pointer fields are optional and nil when unset.
type ApplicationSettings struct {
	Language                 string  `toml:"language"`
	FirstTime                bool    `toml:"first_time"`
	IPyInteractive           bool    `toml:"ipy_interactive"`
	SaveWindowGeometry       bool    `toml:"save_window_geometry"`
	WindowPosition           *[2]int `toml:"window_position"`
	WindowSize               *[2]int `toml:"window_size"`
	WindowMaximized          *bool   `toml:"window_maximized"`
	WindowFullscreen         *bool   `toml:"window_fullscreen"`
	WindowState              *string `toml:"window_state"`
	WindowStatusbar          bool    `toml:"window_statusbar"`
	PreferencesSize          *[2]int `toml:"preferences_size"`
	GUINotificationLevel     string  `toml:"gui_notification_level"`
	ConsoleNotificationLevel string  `toml:"console_notification_level"`
}

// PluginSettings mirrors the plugins section. It is registered with RegisterStruct.
type PluginSettings struct {
	CallOrder []string `toml:"call_order" settings:"hidden" desc:"Plugin names in the order their hooks are called."`
}

// DefaultSchema returns a new schema holding the built-in sections.
func DefaultSchema() *Schema {
	s := NewSchema(DefaultSchemaVersion)

	s.MustRegister(
		OptionSpec{
			Section:     SectionAppearance,
			Key:         "theme",
			Type:        TypeEnum,
			Default:     DefaultTheme,
			Choices:     Themes,
			Description: "Theme selection.",
		},
		OptionSpec{
			Section:     SectionAppearance,
			Key:         "highlight_thickness",
			Type:        TypeInt,
			Default:     DefaultHighlightThickness,
			Validator:   Range(1, 10),
			Description: "Thickness of the highlight outline around selected items.",
		},
	)

	s.MustRegister(
		OptionSpec{
			Section:     SectionApplication,
			Key:         "language",
			Type:        TypeString,
			Default:     DefaultLanguage,
			Validator:   LocaleCode(),
			Description: "Display language as a locale code. Takes effect once the language pack is loaded.",
		},
		OptionSpec{
			Section:     SectionApplication,
			Key:         "first_time",
			Type:        TypeBool,
			Default:     true,
			Hidden:      true,
			Description: "Whether the application has not been started before.",
		},
		OptionSpec{
			Section:     SectionApplication,
			Key:         "ipy_interactive",
			Type:        TypeBool,
			Default:     true,
			Description: "Use the interactive GUI event loop when creating viewers from IPython.",
		},
		OptionSpec{
			Section:     SectionApplication,
			Key:         "save_window_geometry",
			Type:        TypeBool,
			Default:     true,
			Description: "Preserve window size and position across sessions.",
		},
		optionalGeometry("window_position", "Last window position.", nil),
		optionalGeometry("window_size", "Last window size.", NonNegative()),
		OptionSpec{Section: SectionApplication, Key: "window_maximized", Type: TypeBool, Optional: true, Hidden: true},
		OptionSpec{Section: SectionApplication, Key: "window_fullscreen", Type: TypeBool, Optional: true, Hidden: true},
		OptionSpec{Section: SectionApplication, Key: "window_state", Type: TypeString, Optional: true, Hidden: true},
		OptionSpec{Section: SectionApplication, Key: "window_statusbar", Type: TypeBool, Default: true, Hidden: true},
		optionalGeometry("preferences_size", "Last preferences dialog size.", NonNegative()),
		notificationLevelOption("gui_notification_level", DefaultNotificationLevel,
			"Minimum severity shown as a notification in the window."),
		notificationLevelOption("console_notification_level", LevelNone,
			"Minimum severity printed to the console."),
	)

	if err := s.RegisterStruct(SectionPlugins, PluginSettings{CallOrder: []string{}}); err != nil {
		panic(err)
	}

	return s
}

func optionalGeometry(key, desc string, v Validator) OptionSpec {
	return OptionSpec{
		Section:     SectionApplication,
		Key:         key,
		Type:        TypeIntPair,
		Validator:   v,
		Optional:    true,
		Hidden:      true,
		Description: desc,
	}
}

func notificationLevelOption(key string, def NotificationLevel, desc string) OptionSpec {
	return OptionSpec{
		Section:     SectionApplication,
		Key:         key,
		Type:        TypeEnum,
		Default:     def.String(),
		Choices:     notificationLevelNames(),
		Hidden:      true,
		Description: desc,
	}
}
