// File: lixenwraith/settings/convenience.go
package settings

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// OptionInfo describes one option for help screens and preference dialogs.
type OptionInfo struct {
	Path        string   `json:"path"`
	Section     string   `json:"section"`
	Key         string   `json:"key"`
	Type        string   `json:"type"`
	Default     string   `json:"default"`
	Current     string   `json:"current"`
	Description string   `json:"description,omitempty"`
	Choices     []string `json:"choices,omitempty"`
	Optional    bool     `json:"optional,omitempty"`
	Hidden      bool     `json:"hidden,omitempty"`
	Configured  bool     `json:"configured"`
}

// Describe lists every option in schema order. Hidden options are included only
// when includeHidden is set.
func (st *Store) Describe(includeHidden bool) []OptionInfo {
	snap := st.Snapshot()

	var infos []OptionInfo
	for _, section := range st.schema.Sections() {
		for _, spec := range st.schema.Specs(section) {
			if spec.Hidden && !includeHidden {
				continue
			}
			configured, _ := st.IsConfigured(section, spec.Key)
			infos = append(infos, OptionInfo{
				Path:        spec.Path(),
				Section:     string(section),
				Key:         spec.Key,
				Type:        spec.Type.String(),
				Default:     FormatValue(spec.Default),
				Current:     FormatValue(snap[section][spec.Key]),
				Description: spec.Description,
				Choices:     spec.Choices,
				Optional:    spec.Optional,
				Hidden:      spec.Hidden,
				Configured:  configured,
			})
		}
	}
	return infos
}

// Diff returns the dotted paths whose current value differs from the default.
func (st *Store) Diff() []string {
	snap := st.Snapshot()

	var paths []string
	for _, section := range st.schema.Sections() {
		for _, spec := range st.schema.Specs(section) {
			if !equalValues(snap[section][spec.Key], spec.Default) {
				paths = append(paths, spec.Path())
			}
		}
	}
	return paths
}

// Debug returns a formatted listing of all values, marking explicit ones.
func (st *Store) Debug() string {
	snap := st.Snapshot()

	var b strings.Builder
	b.WriteString("Settings Debug Info:\n")
	fmt.Fprintf(&b, "Schema version: %s\n", st.schema.Version())
	fmt.Fprintf(&b, "Dirty: %t\n", st.Dirty())

	for _, section := range st.schema.Sections() {
		fmt.Fprintf(&b, "[%s]\n", section)
		for _, spec := range st.schema.Specs(section) {
			marker := " "
			if configured, _ := st.IsConfigured(section, spec.Key); configured {
				marker = "*"
			}
			fmt.Fprintf(&b, " %s %s = %s (default: %s)\n",
				marker, spec.Key, FormatValue(snap[section][spec.Key]), FormatValue(spec.Default))
		}
	}
	return b.String()
}

// Dump writes the current values to w in TOML format.
func (st *Store) Dump(w io.Writer) error {
	doc := toDocument(st.Snapshot(), st.schema.Version())
	return toml.NewEncoder(w).Encode(withoutNulls(doc))
}

// FormatValue renders a canonical value as a string that parses back to it.
// Unset values render as "".
func FormatValue(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case []string:
		return strings.Join(tv, ",")
	case [2]int64:
		return fmt.Sprintf("%dx%d", tv[0], tv[1])
	default:
		return fmt.Sprint(tv)
	}
}

// Paths returns the dotted path of every registered option, sorted.
func (st *Store) Paths() []string {
	var paths []string
	for _, section := range st.schema.Sections() {
		for _, key := range st.schema.Keys(section) {
			paths = append(paths, string(section)+"."+key)
		}
	}
	sort.Strings(paths)
	return paths
}
