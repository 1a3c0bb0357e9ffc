// File: lixenwraith/settings/helper.go
package settings

import (
	"sort"
	"strings"
)

// isValidKeySegment checks if a section or key name is a valid TOML bare key.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	// TOML bare keys are sequences of ASCII letters, ASCII digits, underscores, and dashes (A-Za-z0-9_-).
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isUnderscore := r == '_'
		isDash := r == '-'

		if !(isLetter || isDigit || isUnderscore || isDash) {
			return false
		}
	}
	return true
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// toDocument converts a snapshot to the nested map written to disk.
func toDocument(snap Snapshot, version string) map[string]any {
	doc := make(map[string]any, len(snap)+1)
	if version != "" {
		doc[schemaVersionKey] = version
	}
	for section, values := range snap {
		table := make(map[string]any, len(values))
		for key, value := range values {
			table[key] = value
		}
		doc[string(section)] = table
	}
	return doc
}

// envName maps a section and key to an environment variable name,
// e.g. NAPARI_ + appearance.theme = NAPARI_APPEARANCE_THEME.
func envName(prefix string, section Section, key string) string {
	name := string(section) + "_" + key
	name = strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return prefix + name
}
