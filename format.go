// FILE: lixenwraith/settings/format.go
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a settings file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"

	// DefaultFormat is used when the file extension names no known format
	DefaultFormat = FormatYAML
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml", "tml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported settings format %q", name)
}

// DetectFormat determines the format from the file extension.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return DefaultFormat
	}
}

// decodeDocument parses a settings document into a nested map.
// An empty document decodes to an empty map.
func decodeDocument(format Format, data []byte) (map[string]any, error) {
	doc := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&doc); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported settings format %q", format)
	}

	// A document such as "null" leaves no map behind
	if doc == nil {
		doc = make(map[string]any)
	}
	return doc, nil
}

// encodeDocument serializes a nested map.
// TOML has no null: nil values are omitted. FileStore.Save refuses to drop a null
// that would read back as a non-nil default.
func encodeDocument(format Format, doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(withoutNulls(doc)); err != nil {
			return nil, err
		}
	case FormatJSON:
		encoder := json.NewEncoder(&buf)
		encoder.SetIndent("", "    ")
		if err := encoder.Encode(doc); err != nil {
			return nil, err
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return nil, err
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported settings format %q", format)
	}

	return buf.Bytes(), nil
}

// withoutNulls returns a copy of doc with nil values removed at every level.
func withoutNulls(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch tv := v.(type) {
		case nil:
			continue
		case map[string]any:
			out[k] = withoutNulls(tv)
		default:
			out[k] = v
		}
	}
	return out
}
