package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a secrets file. The format follows the extension: .toml,
// .yaml/.yml or .json.
func LoadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secrets %s: %w", path, err)
	}

	var m map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &m)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".json":
		err = json.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("secrets %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse secrets %s: %w", path, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// LoadString decodes secrets passed inline, typically through an environment
// variable. JSON is tried first, then TOML.
func LoadString(s string) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err == nil && m != nil {
		return m, nil
	}
	m = nil
	if err := toml.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("parse inline secrets: %w", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
