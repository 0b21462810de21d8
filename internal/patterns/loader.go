package patterns

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a full pattern library from a YAML file. The file replaces the
// built-in tables wholesale; operators version their own libraries rather
// than patching individual entries.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern library: %w", err)
	}

	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse pattern library %s: %w", path, err)
	}
	if err := lib.compile(); err != nil {
		return nil, fmt.Errorf("compile pattern library %s: %w", path, err)
	}
	return &lib, nil
}

// LoadOrDefault loads the library at path when one is configured, the
// built-in library otherwise.
func LoadOrDefault(path string) (*Library, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
