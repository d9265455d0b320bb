package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape of a catalog.
type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadFile reads a catalog from a YAML file. Category names must be
// non-empty and unique; order in the file determines the default.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return cat, nil
}

// Parse builds a catalog from YAML data.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Categories))
	for i, cat := range file.Categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("categories[%d]: name must not be empty", i)
		}
		if _, dup := seen[cat.Name]; dup {
			return nil, fmt.Errorf("categories[%d]: duplicate name %q", i, cat.Name)
		}
		seen[cat.Name] = struct{}{}
	}

	return New(file.Categories), nil
}
