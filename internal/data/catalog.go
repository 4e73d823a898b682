package data

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog lists component type names in id order. Reserving a catalog in a
// registry before any type is used gives every run the same type ids.
type Catalog struct {
	World       string   `yaml:"world"`
	Fingerprint string   `yaml:"fingerprint,omitempty"`
	Components  []string `yaml:"components"`
}

// LoadCatalog reads a catalog file. A missing file is reported with an error
// wrapping fs.ErrNotExist.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	seen := make(map[string]int, len(c.Components))
	for i, name := range c.Components {
		if name == "" {
			return nil, fmt.Errorf("catalog %s: empty name at position %d", path, i)
		}
		if j, dup := seen[name]; dup {
			return nil, fmt.Errorf("catalog %s: %s listed at %d and %d", path, name, j, i)
		}
		seen[name] = i
	}
	return &c, nil
}

// SaveCatalog writes c to path, creating parent directories.
func SaveCatalog(path string, c *Catalog) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
