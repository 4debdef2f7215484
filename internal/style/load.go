package style

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a style catalog from a YAML file. The file maps kind names
// to entries; any subset of fields may be present per entry.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read style catalog: %w", err)
	}
	var entries map[string]*Spec
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse style catalog: %w", err)
	}
	return New(entries), nil
}

// Save writes the catalog to a YAML file, used by the styles init command
// to turn a built-in preset into an editable starting point.
func Save(c *Catalog, path string) error {
	data, err := yaml.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal style catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write style catalog: %w", err)
	}
	return nil
}

// Resolve turns a --style flag value into a catalog: a built-in preset
// name or a path to a YAML file.
func ResolveFlag(nameOrPath string) (*Catalog, error) {
	if c, err := Builtin(nameOrPath); err == nil {
		return c, nil
	}
	if _, err := os.Stat(nameOrPath); err != nil {
		return nil, fmt.Errorf("style %q is neither a preset (%v) nor a readable file", nameOrPath, Presets())
	}
	return Load(nameOrPath)
}
