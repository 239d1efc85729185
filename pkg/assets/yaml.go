package assets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads an asset database from a YAML file: a mapping of file
// name to record. The result replaces the default table for the
// validation it is supplied to.
func LoadFile(path string) (Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asset database: %w", err)
	}
	return Load(data)
}

// Load parses YAML asset database content.
func Load(data []byte) (Store, error) {
	var raw map[string]Record
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing asset database: %w", err)
	}
	store := make(Store, len(raw))
	for name, rec := range raw {
		if rec.FileName == "" {
			rec.FileName = name
		}
		store[name] = rec
	}
	return store, nil
}
