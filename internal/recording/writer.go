package recording

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Write writes a recording to a YAML file
func Write(rec *Recording, path string) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Read reads and validates a recording from a YAML file
func Read(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec Recording
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &rec, nil
}
