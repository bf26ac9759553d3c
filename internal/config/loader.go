package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrInvalidUnit = errors.New("invalid unit definition")

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadCatalog reads the unit types available to the army builder.
func LoadCatalog(path string) (*Catalog, error) {
	var c Catalog
	if err := loadYAML(path, &c); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for i := range c.Units {
		u := &c.Units[i]
		u.applyDefaults()
		if err := u.validate(); err != nil {
			return nil, fmt.Errorf("catalog %s unit #%d: %w", filepath.Base(path), i, err)
		}
		if seen[u.Type] {
			return nil, fmt.Errorf("catalog %s: duplicate type %q: %w", filepath.Base(path), u.Type, ErrInvalidUnit)
		}
		seen[u.Type] = true
	}
	return &c, nil
}

// LoadRoster reads a hand-placed army. Units refer to catalog types by name.
func LoadRoster(path string) (*RosterConfig, error) {
	var r RosterConfig
	if err := loadYAML(path, &r); err != nil {
		return nil, err
	}
	for i, u := range r.Units {
		if u.Type == "" {
			return nil, fmt.Errorf("roster %s unit #%d: missing type: %w", filepath.Base(path), i, ErrInvalidUnit)
		}
	}
	return &r, nil
}
