package tables

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a table definition file:
//
//	tables:
//	  - name: upper
//	    entries: [65, 66, 67]
type File struct {
	Tables []Definition `yaml:"tables"`
}

// Definition describes one table
type Definition struct {
	Name    string `yaml:"name"`
	Entries []int  `yaml:"entries,omitempty"`
}

// Load parses YAML table definitions into a new registry
func Load(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	return FromDefinitions(f.Tables)
}

// LoadFile reads YAML table definitions from path
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// FromDefinitions builds a registry, numbering tables in the given order
func FromDefinitions(defs []Definition) (*Registry, error) {
	r := NewRegistry()
	for _, d := range defs {
		if _, err := r.Define(d.Name, d.Entries); err != nil {
			return nil, err
		}
	}
	return r, nil
}
