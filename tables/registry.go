package tables

import (
	"fmt"
	"sync"
)

// Table is a named lookup table. Its index is the operand LOOKUP carries.
type Table struct {
	Name    string
	Index   int
	Entries []int
}

// Registry holds the tables of one OCP program, numbered in definition order
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Table
	tables []*Table
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Table),
	}
}

// Define adds a table and returns its index.
// Returns error if the name is empty or already defined.
func (r *Registry) Define(name string, entries []int) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("table name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return 0, fmt.Errorf("table %s already defined", name)
	}

	t := &Table{
		Name:    name,
		Index:   len(r.tables),
		Entries: append([]int(nil), entries...),
	}
	r.tables = append(r.tables, t)
	r.byName[name] = t
	return t.Index, nil
}

// Lookup resolves a table name to its index
func (r *Registry) Lookup(name string) (int, bool) {
	if r == nil {
		return 0, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byName[name]
	if !ok {
		return 0, false
	}
	return t.Index, true
}

// Table returns the table with the given index, or nil
func (r *Registry) Table(index int) *Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.tables) {
		return nil
	}
	return r.tables[index]
}

// Names returns the table names in index order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.tables))
	for i, t := range r.tables {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of defined tables
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tables)
}
