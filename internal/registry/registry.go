// Package registry holds the immutable set of SDE table schemas and answers
// dependency questions about them: which tables an include list pulls in,
// which tables an exclude list drops, and in what order tables must load.
package registry

import (
	"sync"

	"github.com/hlop3z/sdelite/internal/schema"
	"github.com/hlop3z/sdelite/internal/sderr"
)

// Registry is a validated, read-only table catalog. It is safe for
// concurrent use because nothing mutates it after New returns.
type Registry struct {
	tables     []*schema.Table
	byName     map[string]*schema.Table
	deps       map[string][]string
	dependents map[string][]string
}

// New validates tables and builds the dependency maps. The input must be in
// dependency order: every FK parent appears before the tables referencing
// it, except self-references. Child tables and FK targets must exist.
func New(tables []*schema.Table) (*Registry, error) {
	r := &Registry{
		tables:     tables,
		byName:     make(map[string]*schema.Table, len(tables)),
		deps:       make(map[string][]string, len(tables)),
		dependents: make(map[string][]string, len(tables)),
	}

	for _, t := range tables {
		if t.Name == "" {
			return nil, sderr.New(sderr.ErrSchemaInvalid, "table name cannot be empty").
				With("source_file", t.SourceFile)
		}
		if _, exists := r.byName[t.Name]; exists {
			return nil, sderr.New(sderr.ErrDuplicateTable, "table registered twice").WithTable(t.Name)
		}
		if err := validateColumns(t); err != nil {
			return nil, err
		}

		for _, dep := range t.Dependencies() {
			if _, ok := r.byName[dep]; !ok {
				return nil, sderr.New(sderr.ErrSchemaInvalid, "foreign key references a table that is not registered earlier").
					WithTable(t.Name).
					With("references", dep)
			}
			r.dependents[dep] = append(r.dependents[dep], t.Name)
		}
		r.deps[t.Name] = t.Dependencies()
		r.byName[t.Name] = t
	}

	for _, t := range tables {
		for _, child := range t.ChildTables {
			if _, ok := r.byName[child]; !ok {
				return nil, sderr.New(sderr.ErrSchemaInvalid, "child table is not registered").
					WithTable(t.Name).
					With("child", child)
			}
		}
	}
	return r, nil
}

func validateColumns(t *schema.Table) error {
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if seen[c.Name] {
			return sderr.New(sderr.ErrSchemaInvalid, "duplicate column").
				WithTable(t.Name).
				With("column", c.Name)
		}
		seen[c.Name] = true
	}
	for _, fk := range t.ForeignKeys {
		if !seen[fk.Column] {
			return sderr.New(sderr.ErrSchemaInvalid, "foreign key column is not declared").
				WithTable(t.Name).
				With("column", fk.Column)
		}
	}
	if a := t.ArraySource; a != nil {
		for _, c := range a.ContextColumns() {
			if !seen[c] {
				return sderr.New(sderr.ErrSchemaInvalid, "array source column is not declared").
					WithTable(t.Name).
					With("column", c).
					With("strategy", a.Strategy.String())
			}
		}
	}
	return nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry built from schema.Catalog. The catalog is
// static, so a validation failure is a programming error and panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := New(schema.Catalog())
		if err != nil {
			panic(err)
		}
		defaultReg = r
	})
	return defaultReg
}

// Get returns the named table.
func (r *Registry) Get(name string) (*schema.Table, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// All returns every table in registry order.
func (r *Registry) All() []*schema.Table {
	out := make([]*schema.Table, len(r.tables))
	copy(out, r.tables)
	return out
}

// Names returns every table name in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.tables))
	for i, t := range r.tables {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	return len(r.tables)
}

// Dependencies returns the tables name references, excluding itself.
func (r *Registry) Dependencies(name string) []string {
	return r.deps[name]
}

// Dependents returns the tables that reference name, in registry order.
func (r *Registry) Dependents(name string) []string {
	return r.dependents[name]
}
