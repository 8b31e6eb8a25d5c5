package registry

import (
	"log/slog"

	"github.com/hlop3z/sdelite/internal/schema"
	"github.com/hlop3z/sdelite/internal/sderr"
)

// Selection rules:
//
// | Include | Exclude | Result                                               |
// |---------|---------|------------------------------------------------------|
// | empty   | empty   | every table, registry order                          |
// | set     | empty   | include + transitive FK parents + child tables, sorted|
// | empty   | set     | registry minus excluded minus direct referrers       |
// | set     | set     | error                                                |

// Select applies include or exclude filtering. Passing both is an error.
func (r *Registry) Select(include, exclude []string) ([]*schema.Table, error) {
	switch {
	case len(include) > 0 && len(exclude) > 0:
		return nil, sderr.New(sderr.ErrConflictingFilters, "include and exclude cannot be used together").
			WithHelp("pass either --include or --exclude")
	case len(include) > 0:
		return r.ResolveIncludes(include)
	case len(exclude) > 0:
		return r.ResolveExcludes(exclude)
	}
	return r.All(), nil
}

// ResolveIncludes returns the requested tables plus everything they need:
// transitive FK parents and declared child tables, closed under both. The
// result is topologically sorted.
func (r *Registry) ResolveIncludes(names []string) ([]*schema.Table, error) {
	if err := r.checkKnown(names); err != nil {
		return nil, err
	}

	included := make(map[string]bool)
	var order []*schema.Table
	queue := append([]string(nil), names...)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if included[name] {
			continue
		}
		included[name] = true

		t := r.byName[name]
		order = append(order, t)
		queue = append(queue, r.deps[name]...)
		queue = append(queue, t.ChildTables...)
	}

	sorted, err := TopoSort(order)
	if err != nil {
		return nil, err
	}
	slog.Debug("resolved include list", "requested", len(names), "tables", len(sorted))
	return sorted, nil
}

// ResolveExcludes drops the named tables and every table with a foreign key
// pointing directly at one of them. The cascade is one level deep. The
// result keeps registry order.
func (r *Registry) ResolveExcludes(names []string) ([]*schema.Table, error) {
	if err := r.checkKnown(names); err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(names))
	for _, name := range names {
		excluded[name] = true
	}

	var out []*schema.Table
	for _, t := range r.tables {
		if excluded[t.Name] || r.referencesAny(t, excluded) {
			continue
		}
		out = append(out, t)
	}
	slog.Debug("resolved exclude list", "excluded", len(names), "tables", len(out))
	return out, nil
}

func (r *Registry) referencesAny(t *schema.Table, set map[string]bool) bool {
	for _, fk := range t.ForeignKeys {
		if set[fk.RefTable] {
			return true
		}
	}
	return false
}

func (r *Registry) checkKnown(names []string) error {
	all := r.Names()
	for _, name := range names {
		if _, ok := r.byName[name]; ok {
			continue
		}
		err := sderr.Newf(sderr.ErrUnknownTable, "unknown table: %s", name).WithTable(name)
		if hint := sderr.SuggestSimilar(name, all); hint != "" {
			err.WithHelp(hint)
		}
		return err.WithNote("run 'sdelite tables' to list available tables")
	}
	return nil
}
