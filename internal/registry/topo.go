package registry

import (
	"github.com/hlop3z/sdelite/internal/sderr"
)

// DependencyNode is anything with a name and a list of names it depends on.
type DependencyNode interface {
	ID() string
	Dependencies() []string
}

// TopoSort orders nodes so that every dependency precedes its dependents.
// It walks nodes depth-first in input order and emits them in post-order, so
// independent nodes keep their relative input order. Dependencies outside the
// node set and self-references are ignored. A cycle returns
// sderr.ErrCircularDependency naming the node where it was detected.
func TopoSort[T DependencyNode](nodes []T) ([]T, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	byID := make(map[string]T, len(nodes))
	for _, n := range nodes {
		byID[n.ID()] = n
	}

	result := make([]T, 0, len(nodes))
	visiting := make(map[string]bool)
	done := make(map[string]bool, len(nodes))

	var visit func(id string) error
	visit = func(id string) error {
		if done[id] {
			return nil
		}
		if visiting[id] {
			return sderr.Newf(sderr.ErrCircularDependency, "circular dependency detected at: %s", id).
				WithTable(id)
		}
		visiting[id] = true

		n := byID[id]
		for _, dep := range n.Dependencies() {
			if dep == id {
				continue
			}
			if _, ok := byID[dep]; !ok {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		delete(visiting, id)
		done[id] = true
		result = append(result, n)
		return nil
	}

	for _, n := range nodes {
		if err := visit(n.ID()); err != nil {
			return nil, err
		}
	}
	return result, nil
}
