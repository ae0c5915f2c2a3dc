package core

import "fmt"

// visit marks for the depth-first traversal
type visitMark int

const (
	markUnvisited visitMark = iota
	markInProgress
	markDone
)

// Resolve linearizes a set of task definitions so that every task
// appears after all of its declared dependencies. The traversal is a
// depth-first walk with three-color marking; ties among independent
// tasks keep first-seen input order, so the result is deterministic for
// a given input order.
//
// Errors: ErrEmptyTaskName if a definition has no name,
// ErrDuplicateTask if two definitions share a name,
// ErrMissingDependency if a dependency names no definition, and
// ErrCircularDependency (identifying one implicated task) if the graph
// contains a cycle. No partial order is returned on error.
func Resolve(definitions []TaskDefinition) ([]TaskDefinition, error) {
	byName := make(map[string]TaskDefinition, len(definitions))
	for _, def := range definitions {
		if def.Name == "" {
			return nil, ErrEmptyTaskName
		}
		if _, exists := byName[def.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTask, def.Name)
		}
		byName[def.Name] = def
	}

	marks := make(map[string]visitMark, len(definitions))
	order := make([]TaskDefinition, 0, len(definitions))

	var visit func(def TaskDefinition) error
	visit = func(def TaskDefinition) error {
		switch marks[def.Name] {
		case markDone:
			return nil
		case markInProgress:
			return fmt.Errorf("%w: involving task %q", ErrCircularDependency, def.Name)
		}

		marks[def.Name] = markInProgress
		for _, depName := range def.Dependencies {
			dep, ok := byName[depName]
			if !ok {
				return fmt.Errorf("%w: task %q depends on %q", ErrMissingDependency, def.Name, depName)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		marks[def.Name] = markDone
		order = append(order, def)
		return nil
	}

	for _, def := range definitions {
		if err := visit(def); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// Validate reports whether the definitions form a valid acyclic
// dependency graph, without exposing the resolved order.
func Validate(definitions []TaskDefinition) bool {
	_, err := Resolve(definitions)
	return err == nil
}
