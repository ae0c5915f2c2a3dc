package core

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func noopFactory(ctx context.Context) (any, error) {
	return "ok", nil
}

func defs(specs ...TaskDefinition) []TaskDefinition {
	return specs
}

// TestResolve_DependenciesFirst verifies the ordering contract
// Given: a valid acyclic task set
// When: Resolve runs
// Then: every task appears exactly once, after all of its dependencies
func TestResolve_DependenciesFirst(t *testing.T) {
	input := defs(
		NewTaskDefinition("report", noopFactory, WithDependencies("transform", "load")),
		NewTaskDefinition("transform", noopFactory, WithDependencies("extract")),
		NewTaskDefinition("load", noopFactory, WithDependencies("extract")),
		NewTaskDefinition("extract", noopFactory),
	)

	order, err := Resolve(input)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(order) != len(input) {
		t.Fatalf("Resolve returned %d tasks, want %d", len(order), len(input))
	}

	position := make(map[string]int, len(order))
	for i, def := range order {
		if _, seen := position[def.Name]; seen {
			t.Fatalf("task %q appears more than once", def.Name)
		}
		position[def.Name] = i
	}

	for _, def := range input {
		for _, dep := range def.Dependencies {
			if position[dep] >= position[def.Name] {
				t.Errorf("dependency %q at %d does not precede %q at %d",
					dep, position[dep], def.Name, position[def.Name])
			}
		}
	}
}

// TestResolve_FirstSeenOrderForIndependentTasks verifies determinism
// Given: independent tasks with no dependencies
// When: Resolve runs
// Then: the output preserves input order
func TestResolve_FirstSeenOrderForIndependentTasks(t *testing.T) {
	input := defs(
		NewTaskDefinition("c", noopFactory),
		NewTaskDefinition("a", noopFactory),
		NewTaskDefinition("b", noopFactory),
	)

	order, err := Resolve(input)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	for i, def := range input {
		if order[i].Name != def.Name {
			t.Fatalf("order[%d] = %q, want %q", i, order[i].Name, def.Name)
		}
	}
}

// TestResolve_CycleDetected verifies cycle handling
// Given: A depends on B and B depends on A
// When: Resolve runs
// Then: it fails with ErrCircularDependency naming an implicated task,
// and Validate returns false; removing the cycle makes Validate true
func TestResolve_CycleDetected(t *testing.T) {
	cyclic := defs(
		NewTaskDefinition("A", noopFactory, WithDependencies("B")),
		NewTaskDefinition("B", noopFactory, WithDependencies("A")),
	)

	_, err := Resolve(cyclic)
	if !errors.Is(err, ErrCircularDependency) {
		t.Fatalf("Resolve error = %v, want ErrCircularDependency", err)
	}
	if !strings.Contains(err.Error(), "A") && !strings.Contains(err.Error(), "B") {
		t.Errorf("cycle error %q names no implicated task", err)
	}
	if Validate(cyclic) {
		t.Error("Validate returned true for a cyclic set")
	}

	acyclic := defs(
		NewTaskDefinition("A", noopFactory, WithDependencies("B")),
		NewTaskDefinition("B", noopFactory),
	)
	if !Validate(acyclic) {
		t.Error("Validate returned false for an acyclic set")
	}
}

// TestResolve_MissingDependency verifies the configuration-error path
func TestResolve_MissingDependency(t *testing.T) {
	input := defs(
		NewTaskDefinition("A", noopFactory, WithDependencies("ghost")),
	)

	_, err := Resolve(input)
	if !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("Resolve error = %v, want ErrMissingDependency", err)
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error %q does not name the missing dependency", err)
	}
}

// TestResolve_DuplicateName verifies batch name uniqueness
func TestResolve_DuplicateName(t *testing.T) {
	input := defs(
		NewTaskDefinition("A", noopFactory),
		NewTaskDefinition("A", noopFactory),
	)

	_, err := Resolve(input)
	if !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("Resolve error = %v, want ErrDuplicateTask", err)
	}
}

// TestResolve_EmptyName verifies names are required
func TestResolve_EmptyName(t *testing.T) {
	input := defs(
		NewTaskDefinition("", noopFactory),
	)

	_, err := Resolve(input)
	if !errors.Is(err, ErrEmptyTaskName) {
		t.Fatalf("Resolve error = %v, want ErrEmptyTaskName", err)
	}
}

// TestResolve_SelfDependency verifies a one-node cycle is still a cycle
func TestResolve_SelfDependency(t *testing.T) {
	input := defs(
		NewTaskDefinition("A", noopFactory, WithDependencies("A")),
	)

	_, err := Resolve(input)
	if !errors.Is(err, ErrCircularDependency) {
		t.Fatalf("Resolve error = %v, want ErrCircularDependency", err)
	}
}
