// Package domain contains the core domain models for the target graph.
package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Graph represents the prerequisite graph of targets. Targets are added at
// load time and never mutated afterwards.
type Graph struct {
	targets        map[InternedString]Target
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		targets: make(map[InternedString]Target),
	}
}

// AddTarget adds a target to the graph.
// It returns an error if a target with the same name already exists.
func (g *Graph) AddTarget(t *Target) error {
	if _, exists := g.targets[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrTargetAlreadyExists, "cannot add target"), "target", t.Name.String())
	}
	g.targets[t.Name] = *t
	return nil
}

// Resolve looks up a target by exact name match. Unknown names fail with
// ErrTargetNotFound; there is no fuzzy matching.
func (g *Graph) Resolve(name InternedString) (Target, error) {
	t, ok := g.targets[name]
	if !ok {
		return Target{}, zerr.With(zerr.Wrap(ErrTargetNotFound, "cannot resolve target"), "target", name.String())
	}
	return t, nil
}

// PrerequisitesOf returns the prerequisite names of a target in declaration
// order.
func (g *Graph) PrerequisitesOf(name InternedString) ([]InternedString, error) {
	t, err := g.Resolve(name)
	if err != nil {
		return nil, err
	}
	return t.Prereqs, nil
}

// TargetCount returns the number of targets in the graph.
func (g *Graph) TargetCount() int {
	return len(g.targets)
}

// Validate checks for cycles and dangling prerequisite references using a
// depth-first topological sort. It populates the execution order used by
// Walk. A malformed graph is a configuration error and must abort startup.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.targets))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		target, exists := g.targets[u]
		if !exists {
			return zerr.With(zerr.Wrap(ErrMissingPrerequisite, "invalid target graph"), "prerequisite", u.String())
		}

		for _, dep := range target.Prereqs {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for name := range g.targets {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(zerr.Wrap(ErrCycleDetected, "invalid target graph"), "cycle", cyclePath)
}

// Walk returns an iterator that yields targets in a valid execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Target] {
	return func(yield func(Target) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.targets[name]) {
				return
			}
		}
	}
}
