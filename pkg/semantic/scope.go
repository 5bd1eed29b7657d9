// Package semantic builds a binding index over a parsed file: which
// names are introduced where, and which name uses resolve to which
// bindings. The index is collected in one pass and read-only afterwards,
// so rules running concurrently over different files never share state.
package semantic

import "github.com/yaklabco/gopylint/pkg/pyast"

//go:generate stringer -type=ScopeKind -trimprefix=Scope

// ScopeKind classifies a lexical scope.
type ScopeKind uint8

// Scope kinds, mirroring Python's lexical scoping units.
const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeClass
	ScopeComprehension
)

// Scope is one lexical scope in the scope tree.
type Scope struct {
	// Kind identifies the scoping unit.
	Kind ScopeKind

	// Node is the tree node that opens this scope (the Module node for
	// the module scope).
	Node *pyast.Node

	// Parent is the enclosing scope, nil for the module scope.
	Parent *Scope

	// Children are nested scopes in source order.
	Children []*Scope

	// Bindings maps each name introduced in this scope to its binding.
	// A name rebound in the same scope keeps the first binding.
	Bindings map[string]*Binding
}

func newScope(kind ScopeKind, node *pyast.Node, parent *Scope) *Scope {
	s := &Scope{
		Kind:     kind,
		Node:     node,
		Parent:   parent,
		Bindings: map[string]*Binding{},
	}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Lookup resolves name from this scope outwards. Class scopes do not
// contribute to lookups from scopes nested inside them, matching
// Python's scoping rules.
func (s *Scope) Lookup(name string) *Binding {
	for scope := s; scope != nil; scope = scope.Parent {
		if scope.Kind == ScopeClass && scope != s {
			continue
		}
		if b, ok := scope.Bindings[name]; ok {
			return b
		}
	}
	return nil
}

// IsModule reports whether this is the module scope.
func (s *Scope) IsModule() bool {
	return s.Kind == ScopeModule
}
