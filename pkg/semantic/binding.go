package semantic

import "github.com/yaklabco/gopylint/pkg/pyast"

//go:generate stringer -type=BindingKind -trimprefix=Binding

// BindingKind classifies how a name was introduced.
type BindingKind uint8

// Binding kinds.
const (
	BindingImport BindingKind = iota
	BindingFromImport
	BindingFunction
	BindingClass
	BindingAssignment
	BindingParameter
)

// Binding records one name introduced into a scope.
type Binding struct {
	// Name is the bound identifier.
	Name string

	// Kind identifies the introducing construct.
	Kind BindingKind

	// Node is the statement or expression that introduced the binding.
	Node *pyast.Node

	// Range spans the introducing clause (for imports, the alias clause
	// rather than the whole statement).
	Range pyast.SourceRange

	// Scope is the scope the name lives in.
	Scope *Scope

	// Uses are the Name nodes that resolved to this binding, in source
	// order.
	Uses []*pyast.Node
}

// IsImport reports whether the binding comes from an import statement.
func (b *Binding) IsImport() bool {
	return b.Kind == BindingImport || b.Kind == BindingFromImport
}

// IsUsed reports whether any name use resolved to this binding.
func (b *Binding) IsUsed() bool {
	return len(b.Uses) > 0
}
