package semantic

import (
	"sort"
	"strings"

	"github.com/yaklabco/gopylint/pkg/pyast"
)

// Index is the binding index for one file. Collect builds it in two
// passes: bindings first, then name-use resolution.
type Index struct {
	snapshot *pyast.FileSnapshot
	module   *Scope

	// scopeOf maps each tree node to its enclosing scope.
	scopeOf map[*pyast.Node]*Scope

	// resolved maps Name nodes to the binding they resolved to.
	resolved map[*pyast.Node]*Binding

	// defNames marks Name nodes that introduce a binding rather than
	// use one (assignment and comprehension targets).
	defNames map[*pyast.Node]bool

	bindings []*Binding
}

// Collect builds the index for snapshot. The returned index is
// read-only; queries are safe for concurrent use.
func Collect(snapshot *pyast.FileSnapshot) *Index {
	idx := &Index{
		snapshot: snapshot,
		scopeOf:  map[*pyast.Node]*Scope{},
		resolved: map[*pyast.Node]*Binding{},
		defNames: map[*pyast.Node]bool{},
	}

	idx.module = newScope(ScopeModule, snapshot.Root, nil)
	idx.collect(snapshot.Root, idx.module)
	idx.resolveUses(snapshot.Root)

	return idx
}

// collect walks the tree recording scopes and bindings.
func (idx *Index) collect(node *pyast.Node, scope *Scope) {
	idx.scopeOf[node] = scope

	switch node.Kind {
	case pyast.NodeImport:
		for _, alias := range node.Imports {
			idx.bind(scope, alias.Binds(), BindingImport, node, alias.Range)
		}

	case pyast.NodeImportFrom:
		for _, alias := range node.Imports {
			if alias.Name == "*" {
				continue
			}
			idx.bind(scope, alias.Binds(), BindingFromImport, node, alias.Range)
		}

	case pyast.NodeFunctionDef:
		if node.Ident != "" {
			idx.bind(scope, node.Ident, BindingFunction, node, node.Range)
		}
		inner := newScope(ScopeFunction, node, scope)
		for _, name := range paramNames(node) {
			idx.bind(inner, name, BindingParameter, node, node.Range)
		}
		for child := node.FirstChild; child != nil; child = child.Next {
			idx.collect(child, inner)
		}
		return

	case pyast.NodeClassDef:
		if node.Ident != "" {
			idx.bind(scope, node.Ident, BindingClass, node, node.Range)
		}
		inner := newScope(ScopeClass, node, scope)
		for child := node.FirstChild; child != nil; child = child.Next {
			idx.collect(child, inner)
		}
		return

	case pyast.NodeListComp, pyast.NodeSetComp, pyast.NodeDictComp, pyast.NodeGenerator:
		inner := newScope(ScopeComprehension, node, scope)
		idx.bindCompTargets(node, inner)
		for child := node.FirstChild; child != nil; child = child.Next {
			idx.collect(child, inner)
		}
		return

	case pyast.NodeAssign:
		if target := node.FirstChild; target != nil {
			idx.bindTargets(target, scope, node)
		}
	}

	for child := node.FirstChild; child != nil; child = child.Next {
		idx.collect(child, scope)
	}
}

// bindTargets binds the plain names on the left side of an assignment.
// Attribute and call targets bind nothing.
func (idx *Index) bindTargets(target *pyast.Node, scope *Scope, stmt *pyast.Node) {
	switch target.Kind {
	case pyast.NodeName:
		idx.bind(scope, target.Ident, BindingAssignment, stmt, target.Range)
		idx.defNames[target] = true

	case pyast.NodeTuple, pyast.NodeList, pyast.NodeRaw:
		for child := target.FirstChild; child != nil; child = child.Next {
			idx.bindTargets(child, scope, stmt)
		}
	}
}

// bindCompTargets binds the loop targets of a comprehension's for
// clauses. Clauses fold "target in iterable" into one operand group;
// the group is told apart from element and condition expressions by
// the "in" keyword between its first two operands.
func (idx *Index) bindCompTargets(comp *pyast.Node, scope *Scope) {
	for child := comp.FirstChild; child != nil; child = child.Next {
		target := clauseTarget(child)
		if target == nil {
			continue
		}
		idx.bind(scope, target.Ident, BindingAssignment, comp, target.Range)
		idx.defNames[target] = true
	}
}

// clauseTarget returns the loop-target Name of a for-clause group, or
// nil if node is not one.
func clauseTarget(node *pyast.Node) *pyast.Node {
	if node.Kind != pyast.NodeRaw || node.File == nil {
		return nil
	}
	target := node.FirstChild
	if target == nil || target.Kind != pyast.NodeName || target.Next == nil {
		return nil
	}

	gap := node.File.Content[target.Range.EndOffset:target.Next.Range.StartOffset]
	fields := strings.Fields(string(gap))
	if len(fields) == 1 && fields[0] == "in" {
		return target
	}
	return nil
}

// bind records a binding. A name already bound in the scope keeps its
// first binding.
func (idx *Index) bind(scope *Scope, name string, kind BindingKind, node *pyast.Node, rng pyast.SourceRange) {
	if name == "" {
		return
	}
	if _, exists := scope.Bindings[name]; exists {
		return
	}

	b := &Binding{
		Name:  name,
		Kind:  kind,
		Node:  node,
		Range: rng,
		Scope: scope,
	}
	scope.Bindings[name] = b
	idx.bindings = append(idx.bindings, b)
}

// resolveUses records every Name node against the binding it resolves
// to.
func (idx *Index) resolveUses(root *pyast.Node) {
	//nolint:errcheck,revive // callback never returns an error
	pyast.Walk(root, func(node *pyast.Node) error {
		if node.Kind != pyast.NodeName || idx.defNames[node] {
			return nil
		}
		scope := idx.scopeOf[node]
		if scope == nil {
			scope = idx.module
		}
		if b := scope.Lookup(node.Ident); b != nil {
			idx.resolved[node] = b
			b.Uses = append(b.Uses, node)
		}
		return nil
	})
}

// paramNames extracts parameter names from a def header's text. The
// parser keeps the header as a flat statement, so the name list comes
// from a scan of the parenthesized group.
func paramNames(node *pyast.Node) []string {
	if node.File == nil {
		return nil
	}
	content := node.File.Content
	start := node.Range.StartOffset
	end := node.Range.EndOffset
	if end > len(content) {
		end = len(content)
	}

	// Find the opening paren of the parameter list.
	open := -1
	for i := start; i < end; i++ {
		if content[i] == '(' {
			open = i
			break
		}
		if content[i] == ':' || content[i] == '\n' {
			return nil
		}
	}
	if open < 0 {
		return nil
	}

	var names []string
	depth := 1
	expectName := true
	i := open + 1
	for i < end && depth > 0 {
		ch := content[i]
		switch {
		case ch == '(' || ch == '[' || ch == '{':
			depth++
			i++
		case ch == ')' || ch == ']' || ch == '}':
			depth--
			i++
		case depth == 1 && ch == ',':
			expectName = true
			i++
		case depth == 1 && expectName && (ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '*'):
			i++
		case depth == 1 && expectName && isIdentStart(ch):
			j := i
			for j < end && isIdentChar(content[j]) {
				j++
			}
			names = append(names, string(content[i:j]))
			expectName = false
			i = j
		default:
			expectName = expectName && ch != '=' && ch != ':'
			i++
		}
	}

	return names
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

// ModuleScope returns the root scope.
func (idx *Index) ModuleScope() *Scope {
	return idx.module
}

// ScopeOf returns the scope enclosing node, or the module scope for
// nodes the index has not seen.
func (idx *Index) ScopeOf(node *pyast.Node) *Scope {
	if s, ok := idx.scopeOf[node]; ok {
		return s
	}
	return idx.module
}

// ResolveName returns the binding a Name node resolved to, or nil for
// unresolved names and non-Name nodes.
func (idx *Index) ResolveName(node *pyast.Node) *Binding {
	return idx.resolved[node]
}

// IsBuiltin reports whether name, as seen from node's scope, refers to
// the Python builtin rather than a local or imported shadow.
func (idx *Index) IsBuiltin(node *pyast.Node, name string) bool {
	if !KnownBuiltin(name) {
		return false
	}
	return idx.ScopeOf(node).Lookup(name) == nil
}

// VisibleAt returns the sorted names visible from scope.
func (idx *Index) VisibleAt(scope *Scope) []string {
	seen := map[string]bool{}
	for s := scope; s != nil; s = s.Parent {
		if s.Kind == ScopeClass && s != scope {
			continue
		}
		for name := range s.Bindings {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bindings returns every binding in the file, in collection order.
func (idx *Index) Bindings() []*Binding {
	return idx.bindings
}

// UnusedBindings returns bindings with no recorded uses, sorted by
// source position.
func (idx *Index) UnusedBindings() []*Binding {
	var unused []*Binding
	for _, b := range idx.bindings {
		if !b.IsUsed() {
			unused = append(unused, b)
		}
	}
	sort.Slice(unused, func(i, j int) bool {
		return unused[i].Range.StartOffset < unused[j].Range.StartOffset
	})
	return unused
}
