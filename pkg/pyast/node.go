package pyast

import "strings"

//go:generate stringer -type=NodeKind -trimprefix=Node

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for statement-level and expression-level Python constructs.
const (
	NodeModule NodeKind = iota

	// Statement-level nodes.
	NodeImport
	NodeImportFrom
	NodeFunctionDef
	NodeClassDef
	NodeTry
	NodeExcept
	NodeAssign
	NodeReturn
	NodeExprStmt

	// Expression-level nodes.
	NodeCall
	NodeName
	NodeAttribute
	NodeNumber
	NodeString
	NodeList
	NodeSet
	NodeDict
	NodeTuple
	NodeListComp
	NodeSetComp
	NodeDictComp
	NodeGenerator

	// Fallback for unrecognized content.
	NodeRaw
)

// ImportAlias describes one name bound by an import statement.
type ImportAlias struct {
	// Name is the dotted module path or imported symbol.
	Name string

	// Alias is the "as" name, empty if none.
	Alias string

	// Range spans the alias clause in the source.
	Range SourceRange
}

// Binds returns the name this alias introduces into the scope.
// For dotted imports without an alias that is the first component.
func (a ImportAlias) Binds() string {
	if a.Alias != "" {
		return a.Alias
	}
	if idx := strings.IndexByte(a.Name, '.'); idx >= 0 {
		return a.Name[:idx]
	}
	return a.Name
}

// Node represents a single node in the Python syntax tree.
// Nodes form a tree structure with parent/child/sibling relationships.
// The tree is immutable once built; the lint engine only reads it.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Range is the byte span of this node in File.Content.
	Range SourceRange

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot

	// Ident is the identifier text for Name, Attribute, FunctionDef,
	// ClassDef, and Except nodes (empty for a bare except clause).
	Ident string

	// Imports holds the names bound by Import and ImportFrom nodes.
	Imports []ImportAlias

	// Module is the source module of an ImportFrom node.
	Module string
}

// IsStatement returns true if this is a statement-level node.
func (n *Node) IsStatement() bool {
	switch n.Kind {
	case NodeImport, NodeImportFrom, NodeFunctionDef, NodeClassDef,
		NodeTry, NodeExcept, NodeAssign, NodeReturn, NodeExprStmt:
		return true
	default:
		return false
	}
}

// IsExpression returns true if this is an expression-level node.
func (n *Node) IsExpression() bool {
	switch n.Kind {
	case NodeCall, NodeName, NodeAttribute, NodeNumber, NodeString,
		NodeList, NodeSet, NodeDict, NodeTuple,
		NodeListComp, NodeSetComp, NodeDictComp, NodeGenerator:
		return true
	default:
		return false
	}
}

// IsComprehension returns true for comprehension and generator nodes.
func (n *Node) IsComprehension() bool {
	switch n.Kind {
	case NodeListComp, NodeSetComp, NodeDictComp, NodeGenerator:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Callee returns the function expression of a Call node, or nil.
func (n *Node) Callee() *Node {
	if n.Kind != NodeCall {
		return nil
	}
	return n.FirstChild
}

// Args returns the argument expressions of a Call node.
func (n *Node) Args() []*Node {
	if n.Kind != NodeCall || n.FirstChild == nil {
		return nil
	}
	var args []*Node
	for child := n.FirstChild.Next; child != nil; child = child.Next {
		args = append(args, child)
	}
	return args
}

// CalleeName returns the identifier of a Call node's callee when the
// callee is a plain Name, or "" otherwise.
func (n *Node) CalleeName() string {
	callee := n.Callee()
	if callee == nil || callee.Kind != NodeName {
		return ""
	}
	return callee.Ident
}
