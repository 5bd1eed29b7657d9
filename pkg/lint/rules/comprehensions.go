package rules

import (
	"github.com/yaklabco/gopylint/pkg/fix"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// UnnecessaryListCompSetRule flags set([... for ...]): the intermediate
// list is built only to be consumed by set(), where a set comprehension
// does the same work without the allocation.
type UnnecessaryListCompSetRule struct {
	lint.BaseRule
}

// NewUnnecessaryListCompSetRule creates the C403 rule.
func NewUnnecessaryListCompSetRule() *UnnecessaryListCompSetRule {
	return &UnnecessaryListCompSetRule{
		BaseRule: lint.NewBaseRule(
			"C403",
			"unnecessary-list-comprehension-set",
			"Unnecessary list comprehension passed to set(); use a set comprehension",
			[]string{"comprehensions", "performance"},
			true,
			pyast.NodeCall,
		),
	}
}

// Check rewrites set([expr for ...]) into {expr for ...}.
func (r *UnnecessaryListCompSetRule) Check(ctx *lint.RuleContext, node *pyast.Node) ([]lint.Diagnostic, error) {
	if node.CalleeName() != "set" || !ctx.Index.IsBuiltin(node, "set") {
		return nil, nil
	}

	args := node.Args()
	if len(args) != 1 || args[0].Kind != pyast.NodeListComp {
		return nil, nil
	}

	comp := args[0]
	if comp.Range.Len() < 2 {
		return nil, nil
	}

	// Swap the call and the brackets for braces, keeping the
	// comprehension body byte for byte.
	inner := ctx.File.Content[comp.Range.StartOffset+1 : comp.Range.EndOffset-1]
	f, err := fix.NewSafe("", fix.TextEdit{
		StartOffset: node.Range.StartOffset,
		EndOffset:   node.Range.EndOffset,
		NewText:     "{" + string(inner) + "}",
	})
	if err != nil {
		return nil, err
	}

	diag := lint.NewDiagnostic(r.ID(), node, "Unnecessary list comprehension passed to set()").
		WithSuggestion("Rewrite as a set comprehension").
		WithFix(f).
		Build()
	return []lint.Diagnostic{diag}, nil
}

// UnnecessaryCollectionCallRule flags dict(), list(), and tuple() calls
// with no arguments, which spell the empty literal with a function call.
type UnnecessaryCollectionCallRule struct {
	lint.BaseRule
}

// NewUnnecessaryCollectionCallRule creates the C408 rule.
func NewUnnecessaryCollectionCallRule() *UnnecessaryCollectionCallRule {
	return &UnnecessaryCollectionCallRule{
		BaseRule: lint.NewBaseRule(
			"C408",
			"unnecessary-collection-call",
			"Unnecessary dict/list/tuple call; use the literal",
			[]string{"comprehensions", "performance"},
			true,
			pyast.NodeCall,
		),
	}
}

var collectionLiterals = map[string]string{
	"dict":  "{}",
	"list":  "[]",
	"tuple": "()",
}

// Check rewrites empty collection calls into their literals.
func (r *UnnecessaryCollectionCallRule) Check(ctx *lint.RuleContext, node *pyast.Node) ([]lint.Diagnostic, error) {
	name := node.CalleeName()
	literal, ok := collectionLiterals[name]
	if !ok || len(node.Args()) != 0 || !ctx.Index.IsBuiltin(node, name) {
		return nil, nil
	}

	f, err := fix.NewSafe("", fix.TextEdit{
		StartOffset: node.Range.StartOffset,
		EndOffset:   node.Range.EndOffset,
		NewText:     literal,
	})
	if err != nil {
		return nil, err
	}

	diag := lint.NewDiagnostic(r.ID(), node, "Unnecessary "+name+"() call").
		WithSuggestion("Use the "+literal+" literal").
		WithFix(f).
		Build()
	return []lint.Diagnostic{diag}, nil
}

// UnnecessaryRangeStartRule flags range(0, x): zero is already the
// default start.
type UnnecessaryRangeStartRule struct {
	lint.BaseRule
}

// NewUnnecessaryRangeStartRule creates the PIE808 rule.
func NewUnnecessaryRangeStartRule() *UnnecessaryRangeStartRule {
	return &UnnecessaryRangeStartRule{
		BaseRule: lint.NewBaseRule(
			"PIE808",
			"unnecessary-range-start",
			"Unnecessary start argument in range(0, stop)",
			[]string{"style"},
			true,
			pyast.NodeCall,
		),
	}
}

// Check drops the redundant zero start from range calls.
func (r *UnnecessaryRangeStartRule) Check(ctx *lint.RuleContext, node *pyast.Node) ([]lint.Diagnostic, error) {
	if node.CalleeName() != "range" || !ctx.Index.IsBuiltin(node, "range") {
		return nil, nil
	}

	args := node.Args()
	if len(args) != 2 || args[0].Kind != pyast.NodeNumber {
		return nil, nil
	}
	if string(args[0].Text()) != "0" {
		return nil, nil
	}

	// Delete "0, " up to the stop argument.
	f, err := fix.NewSafe("", fix.TextEdit{
		StartOffset: args[0].Range.StartOffset,
		EndOffset:   args[1].Range.StartOffset,
	})
	if err != nil {
		return nil, err
	}

	diag := lint.NewDiagnostic(r.ID(), node, "Unnecessary start argument in range()").
		WithSuggestion("Use range(stop)").
		WithFix(f).
		Build()
	return []lint.Diagnostic{diag}, nil
}
