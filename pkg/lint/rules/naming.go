package rules

import (
	"bytes"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/yaklabco/gopylint/pkg/fix"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// InvalidClassNameRule flags class names that do not use CapWords.
// The rename is offered display-only: callers in other files would
// break if it were applied here.
type InvalidClassNameRule struct {
	lint.BaseRule
}

// NewInvalidClassNameRule creates the N801 rule.
func NewInvalidClassNameRule() *InvalidClassNameRule {
	return &InvalidClassNameRule{
		BaseRule: lint.NewBaseRule(
			"N801",
			"invalid-class-name",
			"Class name should use CapWords convention",
			[]string{"naming", "style"},
			true,
			pyast.NodeClassDef,
		),
	}
}

// Check reports class names that are not CapWords and suggests one.
func (r *InvalidClassNameRule) Check(ctx *lint.RuleContext, node *pyast.Node) ([]lint.Diagnostic, error) {
	name := node.Ident
	if name == "" || isCapWords(name) {
		return nil, nil
	}

	suggested := toCapWords(name)
	diag := lint.NewDiagnosticAt(r.ID(), ctx.File, classNameRange(node),
		"Class name `"+name+"` should use CapWords").
		WithSuggestion("Rename to `" + suggested + "`")

	if suggested != name {
		f, err := fix.NewDisplayOnly("rename affects callers in other files", fix.TextEdit{
			StartOffset: classNameRange(node).StartOffset,
			EndOffset:   classNameRange(node).EndOffset,
			NewText:     suggested,
		})
		if err != nil {
			return nil, err
		}
		diag = diag.WithFix(f)
	}

	return []lint.Diagnostic{diag.Build()}, nil
}

// isCapWords reports whether name already follows CapWords. Leading
// underscores mark private classes and are allowed.
func isCapWords(name string) bool {
	trimmed := strings.TrimLeft(name, "_")
	if trimmed == "" {
		return false
	}
	if trimmed[0] < 'A' || trimmed[0] > 'Z' {
		return false
	}
	return !strings.Contains(trimmed, "_")
}

// toCapWords rebuilds a name as CapWords, splitting on underscores and
// existing case boundaries.
func toCapWords(name string) string {
	prefix := name[:len(name)-len(strings.TrimLeft(name, "_"))]

	var sb strings.Builder
	sb.WriteString(prefix)
	for _, part := range strings.Split(strings.Trim(name, "_"), "_") {
		for _, word := range camelcase.Split(part) {
			if word == "" {
				continue
			}
			sb.WriteString(strings.ToUpper(word[:1]))
			sb.WriteString(word[1:])
		}
	}
	return sb.String()
}

// classNameRange returns the byte range of the name in a class header.
func classNameRange(node *pyast.Node) pyast.SourceRange {
	text := node.Text()
	idx := bytes.Index(text, []byte(node.Ident))
	if idx < 0 {
		return node.Range
	}
	start := node.Range.StartOffset + idx
	return pyast.NewRange(start, start+len(node.Ident))
}
