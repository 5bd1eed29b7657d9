package rules

import (
	"github.com/yaklabco/gopylint/pkg/fix"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// TrailingWhitespaceRule flags spaces and tabs at the end of a line.
type TrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrailingWhitespaceRule creates the W291 rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: lint.NewFileRule(
			"W291",
			"trailing-whitespace",
			"Line has trailing whitespace",
			[]string{"whitespace", "style"},
			true,
		),
	}
}

// Check reports and trims trailing whitespace on each line.
func (r *TrailingWhitespaceRule) Check(ctx *lint.RuleContext, _ *pyast.Node) ([]lint.Diagnostic, error) {
	literals := pyast.FindByKind(ctx.File.Root, pyast.NodeString)

	var diags []lint.Diagnostic
	for _, line := range ctx.File.Lines {
		end := line.NewlineStart
		start := end
		for start > line.StartOffset {
			ch := ctx.File.Content[start-1]
			if ch != ' ' && ch != '\t' {
				break
			}
			start--
		}
		if start == end {
			continue
		}

		edit := fix.TextEdit{StartOffset: start, EndOffset: end}

		// Trimming inside a multiline string literal changes the
		// string's runtime value.
		var f *fix.Fix
		var err error
		if insideLiteral(literals, pyast.NewRange(start, end)) {
			f, err = fix.NewUnsafe("changes the value of a string literal", edit)
		} else {
			f, err = fix.NewSafe("", edit)
		}
		if err != nil {
			return nil, err
		}

		diag := lint.NewDiagnosticAt(r.ID(), ctx.File, pyast.NewRange(start, end),
			"Trailing whitespace").
			WithSuggestion("Remove trailing whitespace").
			WithFix(f).
			Build()
		diags = append(diags, diag)
	}
	return diags, nil
}

// insideLiteral reports whether the span falls within any of the given
// string literal nodes.
func insideLiteral(literals []*pyast.Node, span pyast.SourceRange) bool {
	for _, lit := range literals {
		if lit.Range.Overlaps(span) {
			return true
		}
	}
	return false
}

// MissingFinalNewlineRule flags a file whose last line has no newline.
type MissingFinalNewlineRule struct {
	lint.BaseRule
}

// NewMissingFinalNewlineRule creates the W292 rule.
func NewMissingFinalNewlineRule() *MissingFinalNewlineRule {
	return &MissingFinalNewlineRule{
		BaseRule: lint.NewFileRule(
			"W292",
			"missing-final-newline",
			"File does not end with a newline",
			[]string{"whitespace", "style"},
			true,
		),
	}
}

// Check appends a newline when the file ends without one.
func (r *MissingFinalNewlineRule) Check(ctx *lint.RuleContext, _ *pyast.Node) ([]lint.Diagnostic, error) {
	content := ctx.File.Content
	if len(content) == 0 || content[len(content)-1] == '\n' {
		return nil, nil
	}

	f, err := fix.NewSafe("", fix.TextEdit{
		StartOffset: len(content),
		EndOffset:   len(content),
		NewText:     "\n",
	})
	if err != nil {
		return nil, err
	}

	diag := lint.NewDiagnosticAt(r.ID(), ctx.File,
		pyast.NewRange(len(content), len(content)),
		"No newline at end of file").
		WithSuggestion("Add a trailing newline").
		WithFix(f).
		Build()
	return []lint.Diagnostic{diag}, nil
}
