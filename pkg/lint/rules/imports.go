package rules

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/fix"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// MultipleImportsRule flags `import a, b` statements. PEP 8 wants one
// module per import statement; `from x import a, b` is fine.
type MultipleImportsRule struct {
	lint.BaseRule
}

// NewMultipleImportsRule creates the E401 rule.
func NewMultipleImportsRule() *MultipleImportsRule {
	return &MultipleImportsRule{
		BaseRule: lint.NewBaseRule(
			"E401",
			"multiple-imports-on-one-line",
			"Multiple imports on one line",
			[]string{"imports", "style"},
			true,
			pyast.NodeImport,
		),
	}
}

// Check splits `import a, b` into one statement per line.
func (r *MultipleImportsRule) Check(ctx *lint.RuleContext, node *pyast.Node) ([]lint.Diagnostic, error) {
	if len(node.Imports) < 2 {
		return nil, nil
	}

	diag := lint.NewDiagnostic(r.ID(), node, "Multiple imports on one line").
		WithSuggestion("Put each import on its own line")

	// The rewrite replaces the whole line with statements rebuilt from
	// the parsed aliases. A trailing comment or a second statement
	// sharing the line would not survive that; report without a fix.
	if splitKeepsLine(ctx.File, node) {
		span := statementLineSpan(ctx.File, node.Range)
		indent := lineIndentAt(ctx.File, node.Range.StartOffset)

		var sb strings.Builder
		for _, alias := range node.Imports {
			sb.WriteString(indent)
			sb.WriteString("import ")
			sb.WriteString(alias.Name)
			if alias.Alias != "" {
				sb.WriteString(" as ")
				sb.WriteString(alias.Alias)
			}
			sb.WriteByte('\n')
		}

		f, err := fix.NewSafe("", fix.TextEdit{
			StartOffset: span.StartOffset,
			EndOffset:   span.EndOffset,
			NewText:     sb.String(),
		})
		if err != nil {
			return nil, err
		}
		diag = diag.WithFix(f)
	}

	return []lint.Diagnostic{diag.Build()}, nil
}

// splitKeepsLine reports whether rebuilding the import from its parsed
// aliases reproduces the whole line: the statement sits on a single
// line with nothing but indentation before it, nothing but blanks
// after it, and no comment or semicolon inside its span.
func splitKeepsLine(file *pyast.FileSnapshot, node *pyast.Node) bool {
	startLine, _ := file.LineAt(node.Range.StartOffset)
	endOffset := node.Range.EndOffset
	if endOffset > node.Range.StartOffset {
		endOffset--
	}
	endLine, _ := file.LineAt(endOffset)
	if startLine < 1 || startLine != endLine || endLine > len(file.Lines) {
		return false
	}

	info := file.Lines[endLine-1]
	for _, b := range file.Content[info.StartOffset:node.Range.StartOffset] {
		if b != ' ' && b != '\t' {
			return false
		}
	}
	if info.NewlineStart > node.Range.EndOffset {
		for _, b := range file.Content[node.Range.EndOffset:info.NewlineStart] {
			if b != ' ' && b != '\t' {
				return false
			}
		}
	}
	return !bytes.ContainsAny(node.Text(), ";#")
}

// UnsortedImportsRule flags a leading import block that is not in
// alphabetical order. The fix replaces the block with its sorted form
// in a single edit.
type UnsortedImportsRule struct {
	lint.BaseRule
}

// NewUnsortedImportsRule creates the I001 rule.
func NewUnsortedImportsRule() *UnsortedImportsRule {
	return &UnsortedImportsRule{
		BaseRule: lint.NewFileRule(
			"I001",
			"unsorted-imports",
			"Import block is not sorted",
			[]string{"imports", "style"},
			true,
		),
	}
}

// Check reorders the leading import block alphabetically by module.
func (r *UnsortedImportsRule) Check(ctx *lint.RuleContext, root *pyast.Node) ([]lint.Diagnostic, error) {
	// A pending E401 split rewrites these same lines; sort the block
	// once the split has landed on a later pass.
	if ctx.Collector.Reported("E401") {
		return nil, nil
	}

	block := leadingImportBlock(root)
	if len(block) < 2 {
		return nil, nil
	}
	if sort.SliceIsSorted(block, func(i, j int) bool {
		return importLess(block[i], block[j])
	}) {
		return nil, nil
	}

	first := statementLineSpan(ctx.File, block[0].Range)
	last := statementLineSpan(ctx.File, block[len(block)-1].Range)
	span := pyast.NewRange(first.StartOffset, last.EndOffset)

	diag := lint.NewDiagnosticAt(r.ID(), ctx.File, span, "Import block is not sorted").
		WithSuggestion("Sort imports alphabetically by module")

	width := 0
	for _, stmt := range block {
		width += statementLineSpan(ctx.File, stmt.Range).Len()
	}

	// Comments or blank lines interleaved with the imports would be
	// lost by a block rewrite; report without a fix in that case.
	if width == span.Len() {
		sorted := make([]*pyast.Node, len(block))
		copy(sorted, block)
		sort.SliceStable(sorted, func(i, j int) bool {
			return importLess(sorted[i], sorted[j])
		})

		var sb strings.Builder
		for _, stmt := range sorted {
			line := statementLineSpan(ctx.File, stmt.Range)
			sb.Write(ctx.File.Content[line.StartOffset:line.EndOffset])
		}

		f, err := fix.NewSafe("", fix.TextEdit{
			StartOffset: span.StartOffset,
			EndOffset:   span.EndOffset,
			NewText:     sb.String(),
		})
		if err != nil {
			return nil, err
		}
		diag = diag.WithFix(f)
	}

	return []lint.Diagnostic{diag.Build()}, nil
}

// leadingImportBlock returns the run of import statements at the top of
// the module, skipping a leading docstring.
func leadingImportBlock(root *pyast.Node) []*pyast.Node {
	var block []*pyast.Node
	for stmt := root.FirstChild; stmt != nil; stmt = stmt.Next {
		if len(block) == 0 && stmt.Kind == pyast.NodeExprStmt &&
			stmt.FirstChild != nil && stmt.FirstChild.Kind == pyast.NodeString {
			continue
		}
		if stmt.Kind != pyast.NodeImport && stmt.Kind != pyast.NodeImportFrom {
			break
		}
		block = append(block, stmt)
	}
	return block
}

// importLess orders import statements by module name, case-insensitive,
// with `import x` before `from x import ...` on ties.
func importLess(a, b *pyast.Node) bool {
	am, bm := importModule(a), importModule(b)
	al, bl := strings.ToLower(am), strings.ToLower(bm)
	if al != bl {
		return al < bl
	}
	if a.Kind != b.Kind {
		return a.Kind == pyast.NodeImport
	}
	return am < bm
}

// importModule returns the sort key module of an import statement.
func importModule(stmt *pyast.Node) string {
	if stmt.Kind == pyast.NodeImportFrom {
		return stmt.Module
	}
	if len(stmt.Imports) > 0 {
		return stmt.Imports[0].Name
	}
	return ""
}

// UnusedImportRule flags imported names that are never used in the
// file. The fix deletes the import line; that can drop an import with
// side effects, so it is classified unsafe.
type UnusedImportRule struct {
	lint.BaseRule
}

// NewUnusedImportRule creates the F401 rule.
func NewUnusedImportRule() *UnusedImportRule {
	return &UnusedImportRule{
		BaseRule: lint.NewFileRule(
			"F401",
			"unused-import",
			"Imported name is never used",
			[]string{"imports", "correctness"},
			true,
		),
	}
}

// DefaultSeverity marks unused imports as errors, matching pyflakes.
func (r *UnusedImportRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// Check reports each import binding with no recorded uses.
func (r *UnusedImportRule) Check(ctx *lint.RuleContext, _ *pyast.Node) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, b := range ctx.Index.UnusedBindings() {
		if !b.IsImport() {
			continue
		}

		diag := lint.NewDiagnosticAt(r.ID(), ctx.File, b.Range, "`"+b.Name+"` imported but unused").
			WithSuggestion("Remove the unused import")

		// Deleting the whole line is only correct when the statement
		// binds nothing else.
		if len(b.Node.Imports) == 1 {
			span := statementLineSpan(ctx.File, b.Node.Range)
			f, err := fix.NewUnsafe("may drop an import with side effects", fix.TextEdit{
				StartOffset: span.StartOffset,
				EndOffset:   span.EndOffset,
			})
			if err != nil {
				return nil, err
			}
			diag = diag.WithFix(f)
		}

		diags = append(diags, diag.Build())
	}
	return diags, nil
}
