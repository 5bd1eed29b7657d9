package lint

import (
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/fix"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
	file *pyast.FileSnapshot
}

// NewDiagnostic starts building a diagnostic for the given rule and node.
func NewDiagnostic(ruleID string, node *pyast.Node, message string) *DiagnosticBuilder {
	b := &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:  ruleID,
			Message: message,
		},
	}
	if node != nil {
		b.diag.Range = node.Range
		b.file = node.File
		if node.File != nil {
			b.diag.FilePath = node.File.Path
		}
	}
	return b
}

// NewDiagnosticAt starts building a diagnostic at a specific byte range.
func NewDiagnosticAt(ruleID string, file *pyast.FileSnapshot, rng pyast.SourceRange, message string) *DiagnosticBuilder {
	b := &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:  ruleID,
			Message: message,
			Range:   rng,
		},
		file: file,
	}
	if file != nil {
		b.diag.FilePath = file.Path
	}
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFix attaches a fix.
func (b *DiagnosticBuilder) WithFix(f *fix.Fix) *DiagnosticBuilder {
	b.diag.Fix = f
	return b
}

// WithSecondary attaches a related range.
func (b *DiagnosticBuilder) WithSecondary(rng pyast.SourceRange, message string) *DiagnosticBuilder {
	b.diag.Secondary = append(b.diag.Secondary, Annotation{Range: rng, Message: message})
	return b
}

// Build returns the constructed Diagnostic with its derived position.
func (b *DiagnosticBuilder) Build() Diagnostic {
	if b.file != nil {
		b.diag.Position = b.file.PositionFor(b.diag.Range)
	}
	return b.diag
}
