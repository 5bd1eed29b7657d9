// Package lint provides the rule engine, diagnostics, and registry for gopylint.
package lint

import (
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/fix"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// Annotation is a secondary source range attached to a diagnostic,
// pointing at related code (e.g., the handler shadowed by a bare except).
type Annotation struct {
	// Range is the byte span of the related code.
	Range pyast.SourceRange

	// Message describes the relation.
	Message string
}

// Diagnostic represents a single lint issue found in a file.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "unused-import").
	RuleName string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// Range is the byte span of the offending code in the original buffer.
	Range pyast.SourceRange

	// Secondary holds related ranges (may be empty).
	Secondary []Annotation

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string

	// Fix is the proposed remediation (nil if the rule offers none).
	Fix *fix.Fix

	// Position is the derived 1-based line/column span, for rendering.
	Position pyast.SourcePosition
}

// HasFix returns true if this diagnostic carries a fix.
func (d *Diagnostic) HasFix() bool {
	return d.Fix != nil
}

// Fixable returns true if the fix can ever be applied automatically.
func (d *Diagnostic) Fixable() bool {
	return d.Fix != nil && d.Fix.Applicability != fix.DisplayOnly
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "C403").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["imports"]).
	Tags() []string

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// Triggers returns the node kinds this rule wants to see. The engine
	// invokes Check once per matching node during the traversal.
	Triggers() []pyast.NodeKind

	// WantsFilePass returns whether the rule runs once per file after
	// the traversal, with the module root as its node.
	WantsFilePass() bool

	// Check executes the rule against one node.
	//
	// Rules must:
	//   - Return diagnostics for each violation found.
	//   - Build fixes against the ORIGINAL buffer offsets.
	//   - Respect context cancellation via ctx.Cancelled().
	//   - Return error only for internal failures, not violations.
	Check(ctx *RuleContext, node *pyast.Node) ([]Diagnostic, error)
}
