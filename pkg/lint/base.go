package lint

import (
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with
// interface methods.
type BaseRule struct {
	id       string
	name     string
	desc     string
	tags     []string
	fixable  bool
	triggers []pyast.NodeKind
	filePass bool
}

// NewBaseRule creates a BaseRule that runs on the given node kinds.
func NewBaseRule(id, name, desc string, tags []string, fixable bool, triggers ...pyast.NodeKind) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		tags:     tags,
		fixable:  fixable,
		triggers: triggers,
	}
}

// NewFileRule creates a BaseRule that runs once per file after the
// traversal.
func NewFileRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		tags:     tags,
		fixable:  fixable,
		filePass: true,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns whether the rule is enabled by default.
// Override this method to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this rule.
// Override this method to change the default.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// CanFix returns whether this rule can auto-fix issues.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}

// Triggers returns the node kinds this rule subscribes to.
func (r *BaseRule) Triggers() []pyast.NodeKind {
	return r.triggers
}

// WantsFilePass returns whether the rule runs in the file phase.
func (r *BaseRule) WantsFilePass() bool {
	return r.filePass
}

// Check must be overridden by concrete rule implementations.
// The default implementation returns no diagnostics.
func (r *BaseRule) Check(_ *RuleContext, _ *pyast.Node) ([]Diagnostic, error) {
	return nil, nil
}
