package rules

import (
	"strconv"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// LineTooLongRule flags lines exceeding the configured length limit.
// Wrapping a long line needs judgement, so there is no fix.
type LineTooLongRule struct {
	lint.BaseRule
}

// NewLineTooLongRule creates the E501 rule.
func NewLineTooLongRule() *LineTooLongRule {
	return &LineTooLongRule{
		BaseRule: lint.NewFileRule(
			"E501",
			"line-too-long",
			"Line exceeds the configured length limit",
			[]string{"style"},
			false,
		),
	}
}

// Check measures each line against the limit. The per-rule
// "line-length" option overrides the global setting.
func (r *LineTooLongRule) Check(ctx *lint.RuleContext, _ *pyast.Node) ([]lint.Diagnostic, error) {
	defaultLimit := config.DefaultLineLength
	if ctx.Config != nil && ctx.Config.LineLength > 0 {
		defaultLimit = ctx.Config.LineLength
	}
	limit := ctx.OptionInt("line-length", defaultLimit)
	if limit <= 0 {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, line := range ctx.File.Lines {
		length := line.NewlineStart - line.StartOffset
		if length <= limit {
			continue
		}

		diag := lint.NewDiagnosticAt(r.ID(), ctx.File,
			pyast.NewRange(line.StartOffset+limit, line.NewlineStart),
			"Line too long ("+strconv.Itoa(length)+" > "+strconv.Itoa(limit)+")").
			WithSuggestion("Break the line or raise the limit").
			Build()
		diags = append(diags, diag)
	}
	return diags, nil
}
