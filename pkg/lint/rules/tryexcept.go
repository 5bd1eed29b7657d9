package rules

import (
	"bytes"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// DefaultExceptNotLastRule flags a bare `except:` clause that is
// followed by more handlers. The bare clause catches everything, so
// the handlers after it can never run.
type DefaultExceptNotLastRule struct {
	lint.BaseRule
}

// NewDefaultExceptNotLastRule creates the F707 rule.
func NewDefaultExceptNotLastRule() *DefaultExceptNotLastRule {
	return &DefaultExceptNotLastRule{
		BaseRule: lint.NewBaseRule(
			"F707",
			"default-except-not-last",
			"Bare except clause is not the last handler",
			[]string{"correctness"},
			false,
			pyast.NodeTry,
		),
	}
}

// DefaultSeverity marks unreachable handlers as errors.
func (r *DefaultExceptNotLastRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// Check reports each bare except clause with handlers after it.
func (r *DefaultExceptNotLastRule) Check(_ *lint.RuleContext, node *pyast.Node) ([]lint.Diagnostic, error) {
	var handlers []*pyast.Node
	for child := node.FirstChild; child != nil; child = child.Next {
		if child.Kind == pyast.NodeExcept {
			handlers = append(handlers, child)
		}
	}

	var diags []lint.Diagnostic
	for i, handler := range handlers {
		if i == len(handlers)-1 || !isBareExcept(handler) {
			continue
		}
		diag := lint.NewDiagnosticAt(r.ID(), node.File, headerRange(handler),
			"Bare `except:` must be the last handler").
			WithSuggestion("Move the bare except clause after the specific handlers").
			WithSecondary(headerRange(handlers[i+1]), "this handler is unreachable").
			Build()
		diags = append(diags, diag)
	}
	return diags, nil
}

// isBareExcept detects `except:` with no exception expression. The
// Ident field is empty for `except (A, B):` too, so the header text
// decides.
func isBareExcept(handler *pyast.Node) bool {
	text := handler.Text()
	rest := bytes.TrimPrefix(text, []byte("except"))
	rest = bytes.TrimLeft(rest, " \t")
	return len(rest) > 0 && rest[0] == ':'
}
