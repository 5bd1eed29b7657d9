package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
)

// newTestRegistry builds a registry containing only the given rules.
func newTestRegistry(rules ...lint.Rule) *lint.Registry {
	registry := lint.NewRegistry()
	for _, r := range rules {
		registry.Register(r)
	}
	return registry
}

// lintSource lints source with only the given rules registered.
func lintSource(t *testing.T, source string, rules ...lint.Rule) *lint.FileResult {
	t.Helper()

	engine := lint.NewEngine(lint.NewDefaultParser(), newTestRegistry(rules...))
	result, err := engine.LintFile(context.Background(), "test.py", []byte(source), config.NewConfig())
	require.NoError(t, err)
	return result
}

// fixSource runs the full fix loop with only the given rules and
// returns the pipeline result.
func fixSource(t *testing.T, source string, unsafe bool, rules ...lint.Rule) *lint.PipelineResult {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.UnsafeFixes = unsafe

	pipeline := lint.NewPipeline(lint.NewEngine(lint.NewDefaultParser(), newTestRegistry(rules...)))
	result, err := pipeline.ProcessContent(context.Background(), "test.py", []byte(source), cfg,
		lint.PipelineOptions{Fix: true, UnsafeFixes: unsafe})
	require.NoError(t, err)
	return result
}

// fixedContent returns the rewritten content, or the input when the
// pipeline changed nothing.
func fixedContent(result *lint.PipelineResult, source string) string {
	if result.Modified {
		return string(result.ModifiedContent)
	}
	return source
}

// diagIDs extracts the rule IDs of all diagnostics, in order.
func diagIDs(result *lint.FileResult) []string {
	ids := make([]string, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		ids = append(ids, d.RuleID)
	}
	return ids
}
