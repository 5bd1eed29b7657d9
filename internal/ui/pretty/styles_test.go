package pretty

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
	"github.com/yaklabco/gopylint/pkg/pyast"
	"github.com/yaklabco/gopylint/pkg/runner"
)

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, IsColorEnabled("always", &buf))
	assert.False(t, IsColorEnabled("never", &buf))
	// A plain buffer is not a TTY.
	assert.False(t, IsColorEnabled("auto", &buf))

	t.Run("NO_COLOR wins in auto mode", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.False(t, IsColorEnabled("auto", &buf))
		assert.True(t, IsColorEnabled("always", &buf))
	})
}

func testDiagnostic() *lint.Diagnostic {
	return &lint.Diagnostic{
		RuleID:   "C408",
		RuleName: "unnecessary-collection-call",
		Message:  "Unnecessary `dict` call (rewrite as a literal)",
		Severity: config.SeverityWarning,
		FilePath: "sample.py",
		Position: pyast.SourcePosition{
			StartLine: 3, StartColumn: 5, EndLine: 3, EndColumn: 11,
		},
		Suggestion: "Rewrite as `{}`",
	}
}

func TestFormatDiagnosticWithFormat(t *testing.T) {
	styles := NewStyles(false)

	tests := []struct {
		name       string
		ruleFormat config.RuleFormat
		wantLabel  string
	}{
		{"id", config.RuleFormatID, "(C408)"},
		{"name", config.RuleFormatName, "(unnecessary-collection-call)"},
		{"combined", config.RuleFormatCombined, "(C408/unnecessary-collection-call)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := styles.FormatDiagnosticWithFormat(testDiagnostic(), false, "", tt.ruleFormat)
			assert.Contains(t, out, "sample.py:3:5")
			assert.Contains(t, out, "warning")
			assert.Contains(t, out, tt.wantLabel)
			assert.Contains(t, out, "Suggestion:")
		})
	}

	t.Run("source context adds caret at column", func(t *testing.T) {
		out := styles.FormatDiagnosticWithFormat(testDiagnostic(), true, "d = dict()", config.RuleFormatID)
		assert.Contains(t, out, "d = dict()")
		assert.Contains(t, out, "    ^")
	})
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := NewStyles(false)

	t.Run("clean run", func(t *testing.T) {
		out := styles.FormatSummaryOneLine(runner.Stats{
			FilesProcessed:        3,
			DiagnosticsBySeverity: map[string]int{},
		})
		assert.Contains(t, out, "No issues found")
		assert.Contains(t, out, "3 files checked")
	})

	t.Run("issues with severity breakdown", func(t *testing.T) {
		out := styles.FormatSummaryOneLine(runner.Stats{
			FilesProcessed:     2,
			FilesWithIssues:    2,
			DiagnosticsTotal:   5,
			DiagnosticsFixable: 3,
			DiagnosticsBySeverity: map[string]int{
				"error":   1,
				"warning": 4,
			},
		})
		assert.Contains(t, out, "5 issues (1 errors, 4 warnings)")
		assert.Contains(t, out, "in 2 files")
		assert.Contains(t, out, "3 fixable")
	})

	t.Run("fixes applied", func(t *testing.T) {
		out := styles.FormatSummaryOneLine(runner.Stats{
			FilesProcessed:        1,
			FilesModified:         1,
			FixesApplied:          2,
			DiagnosticsBySeverity: map[string]int{},
		})
		assert.Contains(t, out, "2 fixed in 1 file")
	})
}

func TestFormatSummaryBlock(t *testing.T) {
	styles := NewStyles(false)

	out := styles.FormatSummary(runner.Stats{
		FilesProcessed:   4,
		FilesWithIssues:  1,
		DiagnosticsTotal: 2,
		DiagnosticsBySeverity: map[string]int{
			"error": 2,
		},
	})
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Files checked:")
	assert.Contains(t, out, "Lint failed with errors")
}
