package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/fix"
	"github.com/yaklabco/gopylint/pkg/fsutil"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// fixPipeline builds a pipeline whose single rule rewrites every call
// to "pass".
func fixPipeline() *Pipeline {
	registry := NewRegistry()
	registry.Register(flagCalls("X100", true))
	return NewPipeline(NewEngine(NewDefaultParser(), registry))
}

func fixModeConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Fix = true
	return cfg
}

func TestProcessContent(t *testing.T) {
	ctx := context.Background()

	t.Run("lint only", func(t *testing.T) {
		result, err := fixPipeline().ProcessContent(ctx, "a.py", []byte("foo()\n"), config.NewConfig(), PipelineOptions{})
		require.NoError(t, err)

		assert.False(t, result.Modified)
		assert.True(t, result.Converged)
		assert.Equal(t, 1, result.IssueCount())
		assert.Equal(t, "issues found", result.Summary())
	})

	t.Run("fix mode rewrites until stable", func(t *testing.T) {
		result, err := fixPipeline().ProcessContent(ctx, "a.py", []byte("foo()\nbar()\n"), fixModeConfig(), PipelineOptions{Fix: true})
		require.NoError(t, err)

		assert.True(t, result.Modified)
		assert.Equal(t, "pass\npass\n", string(result.ModifiedContent))
		assert.True(t, result.Converged)
		assert.Equal(t, 1, result.FixPasses)
		assert.Equal(t, 2, result.TotalFixesApplied)
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("clean content is untouched", func(t *testing.T) {
		result, err := fixPipeline().ProcessContent(ctx, "a.py", []byte("x = 1\n"), fixModeConfig(), PipelineOptions{Fix: true})
		require.NoError(t, err)

		assert.False(t, result.Modified)
		assert.Nil(t, result.ModifiedContent)
		assert.Equal(t, "ok", result.Summary())
	})

	t.Run("dry run produces a diff", func(t *testing.T) {
		result, err := fixPipeline().ProcessContent(ctx, "a.py", []byte("foo()\n"), fixModeConfig(),
			PipelineOptions{Fix: true, DryRun: true})
		require.NoError(t, err)

		assert.True(t, result.Modified)
		require.True(t, result.Diff.HasChanges())
		assert.Contains(t, result.Diff.String(), "-foo()")
		assert.Contains(t, result.Diff.String(), "+pass")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := fixPipeline().ProcessContent(cancelled, "a.py", []byte("foo()\n"), fixModeConfig(), PipelineOptions{Fix: true})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestProcessContentPassBound(t *testing.T) {
	// A rule that keeps renaming the same call never converges; the
	// loop must stop at the bound and say so.
	registry := NewRegistry()
	registry.Register(&stubRule{
		BaseRule: NewBaseRule("X900", "x900-name", "", nil, true, pyast.NodeCall),
		check: func(_ *RuleContext, node *pyast.Node) ([]Diagnostic, error) {
			f, err := newRenameFix(node)
			if err != nil {
				return nil, err
			}
			return []Diagnostic{NewDiagnostic("X900", node, "renamed").WithFix(f).Build()}, nil
		},
	})
	pipeline := NewPipeline(NewEngine(NewDefaultParser(), registry))

	result, err := pipeline.ProcessContent(context.Background(), "a.py", []byte("f()\n"), fixModeConfig(),
		PipelineOptions{Fix: true, MaxFixPasses: 3})
	require.NoError(t, err)

	assert.False(t, result.Converged)
	assert.Equal(t, 3, result.FixPasses)
	assert.Equal(t, "changes pending", result.Summary())
}

func TestProcessFile(t *testing.T) {
	ctx := context.Background()

	t.Run("writes fixed content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.py")
		require.NoError(t, os.WriteFile(path, []byte("foo()\n"), 0o644))

		result, err := fixPipeline().ProcessFile(ctx, path, fixModeConfig(), PipelineOptions{Fix: true})
		require.NoError(t, err)

		assert.True(t, result.Written)
		assert.Equal(t, "fixed", result.Summary())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "pass\n", string(content))
	})

	t.Run("dry run leaves the file alone", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.py")
		require.NoError(t, os.WriteFile(path, []byte("foo()\n"), 0o644))

		result, err := fixPipeline().ProcessFile(ctx, path, fixModeConfig(), PipelineOptions{Fix: true, DryRun: true})
		require.NoError(t, err)

		assert.False(t, result.Written)
		assert.True(t, result.Diff.HasChanges())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "foo()\n", string(content))
	})

	t.Run("creates a backup when enabled", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.py")
		require.NoError(t, os.WriteFile(path, []byte("foo()\n"), 0o644))

		result, err := fixPipeline().ProcessFile(ctx, path, fixModeConfig(),
			PipelineOptions{Fix: true, Backup: fsutil.BackupConfig{Enabled: true}})
		require.NoError(t, err)

		assert.True(t, result.BackupCreated)
		backup, err := os.ReadFile(fsutil.BackupPath(path))
		require.NoError(t, err)
		assert.Equal(t, "foo()\n", string(backup))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := fixPipeline().ProcessFile(ctx, filepath.Join(t.TempDir(), "nope.py"), fixModeConfig(), PipelineOptions{Fix: true})
		assert.ErrorIs(t, err, ErrFileNotFound)
		assert.True(t, IsPipelineError(err))
	})

	t.Run("clean file is not rewritten", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.py")
		require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))

		before, err := os.Stat(path)
		require.NoError(t, err)

		result, err := fixPipeline().ProcessFile(ctx, path, fixModeConfig(), PipelineOptions{Fix: true})
		require.NoError(t, err)
		assert.False(t, result.Written)

		after, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, before.ModTime(), after.ModTime())
	})
}

// newRenameFix grows the callee name by one underscore, so the rule
// fires again on every pass.
func newRenameFix(node *pyast.Node) (*fix.Fix, error) {
	return fix.NewSafe("", fix.TextEdit{
		StartOffset: node.Range.StartOffset,
		EndOffset:   node.Range.StartOffset,
		NewText:     "_",
	})
}
