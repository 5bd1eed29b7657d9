package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/runner"
)

type testRoot struct {
	cmd *cobra.Command
}

func newTestRoot() (*testRoot, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand(BuildInfo{Version: "test", Commit: "none", Date: "unknown"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return &testRoot{cmd}, buf
}

func (r *testRoot) run(args ...string) error {
	r.cmd.SetArgs(args)
	return r.cmd.Execute()
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand(BuildInfo{Version: "test"})

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "check")
	assert.Contains(t, names, "rules")
	assert.Contains(t, names, "init")
	assert.Contains(t, names, "version")
}

func TestExitCodeFromResult(t *testing.T) {
	tests := []struct {
		name   string
		result *runner.Result
		want   int
	}{
		{"nil result", nil, ExitSuccess},
		{"clean", &runner.Result{}, ExitSuccess},
		{
			"issues found",
			&runner.Result{Stats: runner.Stats{DiagnosticsTotal: 2}},
			ExitIssues,
		},
		{
			"file errors",
			&runner.Result{Stats: runner.Stats{FilesErrored: 1}},
			ExitIssues,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromResult(tt.result))
		})
	}
}

func TestCheckCommand(t *testing.T) {
	t.Run("reports issues and signals exit code", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "messy.py"), []byte("d = dict()\n"), 0o644))
		t.Chdir(dir)

		root, buf := newTestRoot()
		err := root.run("check", "--format", "json", "--color", "never")
		require.ErrorIs(t, err, ErrIssuesFound)

		var output struct {
			Summary struct {
				TotalIssues int `json:"totalIssues"`
			} `json:"summary"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
		assert.Equal(t, 1, output.Summary.TotalIssues)
	})

	t.Run("clean tree exits clean", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.py"), []byte("x = 1\n"), 0o644))
		t.Chdir(dir)

		root, buf := newTestRoot()
		err := root.run("check", "--color", "never")
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "No issues found")
	})

	t.Run("fix rewrites files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "messy.py")
		require.NoError(t, os.WriteFile(path, []byte("d = dict()\n"), 0o644))
		t.Chdir(dir)

		root, _ := newTestRoot()
		err := root.run("check", "--fix", "--color", "never")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "d = {}\n", string(content))
	})

	t.Run("diff mode leaves files untouched", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "messy.py")
		require.NoError(t, os.WriteFile(path, []byte("d = dict()\n"), 0o644))
		t.Chdir(dir)

		root, buf := newTestRoot()
		err := root.run("check", "--diff", "--color", "never")
		require.ErrorIs(t, err, ErrIssuesFound)

		assert.Contains(t, buf.String(), "+d = {}")
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "d = dict()\n", string(content))
	})

	t.Run("select restricts rules", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "messy.py"), []byte("d = dict()\nimport os\n"), 0o644))
		t.Chdir(dir)

		root, buf := newTestRoot()
		err := root.run("check", "--select", "C408", "--format", "json", "--color", "never")
		require.ErrorIs(t, err, ErrIssuesFound)

		out := buf.String()
		assert.Contains(t, out, "C408")
		assert.NotContains(t, out, "F401")
	})

	t.Run("invalid format errors", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		root, _ := newTestRoot()
		err := root.run("check", "--format", "xml")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrIssuesFound)
	})
}

func TestInitCommand(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		root, _ := newTestRoot()
		require.NoError(t, root.run("init"))

		content, err := os.ReadFile(filepath.Join(dir, ".gopylint.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "line_length: 88")
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".gopylint.yaml"), []byte("line_length: 100\n"), 0o644))

		root, _ := newTestRoot()
		assert.Error(t, root.run("init"))

		forced, _ := newTestRoot()
		require.NoError(t, forced.run("init", "--force"))
	})
}

func TestRulesCommand(t *testing.T) {
	root, _ := newTestRoot()
	require.NoError(t, root.run("rules"))
}

func TestVersionCommand(t *testing.T) {
	root, _ := newTestRoot()
	require.NoError(t, root.run("version"))
}
