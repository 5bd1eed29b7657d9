package cli

import "github.com/yaklabco/gopylint/pkg/runner"

// Exit codes for gopylint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates the check completed but found issues, or
	// some files could not be processed.
	ExitIssues = 1

	// ExitError indicates invalid usage or an internal error.
	ExitError = 2
)

// ExitCodeFromResult determines the exit code for a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasIssues() || result.Stats.FilesErrored > 0 {
		return ExitIssues
	}
	return ExitSuccess
}
