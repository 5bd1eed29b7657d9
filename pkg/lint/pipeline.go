package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/fix"
	"github.com/yaklabco/gopylint/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix iteration loop. Fixes skipped for
// conflicts in one pass usually apply in the next; a file that is
// still producing fixes after this many passes has rules feeding each
// other and is reported as not converged rather than looping forever.
const DefaultMaxFixPasses = 10

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrLintFailure indicates the lint engine failed.
	ErrLintFailure = errors.New("lint failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult contains the result of processing a single file.
type PipelineResult struct {
	// FileResult contains diagnostics from the FINAL lint pass.
	*FileResult

	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing (nil for
	// in-memory processing).
	OriginalInfo *fsutil.FileInfo

	// Modified is true if the content was changed.
	Modified bool

	// ModifiedContent is the content after applying fixes (nil if not
	// modified).
	ModifiedContent []byte

	// Outcomes holds the per-candidate outcomes of the last apply
	// pass, aligned with FileResult.Candidates.
	Outcomes []fix.Outcome

	// Diff is the unified diff for dry-run mode (nil otherwise).
	Diff *fix.Diff

	// Converged is false when the pass bound was hit while fixes were
	// still being applied. Not an error: the rewritten content is
	// valid, it just may still contain fixable issues.
	Converged bool

	// FixPasses is the number of passes that applied at least one fix.
	FixPasses int

	// TotalFixesApplied counts fixes applied across all passes.
	TotalFixesApplied int

	// SkippedConflicts counts fixes skipped for conflicts across all
	// passes.
	SkippedConflicts int

	// Skipped is true if the file was left untouched (e.g., concurrent
	// modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && !pr.Converged:
		return "fixed (not converged)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	// Fix enables auto-fix mode.
	Fix bool

	// UnsafeFixes raises the apply threshold to include unsafe fixes.
	UnsafeFixes bool

	// DryRun generates diffs without writing files.
	DryRun bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// MaxFixPasses limits fix iterations. Zero means
	// DefaultMaxFixPasses.
	MaxFixPasses int
}

// PipelineOptionsFromConfig derives pipeline options from config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return PipelineOptions{}
	}
	return PipelineOptions{
		Fix:          cfg.Fix,
		UnsafeFixes:  cfg.UnsafeFixes,
		DryRun:       cfg.DryRun,
		Backup:       fsutil.BackupConfig{Enabled: cfg.Backups.Enabled && !cfg.NoBackups},
		MaxFixPasses: cfg.MaxFixPasses,
	}
}

// Pipeline orchestrates lint and fix application for a single file.
type Pipeline struct {
	// Engine is the lint engine used for parsing and rule execution.
	Engine *Engine
}

// NewPipeline creates a pipeline around the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessContent lints content in memory and, in fix mode, iterates
// lint+apply until a pass selects no fixes or the pass bound is hit.
// Each pass re-parses the rewritten text, so every fix is always built
// against current offsets.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{
		Path:      path,
		Converged: true,
	}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	mode := fix.ApplySafeOnly
	if opts.UnsafeFixes {
		mode = fix.ApplySafeAndUnsafe
	}
	applicator := fix.NewApplicator(fix.ApplyOptions{
		Mode:      mode,
		Exclusive: p.Engine.Registry.Exclusive(),
	})

	content := originalContent
	var fileResult *FileResult

	for pass := range maxPasses {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
		default:
		}

		var lintErr error
		fileResult, lintErr = p.Engine.LintFile(ctx, path, content, cfg)
		if lintErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrLintFailure, lintErr)
		}

		if !opts.Fix || len(fileResult.Candidates) == 0 {
			result.Outcomes = nil
			break
		}

		applied, err := applicator.Apply(content, fileResult.Candidates)
		if err != nil {
			return nil, fmt.Errorf("apply fixes: %w", err)
		}
		result.Outcomes = applied.Outcomes
		result.SkippedConflicts += applied.Skipped

		if applied.Applied == 0 {
			break
		}

		content = applied.Content
		result.FixPasses++
		result.TotalFixesApplied += applied.Applied
		result.Modified = true

		if pass == maxPasses-1 {
			result.Converged = false
		}
	}

	result.FileResult = fileResult
	if result.Modified {
		result.ModifiedContent = content
	}

	if opts.DryRun && result.Modified {
		result.Diff = fix.GenerateDiff(path, originalContent, content)
	}

	return result, nil
}

// ProcessFile runs the full pipeline for a file on disk:
//  1. Read and hash the original file.
//  2. Iterate lint+apply in memory (ProcessContent).
//  3. Generate a diff in dry-run mode and stop.
//  4. Check for concurrent modification.
//  5. Create a backup if enabled.
//  6. Write the modified content atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	originalContent, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, originalContent, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// categorizeError wraps an error with the matching pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrLintFailure) ||
		errors.Is(err, ErrWriteFailure)
}
