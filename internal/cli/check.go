package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gopylint/internal/logging"
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
	_ "github.com/yaklabco/gopylint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/gopylint/pkg/reporter"
	"github.com/yaklabco/gopylint/pkg/runner"
)

// ErrIssuesFound is returned when the check finds issues. It signals
// the exit code without producing an error log line.
var ErrIssuesFound = errors.New("issues found")

type checkFlags struct {
	fix          bool
	unsafeFixes  bool
	dryRun       bool
	diff         bool
	noBackups    bool
	selected     []string
	ignore       []string
	exclude      []string
	lineLength   int
	maxFixPasses int
	jobs         int
	format       string
	ruleFormat   string
	noContext    bool
	compact      bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Python files for lint issues",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

const checkLongDescription = `Check Python files for style and correctness issues.

By default, checks all .py and .pyi files in the current directory and
subdirectories. Specify paths to check specific files or directories.

Examples:
  gopylint check                   # Check current directory
  gopylint check src/              # Check src directory
  gopylint check app.py            # Check single file
  gopylint check --fix             # Check and auto-fix issues
  gopylint check --fix --diff      # Show fixes as a diff without applying
  gopylint check --select E401,I001  # Run only specific rules
  gopylint check --format json     # Output as JSON for CI`

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := loadConfig(cmd, workDir, logger)
	if err != nil {
		return err
	}

	applyCheckFlags(cmd, flags, cfg)

	logger.Debug("configuration resolved",
		logging.FieldFix, cfg.Fix,
		logging.FieldUnsafeFixes, cfg.UnsafeFixes,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	engine := lint.NewEngine(lint.NewDefaultParser(), lint.DefaultRegistry)
	pipeline := lint.NewPipeline(engine)
	checkRunner := runner.New(pipeline)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Exclude,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}

	logger.Debug("starting check run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := checkRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	logger.Debug("check run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	if err := report(cmd, cfg, result, flags, workDir); err != nil {
		return err
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrIssuesFound
	}

	return nil
}

// loadConfig loads configuration from an explicit --config path or by
// walking up from the working directory.
func loadConfig(cmd *cobra.Command, workDir string, logger *log.Logger) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, errors.Join(errors.New("failed to load configuration"), err)
		}
		logger.Debug("loaded configuration", logging.FieldPath, configPath)
		return cfg, nil
	}

	cfg, loadedFrom, err := config.Discover(workDir)
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}
	if loadedFrom != "" {
		logger.Debug("loaded configuration", logging.FieldPath, loadedFrom)
	}
	return cfg, nil
}

// applyCheckFlags folds CLI flags into the loaded configuration. Slice
// and numeric flags only override when explicitly set, so config file
// values survive.
func applyCheckFlags(cmd *cobra.Command, flags *checkFlags, cfg *config.Config) {
	fl := cmd.Flags()

	cfg.Fix = flags.fix || flags.diff
	cfg.UnsafeFixes = flags.unsafeFixes
	cfg.DryRun = flags.dryRun || flags.diff
	cfg.Jobs = flags.jobs
	cfg.NoBackups = flags.noBackups

	if fl.Changed("select") {
		cfg.Select = flags.selected
	}
	if fl.Changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if fl.Changed("exclude") {
		cfg.Exclude = flags.exclude
	}
	if fl.Changed("line-length") {
		cfg.LineLength = flags.lineLength
	}
	if fl.Changed("max-fix-passes") {
		cfg.MaxFixPasses = flags.maxFixPasses
	}
	if fl.Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}

	// --diff switches the default output to the diff format.
	if flags.diff && !fl.Changed("format") {
		flags.format = "diff"
	}
	cfg.Format = config.OutputFormat(flags.format)
}

// report renders the run result with the configured reporter.
func report(cmd *cobra.Command, cfg *config.Config, result *runner.Result, flags *checkFlags, workDir string) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		RuleFormat:  cfg.RuleFormat,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(cmd.Context(), result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&flags.unsafeFixes, "unsafe-fixes", false, "also apply fixes marked unsafe")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show what would change without writing files")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show fixes as a unified diff (implies --fix --dry-run)")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().StringSliceVar(&flags.selected, "select", nil, "restrict checking to these rule IDs")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "rule IDs to disable")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns for files to skip")
	cmd.Flags().IntVar(&flags.lineLength, "line-length", config.DefaultLineLength, "maximum line length for E501")
	cmd.Flags().IntVar(&flags.maxFixPasses, "max-fix-passes", 0, "bound on fix iterations (0 = default)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, summary")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: id, name, or combined")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output where applicable")
}
