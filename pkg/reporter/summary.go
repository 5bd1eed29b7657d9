package reporter

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gopylint/internal/ui/pretty"
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/runner"
)

// Table layout constants for summary output.
const (
	tableWidth        = 90
	ruleColWidth      = 36
	fileColWidth      = 60
	numColWidth       = 7
	warnColWidth      = 8
	fixableColWidth   = 8
	maxRuleNameLength = 34
	maxFilePathLength = 58
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// ruleTally aggregates diagnostics for one rule across the run.
type ruleTally struct {
	label    string
	issues   int
	errors   int
	warnings int
	fixable  bool
}

// fileTally aggregates diagnostics for one file.
type fileTally struct {
	path     string
	issues   int
	errors   int
	warnings int
}

// SummaryReporter formats results as aggregated summary tables.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
	width  int
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	width := pretty.TerminalWidth(opts.Writer, tableWidth)
	if width > tableWidth {
		width = tableWidth
	}
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
		width:  width,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil || result.Stats.DiagnosticsTotal == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return 0, nil
	}

	rules, files := r.tally(result)

	r.renderRuleTable(rules)
	fmt.Fprintln(r.out)
	r.renderFileTable(files)
	fmt.Fprintln(r.out)
	fmt.Fprint(r.out, r.styles.FormatSummaryOneLine(result.Stats))

	return result.Stats.DiagnosticsTotal, nil
}

// tally aggregates diagnostics per rule and per file, both sorted by
// issue count descending with a stable name tie-break.
func (r *SummaryReporter) tally(result *runner.Result) ([]ruleTally, []fileTally) {
	byRule := make(map[string]*ruleTally)
	var files []fileTally

	for _, file := range result.Files {
		if file.Error != nil || file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		diagnostics := file.Result.Diagnostics
		if len(diagnostics) == 0 {
			continue
		}

		ft := fileTally{path: displayPath(file.Path, r.opts.WorkingDir)}
		for i := range diagnostics {
			diag := &diagnostics[i]

			rt, ok := byRule[diag.RuleID]
			if !ok {
				rt = &ruleTally{label: config.FormatRuleID(r.opts.RuleFormat, diag.RuleID, diag.RuleName)}
				byRule[diag.RuleID] = rt
			}
			rt.issues++
			if diag.Fixable() {
				rt.fixable = true
			}

			ft.issues++
			switch diag.Severity {
			case config.SeverityError:
				rt.errors++
				ft.errors++
			case config.SeverityWarning, "":
				rt.warnings++
				ft.warnings++
			}
		}
		files = append(files, ft)
	}

	rules := make([]ruleTally, 0, len(byRule))
	for _, rt := range byRule {
		rules = append(rules, *rt)
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].issues != rules[j].issues {
			return rules[i].issues > rules[j].issues
		}
		return rules[i].label < rules[j].label
	})
	sort.Slice(files, func(i, j int) bool {
		if files[i].issues != files[j].issues {
			return files[i].issues > files[j].issues
		}
		return files[i].path < files[j].path
	})

	return rules, files
}

func (r *SummaryReporter) renderRuleTable(rules []ruleTally) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", r.width)))

	// Pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Rule", ruleColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Fixable", fixableColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", r.width)))

	for _, rule := range rules {
		label := rule.label
		if len(label) > maxRuleNameLength {
			label = label[:maxRuleNameLength] + "…"
		}

		paddedName := padRight(label, ruleColWidth)
		var styledName string
		switch {
		case rule.errors > 0:
			styledName = r.styles.TableErrorRow.Render(paddedName)
		case rule.warnings > 0:
			styledName = r.styles.TableWarnRow.Render(paddedName)
		default:
			styledName = paddedName
		}

		fixable := padLeft("", fixableColWidth)
		if rule.fixable {
			fixable = r.styles.Success.Render(padLeft("✓", fixableColWidth))
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			styledName,
			padLeft(strconv.Itoa(rule.issues), numColWidth),
			padLeft(strconv.Itoa(rule.errors), numColWidth),
			padLeft(strconv.Itoa(rule.warnings), warnColWidth),
			fixable,
		)
	}
}

func (r *SummaryReporter) renderFileTable(files []fileTally) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", r.width)))

	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", r.width)))

	for _, file := range files {
		path := file.path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		paddedPath := padRight(path, fileColWidth)
		var styledPath string
		switch {
		case file.errors > 0:
			styledPath = r.styles.TableErrorRow.Render(paddedPath)
		case file.warnings > 0:
			styledPath = r.styles.TableWarnRow.Render(paddedPath)
		default:
			styledPath = paddedPath
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			styledPath,
			padLeft(strconv.Itoa(file.issues), numColWidth),
			padLeft(strconv.Itoa(file.errors), numColWidth),
			padLeft(strconv.Itoa(file.warnings), warnColWidth),
		)
	}
}
