package fix

import (
	"fmt"
	"strings"
)

// Diff represents a unified diff between original and rewritten content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines removed.
	Deletions int
}

// DiffHunk is a single hunk in a unified diff.
type DiffHunk struct {
	// OriginalStart/OriginalCount locate the hunk in the original text.
	OriginalStart int
	OriginalCount int

	// ModifiedStart/ModifiedCount locate the hunk in the rewritten text.
	ModifiedStart int
	ModifiedCount int

	// Lines contains the hunk lines.
	Lines []DiffLine
}

// DiffLine is a single line in a diff hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line present only in the rewritten text.
	DiffLineAdd

	// DiffLineRemove is a line present only in the original text.
	DiffLineRemove
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) *Diff {
	orig := splitLines(original)
	mod := splitLines(modified)

	ops := diffOps(orig, mod)

	changed := false
	for _, op := range ops {
		if op.kind != DiffLineContext {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	diff := &Diff{Path: path, Hunks: groupHunks(ops)}
	for _, hunk := range diff.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				diff.Additions++
			case DiffLineRemove:
				diff.Deletions++
			}
		}
	}
	return diff
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns the diff in unified diff format.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineContext:
				fmt.Fprintf(&builder, " %s\n", line.Content)
			case DiffLineAdd:
				fmt.Fprintf(&builder, "+%s\n", line.Content)
			case DiffLineRemove:
				fmt.Fprintf(&builder, "-%s\n", line.Content)
			}
		}
	}

	return builder.String()
}

// splitLines splits content into lines, dropping the trailing empty slot
// produced by a final newline.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffOp is one line-level diff operation.
type diffOp struct {
	kind    DiffLineKind
	content string
}

// diffOps computes a line-level diff via longest common subsequence.
func diffOps(orig, mod []string) []diffOp {
	// DP table for LCS length.
	dp := make([][]int, len(orig)+1)
	for i := range dp {
		dp[i] = make([]int, len(mod)+1)
	}
	for i := len(orig) - 1; i >= 0; i-- {
		for j := len(mod) - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	// Walk the table emitting operations.
	var ops []diffOp
	i, j := 0, 0
	for i < len(orig) && j < len(mod) {
		switch {
		case orig[i] == mod[j]:
			ops = append(ops, diffOp{DiffLineContext, orig[i]})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			ops = append(ops, diffOp{DiffLineRemove, orig[i]})
			i++
		default:
			ops = append(ops, diffOp{DiffLineAdd, mod[j]})
			j++
		}
	}
	for ; i < len(orig); i++ {
		ops = append(ops, diffOp{DiffLineRemove, orig[i]})
	}
	for ; j < len(mod); j++ {
		ops = append(ops, diffOp{DiffLineAdd, mod[j]})
	}

	return ops
}

// groupHunks groups operations into hunks, merging changes closer than
// twice the context width.
func groupHunks(ops []diffOp) []DiffHunk {
	// Locate change regions (runs of non-context ops).
	type region struct{ start, end int }
	var regions []region
	for i := 0; i < len(ops); {
		if ops[i].kind == DiffLineContext {
			i++
			continue
		}
		start := i
		for i < len(ops) && ops[i].kind != DiffLineContext {
			i++
		}
		regions = append(regions, region{start, i})
	}
	if len(regions) == 0 {
		return nil
	}

	var hunks []DiffHunk
	for r := 0; r < len(regions); {
		merged := regions[r]
		r++
		for r < len(regions) && regions[r].start-merged.end <= contextLines*2 {
			merged.end = regions[r].end
			r++
		}
		hunks = append(hunks, buildHunk(ops, merged.start, merged.end))
	}
	return hunks
}

// buildHunk expands a change region with context lines and fills in the
// hunk header counters.
func buildHunk(ops []diffOp, changeStart, changeEnd int) DiffHunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for i := range start {
		if ops[i].kind != DiffLineAdd {
			hunk.OriginalStart++
		}
		if ops[i].kind != DiffLineRemove {
			hunk.ModifiedStart++
		}
	}

	for i := start; i < end; i++ {
		op := ops[i]
		hunk.Lines = append(hunk.Lines, DiffLine{Kind: op.kind, Content: op.content})
		switch op.kind {
		case DiffLineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case DiffLineRemove:
			hunk.OriginalCount++
		case DiffLineAdd:
			hunk.ModifiedCount++
		}
	}

	return hunk
}
