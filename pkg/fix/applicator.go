package fix

import (
	"fmt"
	"sort"
)

// Outcome is the per-candidate tri-state result of one apply pass.
type Outcome int

const (
	// NotAttempted means no fix was available, or the fix's applicability
	// fell below the configured threshold.
	NotAttempted Outcome = iota

	// Applied means the fix was accepted and its edits were applied.
	Applied

	// SkippedConflict means the fix was eligible but overlapped an
	// already-accepted fix (or an exclusive rule's fix) in this pass.
	SkippedConflict
)

// String returns the name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case SkippedConflict:
		return "skipped-conflict"
	case NotAttempted:
		return "not-attempted"
	default:
		return "unknown"
	}
}

// Candidate pairs a fix with the identifier of the rule that produced it.
// A nil Fix is a valid candidate: its outcome is always NotAttempted.
type Candidate struct {
	RuleID string
	Fix    *Fix
}

// ApplyOptions controls one apply pass.
type ApplyOptions struct {
	// Mode is the safety threshold; fixes above it are not attempted.
	Mode ApplyMode

	// Exclusive declares mutually exclusive rule pairs. Fixes from
	// exclusive rules conflict even when their edits do not overlap.
	// The relation must be symmetric: Exclusive[a][b] implies
	// Exclusive[b][a].
	Exclusive map[string]map[string]bool
}

// ApplyResult is the output of one apply pass.
type ApplyResult struct {
	// Content is the rewritten text. Equal to the input when no fix
	// was accepted.
	Content []byte

	// Outcomes has one entry per input candidate, in input order.
	Outcomes []Outcome

	// Applied is the number of accepted fixes.
	Applied int

	// Skipped is the number of fixes rejected for conflicts.
	Skipped int

	// Changed is true if Content differs from the input.
	Changed bool
}

// Applicator selects a maximal conflict-free subset of candidate fixes and
// applies it to the source buffer in a single pass.
//
// Selection is greedy by the start offset of each fix's first edit, with
// ties broken by rule ID in lexical order (and input order as a final
// tie-break). Greedy-by-position is deterministic, O(n log n), and matches
// the expectation that earlier-in-file fixes win ties. Fix semantics are
// never composed within a pass: a candidate overlapping any accepted edit
// is skipped and left for a later pass.
type Applicator struct {
	opts ApplyOptions
}

// NewApplicator creates an Applicator with the given options.
func NewApplicator(opts ApplyOptions) *Applicator {
	return &Applicator{opts: opts}
}

// Apply runs one pass over content. Candidates whose fixes carry invalid
// ranges for this buffer are construction defects and produce an error
// rather than silent partial output.
func (a *Applicator) Apply(content []byte, cands []Candidate) (*ApplyResult, error) {
	result := &ApplyResult{
		Content:  content,
		Outcomes: make([]Outcome, len(cands)),
	}

	// Collect eligible candidate indices and validate their edits.
	var eligible []int
	for i, cand := range cands {
		if cand.Fix == nil || !a.opts.Mode.Allows(cand.Fix.Applicability) {
			continue
		}
		if err := ValidateEdits(cand.Fix.Edits, len(content)); err != nil {
			return nil, fmt.Errorf("fix from rule %s: %w", cand.RuleID, err)
		}
		eligible = append(eligible, i)
	}
	if len(eligible) == 0 {
		return result, nil
	}

	a.sortCandidates(cands, eligible)

	// Greedy selection.
	var accepted []TextEdit
	acceptedRules := make(map[string]bool)

	for _, idx := range eligible {
		cand := cands[idx]
		if a.conflicts(cand, accepted, acceptedRules) {
			result.Outcomes[idx] = SkippedConflict
			result.Skipped++
			continue
		}
		accepted = append(accepted, cand.Fix.Edits...)
		acceptedRules[cand.RuleID] = true
		result.Outcomes[idx] = Applied
		result.Applied++
	}

	if len(accepted) > 0 {
		SortEdits(accepted)
		result.Content = ApplyEdits(content, accepted)
		result.Changed = true
	}

	return result, nil
}

// sortCandidates orders eligible indices by (first edit start, rule ID,
// input position).
func (a *Applicator) sortCandidates(cands []Candidate, eligible []int) {
	sort.Slice(eligible, func(i, j int) bool {
		ci, cj := cands[eligible[i]], cands[eligible[j]]
		if ci.Fix.Start() != cj.Fix.Start() {
			return ci.Fix.Start() < cj.Fix.Start()
		}
		if ci.RuleID != cj.RuleID {
			return ci.RuleID < cj.RuleID
		}
		return eligible[i] < eligible[j]
	})
}

// conflicts reports whether a candidate clashes with the accepted set,
// either by byte overlap or by declared rule exclusivity.
func (a *Applicator) conflicts(cand Candidate, accepted []TextEdit, acceptedRules map[string]bool) bool {
	for _, edit := range cand.Fix.Edits {
		for _, acc := range accepted {
			if edit.Overlaps(acc) {
				return true
			}
		}
	}

	if exclusiveWith, ok := a.opts.Exclusive[cand.RuleID]; ok {
		for rule := range acceptedRules {
			if exclusiveWith[rule] {
				return true
			}
		}
	}

	return false
}
