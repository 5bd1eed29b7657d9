package fix

import (
	"errors"
	"fmt"
)

// Construction errors for malformed fixes. These indicate a defect in the
// rule that built the fix and must fail loudly rather than ship a corrupt
// edit set.
var (
	// ErrEmptyFix indicates a fix with no edits.
	ErrEmptyFix = errors.New("fix has no edits")

	// ErrNoEffect indicates a fix whose edits change nothing.
	ErrNoEffect = errors.New("fix has no observable effect")

	// ErrOverlapWithinFix indicates overlapping edits within one fix.
	ErrOverlapWithinFix = errors.New("overlapping edits within fix")
)

// Fix is an atomic, safety-classified bundle of edits remediating one
// diagnostic. Either all of its edits apply or none do.
type Fix struct {
	// Edits is the ordered, non-empty list of edits, sorted by start offset.
	Edits []TextEdit

	// Applicability classifies how safely the fix can be auto-applied.
	Applicability Applicability

	// Note is an optional human-readable caveat (e.g., "removes a comment").
	Note string
}

// New constructs a validated Fix. Edits are sorted by start offset; the
// fix is rejected if it is empty, contains overlapping edits, or has no
// observable effect.
func New(applicability Applicability, note string, edits ...TextEdit) (*Fix, error) {
	if len(edits) == 0 {
		return nil, ErrEmptyFix
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	SortEdits(sorted)

	effective := false
	for i, edit := range sorted {
		if edit.StartOffset < 0 || edit.EndOffset < edit.StartOffset {
			return nil, fmt.Errorf("invalid edit range [%d:%d]", edit.StartOffset, edit.EndOffset)
		}
		if !edit.IsNoop() {
			effective = true
		}
		if i > 0 && sorted[i-1].EndOffset > edit.StartOffset {
			return nil, fmt.Errorf("%w: [%d:%d] and [%d:%d]", ErrOverlapWithinFix,
				sorted[i-1].StartOffset, sorted[i-1].EndOffset,
				edit.StartOffset, edit.EndOffset)
		}
	}
	if !effective {
		return nil, ErrNoEffect
	}

	return &Fix{
		Edits:         sorted,
		Applicability: applicability,
		Note:          note,
	}, nil
}

// NewSafe constructs a Safe fix.
func NewSafe(note string, edits ...TextEdit) (*Fix, error) {
	return New(Safe, note, edits...)
}

// NewUnsafe constructs an Unsafe fix.
func NewUnsafe(note string, edits ...TextEdit) (*Fix, error) {
	return New(Unsafe, note, edits...)
}

// NewDisplayOnly constructs a DisplayOnly fix. It documents a remediation
// without ever being applied automatically.
func NewDisplayOnly(note string, edits ...TextEdit) (*Fix, error) {
	return New(DisplayOnly, note, edits...)
}

// Start returns the start offset of the fix's first edit.
func (f *Fix) Start() int {
	return f.Edits[0].StartOffset
}

// ConflictsWith returns true if any edit of this fix overlaps any edit of
// other. The relation is symmetric.
func (f *Fix) ConflictsWith(other *Fix) bool {
	for _, a := range f.Edits {
		for _, b := range other.Edits {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}
