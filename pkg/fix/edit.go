// Package fix provides the text edit model, fix safety classification, and
// the conflict-resolving applicator used for auto-fixing.
package fix

// TextEdit represents a single text replacement against the original
// source buffer. The range is half-open: [StartOffset, EndOffset).
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// IsInsertion returns true for a zero-width edit with non-empty text.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset && e.NewText != ""
}

// IsDeletion returns true for an edit that removes bytes without replacement.
func (e TextEdit) IsDeletion() bool {
	return e.StartOffset < e.EndOffset && e.NewText == ""
}

// IsNoop returns true for an edit with no observable effect.
func (e TextEdit) IsNoop() bool {
	return e.StartOffset == e.EndOffset && e.NewText == ""
}

// Overlaps returns true if this edit shares at least one byte with other.
// Pure insertions at the same offset do not overlap; an insertion inside
// another edit's replaced span does.
func (e TextEdit) Overlaps(other TextEdit) bool {
	return e.StartOffset < other.EndOffset && other.StartOffset < e.EndOffset
}

// EditBuilder accumulates text edits for a single fix.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]TextEdit, 0),
	}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}
