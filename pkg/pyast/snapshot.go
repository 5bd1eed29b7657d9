// Package pyast provides the core Python syntax tree representation for
// gopylint. It defines a lossless, immutable view of Python source files:
// - FileSnapshot: the complete file representation
// - SourceRange: half-open byte ranges into the file content
// - Node: the concrete syntax tree referencing byte spans
package pyast

// FileSnapshot is an immutable, lossless view of a Python source file at a
// specific time. It holds the raw content, line metadata, and the tree root.
// Every node range is a valid sub-range of Content, and the root covers
// the whole file, so untouched bytes can always be reproduced exactly.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the tree root node (Module).
	Root *Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a new FileSnapshot from content.
// It builds the line index but does not parse (that requires a Parser).
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		Root:    nil,
	}
}
