package rules

import (
	"bytes"

	"github.com/yaklabco/gopylint/pkg/pyast"
)

// lineIndentAt returns the leading whitespace of the line containing
// offset.
func lineIndentAt(file *pyast.FileSnapshot, offset int) string {
	line, _ := file.LineAt(offset)
	if line < 1 || line > len(file.Lines) {
		return ""
	}
	info := file.Lines[line-1]

	i := info.StartOffset
	for i < offset && (file.Content[i] == ' ' || file.Content[i] == '\t') {
		i++
	}
	return string(file.Content[info.StartOffset:i])
}

// statementLineSpan returns the byte range of the full line(s) a
// statement occupies, including the trailing newline.
func statementLineSpan(file *pyast.FileSnapshot, rng pyast.SourceRange) pyast.SourceRange {
	startLine, _ := file.LineAt(rng.StartOffset)
	endOffset := rng.EndOffset
	if endOffset > rng.StartOffset {
		endOffset--
	}
	endLine, _ := file.LineAt(endOffset)

	if startLine < 1 || endLine < 1 || endLine > len(file.Lines) {
		return rng
	}
	return pyast.NewRange(file.Lines[startLine-1].StartOffset, file.Lines[endLine-1].EndOffset)
}

// headerRange returns the byte range of a compound statement's header
// line, up to and including the trailing colon when present.
func headerRange(node *pyast.Node) pyast.SourceRange {
	text := node.Text()
	if text == nil {
		return node.Range
	}

	end := len(text)
	if idx := bytes.IndexByte(text, '\n'); idx >= 0 {
		end = idx
	}
	if idx := bytes.IndexByte(text[:end], ':'); idx >= 0 {
		end = idx + 1
	}
	return pyast.NewRange(node.Range.StartOffset, node.Range.StartOffset+end)
}
