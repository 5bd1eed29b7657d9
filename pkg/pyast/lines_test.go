package pyast_test

import (
	"testing"

	"github.com/yaklabco/gopylint/pkg/pyast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []pyast.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []pyast.LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "x = 1",
			expected: []pyast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with LF",
			content: "x = 1\n",
			expected: []pyast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
			},
		},
		{
			name:    "single line with CRLF",
			content: "x = 1\r\n",
			expected: []pyast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
			},
		},
		{
			name:    "multiple lines LF",
			content: "a = 1\nb = 2\nc = 3",
			expected: []pyast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 11, EndOffset: 12},
				{StartOffset: 12, NewlineStart: 17, EndOffset: 17},
			},
		},
		{
			name:    "multiple lines CRLF",
			content: "a = 1\r\nb = 2\r\n",
			expected: []pyast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 12, EndOffset: 14},
			},
		},
		{
			name:    "single character",
			content: "x",
			expected: []pyast.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 1},
			},
		},
		{
			name:    "only newline",
			content: "\n",
			expected: []pyast.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 1},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			lines := pyast.BuildLines([]byte(testCase.content))

			if len(lines) != len(testCase.expected) {
				t.Fatalf("expected %d lines, got %d", len(testCase.expected), len(lines))
			}

			for i, exp := range testCase.expected {
				got := lines[i]
				if got.StartOffset != exp.StartOffset ||
					got.NewlineStart != exp.NewlineStart ||
					got.EndOffset != exp.EndOffset {
					t.Errorf("line %d: expected %+v, got %+v", i, exp, got)
				}
			}
		})
	}
}

func TestFileSnapshot_LineAt(t *testing.T) {
	t.Parallel()

	content := "a = 1\nb = 2\nc = 3"
	snapshot := pyast.NewFileSnapshot("test.py", []byte(content))

	tests := []struct {
		name         string
		offset       int
		expectedLine int
		expectedCol  int
	}{
		{"start of file", 0, 1, 1},
		{"middle of line 1", 2, 1, 3},
		{"end of line 1 content", 4, 1, 5},
		{"newline of line 1", 5, 1, 6},
		{"start of line 2", 6, 2, 1},
		{"middle of line 2", 8, 2, 3},
		{"start of line 3", 12, 3, 1},
		{"end of file", 16, 3, 5},
		{"past end of file", 17, 3, 6},
		{"negative offset", -1, 0, 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			line, col := snapshot.LineAt(testCase.offset)
			if line != testCase.expectedLine || col != testCase.expectedCol {
				t.Errorf("LineAt(%d): expected (%d, %d), got (%d, %d)",
					testCase.offset, testCase.expectedLine, testCase.expectedCol, line, col)
			}
		})
	}
}

func TestFileSnapshot_Offset(t *testing.T) {
	t.Parallel()

	content := "a = 1\nb = 2\nc = 3"
	snapshot := pyast.NewFileSnapshot("test.py", []byte(content))

	tests := []struct {
		name           string
		line           int
		col            int
		expectedOffset int
		expectedOK     bool
	}{
		{"start of file", 1, 1, 0, true},
		{"middle of line 1", 1, 3, 2, true},
		{"start of line 2", 2, 1, 6, true},
		{"start of line 3", 3, 1, 12, true},
		{"end of line 3", 3, 5, 16, true},
		{"invalid line 0", 0, 1, 0, false},
		{"invalid line 4", 4, 1, 0, false},
		{"invalid col 0", 1, 0, 0, false},
		{"col past line end", 1, 10, 0, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			offset, ok := snapshot.Offset(testCase.line, testCase.col)
			if ok != testCase.expectedOK {
				t.Errorf("Offset(%d, %d): expected ok=%v, got ok=%v",
					testCase.line, testCase.col, testCase.expectedOK, ok)
			}
			if ok && offset != testCase.expectedOffset {
				t.Errorf("Offset(%d, %d): expected %d, got %d",
					testCase.line, testCase.col, testCase.expectedOffset, offset)
			}
		})
	}
}

func TestLineAtAndOffsetAreInverses(t *testing.T) {
	t.Parallel()

	content := "first = 1\nsecond = 2\nthird_line = 3\n"
	snapshot := pyast.NewFileSnapshot("test.py", []byte(content))

	// For each valid offset, LineAt -> Offset should return the same offset.
	for offset := range len(content) {
		line, col := snapshot.LineAt(offset)
		if line == 0 {
			t.Errorf("LineAt(%d) returned invalid position", offset)
			continue
		}

		gotOffset, ok := snapshot.Offset(line, col)
		if !ok {
			t.Errorf("Offset(%d, %d) returned not ok for offset %d", line, col, offset)
			continue
		}

		if gotOffset != offset {
			t.Errorf("round trip for offset %d returned %d", offset, gotOffset)
		}
	}
}

func TestFileSnapshot_LineContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		line     int
		expected string
	}{
		{"LF line excludes newline", "a = 1\nb = 2\n", 1, "a = 1"},
		{"CRLF line excludes both bytes", "a = 1\r\nb = 2\r\n", 1, "a = 1"},
		{"last line without newline", "a = 1\nb = 2", 2, "b = 2"},
		{"blank line", "a = 1\n\nb = 2\n", 2, ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			snapshot := pyast.NewFileSnapshot("test.py", []byte(testCase.content))
			got := snapshot.LineContent(testCase.line)
			if string(got) != testCase.expected {
				t.Errorf("LineContent(%d): expected %q, got %q", testCase.line, testCase.expected, got)
			}
		})
	}

	t.Run("out of range returns nil", func(t *testing.T) {
		t.Parallel()

		snapshot := pyast.NewFileSnapshot("test.py", []byte("a = 1\n"))
		if snapshot.LineContent(0) != nil {
			t.Error("LineContent(0) should return nil")
		}
		if snapshot.LineContent(2) != nil {
			t.Error("LineContent past last line should return nil")
		}
	})
}

func TestFileSnapshot_LineCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"empty file", "", 0},
		{"one line with newline", "x = 1\n", 1},
		{"one line without newline", "x = 1", 1},
		{"two lines", "x = 1\ny = 2\n", 2},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			snapshot := pyast.NewFileSnapshot("test.py", []byte(testCase.content))
			if got := snapshot.LineCount(); got != testCase.expected {
				t.Errorf("LineCount: expected %d, got %d", testCase.expected, got)
			}
		})
	}
}
