package pretty

import (
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalWidth returns the column width of writer when it is a
// terminal, or fallback otherwise.
func TerminalWidth(writer io.Writer, fallback int) int {
	f, ok := writer.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
