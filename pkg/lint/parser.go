package lint

import (
	"context"

	"github.com/yaklabco/gopylint/pkg/parser/pyparse"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

// Parser parses Python source into FileSnapshots.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*pyast.FileSnapshot, error)
}

// NewDefaultParser returns the built-in tolerant parser.
func NewDefaultParser() Parser {
	return pyparse.New()
}
