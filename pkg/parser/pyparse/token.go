package pyparse

//go:generate stringer -type=TokenKind -trimprefix=Token

// TokenKind classifies a lexical token.
type TokenKind uint8

// Token kinds. The tokenizer classifies every non-trivia byte of the
// input; whitespace and comments are skipped but never lost, since
// tokens carry offsets into the original buffer.
const (
	TokenName TokenKind = iota
	TokenNumber
	TokenString
	TokenOp
	TokenNewline
	TokenInvalid
)

// Token is a single lexical token referencing a byte span of the source.
type Token struct {
	// Kind identifies the token class.
	Kind TokenKind

	// StartOffset is the byte index where the token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the token ends (exclusive).
	EndOffset int
}

// Text returns the token's source text.
func (t Token) Text(content []byte) string {
	if t.StartOffset < 0 || t.EndOffset > len(content) {
		return ""
	}
	return string(content[t.StartOffset:t.EndOffset])
}

// Is reports whether the token is an operator with the given text.
func (t Token) Is(content []byte, op string) bool {
	return t.Kind == TokenOp && t.Text(content) == op
}

// IsKeyword reports whether the token is a name with the given text.
func (t Token) IsKeyword(content []byte, kw string) bool {
	return t.Kind == TokenName && t.Text(content) == kw
}
