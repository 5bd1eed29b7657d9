// Package pyparse provides a tolerant tokenizer and recursive-descent
// parser producing pyast trees from Python source. It covers the
// statement and expression subset the lint rules inspect; anything
// outside that subset becomes a Raw node covering its exact bytes, so
// the tree always spans the whole file.
package pyparse

// Tokenize scans content into a token stream. Whitespace and comments
// are skipped. Newlines produce TokenNewline only at bracket depth zero
// and outside explicit line joins, so tokens between two newline tokens
// form one logical line.
func Tokenize(content []byte) []Token {
	var tokens []Token
	depth := 0

	pos := 0
	for pos < len(content) {
		ch := content[pos]

		switch {
		case ch == '\n':
			if depth == 0 {
				tokens = append(tokens, Token{Kind: TokenNewline, StartOffset: pos, EndOffset: pos + 1})
			}
			pos++

		case ch == ' ' || ch == '\t' || ch == '\r':
			pos++

		case ch == '\\' && pos+1 < len(content) && (content[pos+1] == '\n' ||
			(content[pos+1] == '\r' && pos+2 < len(content) && content[pos+2] == '\n')):
			// Explicit line join.
			pos++
			for pos < len(content) && content[pos] != '\n' {
				pos++
			}
			pos++

		case ch == '#':
			for pos < len(content) && content[pos] != '\n' {
				pos++
			}

		case isStringStart(content, pos):
			start := pos
			pos = scanString(content, pos)
			tokens = append(tokens, Token{Kind: TokenString, StartOffset: start, EndOffset: pos})

		case isDigit(ch) || (ch == '.' && pos+1 < len(content) && isDigit(content[pos+1])):
			start := pos
			pos = scanNumber(content, pos)
			tokens = append(tokens, Token{Kind: TokenNumber, StartOffset: start, EndOffset: pos})

		case isNameStart(ch):
			start := pos
			for pos < len(content) && isNameChar(content[pos]) {
				pos++
			}
			tokens = append(tokens, Token{Kind: TokenName, StartOffset: start, EndOffset: pos})

		default:
			switch ch {
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				if depth > 0 {
					depth--
				}
			}
			start := pos
			pos = scanOperator(content, pos)
			kind := TokenOp
			if pos == start {
				// Unrecognized byte; consume it so the scan advances.
				pos++
				kind = TokenInvalid
			}
			tokens = append(tokens, Token{Kind: kind, StartOffset: start, EndOffset: pos})
		}
	}

	return tokens
}

// multiByteOps lists multi-character operators, longest first.
var multiByteOps = []string{
	"**=", "//=", ">>=", "<<=", "...", "!=", "==", "<=", ">=", "->", ":=",
	"**", "//", "<<", ">>", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
}

// singleByteOps is the set of single-character operator bytes.
const singleByteOps = "+-*/%@&|^~<>=(),:.;[]{}"

func scanOperator(content []byte, pos int) int {
	rest := content[pos:]
	for _, op := range multiByteOps {
		if len(rest) >= len(op) && string(rest[:len(op)]) == op {
			return pos + len(op)
		}
	}
	for i := 0; i < len(singleByteOps); i++ {
		if content[pos] == singleByteOps[i] {
			return pos + 1
		}
	}
	return pos
}

// isStringStart detects quote characters, including prefixed literals
// like r"...", b'...', and f-strings.
func isStringStart(content []byte, pos int) bool {
	ch := content[pos]
	if ch == '\'' || ch == '"' {
		return true
	}
	// String prefix: up to two of r, b, f, u (any case) before a quote.
	i := pos
	for i < len(content) && i-pos < 2 && isStringPrefix(content[i]) {
		i++
	}
	return i > pos && i < len(content) && (content[i] == '\'' || content[i] == '"')
}

func isStringPrefix(ch byte) bool {
	switch ch {
	case 'r', 'R', 'b', 'B', 'f', 'F', 'u', 'U':
		return true
	default:
		return false
	}
}

// scanString consumes a string literal starting at pos, handling
// prefixes, escapes, and triple quotes. Unterminated literals run to
// end of input rather than failing.
func scanString(content []byte, pos int) int {
	// Skip prefix characters.
	for pos < len(content) && isStringPrefix(content[pos]) {
		pos++
	}
	if pos >= len(content) {
		return pos
	}

	quote := content[pos]
	triple := pos+2 < len(content) && content[pos+1] == quote && content[pos+2] == quote
	if triple {
		pos += 3
		for pos < len(content) {
			if content[pos] == '\\' {
				pos += 2
				continue
			}
			if content[pos] == quote && pos+2 < len(content) &&
				content[pos+1] == quote && content[pos+2] == quote {
				return pos + 3
			}
			pos++
		}
		return pos
	}

	pos++
	for pos < len(content) {
		switch content[pos] {
		case '\\':
			pos += 2
		case quote:
			return pos + 1
		case '\n':
			// Unterminated single-quoted literal; stop at the newline.
			return pos
		default:
			pos++
		}
	}
	return pos
}

func scanNumber(content []byte, pos int) int {
	for pos < len(content) && (isDigit(content[pos]) || isNameChar(content[pos]) ||
		content[pos] == '.' || content[pos] == '_') {
		// Handle exponent sign (1e-5).
		if (content[pos] == 'e' || content[pos] == 'E') && pos+1 < len(content) &&
			(content[pos+1] == '+' || content[pos+1] == '-') {
			pos++
		}
		pos++
	}
	return pos
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || isDigit(ch)
}
