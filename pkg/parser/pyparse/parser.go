package pyparse

import (
	"context"
	"fmt"

	"github.com/yaklabco/gopylint/pkg/pyast"
)

// Parser parses Python source into pyast trees.
type Parser struct{}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// Parse tokenizes and parses content into a FileSnapshot. The returned
// tree covers [0, len(content)); constructs outside the supported subset
// become Raw nodes. Parse never fails on malformed Python, only on
// cancellation.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*pyast.FileSnapshot, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("parse cancelled: %w", ctx.Err())
	default:
	}

	snapshot := pyast.NewFileSnapshot(path, content)

	tokens := Tokenize(content)
	lines := logicalLines(tokens)

	root := pyast.NewModule()
	root.Range = pyast.NewRange(0, len(content))

	buildTree(root, lines, content)
	extendRanges(root)
	root.Range = pyast.NewRange(0, len(content))

	pyast.SetFile(root, snapshot)
	snapshot.Root = root

	return snapshot, nil
}

// logicalLines groups tokens into logical lines, dropping blank lines.
func logicalLines(tokens []Token) [][]Token {
	var lines [][]Token
	var current []Token

	for _, tok := range tokens {
		if tok.Kind == TokenNewline {
			if len(current) > 0 {
				lines = append(lines, current)
				current = nil
			}
			continue
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}

	return lines
}

// indentOf returns the byte count of leading whitespace before the first
// token of a logical line.
func indentOf(line []Token, content []byte) int {
	start := line[0].StartOffset
	lineStart := start
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}
	return start - lineStart
}

// openBlock tracks one open suite on the indentation stack.
type openBlock struct {
	node         *pyast.Node
	headerIndent int
	bodyIndent   int // -1 until the first body statement is seen
}

// buildTree assembles statements into a tree using indentation depth.
func buildTree(root *pyast.Node, lines [][]Token, content []byte) {
	stack := []openBlock{{node: root, headerIndent: -1, bodyIndent: 0}}

	for _, line := range lines {
		indent := indentOf(line, content)

		// Close blocks the current indentation has left.
		for len(stack) > 1 {
			top := &stack[len(stack)-1]
			if top.bodyIndent == -1 {
				if indent > top.headerIndent {
					top.bodyIndent = indent
					break
				}
				stack = stack[:len(stack)-1]
				continue
			}
			if indent < top.bodyIndent {
				stack = stack[:len(stack)-1]
				continue
			}
			break
		}

		parent := stack[len(stack)-1].node
		stmt, isHeader := parseStatement(line, content)
		if stmt == nil {
			continue
		}

		// An except clause belongs to the try statement it follows.
		if stmt.Kind == pyast.NodeExcept && parent.LastChild != nil &&
			parent.LastChild.Kind == pyast.NodeTry {
			pyast.AppendChild(parent.LastChild, stmt)
		} else {
			pyast.AppendChild(parent, stmt)
		}

		if isHeader {
			stack = append(stack, openBlock{node: stmt, headerIndent: indent, bodyIndent: -1})
		}
	}
}

// blockKeywords are compound-statement introducers parsed as Raw block
// headers when not handled specifically.
var blockKeywords = map[string]bool{
	"if": true, "elif": true, "else": true, "for": true, "while": true,
	"with": true, "finally": true,
}

// softBlockKeywords open suites only when the line ends with a colon,
// since they are valid identifiers elsewhere.
var softBlockKeywords = map[string]bool{
	"match": true, "case": true,
}

// parseStatement parses one logical line into a statement node.
// The second result reports whether the statement opens a suite.
func parseStatement(line []Token, content []byte) (*pyast.Node, bool) {
	if len(line) == 0 {
		return nil, false
	}

	span := pyast.NewRange(line[0].StartOffset, line[len(line)-1].EndOffset)
	isHeader := line[len(line)-1].Is(content, ":")

	first := line[0]
	switch {
	case first.IsKeyword(content, "import"):
		return parseImport(line, content, span), false

	case first.IsKeyword(content, "from"):
		return parseImportFrom(line, content, span), false

	case first.IsKeyword(content, "def"),
		first.IsKeyword(content, "async") && len(line) > 1 && line[1].IsKeyword(content, "def"):
		node := pyast.NewNode(pyast.NodeFunctionDef)
		node.Range = span
		node.Ident = defName(line, content)
		return node, isHeader

	case first.IsKeyword(content, "class"):
		node := pyast.NewNode(pyast.NodeClassDef)
		node.Range = span
		if len(line) > 1 && line[1].Kind == TokenName {
			node.Ident = line[1].Text(content)
		}
		return node, isHeader

	case first.IsKeyword(content, "try"):
		node := pyast.NewNode(pyast.NodeTry)
		node.Range = span
		return node, isHeader

	case first.IsKeyword(content, "except"):
		node := pyast.NewNode(pyast.NodeExcept)
		node.Range = span
		if len(line) > 1 && line[1].Kind == TokenName {
			node.Ident = line[1].Text(content)
		}
		return node, isHeader

	case first.IsKeyword(content, "return"):
		node := pyast.NewNode(pyast.NodeReturn)
		node.Range = span
		body := line[1:]
		if len(body) > 0 {
			if expr := parseExprTokens(body, content); expr != nil {
				pyast.AppendChild(node, expr)
			}
		}
		return node, false

	case first.Kind == TokenName && blockKeywords[first.Text(content)],
		first.Kind == TokenName && isHeader && softBlockKeywords[first.Text(content)]:
		node := rawStatement(line, content, span)
		return node, isHeader
	}

	// Assignment: a top-level "=" splits target and value.
	if eq := topLevelAssign(line, content); eq >= 0 {
		node := pyast.NewNode(pyast.NodeAssign)
		node.Range = span
		if target := parseExprTokens(line[:eq], content); target != nil {
			pyast.AppendChild(node, target)
		}
		if value := parseExprTokens(line[eq+1:], content); value != nil {
			pyast.AppendChild(node, value)
		}
		return node, false
	}

	// Plain expression statement.
	node := pyast.NewNode(pyast.NodeExprStmt)
	node.Range = span
	if expr := parseExprTokens(line, content); expr != nil {
		pyast.AppendChild(node, expr)
	}
	return node, isHeader
}

// defName returns the name token of a def header, skipping "async".
func defName(line []Token, content []byte) string {
	idx := 1
	if line[0].IsKeyword(content, "async") {
		idx = 2
	}
	if idx < len(line) && line[idx].Kind == TokenName {
		return line[idx].Text(content)
	}
	return ""
}

// rawStatement builds a Raw node for a line, keeping any parseable
// expressions as children so calls inside remain discoverable.
func rawStatement(line []Token, content []byte, span pyast.SourceRange) *pyast.Node {
	node := pyast.NewNode(pyast.NodeRaw)
	node.Range = span

	p := &exprParser{content: content, toks: line, pos: 1}
	for p.pos < len(p.toks) {
		if expr := p.parseExpression(); expr != nil {
			pyast.AppendChild(node, expr)
		} else {
			p.pos++
		}
	}
	return node
}

// topLevelAssign returns the index of a bare "=" at bracket depth zero,
// or -1 if the line is not an assignment.
func topLevelAssign(line []Token, content []byte) int {
	depth := 0
	for i, tok := range line {
		if tok.Kind != TokenOp {
			continue
		}
		switch tok.Text(content) {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case "=":
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseImport parses "import a.b, c as d".
func parseImport(line []Token, content []byte, span pyast.SourceRange) *pyast.Node {
	node := pyast.NewNode(pyast.NodeImport)
	node.Range = span
	node.Imports = parseAliases(line[1:], content)
	return node
}

// parseImportFrom parses "from mod import a, b as c".
func parseImportFrom(line []Token, content []byte, span pyast.SourceRange) *pyast.Node {
	node := pyast.NewNode(pyast.NodeImportFrom)
	node.Range = span

	// Module path runs until the "import" keyword.
	idx := 1
	moduleStart := -1
	moduleEnd := -1
	for idx < len(line) && !line[idx].IsKeyword(content, "import") {
		if moduleStart < 0 {
			moduleStart = line[idx].StartOffset
		}
		moduleEnd = line[idx].EndOffset
		idx++
	}
	if moduleStart >= 0 {
		node.Module = string(content[moduleStart:moduleEnd])
	}
	if idx < len(line) {
		node.Imports = parseAliases(line[idx+1:], content)
	}
	return node
}

// parseAliases parses a comma-separated alias list: "a.b as c, d".
// Parentheses around the list (from-import continuation style) are
// skipped; "*" produces a single alias named "*".
func parseAliases(toks []Token, content []byte) []pyast.ImportAlias {
	var aliases []pyast.ImportAlias

	i := 0
	for i < len(toks) {
		tok := toks[i]
		if tok.Is(content, "(") || tok.Is(content, ")") || tok.Is(content, ",") {
			i++
			continue
		}
		if tok.Is(content, "*") {
			aliases = append(aliases, pyast.ImportAlias{
				Name:  "*",
				Range: pyast.NewRange(tok.StartOffset, tok.EndOffset),
			})
			i++
			continue
		}
		if tok.Kind != TokenName {
			i++
			continue
		}

		// Dotted name.
		start := tok.StartOffset
		end := tok.EndOffset
		nameEnd := end
		i++
		for i+1 < len(toks) && toks[i].Is(content, ".") && toks[i+1].Kind == TokenName {
			nameEnd = toks[i+1].EndOffset
			end = nameEnd
			i += 2
		}
		name := string(content[start:nameEnd])

		alias := ""
		if i+1 < len(toks) && toks[i].IsKeyword(content, "as") && toks[i+1].Kind == TokenName {
			alias = toks[i+1].Text(content)
			end = toks[i+1].EndOffset
			i += 2
		}

		aliases = append(aliases, pyast.ImportAlias{
			Name:  name,
			Alias: alias,
			Range: pyast.NewRange(start, end),
		})
	}

	return aliases
}

// extendRanges widens each node to cover its children (post-order).
func extendRanges(node *pyast.Node) {
	for child := node.FirstChild; child != nil; child = child.Next {
		extendRanges(child)
		if child.Range.StartOffset < node.Range.StartOffset {
			node.Range.StartOffset = child.Range.StartOffset
		}
		if child.Range.EndOffset > node.Range.EndOffset {
			node.Range.EndOffset = child.Range.EndOffset
		}
	}
}
