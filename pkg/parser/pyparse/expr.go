package pyparse

import "github.com/yaklabco/gopylint/pkg/pyast"

// exprParser parses expressions from a logical line's token slice.
// It is deliberately tolerant: constructs it does not model are wrapped
// in Raw nodes while still parsing nested calls and literals, so rules
// can find them regardless of the surrounding shape.
type exprParser struct {
	content []byte
	toks    []Token
	pos     int
}

// parseExprTokens parses a full expression from toks. Leftover tokens
// are wrapped into a Raw node spanning the whole slice.
func parseExprTokens(toks []Token, content []byte) *pyast.Node {
	if len(toks) == 0 {
		return nil
	}

	p := &exprParser{content: content, toks: toks}
	first := p.parseExpression()
	if first == nil {
		return p.rawSpanning(toks, nil)
	}
	if p.pos >= len(toks) {
		return first
	}

	// Trailing tokens the expression grammar does not cover (tuples,
	// ternaries, annotations). Keep parsing what we can under a Raw node.
	children := []*pyast.Node{first}
	for p.pos < len(p.toks) {
		if expr := p.parseExpression(); expr != nil {
			children = append(children, expr)
		} else {
			p.pos++
		}
	}
	return p.rawSpanning(toks, children)
}

// rawSpanning builds a Raw node covering toks with the given children.
func (p *exprParser) rawSpanning(toks []Token, children []*pyast.Node) *pyast.Node {
	raw := pyast.NewNode(pyast.NodeRaw)
	raw.Range = pyast.NewRange(toks[0].StartOffset, toks[len(toks)-1].EndOffset)
	for _, child := range children {
		pyast.AppendChild(raw, child)
	}
	return raw
}

func (p *exprParser) peek() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *exprParser) accept(op string) bool {
	if tok, ok := p.peek(); ok && tok.Is(p.content, op) {
		p.pos++
		return true
	}
	return false
}

func (p *exprParser) acceptKeyword(kw string) bool {
	if tok, ok := p.peek(); ok && tok.IsKeyword(p.content, kw) {
		p.pos++
		return true
	}
	return false
}

// binaryOps are operators joining two operands. Commas and the ternary
// keywords are excluded; callers treat those as delimiters.
var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "@": true,
	"**": true, "//": true, "<<": true, ">>": true, "&": true, "|": true,
	"^": true, "<": true, ">": true, "<=": true, ">=": true, "==": true,
	"!=": true, ":=": true,
}

var binaryKeywords = map[string]bool{
	"and": true, "or": true, "not": true, "in": true, "is": true,
}

func (p *exprParser) atBinary() bool {
	tok, ok := p.peek()
	if !ok {
		return false
	}
	if tok.Kind == TokenOp && binaryOps[tok.Text(p.content)] {
		return true
	}
	return tok.Kind == TokenName && binaryKeywords[tok.Text(p.content)]
}

// parseExpression parses one expression. Binary operations are folded
// into a Raw node whose children are the parsed operands, preserving
// nested calls for rule inspection.
func (p *exprParser) parseExpression() *pyast.Node {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	if !p.atBinary() {
		return left
	}

	raw := pyast.NewNode(pyast.NodeRaw)
	raw.Range = left.Range
	pyast.AppendChild(raw, left)

	for p.atBinary() {
		opTok := p.toks[p.pos]
		p.pos++
		raw.Range.EndOffset = opTok.EndOffset

		operand := p.parseUnary()
		if operand == nil {
			continue
		}
		pyast.AppendChild(raw, operand)
		raw.Range.EndOffset = operand.Range.EndOffset
	}

	return raw
}

// unaryPrefixes may precede a primary expression.
var unaryPrefixes = map[string]bool{
	"-": true, "+": true, "~": true, "*": true, "**": true,
}

// parseUnary parses optional prefix operators followed by a postfix chain.
func (p *exprParser) parseUnary() *pyast.Node {
	start := p.pos
	for {
		tok, ok := p.peek()
		if !ok {
			p.pos = start
			return nil
		}
		if tok.Kind == TokenOp && unaryPrefixes[tok.Text(p.content)] {
			p.pos++
			continue
		}
		if tok.IsKeyword(p.content, "not") || tok.IsKeyword(p.content, "await") {
			p.pos++
			continue
		}
		break
	}

	primary := p.parsePrimary()
	if primary == nil {
		p.pos = start
		return nil
	}
	node := p.parsePostfix(primary)

	// Cover consumed prefixes in the node range.
	if p.pos > start && p.toks[start].StartOffset < node.Range.StartOffset {
		wrapped := pyast.NewNode(pyast.NodeRaw)
		wrapped.Range = pyast.NewRange(p.toks[start].StartOffset, node.Range.EndOffset)
		pyast.AppendChild(wrapped, node)
		return wrapped
	}
	return node
}

// parsePrimary parses an atom: name, literal, or bracketed construct.
func (p *exprParser) parsePrimary() *pyast.Node {
	tok, ok := p.peek()
	if !ok {
		return nil
	}

	switch {
	case tok.IsKeyword(p.content, "lambda"):
		// Swallow the rest of the slice; lambdas are out of subset.
		rest := p.toks[p.pos:]
		p.pos = len(p.toks)
		return p.rawSpanning(rest, nil)

	case tok.Kind == TokenName:
		p.pos++
		node := pyast.NewNode(pyast.NodeName)
		node.Ident = tok.Text(p.content)
		node.Range = pyast.NewRange(tok.StartOffset, tok.EndOffset)
		return node

	case tok.Kind == TokenNumber:
		p.pos++
		node := pyast.NewNode(pyast.NodeNumber)
		node.Range = pyast.NewRange(tok.StartOffset, tok.EndOffset)
		return node

	case tok.Kind == TokenString:
		p.pos++
		node := pyast.NewNode(pyast.NodeString)
		node.Range = pyast.NewRange(tok.StartOffset, tok.EndOffset)
		// Adjacent string literals concatenate.
		for {
			next, ok := p.peek()
			if !ok || next.Kind != TokenString {
				break
			}
			node.Range.EndOffset = next.EndOffset
			p.pos++
		}
		return node

	case tok.Is(p.content, "("):
		return p.parseParen(tok)

	case tok.Is(p.content, "["):
		return p.parseBrackets(tok)

	case tok.Is(p.content, "{"):
		return p.parseBraces(tok)

	default:
		return nil
	}
}

// parsePostfix parses call, attribute, and subscript chains.
func (p *exprParser) parsePostfix(node *pyast.Node) *pyast.Node {
	for {
		tok, ok := p.peek()
		if !ok {
			return node
		}

		switch {
		case tok.Is(p.content, "("):
			node = p.parseCall(node)

		case tok.Is(p.content, "."):
			next := p.pos + 1
			if next >= len(p.toks) || p.toks[next].Kind != TokenName {
				return node
			}
			attr := pyast.NewNode(pyast.NodeAttribute)
			attr.Ident = p.toks[next].Text(p.content)
			attr.Range = pyast.NewRange(node.Range.StartOffset, p.toks[next].EndOffset)
			pyast.AppendChild(attr, node)
			p.pos = next + 1
			node = attr

		case tok.Is(p.content, "["):
			node = p.parseSubscript(node)

		default:
			return node
		}
	}
}

// parseCall parses "callee(...)" with positional and keyword arguments.
func (p *exprParser) parseCall(callee *pyast.Node) *pyast.Node {
	open := p.toks[p.pos]
	p.pos++ // consume "("

	call := pyast.NewNode(pyast.NodeCall)
	call.Range = pyast.NewRange(callee.Range.StartOffset, open.EndOffset)
	pyast.AppendChild(call, callee)

	for {
		tok, ok := p.peek()
		if !ok {
			return call
		}
		if tok.Is(p.content, ")") {
			call.Range.EndOffset = tok.EndOffset
			p.pos++
			return call
		}
		if tok.Is(p.content, ",") {
			p.pos++
			continue
		}

		if arg := p.parseArgument(); arg != nil {
			pyast.AppendChild(call, arg)
			call.Range.EndOffset = arg.Range.EndOffset
		} else {
			call.Range.EndOffset = tok.EndOffset
			p.pos++
		}
	}
}

// parseArgument parses one call argument, wrapping "name=value" keyword
// arguments in a Raw node.
func (p *exprParser) parseArgument() *pyast.Node {
	if tok, ok := p.peek(); ok && tok.Kind == TokenName &&
		p.pos+1 < len(p.toks) && p.toks[p.pos+1].Is(p.content, "=") {
		nameTok := tok
		p.pos += 2
		value := p.parseExpression()

		raw := pyast.NewNode(pyast.NodeRaw)
		raw.Range = pyast.NewRange(nameTok.StartOffset, nameTok.EndOffset)
		if value != nil {
			pyast.AppendChild(raw, value)
			raw.Range.EndOffset = value.Range.EndOffset
		}
		return raw
	}

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	// Generator argument: f(x for x in xs).
	if tok, ok := p.peek(); ok && tok.IsKeyword(p.content, "for") {
		gen := pyast.NewNode(pyast.NodeGenerator)
		gen.Range = expr.Range
		pyast.AppendChild(gen, expr)
		p.parseCompClauses(gen)
		return gen
	}
	return expr
}

// parseSubscript parses "obj[...]" into a Raw node keeping parsed parts.
func (p *exprParser) parseSubscript(obj *pyast.Node) *pyast.Node {
	p.pos++ // consume "["

	raw := pyast.NewNode(pyast.NodeRaw)
	raw.Range = obj.Range
	pyast.AppendChild(raw, obj)

	for {
		tok, ok := p.peek()
		if !ok {
			return raw
		}
		if tok.Is(p.content, "]") {
			raw.Range.EndOffset = tok.EndOffset
			p.pos++
			return raw
		}
		if expr := p.parseExpression(); expr != nil {
			pyast.AppendChild(raw, expr)
			raw.Range.EndOffset = expr.Range.EndOffset
		} else {
			raw.Range.EndOffset = tok.EndOffset
			p.pos++
		}
	}
}

// parseParen parses "(...)": empty tuple, parenthesized expression,
// tuple, or generator expression.
func (p *exprParser) parseParen(open Token) *pyast.Node {
	p.pos++ // consume "("

	if tok, ok := p.peek(); ok && tok.Is(p.content, ")") {
		p.pos++
		node := pyast.NewNode(pyast.NodeTuple)
		node.Range = pyast.NewRange(open.StartOffset, tok.EndOffset)
		return node
	}

	first := p.parseExpression()
	if first == nil {
		return p.finishCollection(pyast.NewNode(pyast.NodeRaw), open, ")")
	}

	if tok, ok := p.peek(); ok && tok.IsKeyword(p.content, "for") {
		gen := pyast.NewNode(pyast.NodeGenerator)
		pyast.AppendChild(gen, first)
		p.parseCompClauses(gen)
		return p.closeAt(gen, open, ")")
	}

	if tok, ok := p.peek(); ok && tok.Is(p.content, ",") {
		tuple := pyast.NewNode(pyast.NodeTuple)
		pyast.AppendChild(tuple, first)
		return p.finishCollection(tuple, open, ")")
	}

	// Parenthesized expression: widen the inner node over the parens.
	end := first.Range.EndOffset
	if tok, ok := p.peek(); ok && tok.Is(p.content, ")") {
		end = tok.EndOffset
		p.pos++
	}
	first.Range = pyast.NewRange(open.StartOffset, end)
	return first
}

// parseBrackets parses "[...]": list literal or list comprehension.
func (p *exprParser) parseBrackets(open Token) *pyast.Node {
	p.pos++ // consume "["

	if tok, ok := p.peek(); ok && tok.Is(p.content, "]") {
		p.pos++
		node := pyast.NewNode(pyast.NodeList)
		node.Range = pyast.NewRange(open.StartOffset, tok.EndOffset)
		return node
	}

	first := p.parseExpression()
	if first == nil {
		return p.finishCollection(pyast.NewNode(pyast.NodeList), open, "]")
	}

	if tok, ok := p.peek(); ok && tok.IsKeyword(p.content, "for") {
		comp := pyast.NewNode(pyast.NodeListComp)
		pyast.AppendChild(comp, first)
		p.parseCompClauses(comp)
		return p.closeAt(comp, open, "]")
	}

	list := pyast.NewNode(pyast.NodeList)
	pyast.AppendChild(list, first)
	return p.finishCollection(list, open, "]")
}

// parseBraces parses "{...}": dict/set literal or comprehension.
func (p *exprParser) parseBraces(open Token) *pyast.Node {
	p.pos++ // consume "{"

	if tok, ok := p.peek(); ok && tok.Is(p.content, "}") {
		p.pos++
		node := pyast.NewNode(pyast.NodeDict)
		node.Range = pyast.NewRange(open.StartOffset, tok.EndOffset)
		return node
	}

	first := p.parseExpression()
	if first == nil {
		return p.finishCollection(pyast.NewNode(pyast.NodeRaw), open, "}")
	}

	if p.accept(":") {
		value := p.parseExpression()

		if tok, ok := p.peek(); ok && tok.IsKeyword(p.content, "for") {
			comp := pyast.NewNode(pyast.NodeDictComp)
			pyast.AppendChild(comp, first)
			if value != nil {
				pyast.AppendChild(comp, value)
			}
			p.parseCompClauses(comp)
			return p.closeAt(comp, open, "}")
		}

		dict := pyast.NewNode(pyast.NodeDict)
		pyast.AppendChild(dict, first)
		if value != nil {
			pyast.AppendChild(dict, value)
		}
		return p.finishCollection(dict, open, "}")
	}

	if tok, ok := p.peek(); ok && tok.IsKeyword(p.content, "for") {
		comp := pyast.NewNode(pyast.NodeSetComp)
		pyast.AppendChild(comp, first)
		p.parseCompClauses(comp)
		return p.closeAt(comp, open, "}")
	}

	set := pyast.NewNode(pyast.NodeSet)
	pyast.AppendChild(set, first)
	return p.finishCollection(set, open, "}")
}

// parseCompClauses parses "for ... [if ...]" clauses, appending parsed
// expressions as children of comp.
func (p *exprParser) parseCompClauses(comp *pyast.Node) {
	for p.acceptKeyword("for") {
		// "target in iterable" folds into one Raw operand via the
		// binary handling of "in".
		if expr := p.parseExpression(); expr != nil {
			pyast.AppendChild(comp, expr)
		} else {
			break
		}
		for p.acceptKeyword("if") {
			if cond := p.parseExpression(); cond != nil {
				pyast.AppendChild(comp, cond)
			} else {
				break
			}
		}
	}
}

// finishCollection consumes comma-separated elements until the closing
// bracket, appending parsed expressions to node.
func (p *exprParser) finishCollection(node *pyast.Node, open Token, closeOp string) *pyast.Node {
	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		if tok.Is(p.content, closeOp) {
			p.pos++
			node.Range = pyast.NewRange(open.StartOffset, tok.EndOffset)
			return node
		}
		if tok.Is(p.content, ",") || tok.Is(p.content, ":") {
			p.pos++
			continue
		}
		if expr := p.parseExpression(); expr != nil {
			pyast.AppendChild(node, expr)
		} else {
			p.pos++
		}
	}

	node.Range = pyast.NewRange(open.StartOffset, p.endOffset(open))
	return node
}

// closeAt consumes the closing bracket and sets node's range from the
// opening token to it.
func (p *exprParser) closeAt(node *pyast.Node, open Token, closeOp string) *pyast.Node {
	if tok, ok := p.peek(); ok && tok.Is(p.content, closeOp) {
		p.pos++
		node.Range = pyast.NewRange(open.StartOffset, tok.EndOffset)
		return node
	}
	node.Range = pyast.NewRange(open.StartOffset, p.endOffset(open))
	return node
}

// endOffset returns the end of the last consumed token, or the opening
// token's end for degenerate cases.
func (p *exprParser) endOffset(open Token) int {
	if p.pos > 0 && p.pos <= len(p.toks) {
		return p.toks[p.pos-1].EndOffset
	}
	return open.EndOffset
}
