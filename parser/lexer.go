package parser

import "mrshgo.dev/sh/ast"

// regOps reports whether b starts an operator token, a quote or an
// expansion at the top level of unquoted input (POSIX 2.10.1 operators,
// trimmed to the POSIX core: no bash-only |&, &>, <<<, process
// substitution, etc).
func regOps(b byte) bool {
	switch b {
	case ';', '"', '\'', '(', ')', '$', '|', '&', '>', '<', '`':
		return true
	}
	return false
}

// wordBreak reports whether b ends an unquoted word.
func wordBreak(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', ';', '&', '|', '>', '<', '(', ')':
		return true
	}
	return false
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// skipBlanksAndComments consumes horizontal whitespace, backslash-newline
// line continuations, and "# ... \n" comments, but stops before an
// unescaped newline so callers can observe statement/line boundaries.
func (p *Parser) skipBlanksAndComments() {
	for {
		c, ok := p.peekByte(0)
		if !ok {
			return
		}
		switch {
		case isBlank(c):
			p.advanceByte()
		case c == '\\':
			c2, ok2 := p.peekByte(1)
			if ok2 && c2 == '\n' {
				p.advanceByte()
				p.advanceByte()
				continue
			}
			return
		case c == '#':
			for {
				c, ok := p.peekByte(0)
				if !ok || c == '\n' {
					break
				}
				p.advanceByte()
			}
		default:
			return
		}
	}
}

// skipNewlinesAndBlanks additionally consumes newlines, for use inside
// compound_list where leading/interleaved blank lines are permitted.
func (p *Parser) skipNewlinesAndBlanks() {
	for {
		p.skipBlanksAndComments()
		c, ok := p.peekByte(0)
		if !ok || c != '\n' {
			return
		}
		p.consumeNewline()
	}
}

// consumeNewline advances past a newline and, if any here-documents are
// pending on the current line, collects their bodies before returning
// (spec §4.C: "at the next unescaped newline the lexer switches into
// here-doc collection mode").
func (p *Parser) consumeNewline() {
	p.advanceByte() // '\n'
	if len(p.heredocPending) > 0 {
		p.collectPendingHeredocs()
	}
}

// readWord scans one word starting at the current position, in an
// unquoted top-level context, and returns it as an ast.Word. It returns
// (nil, false) if no word starts here (i.e. the next byte is a blank,
// operator, newline or EOF).
func (p *Parser) readWord() (ast.Word, bool) {
	start := p.curPos()
	var parts []ast.Word
	for {
		c, ok := p.peekByte(0)
		if !ok || wordBreak(c) {
			break
		}
		if c == '#' && len(parts) == 0 {
			// A '#' only starts a comment in a position where a new
			// word would otherwise begin (POSIX 2.3 token recognition).
			break
		}
		part, ok := p.readWordPart(ctxUnquoted)
		if !ok {
			break
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return nil, false
	}
	if len(parts) == 1 {
		return parts[0], true
	}
	w, err := ast.NewWordList(parts, false, ast.Range{})
	if err != nil {
		p.fail(start, "%v", err)
		return nil, false
	}
	return w, true
}

// wordCtx distinguishes the handful of lexical contexts in which a single
// byte (notably a quote character or '$') is interpreted differently.
type wordCtx int

const (
	ctxUnquoted wordCtx = iota
	ctxDouble           // inside "..."
	ctxParamArg         // inside the argument of a ${...} operator
	ctxHeredocLine      // a line of an unquoted here-document body
)

// readWordPart reads the next single contiguous word part (a literal run,
// a quoted run, or a $-introduced expansion) under the given context.
func (p *Parser) readWordPart(ctx wordCtx) (ast.Word, bool) {
	c, ok := p.peekByte(0)
	if !ok {
		return nil, false
	}
	switch c {
	case '\'':
		if ctx == ctxDouble {
			return p.readLiteralRun(ctx)
		}
		return p.readSingleQuoted()
	case '"':
		if ctx == ctxDouble {
			return nil, false // caller closes the quote
		}
		return p.readDoubleQuoted()
	case '$':
		return p.readDollar(ctx)
	case '`':
		return p.readBackquoted()
	case '\\':
		return p.readLiteralRun(ctx)
	default:
		return p.readLiteralRun(ctx)
	}
}

// readLiteralRun consumes a maximal run of plain/escaped text that is not
// interrupted by a quote or a '$'/backtick introducer.
func (p *Parser) readLiteralRun(ctx wordCtx) (ast.Word, bool) {
	start := p.curPos()
	var buf []byte
	for {
		c, ok := p.peekByte(0)
		if !ok {
			break
		}
		if ctx == ctxUnquoted || ctx == ctxParamArg {
			if wordBreak(c) || c == '\'' || c == '"' || c == '$' || c == '`' {
				break
			}
			if ctx == ctxParamArg && c == '}' {
				break
			}
		} else if ctx == ctxDouble {
			if c == '"' || c == '$' || c == '`' {
				break
			}
		} else if ctx == ctxHeredocLine {
			if c == '$' || c == '`' || c == '\n' {
				break
			}
		}
		if c == '\\' {
			c2, ok2 := p.peekByte(1)
			if !ok2 {
				p.advanceByte()
				buf = append(buf, '\\')
				break
			}
			if ctx == ctxDouble {
				// Backslash keeps its meaning only before
				// $ ` " \ and newline inside double quotes.
				switch c2 {
				case '$', '`', '"', '\\':
					p.advanceByte()
					p.advanceByte()
					buf = append(buf, c2)
					continue
				case '\n':
					p.advanceByte()
					p.advanceByte()
					continue
				default:
					p.advanceByte()
					buf = append(buf, '\\')
					continue
				}
			}
			if ctx == ctxHeredocLine {
				// An unquoted here-document body follows the same
				// restricted escape set as double quotes, minus '"'
				// (POSIX 2.7.4).
				switch c2 {
				case '$', '`', '\\':
					p.advanceByte()
					p.advanceByte()
					buf = append(buf, c2)
					continue
				case '\n':
					p.advanceByte()
					p.advanceByte()
					continue
				default:
					p.advanceByte()
					buf = append(buf, '\\')
					continue
				}
			}
			if c2 == '\n' {
				p.advanceByte()
				p.advanceByte()
				continue
			}
			p.advanceByte()
			p.advanceByte()
			buf = append(buf, c2)
			continue
		}
		p.advanceByte()
		buf = append(buf, c)
	}
	if len(buf) == 0 {
		return nil, false
	}
	return &ast.WordString{Str: string(buf), RangeVal: p.rangeFrom(start)}, true
}

func (p *Parser) readSingleQuoted() (ast.Word, bool) {
	start := p.curPos()
	p.advanceByte() // opening '
	p.openDepth++
	var buf []byte
	for {
		c, ok := p.advanceByte()
		if !ok {
			p.fail(start, "unterminated single-quoted string")
			p.openDepth--
			return nil, false
		}
		if c == '\'' {
			p.openDepth--
			break
		}
		buf = append(buf, c)
	}
	return &ast.WordString{Str: string(buf), SingleQuoted: true, RangeVal: p.rangeFrom(start)}, true
}

func (p *Parser) readDoubleQuoted() (ast.Word, bool) {
	start := p.curPos()
	p.advanceByte() // opening "
	p.openDepth++
	var parts []ast.Word
	for {
		c, ok := p.peekByte(0)
		if !ok {
			p.fail(start, "unterminated double-quoted string")
			p.openDepth--
			return nil, false
		}
		if c == '"' {
			p.advanceByte()
			p.openDepth--
			break
		}
		part, ok := p.readWordPart(ctxDouble)
		if !ok {
			// Shouldn't happen: readWordPart only returns false at a
			// closing quote, which is handled above.
			p.advanceByte()
			continue
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		// An empty "" still needs a representable, empty word value.
		parts = []ast.Word{&ast.WordString{Str: "", RangeVal: p.rangeFrom(start)}}
	}
	w, err := ast.NewWordList(parts, true, p.rangeFrom(start))
	if err != nil {
		p.fail(start, "%v", err)
		return nil, false
	}
	return w, true
}
