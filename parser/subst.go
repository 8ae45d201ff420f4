package parser

import (
	"mrshgo.dev/sh/ast"
	"mrshgo.dev/sh/token"
)

// readCommandSubstWord reads a $(...) command substitution starting at the
// '(' (backQuoted is always false here; backtick substitution is handled
// separately by readBackquoted, since its escaping rules differ). start is
// the position of the leading '$'.
//
// Parsing shares the very same buffer/layer stack as the enclosing parse:
// the nested program is read by recursively driving compoundList until the
// matching ')' at nesting level zero is reached, exactly as a Subshell's
// body is read (spec §9).
func (p *Parser) readCommandSubstWord(start token.Position, backQuoted bool) (ast.Word, bool) {
	p.advanceByte() // '('
	p.openDepth++
	bodyStart := p.curPos()

	cls := p.compoundListUntilByte(')')
	body := &ast.Program{Body: cls, RangeVal: p.rangeFrom(bodyStart)}

	if c, ok := p.peekByte(0); !ok || c != ')' {
		p.fail(p.curPos(), "unterminated command substitution, expected ')'")
		p.openDepth--
		return nil, false
	}
	p.advanceByte() // ')'
	p.openDepth--

	return &ast.WordCommand{
		Body:       body,
		BackQuoted: backQuoted,
		RangeVal:   p.rangeFrom(start),
	}, true
}

// readBackquoted reads a `...` command substitution. Backtick bodies use a
// distinct, narrower set of backslash escapes (POSIX 2.6.3): inside the
// backquotes, only \\, \$ and \` are recognised as escapes, and an
// unescaped backtick ends the substitution. The extracted, unescaped text
// is then parsed as an independent program over a fresh data buffer, since
// its lexical rules differ from those of the enclosing input.
func (p *Parser) readBackquoted() (ast.Word, bool) {
	start := p.curPos()
	p.advanceByte() // opening '`'
	p.openDepth++

	var raw []byte
	for {
		c, ok := p.advanceByte()
		if !ok {
			p.fail(start, "unterminated backquoted command substitution")
			p.openDepth--
			return nil, false
		}
		if c == '`' {
			break
		}
		if c == '\\' {
			c2, ok2 := p.peekByte(0)
			if ok2 && (c2 == '\\' || c2 == '$' || c2 == '`') {
				p.advanceByte()
				raw = append(raw, c2)
				continue
			}
			raw = append(raw, c)
			continue
		}
		raw = append(raw, c)
	}
	p.openDepth--

	sub := NewData(raw)
	body := sub.parseProgram()
	if err := sub.Err(); err != nil {
		p.fail(start, "in backquoted command substitution: %s", err.Message)
		return nil, false
	}

	return &ast.WordCommand{
		Body:       body,
		BackQuoted: true,
		RangeVal:   p.rangeFrom(start),
	}, true
}
