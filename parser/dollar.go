package parser

import (
	"mrshgo.dev/sh/ast"
	"mrshgo.dev/sh/token"
)

// specialParamChars are the single-character special parameters (POSIX
// 2.5.2) that may follow a bare '$' without braces.
const specialParamChars = "@*#?-$!0123456789"

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameCont(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

// readDollar handles every '$...' form: bare $name, braced ${...},
// arithmetic $((...)) and command substitution $(...).
func (p *Parser) readDollar(ctx wordCtx) (ast.Word, bool) {
	start := p.curPos()
	p.advanceByte() // '$'

	c, ok := p.peekByte(0)
	if !ok {
		return &ast.WordString{Str: "$", RangeVal: p.rangeFrom(start)}, true
	}

	switch {
	case c == '(':
		if c2, ok2 := p.peekByte(1); ok2 && c2 == '(' {
			return p.readArithmeticWord(start)
		}
		return p.readCommandSubstWord(start, false)
	case c == '{':
		return p.readBracedParam(start)
	case isNameStart(c):
		name := p.readName()
		return &ast.WordParameter{
			Name:     name,
			Op:       ast.ParamNone,
			Dollar:   ast.Range{Begin: start, End: start},
			RangeVal: p.rangeFrom(start),
		}, true
	case indexByte(specialParamChars, c) >= 0:
		p.advanceByte()
		return &ast.WordParameter{
			Name:     string(c),
			Op:       ast.ParamNone,
			Dollar:   ast.Range{Begin: start, End: start},
			RangeVal: p.rangeFrom(start),
		}, true
	default:
		return &ast.WordString{Str: "$", RangeVal: p.rangeFrom(start)}, true
	}
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func (p *Parser) readName() string {
	var buf []byte
	for {
		c, ok := p.peekByte(0)
		if !ok || !isNameCont(c) {
			break
		}
		p.advanceByte()
		buf = append(buf, c)
	}
	return string(buf)
}

var paramOpTable = map[string]struct {
	op    ast.ParamOp
	colon bool
}{
	":-": {ast.ParamDefault, true}, "-": {ast.ParamDefault, false},
	":=": {ast.ParamAssign, true}, "=": {ast.ParamAssign, false},
	":?": {ast.ParamError, true}, "?": {ast.ParamError, false},
	":+": {ast.ParamAlt, true}, "+": {ast.ParamAlt, false},
}

// readBracedParam reads a ${...} expansion. start is the position of the
// leading '$'.
func (p *Parser) readBracedParam(start token.Position) (ast.Word, bool) {
	bracePos := p.curPos()
	p.advanceByte() // '{'
	p.openDepth++

	var length bool
	if c, ok := p.peekByte(0); ok && c == '#' {
		if c2, ok2 := p.peekByte(1); ok2 && (isNameStart(c2) || indexByte(specialParamChars, c2) >= 0) {
			// "${#name}" string-length form: '#' is not an operator here.
			length = true
			p.advanceByte()
		}
	}

	name := p.readName()
	if name == "" {
		if c, ok := p.peekByte(0); ok && indexByte(specialParamChars, c) >= 0 {
			p.advanceByte()
			name = string(c)
		}
	}

	pw := &ast.WordParameter{Name: name, Length: length, Dollar: ast.Range{Begin: start, End: start}}

	// Operator, if any; absent when this is the length form.
	if !length {
		if c, ok := p.peekByte(0); ok && c != '}' {
			op, colon, matched := p.matchParamOp()
			if matched {
				pw.Op = op
				pw.Colon = colon
				arg, _ := p.readParamArg()
				pw.Arg = arg
			} else {
				p.fail(p.curPos(), "invalid parameter expansion operator %q", c)
			}
		}
	}

	if c, ok := p.peekByte(0); !ok || c != '}' {
		p.fail(bracePos, "unterminated parameter expansion, expected '}'")
		return nil, false
	}
	p.advanceByte() // '}'
	p.openDepth--
	pw.BracePos = ast.Range{Begin: bracePos, End: p.curPos()}
	pw.RangeVal = p.rangeFrom(start)
	return pw, true
}

// matchParamOp recognises the longest operator spelling at the current
// position among {:-,:=,:?,:+,-,=,?,+,##,#,%%,%}.
func (p *Parser) matchParamOp() (ast.ParamOp, bool, bool) {
	two := p.peekTwo()
	if len(two) >= 2 {
		switch two {
		case ":-", ":=", ":?", ":+":
			p.advanceByte()
			p.advanceByte()
			info := paramOpTable[two]
			return info.op, info.colon, true
		case "##":
			p.advanceByte()
			p.advanceByte()
			return ast.ParamRemLongestPrefix, false, true
		case "%%":
			p.advanceByte()
			p.advanceByte()
			return ast.ParamRemLongestSuffix, false, true
		}
	}
	if len(two) >= 1 {
		switch two[:1] {
		case "-", "=", "?", "+":
			p.advanceByte()
			info := paramOpTable[two[:1]]
			return info.op, info.colon, true
		case "#":
			p.advanceByte()
			return ast.ParamRemShortestPrefix, false, true
		case "%":
			p.advanceByte()
			return ast.ParamRemShortestSuffix, false, true
		}
	}
	return ast.ParamNone, false, false
}

func (p *Parser) peekTwo() string {
	b0, ok0 := p.peekByte(0)
	if !ok0 {
		return ""
	}
	b1, ok1 := p.peekByte(1)
	if !ok1 {
		return string(b0)
	}
	return string([]byte{b0, b1})
}

// readParamArg reads the argument word of a parameter-expansion operator,
// up to the closing '}'.
func (p *Parser) readParamArg() (ast.Word, bool) {
	start := p.curPos()
	var parts []ast.Word
	for {
		c, ok := p.peekByte(0)
		if !ok || c == '}' {
			break
		}
		part, ok := p.readWordPart(ctxParamArg)
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

// readArithmeticWord reads a $((...)) expansion. The body is kept as the
// raw text between the parentheses (spec §3: "a Word whose eventual string
// value is to be parsed by the arithmetic parser at evaluation time").
func (p *Parser) readArithmeticWord(start token.Position) (ast.Word, bool) {
	p.advanceByte() // first '('
	p.advanceByte() // second '('
	p.openDepth++
	bodyStart := p.curPos()
	depth := 1
	var buf []byte
	for {
		c, ok := p.peekByte(0)
		if !ok {
			p.fail(start, "unterminated arithmetic expansion, expected '))'")
			p.openDepth--
			return nil, false
		}
		if c == '(' {
			depth++
		} else if c == ')' {
			if depth == 1 {
				if c2, ok2 := p.peekByte(1); ok2 && c2 == ')' {
					p.advanceByte()
					p.advanceByte()
					p.openDepth--
					break
				}
			} else {
				depth--
			}
		}
		p.advanceByte()
		buf = append(buf, c)
	}
	bodyRange := ast.Range{Begin: bodyStart, End: p.curPos()}
	body := &ast.WordString{Str: string(buf), SplitFields: false, RangeVal: bodyRange}
	return &ast.WordArithmetic{Body: body, RangeVal: p.rangeFrom(start)}, true
}
