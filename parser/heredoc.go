package parser

import (
	"strings"

	"mrshgo.dev/sh/ast"
)

// pendingHeredoc is a <</<<- redirection whose delimiter has been parsed
// but whose body has not yet been collected: collection is deferred to the
// next unescaped newline at the top of the input (spec §4.C), so that
// multiple here-documents introduced on the same line are gathered in the
// order their redirections appeared.
type pendingHeredoc struct {
	redir  *ast.IORedirect
	delim  string
	quoted bool
	dashed bool
}

// readHeredocDelimiter reads the word naming a here-document's delimiter
// and reports both its literal text and whether any part of it was quoted:
// a quoted delimiter (POSIX 2.7.4) suppresses all expansion in the body and
// is compared against candidate terminator lines literally.
func (p *Parser) readHeredocDelimiter() (string, bool, bool) {
	w, ok := p.readWord()
	if !ok {
		return "", false, false
	}
	text, quoted := wordLiteralText(w)
	return text, quoted, true
}

// wordLiteralText extracts the literal character content of w along with
// whether it was written with any quoting. Expansions are not meaningful
// inside a here-document delimiter; any encountered are rendered back via
// FlattenWord and treated as unquoted, which mirrors historical shell
// behaviour of simply not special-casing them.
func wordLiteralText(w ast.Word) (string, bool) {
	switch n := w.(type) {
	case *ast.WordString:
		return n.Str, n.SingleQuoted
	case *ast.WordList:
		var b strings.Builder
		quoted := n.DoubleQuoted
		for _, part := range n.Parts {
			t, q := wordLiteralText(part)
			b.WriteString(t)
			if q {
				quoted = true
			}
		}
		return b.String(), quoted
	default:
		return ast.FlattenWord(w), false
	}
}

// registerPendingHeredoc queues redir for body collection at the next
// newline.
func (p *Parser) registerPendingHeredoc(redir *ast.IORedirect, delim string, quoted bool) {
	p.heredocPending = append(p.heredocPending, &pendingHeredoc{
		redir:  redir,
		delim:  delim,
		quoted: quoted,
		dashed: redir.Op == ast.RedirHeredocDash,
	})
}

// collectPendingHeredocs collects the body of every here-document queued
// on the line just terminated, in declaration order, and attaches each to
// its owning IORedirect (spec invariant on IORedirect: HereDocument is
// populated once its owning redirection's line has been fully read).
func (p *Parser) collectPendingHeredocs() {
	pending := p.heredocPending
	p.heredocPending = nil
	for _, h := range pending {
		h.redir.HereDocument = p.collectHeredocBody(h)
	}
}

func (p *Parser) peekRawLine() string {
	var buf []byte
	for i := 0; ; i++ {
		c, ok := p.peekByte(i)
		if !ok || c == '\n' {
			break
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func (p *Parser) consumeRawLineBytes(n int) string {
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		b, _ := p.advanceByte()
		buf[i] = b
	}
	return string(buf)
}

// collectHeredocBody reads successive lines until one equals h.delim
// (after stripping leading tabs, for the <<- form), consuming the
// terminator line but not including it in the result.
func (p *Parser) collectHeredocBody(h *pendingHeredoc) []ast.Word {
	var words []ast.Word
	for {
		if p.atEOF() {
			p.fail(p.curPos(), "unterminated here-document, expected delimiter %q", h.delim)
			break
		}
		raw := p.peekRawLine()
		check := raw
		if h.dashed {
			check = strings.TrimLeft(check, "\t")
		}
		if check == h.delim {
			p.consumeRawLineBytes(len(raw))
			if c, ok := p.peekByte(0); ok && c == '\n' {
				p.advanceByte()
			}
			break
		}

		if h.dashed {
			for {
				c, ok := p.peekByte(0)
				if !ok || c != '\t' {
					break
				}
				p.advanceByte()
			}
		}
		lineStart := p.curPos()

		if h.quoted {
			text := p.consumeRawLineBytes(len(p.peekRawLine()))
			words = append(words, &ast.WordString{Str: text + "\n", RangeVal: p.rangeFrom(lineStart)})
		} else {
			for {
				c, ok := p.peekByte(0)
				if !ok || c == '\n' {
					break
				}
				part, ok := p.readWordPart(ctxHeredocLine)
				if !ok {
					break
				}
				words = append(words, part)
			}
			words = append(words, &ast.WordString{Str: "\n", RangeVal: p.rangeFrom(p.curPos())})
		}

		if c, ok := p.peekByte(0); ok && c == '\n' {
			p.advanceByte()
		}
	}
	return words
}
