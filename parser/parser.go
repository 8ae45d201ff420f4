// Package parser implements the POSIX Shell Command Language lexer and
// recursive-descent parser (components A, C, D and E of the core), and
// exposes the arithmetic sub-grammar used by both $((...)) and
// parse_arithm_expr.
package parser

import (
	"bytes"
	"fmt"

	"mrshgo.dev/sh/ast"
	"mrshgo.dev/sh/token"
)

// SyntaxError is the result of a failed parse: a message and the precise
// source position at which the parser gave up (spec §7).
type SyntaxError struct {
	Message string
	Pos     token.Position
	// IO is set when the underlying failure was a read error on the
	// backing file descriptor rather than a grammar violation.
	IO bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// layer is one input source on the Parser's layer stack: either the
// original source buffer, or text pushed in front of it by alias
// expansion.
type layer struct {
	buf       *buffer
	aliasName string // empty for the original (non-alias) layer
}

// Parser turns shell source text into an AST. A Parser holds at most one
// open file descriptor (when constructed from one); it is not safe for
// concurrent use, and parsing is re-entrant only in the sense that
// command-substitution bodies recursively drive the very same Parser.
type Parser struct {
	layers []*layer // layers[len-1] is read from first

	aliasFunc  AliasFunc
	aliasStack []string // alias names currently being expanded (P4 guard)

	err *SyntaxError

	continuation bool // set by Line when input ends mid-construct

	// inAliasPosition is true only while commandNode is checking a word
	// that sits in command position and is not a reserved word — the one
	// moment alias substitution may trigger.
	inAliasPosition bool

	// openDepth counts currently-open quotes, parameter expansions,
	// subshell parens, command/arithmetic substitutions and backticks; Line
	// combines it with heredocPending for ContinuationLine.
	openDepth int

	heredocPending []*pendingHeredoc
}

// NewFD builds a Parser reading lazily from the raw file descriptor fd
// (spec §6, parser_with_fd). Closing the Parser's backing buffer is the
// caller's responsibility once parsing is done; the Parser itself holds no
// separate Close method since it never owns the descriptor.
func NewFD(fd int) *Parser {
	return newParser(newFDBuffer(fd))
}

// NewData builds a Parser over a fixed, already-complete byte slice (spec
// §6, parser_with_data).
func NewData(data []byte) *Parser {
	return newParser(newDataBuffer(data))
}

// NewShared builds a Parser over a caller-owned, caller-topped-up buffer
// (spec §6, parser_with_buffer).
func NewShared(shared *bytes.Buffer) *Parser {
	return newParser(newSharedBuffer(shared))
}

func newParser(b *buffer) *Parser {
	return &Parser{layers: []*layer{{buf: b}}}
}

// EOF reports whether the parser has consumed all available input across
// every layer.
func (p *Parser) EOF() bool {
	for i := len(p.layers) - 1; i >= 0; i-- {
		if !p.layers[i].buf.atEOF() {
			return false
		}
	}
	return true
}

// ContinuationLine reports whether the most recent Line call ended inside
// an unterminated construct (open quote, open here-document, open $(...)
// or backtick, open brace/paren, or a trailing backslash at line end).
func (p *Parser) ContinuationLine() bool { return p.continuation }

// Err returns the recorded syntax error, if any, from the most recent
// failed parse.
func (p *Parser) Err() *SyntaxError { return p.err }

// Reset clears any recorded error and discards pending tokens and
// here-documents, so the Parser can be reused on the next line of input
// (spec §7: "Non-recoverable within the current parse; call parser_reset
// to resume").
func (p *Parser) Reset() {
	p.err = nil
	p.continuation = false
	p.heredocPending = nil
}

func (p *Parser) fail(pos token.Position, format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = &SyntaxError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

func (p *Parser) failIO(pos token.Position, err error) {
	if p.err != nil {
		return
	}
	p.err = &SyntaxError{Message: err.Error(), Pos: pos, IO: true}
}

func (p *Parser) failed() bool { return p.err != nil }

// --- input-layer primitives -------------------------------------------------

func (p *Parser) topBuf() *buffer { return p.layers[len(p.layers)-1].buf }

// popExhaustedLayers drops alias layers that have been fully consumed, so
// reads fall through to the next-outer layer (or the original source).
func (p *Parser) popExhaustedLayers() {
	for len(p.layers) > 1 && p.topBuf().atEOF() {
		top := p.layers[len(p.layers)-1]
		if top.aliasName != "" {
			// Pop the name off aliasStack too: once this layer is
			// fully consumed the name is no longer "being expanded".
			for i := len(p.aliasStack) - 1; i >= 0; i-- {
				if p.aliasStack[i] == top.aliasName {
					p.aliasStack = append(p.aliasStack[:i], p.aliasStack[i+1:]...)
					break
				}
			}
		}
		p.layers = p.layers[:len(p.layers)-1]
	}
}

func (p *Parser) pushAliasLayer(name, text string) {
	p.aliasStack = append(p.aliasStack, name)
	p.layers = append(p.layers, &layer{buf: newDataBuffer([]byte(text)), aliasName: name})
}

// peekByte looks d bytes ahead of the current read position across the
// layer stack, without consuming anything.
func (p *Parser) peekByte(d int) (byte, bool) {
	p.popExhaustedLayers()
	for i := len(p.layers) - 1; i >= 0; i-- {
		b := p.layers[i].buf
		remaining, _ := b.peek(d + 1)
		if len(remaining) > d {
			return remaining[d], true
		}
		d -= len(remaining)
		if d < 0 {
			return 0, false
		}
		if !b.atEOF() {
			return 0, false
		}
	}
	return 0, false
}

func (p *Parser) curPos() token.Position {
	p.popExhaustedLayers()
	return p.topBuf().position()
}

// advanceByte consumes and returns the next byte from the top of the layer
// stack, falling through to outer layers as inner ones are exhausted.
func (p *Parser) advanceByte() (byte, bool) {
	p.popExhaustedLayers()
	b := p.topBuf()
	if b.atEOF() {
		return 0, false
	}
	if b.ioErr != nil {
		p.failIO(b.position(), b.ioErr)
		return 0, false
	}
	return b.advance(), true
}

func (p *Parser) atEOF() bool {
	p.popExhaustedLayers()
	return len(p.layers) == 1 && p.topBuf().atEOF()
}

func (p *Parser) rangeFrom(start token.Position) ast.Range {
	return ast.Range{Begin: start, End: p.curPos()}
}
