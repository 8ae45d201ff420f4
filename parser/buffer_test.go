package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDataBufferAdvancePosition(t *testing.T) {
	b := newDataBuffer([]byte("ab\ncd"))
	for _, want := range []byte("ab\ncd") {
		c, ok := b.byteAt(0)
		if !ok || c != want {
			t.Fatalf("byteAt(0) = %q, %v, want %q, true", c, ok, want)
		}
		got := b.advance()
		if got != want {
			t.Fatalf("advance() = %q, want %q", got, want)
		}
	}
	if !b.atEOF() {
		t.Fatalf("expected atEOF after consuming every byte")
	}

	pos := b.position()
	if pos.Offset != 5 || pos.Line != 2 || pos.Column != 3 {
		t.Fatalf("position = %+v, want offset=5 line=2 column=3", pos)
	}
}

func TestDataBufferNewlineResetsColumn(t *testing.T) {
	b := newDataBuffer([]byte("x\ny"))
	b.advance() // 'x' -> column 2
	b.advance() // '\n' -> line 2, column 1
	pos := b.position()
	if pos.Line != 2 || pos.Column != 1 {
		t.Fatalf("position after newline = %+v, want line=2 column=1", pos)
	}
}

func TestReaderBufferFillsLazily(t *testing.T) {
	b := newReaderBuffer(strings.NewReader("hello"))
	got, err := b.peek(5)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("peek(5) = %q, want %q", got, "hello")
	}
	if b.atEOF() {
		t.Fatalf("atEOF before any bytes were consumed")
	}
	for range "hello" {
		b.advance()
	}
	if !b.atEOF() {
		t.Fatalf("expected atEOF once every byte is consumed")
	}
}

func TestReaderBufferSurfacesIOError(t *testing.T) {
	b := newReaderBuffer(errReader{})
	_, err := b.peek(1)
	if err == nil {
		t.Fatalf("expected peek to surface the reader's error")
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errBoom }

var errBoom = errors.New("boom")

func TestSharedBufferTopUpBetweenReads(t *testing.T) {
	var shared bytes.Buffer
	shared.WriteString("ab")
	b := newSharedBuffer(&shared)

	c, ok := b.byteAt(0)
	if !ok || c != 'a' {
		t.Fatalf("byteAt(0) = %q, %v, want 'a', true", c, ok)
	}
	b.advance()
	b.advance()

	shared.WriteString("cd")
	c, ok = b.byteAt(0)
	if !ok || c != 'c' {
		t.Fatalf("byteAt(0) after topping up = %q, %v, want 'c', true", c, ok)
	}
}
