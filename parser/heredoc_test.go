package parser

import (
	"testing"

	"mrshgo.dev/sh/ast"
)

func heredocBody(t *testing.T, prog *ast.Program, argIndex int) []ast.Word {
	t.Helper()
	sc := firstCommand(t, prog).(*ast.SimpleCommand)
	if len(sc.IORedirects) <= argIndex {
		t.Fatalf("got %d redirects, want more than %d", len(sc.IORedirects), argIndex)
	}
	return sc.IORedirects[argIndex].HereDocument
}

func TestHeredocExpandsParameters(t *testing.T) {
	prog := mustParse(t, "cat <<EOF\nhi $x\nEOF\n")
	body := heredocBody(t, prog, 0)
	var got string
	for _, w := range body {
		got += ast.FlattenWord(w)
	}
	if got != "hi $x\n" {
		t.Fatalf("body = %q, want %q", got, "hi $x\n")
	}
	foundParam := false
	for _, w := range body {
		if _, ok := w.(*ast.WordParameter); ok {
			foundParam = true
		}
	}
	if !foundParam {
		t.Fatalf("expected an *ast.WordParameter among the heredoc body parts")
	}
}

func TestHeredocQuotedDelimiterSuppressesExpansion(t *testing.T) {
	prog := mustParse(t, "cat <<'EOF'\nhi $x\nEOF\n")
	body := heredocBody(t, prog, 0)
	for _, w := range body {
		if _, ok := w.(*ast.WordParameter); ok {
			t.Fatalf("expansion must not occur with a quoted delimiter, got %#v", w)
		}
	}
}

func TestHeredocDashStripsLeadingTabs(t *testing.T) {
	prog := mustParse(t, "cat <<-EOF\n\t\thi\n\tEOF\n")
	body := heredocBody(t, prog, 0)
	var got string
	for _, w := range body {
		got += ast.FlattenWord(w)
	}
	if got != "hi\n" {
		t.Fatalf("body = %q, want %q", got, "hi\n")
	}
}

func TestMultipleHeredocsOnOneLineInOrder(t *testing.T) {
	prog := mustParse(t, "cat <<A <<B\nfirst\nA\nsecond\nB\n")
	sc := firstCommand(t, prog).(*ast.SimpleCommand)
	if len(sc.IORedirects) != 2 {
		t.Fatalf("got %d redirects, want 2", len(sc.IORedirects))
	}
	var a, b string
	for _, w := range sc.IORedirects[0].HereDocument {
		a += ast.FlattenWord(w)
	}
	for _, w := range sc.IORedirects[1].HereDocument {
		b += ast.FlattenWord(w)
	}
	if a != "first\n" || b != "second\n" {
		t.Fatalf("got a=%q b=%q, want a=%q b=%q", a, b, "first\n", "second\n")
	}
}

func TestHeredocUnterminatedIsError(t *testing.T) {
	p := NewData([]byte("cat <<EOF\nhi\n"))
	if _, ok := p.Parse(); ok {
		t.Fatalf("expected a syntax error for a heredoc missing its terminator")
	}
}
