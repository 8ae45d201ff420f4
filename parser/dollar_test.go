package parser

import (
	"testing"

	"mrshgo.dev/sh/ast"
)

func parseArgWord(t *testing.T, src string) ast.Word {
	t.Helper()
	prog := mustParse(t, src)
	sc := firstCommand(t, prog).(*ast.SimpleCommand)
	if len(sc.Arguments) != 1 {
		t.Fatalf("got %d arguments, want 1", len(sc.Arguments))
	}
	return sc.Arguments[0]
}

func TestDollarBareName(t *testing.T) {
	w := parseArgWord(t, "echo $x\n")
	p, ok := w.(*ast.WordParameter)
	if !ok {
		t.Fatalf("argument is %T, not *ast.WordParameter", w)
	}
	if p.Name != "x" || p.Op != ast.ParamNone || p.Length {
		t.Fatalf("got %+v", p)
	}
}

func TestDollarSpecialParam(t *testing.T) {
	w := parseArgWord(t, "echo $?\n")
	p := w.(*ast.WordParameter)
	if p.Name != "?" {
		t.Fatalf("Name = %q, want %q", p.Name, "?")
	}
}

func TestDollarBracedLength(t *testing.T) {
	w := parseArgWord(t, "echo ${#x}\n")
	p := w.(*ast.WordParameter)
	if !p.Length || p.Name != "x" {
		t.Fatalf("got %+v", p)
	}
}

func TestDollarBracedDefaultWithColon(t *testing.T) {
	w := parseArgWord(t, "echo ${x:-d}\n")
	p := w.(*ast.WordParameter)
	if p.Name != "x" || p.Op != ast.ParamDefault || !p.Colon {
		t.Fatalf("got %+v", p)
	}
	if ast.FlattenWord(p.Arg) != "d" {
		t.Fatalf("Arg = %q, want %q", ast.FlattenWord(p.Arg), "d")
	}
}

func TestDollarBracedDefaultWithoutColon(t *testing.T) {
	w := parseArgWord(t, "echo ${x-d}\n")
	p := w.(*ast.WordParameter)
	if p.Op != ast.ParamDefault || p.Colon {
		t.Fatalf("got %+v", p)
	}
}

func TestDollarBracedRemoveSuffixLongest(t *testing.T) {
	w := parseArgWord(t, "echo ${x%%*.go}\n")
	p := w.(*ast.WordParameter)
	if p.Op != ast.ParamRemLongestSuffix {
		t.Fatalf("Op = %v, want ParamRemLongestSuffix", p.Op)
	}
}

func TestDollarBracedRemovePrefixShortest(t *testing.T) {
	w := parseArgWord(t, "echo ${x#pre}\n")
	p := w.(*ast.WordParameter)
	if p.Op != ast.ParamRemShortestPrefix {
		t.Fatalf("Op = %v, want ParamRemShortestPrefix", p.Op)
	}
}

func TestDollarArithmeticWord(t *testing.T) {
	w := parseArgWord(t, "echo $((1+2))\n")
	a, ok := w.(*ast.WordArithmetic)
	if !ok {
		t.Fatalf("argument is %T, not *ast.WordArithmetic", w)
	}
	if ast.FlattenWord(a.Body) != "1+2" {
		t.Fatalf("Body = %q, want %q", ast.FlattenWord(a.Body), "1+2")
	}
}

func TestDollarBracedUnterminatedIsError(t *testing.T) {
	p := NewData([]byte("echo ${x\n"))
	if _, ok := p.Parse(); ok {
		t.Fatalf("expected a syntax error for an unterminated ${ expansion")
	}
}
