package parser

import (
	"testing"

	"mrshgo.dev/sh/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := NewData([]byte(src))
	prog, ok := p.Parse()
	if !ok {
		t.Fatalf("Parse(%q): %v", src, p.Err())
	}
	return prog
}

func firstCommand(t *testing.T, prog *ast.Program) ast.Command {
	t.Helper()
	if len(prog.Body) == 0 {
		t.Fatalf("program has no commands")
	}
	pl, ok := prog.Body[0].AndOrList.(*ast.Pipeline)
	if !ok {
		t.Fatalf("first and-or list is %T, not *ast.Pipeline", prog.Body[0].AndOrList)
	}
	if len(pl.Commands) == 0 {
		t.Fatalf("pipeline has no commands")
	}
	return pl.Commands[0]
}

func TestParseSimpleCommand(t *testing.T) {
	prog := mustParse(t, "echo foo bar\n")
	sc, ok := firstCommand(t, prog).(*ast.SimpleCommand)
	if !ok {
		t.Fatalf("command is %T, not *ast.SimpleCommand", firstCommand(t, prog))
	}
	if ast.FlattenWord(sc.Name) != "echo" {
		t.Errorf("Name = %q, want %q", ast.FlattenWord(sc.Name), "echo")
	}
	if len(sc.Arguments) != 2 {
		t.Fatalf("got %d arguments, want 2", len(sc.Arguments))
	}
	if ast.FlattenWord(sc.Arguments[0]) != "foo" || ast.FlattenWord(sc.Arguments[1]) != "bar" {
		t.Errorf("arguments = %v", sc.Arguments)
	}
}

func TestParseAssignmentOnlyCommand(t *testing.T) {
	prog := mustParse(t, "a=b c=d\n")
	sc, ok := firstCommand(t, prog).(*ast.SimpleCommand)
	if !ok {
		t.Fatalf("command is %T, not *ast.SimpleCommand", firstCommand(t, prog))
	}
	if sc.Name != nil {
		t.Errorf("Name = %v, want nil for an assignment-only command", sc.Name)
	}
	if len(sc.Assignments) != 2 {
		t.Fatalf("got %d assignments, want 2", len(sc.Assignments))
	}
	if sc.Assignments[0].Name != "a" || ast.FlattenWord(sc.Assignments[0].Value) != "b" {
		t.Errorf("first assignment = %+v", sc.Assignments[0])
	}
}

func TestParsePipeline(t *testing.T) {
	prog := mustParse(t, "foo | bar | baz\n")
	pl, ok := prog.Body[0].AndOrList.(*ast.Pipeline)
	if !ok {
		t.Fatalf("AndOrList is %T, not *ast.Pipeline", prog.Body[0].AndOrList)
	}
	if len(pl.Commands) != 3 {
		t.Fatalf("got %d commands in pipeline, want 3", len(pl.Commands))
	}
}

func TestParseAndOr(t *testing.T) {
	prog := mustParse(t, "foo && bar || baz\n")
	// Left-associative: (foo && bar) || baz.
	top, ok := prog.Body[0].AndOrList.(*ast.Binop)
	if !ok || top.Type != ast.BinopOrIf {
		t.Fatalf("top = %#v, want a BinopOrIf", prog.Body[0].AndOrList)
	}
	left, ok := top.Left.(*ast.Binop)
	if !ok || left.Type != ast.BinopAndIf {
		t.Fatalf("top.Left = %#v, want a BinopAndIf", top.Left)
	}
}

func TestParseBackgroundAmpersand(t *testing.T) {
	prog := mustParse(t, "foo &\n")
	if !prog.Body[0].Ampersand {
		t.Fatalf("Ampersand = false, want true")
	}
}

func TestParseIfElif(t *testing.T) {
	prog := mustParse(t, "if a; then b; elif c; then d; else e; fi\n")
	ifc, ok := firstCommand(t, prog).(*ast.IfClause)
	if !ok {
		t.Fatalf("command is %T, not *ast.IfClause", firstCommand(t, prog))
	}
	elif, ok := ifc.ElsePart.(*ast.IfClause)
	if !ok {
		t.Fatalf("ElsePart is %T, not *ast.IfClause", ifc.ElsePart)
	}
	if _, ok := elif.ElsePart.(*ast.BraceGroup); !ok {
		t.Fatalf("elif.ElsePart is %T, not *ast.BraceGroup", elif.ElsePart)
	}
}

func TestParseForWithList(t *testing.T) {
	prog := mustParse(t, "for i in a b c; do echo $i; done\n")
	fc, ok := firstCommand(t, prog).(*ast.ForClause)
	if !ok {
		t.Fatalf("command is %T, not *ast.ForClause", firstCommand(t, prog))
	}
	if fc.Name != "i" || !fc.In || len(fc.WordList) != 3 {
		t.Fatalf("ForClause = %+v", fc)
	}
}

func TestParseForWithoutIn(t *testing.T) {
	prog := mustParse(t, "for i; do echo $i; done\n")
	fc, ok := firstCommand(t, prog).(*ast.ForClause)
	if !ok {
		t.Fatalf("command is %T, not *ast.ForClause", firstCommand(t, prog))
	}
	if fc.In {
		t.Fatalf("In = true, want false when no 'in' clause is given")
	}
}

func TestParseWhileUntil(t *testing.T) {
	prog := mustParse(t, "while foo; do bar; done\n")
	lc, ok := firstCommand(t, prog).(*ast.LoopClause)
	if !ok || lc.Type != ast.LoopWhile {
		t.Fatalf("command = %#v, want a LoopWhile LoopClause", firstCommand(t, prog))
	}

	prog = mustParse(t, "until foo; do bar; done\n")
	lc, ok = firstCommand(t, prog).(*ast.LoopClause)
	if !ok || lc.Type != ast.LoopUntil {
		t.Fatalf("command = %#v, want a LoopUntil LoopClause", firstCommand(t, prog))
	}
}

func TestParseCase(t *testing.T) {
	prog := mustParse(t, "case $x in\na) foo ;;\nb|c) bar ;;\n*) baz\nesac\n")
	cc, ok := firstCommand(t, prog).(*ast.CaseClause)
	if !ok {
		t.Fatalf("command is %T, not *ast.CaseClause", firstCommand(t, prog))
	}
	if len(cc.Items) != 3 {
		t.Fatalf("got %d case items, want 3", len(cc.Items))
	}
	if len(cc.Items[1].Patterns) != 2 {
		t.Fatalf("second item has %d patterns, want 2", len(cc.Items[1].Patterns))
	}
	if cc.Items[2].HasTerminator {
		t.Fatalf("final item has a terminator, want the trailing ;; to be optional")
	}
}

func TestParseFunctionDefinition(t *testing.T) {
	prog := mustParse(t, "foo() { bar; }\n")
	fd, ok := firstCommand(t, prog).(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("command is %T, not *ast.FunctionDefinition", firstCommand(t, prog))
	}
	if fd.Name != "foo" {
		t.Errorf("Name = %q, want %q", fd.Name, "foo")
	}
	if _, ok := fd.Body.(*ast.BraceGroup); !ok {
		t.Errorf("Body is %T, not *ast.BraceGroup", fd.Body)
	}
}

func TestParseSubshell(t *testing.T) {
	prog := mustParse(t, "(foo; bar)\n")
	_, ok := firstCommand(t, prog).(*ast.Subshell)
	if !ok {
		t.Fatalf("command is %T, not *ast.Subshell", firstCommand(t, prog))
	}
}

func TestParseRedirects(t *testing.T) {
	prog := mustParse(t, "foo >bar 2>&1 <baz\n")
	sc := firstCommand(t, prog).(*ast.SimpleCommand)
	if len(sc.IORedirects) != 3 {
		t.Fatalf("got %d redirects, want 3", len(sc.IORedirects))
	}
	if sc.IORedirects[0].Op != ast.RedirGreat {
		t.Errorf("first redirect op = %v, want RedirGreat", sc.IORedirects[0].Op)
	}
	if sc.IORedirects[1].Op != ast.RedirDupOut || sc.IORedirects[1].IONumber != 2 {
		t.Errorf("second redirect = %+v, want a 2>&1 dup", sc.IORedirects[1])
	}
	if sc.IORedirects[2].Op != ast.RedirLess {
		t.Errorf("third redirect op = %v, want RedirLess", sc.IORedirects[2].Op)
	}
}

func TestParseHeredoc(t *testing.T) {
	prog := mustParse(t, "cat <<EOF\nhello\nworld\nEOF\n")
	sc := firstCommand(t, prog).(*ast.SimpleCommand)
	if len(sc.IORedirects) != 1 || sc.IORedirects[0].Op != ast.RedirHeredoc {
		t.Fatalf("IORedirects = %+v, want a single RedirHeredoc", sc.IORedirects)
	}
	body := sc.IORedirects[0].HereDocument
	if len(body) == 0 {
		t.Fatalf("heredoc body is empty")
	}
	var got string
	for _, w := range body {
		got += ast.FlattenWord(w)
	}
	if got != "hello\nworld\n" {
		t.Errorf("heredoc body = %q, want %q", got, "hello\nworld\n")
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []string{
		"if foo; then bar\n",     // missing fi
		"(foo\n",                 // missing )
		"{ foo\n",                // missing }
		"foo && \n",              // missing right operand
		"case $x in a) foo ;;\n", // missing esac
	}
	for _, src := range tests {
		p := NewData([]byte(src))
		if _, ok := p.Parse(); ok {
			t.Errorf("Parse(%q): expected a syntax error, got none", src)
		}
	}
}

// TestParseStrayTokenIsSyntaxError covers tokens that leave the grammar
// with nothing to start a command from (a stray separator, a leading
// binary operator, an unexpected closing paren): compoundListBody must
// report these rather than silently truncating the program.
func TestParseStrayTokenIsSyntaxError(t *testing.T) {
	tests := []string{
		"echo a;;echo b\n", // stray ';' with no command before the next one
		"&& echo a\n",      // leading && with no left-hand pipeline
		"|| echo a\n",      // leading || with no left-hand pipeline
		"echo a )\n",       // unexpected ')' outside of any subshell
	}
	for _, src := range tests {
		p := NewData([]byte(src))
		prog, ok := p.Parse()
		if ok {
			t.Errorf("Parse(%q): expected a syntax error, got success with Body=%v", src, prog.Body)
			continue
		}
		if p.Err() == nil {
			t.Errorf("Parse(%q): ok=false but Err() is nil", src)
		}
	}
}

func TestParseComment(t *testing.T) {
	prog := mustParse(t, "# a comment\nfoo\n")
	if len(prog.Body) != 1 {
		t.Fatalf("got %d command lists, want 1", len(prog.Body))
	}
}
