// Package printer implements Fprint, the textual rendering of a parsed
// program back into POSIX shell source (component F).
package printer

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"mrshgo.dev/sh/ast"
)

// Config controls how a program is rendered.
type Config struct {
	// Spaces selects space-based indentation of the given width; 0 (the
	// default) indents with a single tab per level.
	Spaces int
}

var printerFree = sync.Pool{
	New: func() any {
		return &printer{bw: bufio.NewWriter(nil)}
	},
}

// Fprint renders prog to w using c's settings.
func (c Config) Fprint(w io.Writer, prog *ast.Program) error {
	p := printerFree.Get().(*printer)
	p.reset()
	p.bw.Reset(w)
	p.cfg = c
	p.program(prog)
	err := p.bw.Flush()
	printerFree.Put(p)
	return err
}

// Fprint renders prog to w with the default Config.
func Fprint(w io.Writer, prog *ast.Program) error {
	return Config{}.Fprint(w, prog)
}

type printer struct {
	bw  *bufio.Writer
	cfg Config

	level       int
	wantSpace   bool
	wantNewline bool

	// pendingHeredocs holds the here-document bodies of redirections
	// written on the current line, to be emitted right after its
	// terminating newline (POSIX 2.7.4 lexical ordering).
	pendingHeredocs []*ast.IORedirect
}

func (p *printer) reset() {
	p.level = 0
	p.wantSpace = false
	p.wantNewline = false
	p.pendingHeredocs = p.pendingHeredocs[:0]
}

func (p *printer) str(s string) {
	if p.wantSpace {
		p.bw.WriteByte(' ')
		p.wantSpace = false
	}
	p.bw.WriteString(s)
}

func (p *printer) space() { p.wantSpace = true }

func (p *printer) indent() {
	switch {
	case p.cfg.Spaces == 0:
		for i := 0; i < p.level; i++ {
			p.bw.WriteByte('\t')
		}
	default:
		for i := 0; i < p.level*p.cfg.Spaces; i++ {
			p.bw.WriteByte(' ')
		}
	}
}

func (p *printer) newline() {
	p.bw.WriteByte('\n')
	p.wantSpace = false
	hdocs := p.pendingHeredocs
	p.pendingHeredocs = nil
	for _, r := range hdocs {
		for _, part := range r.HereDocument {
			if ws, ok := part.(*ast.WordString); ok {
				p.bw.WriteString(ws.Str)
			} else {
				p.bw.WriteString(ast.FlattenWord(part))
			}
		}
		p.bw.WriteString(ast.FlattenWord(r.Name))
		p.bw.WriteByte('\n')
	}
}

func (p *printer) program(prog *ast.Program) {
	p.commandLists(prog.Body)
	if p.wantNewline {
		p.newline()
	}
}

func (p *printer) commandLists(body []*ast.CommandList) {
	for i, cl := range body {
		if i > 0 {
			p.newline()
		}
		p.indent()
		p.commandList(cl)
	}
	p.wantNewline = len(body) > 0
}

func (p *printer) commandList(cl *ast.CommandList) {
	p.andOr(cl.AndOrList)
	if cl.Ampersand {
		p.str(" &")
	} else {
		p.str(";")
	}
}

func (p *printer) andOr(ao ast.AndOrList) {
	switch n := ao.(type) {
	case *ast.Pipeline:
		if n.Bang {
			p.str("!")
			p.space()
		}
		for i, cmd := range n.Commands {
			if i > 0 {
				p.str(" |")
				p.space()
			}
			p.command(cmd)
		}
	case *ast.Binop:
		p.andOr(n.Left)
		if n.Type == ast.BinopAndIf {
			p.str(" &&")
		} else {
			p.str(" ||")
		}
		p.space()
		p.newline()
		p.indent()
		p.andOr(n.Right)
	}
}

func (p *printer) command(c ast.Command) {
	switch n := c.(type) {
	case *ast.SimpleCommand:
		p.simpleCommand(n)
	case *ast.BraceGroup:
		p.str("{")
		p.block(n.Body)
		p.newline()
		p.indent()
		p.str("}")
	case *ast.Subshell:
		p.str("(")
		p.block(n.Body)
		p.newline()
		p.indent()
		p.str(")")
	case *ast.IfClause:
		p.ifClause(n, true)
	case *ast.ForClause:
		p.forClause(n)
	case *ast.LoopClause:
		p.loopClause(n)
	case *ast.CaseClause:
		p.caseClause(n)
	case *ast.FunctionDefinition:
		p.str(n.Name)
		p.str("() ")
		p.command(n.Body)
	}
}

func (p *printer) block(body []*ast.CommandList) {
	p.level++
	for _, cl := range body {
		p.newline()
		p.indent()
		p.commandList(cl)
	}
	p.level--
}

func (p *printer) ifClause(n *ast.IfClause, leading bool) {
	if leading {
		p.str("if")
		p.space()
	}
	p.block(n.Condition)
	p.newline()
	p.indent()
	p.str("then")
	p.block(n.Body)
	p.newline()
	p.indent()
	switch e := n.ElsePart.(type) {
	case *ast.IfClause:
		p.str("elif")
		p.space()
		p.ifClause(e, false)
		return
	case *ast.BraceGroup:
		p.str("else")
		p.block(e.Body)
		p.newline()
		p.indent()
	}
	p.str("fi")
}

func (p *printer) forClause(n *ast.ForClause) {
	p.str("for")
	p.space()
	p.str(n.Name)
	if n.In {
		p.space()
		p.str("in")
		for _, w := range n.WordList {
			p.space()
			p.word(w)
		}
	}
	p.str(";")
	p.space()
	p.str("do")
	p.block(n.Body)
	p.newline()
	p.indent()
	p.str("done")
}

func (p *printer) loopClause(n *ast.LoopClause) {
	if n.Type == ast.LoopWhile {
		p.str("while")
	} else {
		p.str("until")
	}
	p.space()
	p.block(n.Condition)
	p.newline()
	p.indent()
	p.str("do")
	p.block(n.Body)
	p.newline()
	p.indent()
	p.str("done")
}

func (p *printer) caseClause(n *ast.CaseClause) {
	p.str("case")
	p.space()
	p.word(n.Word)
	p.space()
	p.str("in")
	p.level++
	for _, it := range n.Items {
		p.newline()
		p.indent()
		for i, pat := range it.Patterns {
			if i > 0 {
				p.str("|")
			}
			p.word(pat)
		}
		p.str(")")
		p.block(it.Body)
		p.newline()
		p.indent()
		p.str(";;")
	}
	p.level--
	p.newline()
	p.indent()
	p.str("esac")
}

func (p *printer) simpleCommand(n *ast.SimpleCommand) {
	first := true
	for _, a := range n.Assignments {
		if !first {
			p.space()
		}
		p.str(a.Name)
		p.bw.WriteByte('=')
		p.wantSpace = false
		p.word(a.Value)
		first = false
	}
	if n.Name != nil {
		if !first {
			p.space()
		}
		p.word(n.Name)
		first = false
	}
	for _, a := range n.Arguments {
		if !first {
			p.space()
		}
		p.word(a)
		first = false
	}
	for _, r := range n.IORedirects {
		if !first {
			p.space()
		}
		p.redirect(r)
		first = false
	}
}

var redirOpText = map[ast.RedirOp]string{
	ast.RedirLess:       "<",
	ast.RedirGreat:      ">",
	ast.RedirClobber:    ">|",
	ast.RedirAppend:     ">>",
	ast.RedirDupIn:      "<&",
	ast.RedirDupOut:     ">&",
	ast.RedirReadWrite:  "<>",
	ast.RedirHeredoc:    "<<",
	ast.RedirHeredocDash: "<<-",
}

func (p *printer) redirect(r *ast.IORedirect) {
	if r.IONumber >= 0 {
		p.str(fmt.Sprintf("%d", r.IONumber))
		p.wantSpace = false
	}
	p.str(redirOpText[r.Op])
	p.wantSpace = false
	p.space()
	p.word(r.Name)
	if r.Op == ast.RedirHeredoc || r.Op == ast.RedirHeredocDash {
		p.pendingHeredocs = append(p.pendingHeredocs, r)
	}
}

func (p *printer) word(w ast.Word) {
	p.str(ast.FlattenWord(w))
	p.wantSpace = false
}
