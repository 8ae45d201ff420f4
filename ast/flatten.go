package ast

import "strings"

// FlattenWord renders w into its concatenated raw source text, without
// performing any expansion: parameter/command/arithmetic expansions are
// rendered back in their "$..." source form. It is a convenience used by
// callers that need the literal text a word came from, e.g. alias names,
// here-document delimiters and case patterns.
func FlattenWord(w Word) string {
	var b strings.Builder
	flattenWord(&b, w)
	return b.String()
}

func flattenWord(b *strings.Builder, w Word) {
	switch n := w.(type) {
	case *WordString:
		if n.SingleQuoted {
			b.WriteByte('\'')
			b.WriteString(n.Str)
			b.WriteByte('\'')
			return
		}
		b.WriteString(n.Str)
	case *WordList:
		if n.DoubleQuoted {
			b.WriteByte('"')
		}
		for _, p := range n.Parts {
			flattenWord(b, p)
		}
		if n.DoubleQuoted {
			b.WriteByte('"')
		}
	case *WordParameter:
		flattenParam(b, n)
	case *WordCommand:
		if n.BackQuoted {
			b.WriteByte('`')
		} else {
			b.WriteString("$(")
		}
		if n.Body != nil {
			flattenProgramBody(b, n.Body)
		}
		if n.BackQuoted {
			b.WriteByte('`')
		} else {
			b.WriteByte(')')
		}
	case *WordArithmetic:
		b.WriteString("$((")
		flattenWord(b, n.Body)
		b.WriteString("))")
	}
}

var paramOpText = map[ParamOp]string{
	ParamDefault:           "-",
	ParamAssign:            "=",
	ParamError:             "?",
	ParamAlt:               "+",
	ParamRemShortestPrefix: "#",
	ParamRemLongestPrefix:  "##",
	ParamRemShortestSuffix: "%",
	ParamRemLongestSuffix:  "%%",
}

func flattenParam(b *strings.Builder, p *WordParameter) {
	if p.Length {
		b.WriteString("${#")
		b.WriteString(p.Name)
		b.WriteByte('}')
		return
	}
	if p.Op == ParamNone {
		b.WriteByte('$')
		b.WriteString(p.Name)
		return
	}
	b.WriteString("${")
	b.WriteString(p.Name)
	if p.Op == ParamDefault || p.Op == ParamAssign || p.Op == ParamError || p.Op == ParamAlt {
		if p.Colon {
			b.WriteByte(':')
		}
	}
	b.WriteString(paramOpText[p.Op])
	if p.Arg != nil {
		flattenWord(b, p.Arg)
	}
	b.WriteByte('}')
}

// flattenProgramBody renders the textual form of the statements inside a
// command substitution. Only simple commands are rendered, as their name
// and arguments (assignments and redirections are left out); every other
// command is rendered as "...". The result is useful for diagnostics but is
// not round-trip faithful (the printer package is what P1 holds for).
func flattenProgramBody(b *strings.Builder, p *Program) {
	for i, cl := range p.Body {
		if i > 0 {
			b.WriteString("; ")
		}
		flattenCommandList(b, cl)
	}
}

func flattenCommandList(b *strings.Builder, cl *CommandList) {
	flattenAndOr(b, cl.AndOrList)
	if cl.Ampersand {
		b.WriteString(" &")
	}
}

func flattenAndOr(b *strings.Builder, ao AndOrList) {
	switch n := ao.(type) {
	case *Pipeline:
		if n.Bang {
			b.WriteString("! ")
		}
		for i, c := range n.Commands {
			if i > 0 {
				b.WriteString(" | ")
			}
			flattenCommand(b, c)
		}
	case *Binop:
		flattenAndOr(b, n.Left)
		if n.Type == BinopAndIf {
			b.WriteString(" && ")
		} else {
			b.WriteString(" || ")
		}
		flattenAndOr(b, n.Right)
	}
}

func flattenCommand(b *strings.Builder, c Command) {
	sc, ok := c.(*SimpleCommand)
	if !ok {
		b.WriteString("...")
		return
	}
	parts := make([]string, 0, len(sc.Arguments)+1)
	if sc.Name != nil {
		parts = append(parts, FlattenWord(sc.Name))
	}
	for _, a := range sc.Arguments {
		parts = append(parts, FlattenWord(a))
	}
	b.WriteString(strings.Join(parts, " "))
}
