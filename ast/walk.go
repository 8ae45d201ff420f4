package ast

// Visitor is invoked by Walk for every immediate child of a node, in
// source order. If Visit returns a non-nil Visitor, Walk recurses into
// that child using the returned Visitor.
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk visits node and, if the returned Visitor is non-nil, its children,
// recursively, in source order.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	v = v.Visit(node)
	if v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, c := range n.Body {
			Walk(v, c)
		}
	case *CommandList:
		Walk(v, n.AndOrList)
	case *Pipeline:
		for _, c := range n.Commands {
			Walk(v, c)
		}
	case *Binop:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *SimpleCommand:
		for _, a := range n.Assignments {
			Walk(v, a)
		}
		if n.Name != nil {
			Walk(v, n.Name)
		}
		for _, a := range n.Arguments {
			Walk(v, a)
		}
		for _, r := range n.IORedirects {
			Walk(v, r)
		}
	case *BraceGroup:
		for _, c := range n.Body {
			Walk(v, c)
		}
	case *Subshell:
		for _, c := range n.Body {
			Walk(v, c)
		}
	case *IfClause:
		for _, c := range n.Condition {
			Walk(v, c)
		}
		for _, c := range n.Body {
			Walk(v, c)
		}
		if n.ElsePart != nil {
			Walk(v, n.ElsePart)
		}
	case *ForClause:
		for _, w := range n.WordList {
			Walk(v, w)
		}
		for _, c := range n.Body {
			Walk(v, c)
		}
	case *LoopClause:
		for _, c := range n.Condition {
			Walk(v, c)
		}
		for _, c := range n.Body {
			Walk(v, c)
		}
	case *CaseClause:
		Walk(v, n.Word)
		for _, it := range n.Items {
			Walk(v, it)
		}
	case *CaseItem:
		for _, p := range n.Patterns {
			Walk(v, p)
		}
		for _, c := range n.Body {
			Walk(v, c)
		}
	case *FunctionDefinition:
		Walk(v, n.Body)
		for _, r := range n.IORedirects {
			Walk(v, r)
		}

	case *IORedirect:
		Walk(v, n.Name)
		for _, w := range n.HereDocument {
			Walk(v, w)
		}
	case *Assignment:
		Walk(v, n.Value)

	case *WordString:
		// leaf
	case *WordParameter:
		if n.Arg != nil {
			Walk(v, n.Arg)
		}
	case *WordCommand:
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *WordArithmetic:
		Walk(v, n.Body)
	case *WordList:
		for _, p := range n.Parts {
			Walk(v, p)
		}

	case *ArithmLiteral, *ArithmVariable:
		// leaves
	case *ArithmUnOp:
		Walk(v, n.Body)
	case *ArithmBinOp:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *ArithmCond:
		Walk(v, n.Condition)
		Walk(v, n.Body)
		Walk(v, n.ElsePart)
	case *ArithmAssign:
		Walk(v, n.Value)
	case *ArithmParen:
		Walk(v, n.Body)
	}

	v.Visit(nil)
}
