package ast

// Copy returns a structurally identical deep copy of node: no slice, map
// or pointer in the result aliases one in the original (invariant P2).
// Copy panics if node is an unrecognised implementation of one of the AST
// interfaces; every type defined in this package is handled.
func Copy(node Node) Node {
	if node == nil {
		return nil
	}
	switch n := node.(type) {
	case *Program:
		c := *n
		c.Body = copyCommandLists(n.Body)
		return &c
	case *CommandList:
		return copyCommandList(n)
	case *Pipeline:
		c := *n
		c.Commands = make([]Command, len(n.Commands))
		for i, cmd := range n.Commands {
			c.Commands[i] = Copy(cmd).(Command)
		}
		return &c
	case *Binop:
		c := *n
		c.Left = Copy(n.Left).(AndOrList)
		c.Right = Copy(n.Right).(AndOrList)
		return &c

	case *SimpleCommand:
		c := *n
		if n.Name != nil {
			c.Name = Copy(n.Name).(Word)
		}
		c.Arguments = copyWords(n.Arguments)
		c.IORedirects = copyRedirects(n.IORedirects)
		c.Assignments = copyAssignments(n.Assignments)
		return &c
	case *BraceGroup:
		c := *n
		c.Body = copyCommandLists(n.Body)
		return &c
	case *Subshell:
		c := *n
		c.Body = copyCommandLists(n.Body)
		return &c
	case *IfClause:
		c := *n
		c.Condition = copyCommandLists(n.Condition)
		c.Body = copyCommandLists(n.Body)
		if n.ElsePart != nil {
			c.ElsePart = Copy(n.ElsePart).(Command)
		}
		return &c
	case *ForClause:
		c := *n
		c.WordList = copyWords(n.WordList)
		c.Body = copyCommandLists(n.Body)
		return &c
	case *LoopClause:
		c := *n
		c.Condition = copyCommandLists(n.Condition)
		c.Body = copyCommandLists(n.Body)
		return &c
	case *CaseClause:
		c := *n
		c.Word = Copy(n.Word).(Word)
		c.Items = make([]*CaseItem, len(n.Items))
		for i, it := range n.Items {
			c.Items[i] = Copy(it).(*CaseItem)
		}
		return &c
	case *CaseItem:
		c := *n
		c.Patterns = copyWords(n.Patterns)
		c.Body = copyCommandLists(n.Body)
		return &c
	case *FunctionDefinition:
		c := *n
		c.Body = Copy(n.Body).(Command)
		c.IORedirects = copyRedirects(n.IORedirects)
		return &c

	case *IORedirect:
		c := *n
		c.Name = Copy(n.Name).(Word)
		c.HereDocument = copyWords(n.HereDocument)
		return &c
	case *Assignment:
		c := *n
		c.Value = Copy(n.Value).(Word)
		return &c

	case *WordString:
		c := *n
		return &c
	case *WordParameter:
		c := *n
		if n.Arg != nil {
			c.Arg = Copy(n.Arg).(Word)
		}
		return &c
	case *WordCommand:
		c := *n
		if n.Body != nil {
			bodyCopy := Copy(n.Body).(*Program)
			c.Body = bodyCopy
		}
		return &c
	case *WordArithmetic:
		c := *n
		c.Body = Copy(n.Body).(Word)
		return &c
	case *WordList:
		c := *n
		c.Parts = copyWords(n.Parts)
		return &c

	case *ArithmLiteral:
		c := *n
		return &c
	case *ArithmVariable:
		c := *n
		return &c
	case *ArithmUnOp:
		c := *n
		c.Body = Copy(n.Body).(ArithmExpr)
		return &c
	case *ArithmBinOp:
		c := *n
		c.Left = Copy(n.Left).(ArithmExpr)
		c.Right = Copy(n.Right).(ArithmExpr)
		return &c
	case *ArithmCond:
		c := *n
		c.Condition = Copy(n.Condition).(ArithmExpr)
		c.Body = Copy(n.Body).(ArithmExpr)
		c.ElsePart = Copy(n.ElsePart).(ArithmExpr)
		return &c
	case *ArithmAssign:
		c := *n
		c.Value = Copy(n.Value).(ArithmExpr)
		return &c
	case *ArithmParen:
		c := *n
		c.Body = Copy(n.Body).(ArithmExpr)
		return &c
	}
	panic("ast: Copy: unhandled node type")
}

func copyCommandList(cl *CommandList) *CommandList {
	c := *cl
	c.AndOrList = Copy(cl.AndOrList).(AndOrList)
	return &c
}

func copyCommandLists(in []*CommandList) []*CommandList {
	if in == nil {
		return nil
	}
	out := make([]*CommandList, len(in))
	for i, cl := range in {
		out[i] = copyCommandList(cl)
	}
	return out
}

func copyWords(in []Word) []Word {
	if in == nil {
		return nil
	}
	out := make([]Word, len(in))
	for i, w := range in {
		out[i] = Copy(w).(Word)
	}
	return out
}

func copyRedirects(in []*IORedirect) []*IORedirect {
	if in == nil {
		return nil
	}
	out := make([]*IORedirect, len(in))
	for i, r := range in {
		out[i] = Copy(r).(*IORedirect)
	}
	return out
}

func copyAssignments(in []*Assignment) []*Assignment {
	if in == nil {
		return nil
	}
	out := make([]*Assignment, len(in))
	for i, a := range in {
		out[i] = Copy(a).(*Assignment)
	}
	return out
}
