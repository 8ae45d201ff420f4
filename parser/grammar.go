package parser

import (
	"strconv"

	"mrshgo.dev/sh/ast"
	"mrshgo.dev/sh/token"
)

// Parse reads and parses the whole of the Parser's input as a single
// program (component D's batch entry point).
func (p *Parser) Parse() (*ast.Program, bool) {
	prog := p.parseProgram()
	if p.failed() {
		return nil, false
	}
	return prog, true
}

// Line parses one top-level line of input: a sequence of command lists up
// to (and consuming) the next unescaped top-level newline, or EOF. It is
// meant for interactive or incremental callers that feed the Parser one
// line at a time; ContinuationLine reports whether the line ended with an
// unterminated construct still open, so the caller knows to supply more
// input before treating the returned Program as final.
func (p *Parser) Line() (*ast.Program, bool) {
	p.continuation = false
	start := p.curPos()
	if p.atEOF() {
		return nil, false
	}
	body := p.compoundListBody(func() bool {
		if p.openDepth > 0 || len(p.heredocPending) > 0 {
			return false
		}
		c, ok := p.peekByte(0)
		return ok && c == '\n'
	})
	if c, ok := p.peekByte(0); ok && c == '\n' {
		p.consumeNewline()
	}
	p.continuation = p.openDepth > 0 || len(p.heredocPending) > 0
	return &ast.Program{Body: body, RangeVal: p.rangeFrom(start)}, true
}

func (p *Parser) parseProgram() *ast.Program {
	start := p.curPos()
	body := p.compoundListBody(func() bool { return false })
	return &ast.Program{Body: body, RangeVal: p.rangeFrom(start)}
}

// compoundListBody is the shared engine behind every compound_list
// production: it accumulates CommandLists, treating blank and separator
// newlines as insignificant, until stop reports true, the input runs out,
// or a syntax error has already been recorded.
func (p *Parser) compoundListBody(stop func() bool) []*ast.CommandList {
	var body []*ast.CommandList
	for {
		p.skipBlanksAndComments()
		if p.atEOF() || p.failed() {
			break
		}
		if stop() {
			break
		}
		if c, ok := p.peekByte(0); ok && c == '\n' {
			p.consumeNewline()
			continue
		}
		cl := p.commandListItem()
		if cl == nil {
			// commandListItem only returns nil when the grammar found
			// nothing it could start a command with at a position the
			// caller's stop condition didn't already intercept (a stray
			// ';', a leading '&&'/'||', an unexpected ')'): that is
			// always a syntax error, not a legitimate end of input.
			if !p.failed() {
				p.fail(p.curPos(), "unexpected token")
			}
			break
		}
		body = append(body, cl)
	}
	return body
}

// compoundList parses a compound_list that ends at one of the given
// reserved words (left unconsumed for the caller to match explicitly).
func (p *Parser) compoundList(stopWords ...string) []*ast.CommandList {
	return p.compoundListBody(func() bool {
		lit, ok := p.peekLiteralWord()
		if !ok {
			return false
		}
		for _, sw := range stopWords {
			if lit == sw {
				return true
			}
		}
		return false
	})
}

// compoundListUntilByte parses a compound_list that ends right before the
// given unquoted top-level byte (used for "(" ... ")" bodies).
func (p *Parser) compoundListUntilByte(stopByte byte) []*ast.CommandList {
	return p.compoundListBody(func() bool {
		c, ok := p.peekByte(0)
		return ok && c == stopByte
	})
}

// commandListItem parses one and_or, followed by an optional "&" or ";"
// terminator.
func (p *Parser) commandListItem() *ast.CommandList {
	start := p.curPos()
	ao := p.andOr()
	if ao == nil {
		return nil
	}
	amp := false
	p.skipBlanksAndComments()
	if c, ok := p.peekByte(0); ok {
		switch c {
		case '&':
			amp = true
			p.advanceByte()
		case ';':
			if c2, ok2 := p.peekByte(1); ok2 && c2 == ';' {
				break // ";;" ends a case item; caseItemNode consumes it
			}
			p.advanceByte()
		}
	}
	return &ast.CommandList{AndOrList: ao, Ampersand: amp, RangeVal: p.rangeFrom(start)}
}

// andOr parses a left-associative tree of pipelines joined by "&&"/"||",
// each possibly preceded by a linebreak (POSIX grammar: and_or).
func (p *Parser) andOr() ast.AndOrList {
	left := p.pipelineNode()
	if left == nil {
		return nil
	}
	result := left
	for {
		p.skipBlanksAndComments()
		c, ok := p.peekByte(0)
		if !ok {
			break
		}
		var bt ast.BinopType
		switch {
		case c == '&':
			c2, ok2 := p.peekByte(1)
			if !ok2 || c2 != '&' {
				return result
			}
			bt = ast.BinopAndIf
		case c == '|':
			c2, ok2 := p.peekByte(1)
			if !ok2 || c2 != '|' {
				return result
			}
			bt = ast.BinopOrIf
		default:
			return result
		}
		p.advanceByte()
		p.advanceByte()
		p.skipNewlinesAndBlanks()
		right := p.pipelineNode()
		if right == nil {
			p.fail(p.curPos(), "expected command after operator")
			return result
		}
		result = &ast.Binop{
			Type:     bt,
			Left:     result,
			Right:    right,
			RangeVal: ast.Range{Begin: result.Range().Begin, End: right.Range().End},
		}
	}
	return result
}

// pipelineNode parses "[!] command [ | command ]...".
func (p *Parser) pipelineNode() ast.AndOrList {
	start := p.curPos()
	bang := false
	if lit, ok := p.peekLiteralWord(); ok && lit == "!" {
		bang = true
		p.consumeLiteralWord(lit)
		p.skipBlanksAndComments()
	}
	var cmds []ast.Command
	for {
		cmd := p.commandNode()
		if cmd == nil {
			break
		}
		cmds = append(cmds, cmd)
		p.skipBlanksAndComments()
		c, ok := p.peekByte(0)
		if !ok || c != '|' {
			break
		}
		if c2, ok2 := p.peekByte(1); ok2 && c2 == '|' {
			break // "||" belongs to and_or, not this pipeline
		}
		p.advanceByte()
		p.skipNewlinesAndBlanks()
	}
	if len(cmds) == 0 {
		if bang {
			p.fail(start, "expected command after '!'")
		}
		return nil
	}
	pl, err := ast.NewPipeline(cmds, bang, p.rangeFrom(start))
	if err != nil {
		p.fail(start, "%v", err)
		return nil
	}
	return pl
}

// commandNode dispatches to a compound command by its introducing reserved
// word, to a function definition, to a subshell, or otherwise to a simple
// command.
func (p *Parser) commandNode() ast.Command {
	p.skipBlanksAndComments()
	if p.atEOF() || p.failed() {
		return nil
	}
	if c, ok := p.peekByte(0); ok && c == '(' {
		return p.subshellNode()
	}
	if lit, ok := p.peekLiteralWord(); ok {
		switch lit {
		case "{":
			return p.braceGroupNode()
		case "if":
			return p.ifClauseNode()
		case "while":
			return p.loopClauseNode(ast.LoopWhile)
		case "until":
			return p.loopClauseNode(ast.LoopUntil)
		case "for":
			return p.forClauseNode()
		case "case":
			return p.caseClauseNode()
		case "}", "then", "else", "elif", "fi", "do", "done", "esac":
			return nil
		}
		if ast.IsIdentifier(lit) && p.isFunctionDefAhead(lit) {
			return p.functionDefinitionNode(lit)
		}
		p.inAliasPosition = true
		expanded := p.maybeExpandAlias(lit)
		p.inAliasPosition = false
		if expanded {
			return p.commandNode()
		}
	}
	return p.simpleCommandNode()
}

// peekLiteralWord reports the text of the upcoming word if and only if it
// is written as a bare, unquoted literal (no quoting or expansion): that is
// precisely the condition under which it is eligible to be a reserved
// word, an alias name, or a function name.
func (p *Parser) peekLiteralWord() (string, bool) {
	var buf []byte
	for i := 0; ; i++ {
		c, ok := p.peekByte(i)
		if !ok || wordBreak(c) {
			break
		}
		if c == '\'' || c == '"' || c == '$' || c == '`' || c == '\\' {
			return "", false
		}
		buf = append(buf, c)
	}
	if len(buf) == 0 {
		return "", false
	}
	return string(buf), true
}

func (p *Parser) consumeLiteralWord(lit string) {
	for i := 0; i < len(lit); i++ {
		p.advanceByte()
	}
}

func (p *Parser) isFunctionDefAhead(name string) bool {
	c1, ok1 := p.peekByte(len(name))
	if !ok1 || c1 != '(' {
		return false
	}
	c2, ok2 := p.peekByte(len(name) + 1)
	return ok2 && c2 == ')'
}

func (p *Parser) expectWord(w string) bool {
	p.skipBlanksAndComments()
	if lit, ok := p.peekLiteralWord(); ok && lit == w {
		p.consumeLiteralWord(lit)
		return true
	}
	p.fail(p.curPos(), "expected %q", w)
	return false
}

func (p *Parser) subshellNode() ast.Command {
	start := p.curPos()
	p.advanceByte() // '('
	p.openDepth++
	body := p.compoundListUntilByte(')')
	if c, ok := p.peekByte(0); !ok || c != ')' {
		p.fail(p.curPos(), "expected ')' to close subshell")
		p.openDepth--
		return nil
	}
	p.advanceByte()
	p.openDepth--
	return &ast.Subshell{Body: body, RangeVal: p.rangeFrom(start)}
}

func (p *Parser) braceGroupNode() ast.Command {
	start := p.curPos()
	p.expectWord("{")
	body := p.compoundList("}")
	p.expectWord("}")
	return &ast.BraceGroup{Body: body, RangeVal: p.rangeFrom(start)}
}

func (p *Parser) ifClauseNode() ast.Command {
	start := p.curPos()
	p.expectWord("if")
	clause := p.ifTail(start)
	p.expectWord("fi")
	return clause
}

// ifTail parses condition/then/body and an optional elif/else chain,
// assuming the leading "if"/"elif" keyword has already been consumed.
func (p *Parser) ifTail(start token.Position) *ast.IfClause {
	cond := p.compoundList("then")
	p.expectWord("then")
	body := p.compoundList("elif", "else", "fi")
	var elsePart ast.Command
	if lit, ok := p.peekLiteralWord(); ok {
		switch lit {
		case "elif":
			p.consumeLiteralWord("elif")
			elsePart = p.ifTail(p.curPos())
		case "else":
			p.consumeLiteralWord("else")
			elseStart := p.curPos()
			elseBody := p.compoundList("fi")
			elsePart = &ast.BraceGroup{Body: elseBody, RangeVal: p.rangeFrom(elseStart)}
		}
	}
	return &ast.IfClause{Condition: cond, Body: body, ElsePart: elsePart, RangeVal: p.rangeFrom(start)}
}

func (p *Parser) loopClauseNode(t ast.LoopType) ast.Command {
	start := p.curPos()
	if t == ast.LoopWhile {
		p.expectWord("while")
	} else {
		p.expectWord("until")
	}
	cond := p.compoundList("do")
	p.expectWord("do")
	body := p.compoundList("done")
	p.expectWord("done")
	return &ast.LoopClause{Type: t, Condition: cond, Body: body, RangeVal: p.rangeFrom(start)}
}

func (p *Parser) forClauseNode() ast.Command {
	start := p.curPos()
	p.expectWord("for")
	p.skipBlanksAndComments()
	namePos := p.curPos()
	name, ok := p.peekLiteralWord()
	if !ok || !ast.IsIdentifier(name) {
		p.fail(namePos, "expected name after 'for'")
		return nil
	}
	p.consumeLiteralWord(name)
	p.skipBlanksAndComments()

	var inFlag bool
	var words []ast.Word
	if lit, ok := p.peekLiteralWord(); ok && lit == "in" {
		inFlag = true
		p.consumeLiteralWord("in")
		for {
			p.skipBlanksAndComments()
			c, ok := p.peekByte(0)
			if !ok || c == '\n' || c == ';' {
				break
			}
			w, ok := p.readWord()
			if !ok {
				break
			}
			words = append(words, w)
		}
	}
	p.skipBlanksAndComments()
	if c, ok := p.peekByte(0); ok && c == ';' {
		p.advanceByte()
	}
	p.skipNewlinesAndBlanks()
	p.expectWord("do")
	body := p.compoundList("done")
	p.expectWord("done")
	return &ast.ForClause{
		Name: name, In: inFlag, WordList: words, Body: body,
		NamePos: ast.Range{Begin: namePos, End: namePos}, RangeVal: p.rangeFrom(start),
	}
}

func (p *Parser) caseClauseNode() ast.Command {
	start := p.curPos()
	p.expectWord("case")
	p.skipBlanksAndComments()
	word, ok := p.readWord()
	if !ok {
		p.fail(p.curPos(), "expected word after 'case'")
		return nil
	}
	p.skipNewlinesAndBlanks()
	p.expectWord("in")
	p.skipNewlinesAndBlanks()

	var items []*ast.CaseItem
	for {
		if lit, ok := p.peekLiteralWord(); ok && lit == "esac" {
			break
		}
		if p.atEOF() || p.failed() {
			break
		}
		item := p.caseItemNode()
		if item == nil {
			break
		}
		items = append(items, item)
		p.skipNewlinesAndBlanks()
	}
	p.expectWord("esac")
	return &ast.CaseClause{Word: word, Items: items, RangeVal: p.rangeFrom(start)}
}

func (p *Parser) caseItemNode() *ast.CaseItem {
	start := p.curPos()
	if c, ok := p.peekByte(0); ok && c == '(' {
		p.advanceByte()
	}
	var patterns []ast.Word
	for {
		p.skipBlanksAndComments()
		w, ok := p.readWord()
		if !ok {
			p.fail(p.curPos(), "expected case pattern")
			return nil
		}
		patterns = append(patterns, w)
		p.skipBlanksAndComments()
		if c, ok := p.peekByte(0); ok && c == '|' {
			p.advanceByte()
			continue
		}
		break
	}
	p.skipBlanksAndComments()
	if c, ok := p.peekByte(0); !ok || c != ')' {
		p.fail(p.curPos(), "expected ')' after case pattern")
		return nil
	}
	p.advanceByte()

	body := p.compoundListBody(func() bool {
		if c, ok := p.peekByte(0); ok && c == ';' {
			if c2, ok2 := p.peekByte(1); ok2 && c2 == ';' {
				return true
			}
		}
		lit, ok := p.peekLiteralWord()
		return ok && lit == "esac"
	})

	hasTerm := false
	p.skipBlanksAndComments()
	if c, ok := p.peekByte(0); ok && c == ';' {
		if c2, ok2 := p.peekByte(1); ok2 && c2 == ';' {
			p.advanceByte()
			p.advanceByte()
			hasTerm = true
		}
	}
	item, err := ast.NewCaseItem(patterns, body, hasTerm, p.rangeFrom(start))
	if err != nil {
		p.fail(start, "%v", err)
		return nil
	}
	return item
}

func (p *Parser) functionDefinitionNode(name string) ast.Command {
	start := p.curPos()
	namePos := start
	p.consumeLiteralWord(name)
	p.advanceByte() // '('
	p.advanceByte() // ')'
	p.skipNewlinesAndBlanks()
	body := p.commandNode()
	if body == nil {
		p.fail(p.curPos(), "expected function body")
		return nil
	}
	fd, err := ast.NewFunctionDefinition(name, body, nil, ast.Range{Begin: namePos, End: namePos}, p.rangeFrom(start))
	if err != nil {
		p.fail(start, "%v", err)
		return nil
	}
	return fd
}

// simpleCommandNode parses "[assignment|redirection]... [word
// [arg|redirection]...]".
func (p *Parser) simpleCommandNode() ast.Command {
	start := p.curPos()
	var name ast.Word
	var args []ast.Word
	var redirs []*ast.IORedirect
	var assigns []*ast.Assignment

	for {
		p.skipBlanksAndComments()
		c, ok := p.peekByte(0)
		if !ok {
			break
		}
		if c == '<' || c == '>' {
			redir, ok := p.redirectNode()
			if !ok {
				break
			}
			redirs = append(redirs, redir)
			continue
		}
		if isDigit(c) {
			if redir, matched := p.tryIONumberRedirect(); matched {
				redirs = append(redirs, redir)
				continue
			}
		}
		if wordBreak(c) {
			break
		}
		if name == nil {
			if assign, ok := p.tryAssignment(); ok {
				assigns = append(assigns, assign)
				continue
			}
		}
		w, ok := p.readWord()
		if !ok {
			break
		}
		if name == nil {
			name = w
		} else {
			args = append(args, w)
		}
	}

	cmd, err := ast.NewSimpleCommand(name, args, redirs, assigns, p.rangeFrom(start))
	if err != nil {
		return nil
	}
	return cmd
}

// tryAssignment peeks for a "name=" prefix without consuming it unless it
// actually matches, since a bare word like "3=x" invalid-identifier case or
// a normal argument must be left for readWord.
func (p *Parser) tryAssignment() (*ast.Assignment, bool) {
	c, ok := p.peekByte(0)
	if !ok || !isNameStart(c) {
		return nil, false
	}
	i := 1
	for {
		c, ok := p.peekByte(i)
		if !ok || !isNameCont(c) {
			break
		}
		i++
	}
	c, ok = p.peekByte(i)
	if !ok || c != '=' {
		return nil, false
	}

	start := p.curPos()
	name := p.readName()
	opPos := p.curPos()
	p.advanceByte() // '='
	value, ok := p.readWord()
	if !ok {
		value = &ast.WordString{Str: "", RangeVal: p.rangeFrom(opPos)}
	}
	assign, err := ast.NewAssignment(name, value,
		ast.Range{Begin: start, End: opPos}, ast.Range{Begin: opPos, End: opPos}, p.rangeFrom(start))
	if err != nil {
		return nil, false
	}
	return assign, true
}

func (p *Parser) tryIONumberRedirect() (*ast.IORedirect, bool) {
	i := 0
	for {
		c, ok := p.peekByte(i)
		if !ok || !isDigit(c) {
			break
		}
		i++
	}
	if i == 0 {
		return nil, false
	}
	c, ok := p.peekByte(i)
	if !ok || (c != '<' && c != '>') {
		return nil, false
	}
	start := p.curPos()
	numBuf := make([]byte, i)
	for j := 0; j < i; j++ {
		b, _ := p.advanceByte()
		numBuf[j] = b
	}
	n, _ := strconv.Atoi(string(numBuf))
	return p.redirectNodeWithIONumber(n, start)
}

func (p *Parser) redirectNode() (*ast.IORedirect, bool) {
	return p.redirectNodeWithIONumber(-1, p.curPos())
}

func (p *Parser) redirectNodeWithIONumber(n int, start token.Position) (*ast.IORedirect, bool) {
	c, _ := p.peekByte(0)
	var op ast.RedirOp
	switch c {
	case '<':
		switch c2, ok2 := p.peekByte(1); {
		case ok2 && c2 == '<':
			if c3, ok3 := p.peekByte(2); ok3 && c3 == '-' {
				op = ast.RedirHeredocDash
				p.advanceByte()
				p.advanceByte()
				p.advanceByte()
			} else {
				op = ast.RedirHeredoc
				p.advanceByte()
				p.advanceByte()
			}
		case ok2 && c2 == '&':
			op = ast.RedirDupIn
			p.advanceByte()
			p.advanceByte()
		case ok2 && c2 == '>':
			op = ast.RedirReadWrite
			p.advanceByte()
			p.advanceByte()
		default:
			op = ast.RedirLess
			p.advanceByte()
		}
	case '>':
		switch c2, ok2 := p.peekByte(1); {
		case ok2 && c2 == '>':
			op = ast.RedirAppend
			p.advanceByte()
			p.advanceByte()
		case ok2 && c2 == '&':
			op = ast.RedirDupOut
			p.advanceByte()
			p.advanceByte()
		case ok2 && c2 == '|':
			op = ast.RedirClobber
			p.advanceByte()
			p.advanceByte()
		default:
			op = ast.RedirGreat
			p.advanceByte()
		}
	}
	p.skipBlanksAndComments()

	if op == ast.RedirHeredoc || op == ast.RedirHeredocDash {
		delim, quoted, ok := p.readHeredocDelimiter()
		if !ok {
			p.fail(start, "expected here-document delimiter")
			return nil, false
		}
		name := &ast.WordString{Str: delim, RangeVal: p.rangeFrom(start)}
		redir, err := ast.NewIORedirect(n, op, name, nil, p.rangeFrom(start))
		if err != nil {
			p.fail(start, "%v", err)
			return nil, false
		}
		p.registerPendingHeredoc(redir, delim, quoted)
		return redir, true
	}

	name, ok := p.readWord()
	if !ok {
		p.fail(p.curPos(), "expected word after redirection operator")
		return nil, false
	}
	redir, err := ast.NewIORedirect(n, op, name, nil, p.rangeFrom(start))
	if err != nil {
		p.fail(start, "%v", err)
		return nil, false
	}
	return redir, true
}
