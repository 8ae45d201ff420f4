package parser

// AliasFunc is the alias callback contract (spec §6): given a candidate
// alias name, it returns the alias's replacement text and whether name is
// in fact a defined alias. It is invoked synchronously during
// tokenisation, must not mutate the Parser, and may be called more than
// once for the same name (spec §6, "Pure with respect to the parser").
type AliasFunc func(name string) (text string, ok bool)

// SetAliasFunc installs the alias callback. A nil callback disables alias
// substitution entirely.
func (p *Parser) SetAliasFunc(f AliasFunc) {
	p.aliasFunc = f
}

// expandingAlias reports whether name is currently being expanded higher
// up the input-layer stack; if so it must not be re-expanded (P4:
// termination even for a callback that maps every name to itself).
func (p *Parser) expandingAlias(name string) bool {
	for _, n := range p.aliasStack {
		if n == name {
			return true
		}
	}
	return false
}

// maybeExpandAlias is called by commandNode right before a word that sits
// in command position and is not a reserved word would be parsed as a
// simple command. If name is a valid alias name, is not already being
// expanded, and the callback reports a hit, name is consumed, its
// replacement text is pushed as a new input layer in front of the current
// input and expanded is true: the caller must re-scan from the top of the
// layer stack instead of parsing the original word.
func (p *Parser) maybeExpandAlias(name string) (expanded bool) {
	if p.aliasFunc == nil || !p.inAliasPosition {
		return false
	}
	if !isAliasName(name) || p.expandingAlias(name) {
		return false
	}
	text, ok := p.aliasFunc(name)
	if !ok {
		return false
	}
	p.consumeLiteralWord(name)
	p.pushAliasLayer(name, text)
	return true
}

// isAliasName mirrors POSIX's restriction on alias names: any string not
// containing a slash, and not equal to a shell metacharacter, is a
// syntactically valid alias name. In practice this core restricts it to
// the same character set as an unquoted word fragment.
func isAliasName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		switch c := name[i]; {
		case c == '/', c == '=':
			return false
		case regOps(c), wordBreak(c):
			return false
		}
	}
	return true
}
