package ast

// Word is implemented by every word variant: String, Parameter, Command,
// Arithmetic and List.
type Word interface {
	Node
	wordNode()
}

func (*WordString) wordNode()     {}
func (*WordParameter) wordNode()  {}
func (*WordCommand) wordNode()    {}
func (*WordArithmetic) wordNode() {}
func (*WordList) wordNode()       {}

// WordString is a run of unquoted or quoted literal text.
type WordString struct {
	Str string

	// SingleQuoted records whether Str came from a '...' run, in which
	// case it must be rendered back verbatim inside single quotes and is
	// never eligible for expansion.
	SingleQuoted bool

	// SplitFields records whether Str is the result of a parameter,
	// command or arithmetic expansion and is therefore eligible for
	// field splitting at evaluation time (see GLOSSARY: IFS).
	SplitFields bool

	RangeVal Range
}

func (w *WordString) Range() Range { return w.RangeVal }

// ParamOp is the operator of a parameter expansion, POSIX 2.6.2.
type ParamOp int

const (
	// ParamNone is a bare ${name} or $name expansion.
	ParamNone ParamOp = iota
	// ParamDefault is ${name:-arg} / ${name-arg}.
	ParamDefault
	// ParamAssign is ${name:=arg} / ${name=arg}.
	ParamAssign
	// ParamError is ${name:?arg} / ${name?arg}.
	ParamError
	// ParamAlt is ${name:+arg} / ${name+arg}.
	ParamAlt
	// ParamRemShortestPrefix is ${name#arg}.
	ParamRemShortestPrefix
	// ParamRemLongestPrefix is ${name##arg}.
	ParamRemLongestPrefix
	// ParamRemShortestSuffix is ${name%arg}.
	ParamRemShortestSuffix
	// ParamRemLongestSuffix is ${name%%arg}.
	ParamRemLongestSuffix
)

// WordParameter is a parameter expansion: $name or ${name op arg}.
type WordParameter struct {
	Name string

	Op ParamOp
	// Colon is only meaningful when Op is one of
	// {ParamDefault, ParamAssign, ParamError, ParamAlt}: it distinguishes
	// the ":-"-style (unset-or-null) form from the "-"-style
	// (unset-only) form.
	Colon bool
	// Arg is the operator's argument word, nil when Op is ParamNone or
	// when the operator carries no argument.
	Arg Word

	// Length records the "${#name}" string-length form (POSIX 2.6.2); it
	// is mutually exclusive with a non-ParamNone Op.
	Length bool

	Dollar, NamePos, OpPos Range
	// BracePos is the range of the enclosing "${" "}" pair; invalid when
	// the expansion is the bare $name form.
	BracePos Range

	RangeVal Range
}

func (w *WordParameter) Range() Range { return w.RangeVal }

// WordCommand is a command substitution: $(...) or `...`.
type WordCommand struct {
	Body       *Program // nil for an empty substitution, e.g. $()
	BackQuoted bool

	RangeVal Range
}

func (w *WordCommand) Range() Range { return w.RangeVal }

// WordArithmetic is an arithmetic expansion: $((...)). Body holds the raw
// text between the parentheses; it is parsed into an ArithmExpr lazily, at
// evaluation time, by the arithmetic parser (component E).
type WordArithmetic struct {
	Body Word

	RangeVal Range
}

func (w *WordArithmetic) Range() Range { return w.RangeVal }

// WordList is an ordered sequence of word children that are contiguous in
// the source, i.e. not separated by blanks. Its text value is the
// concatenation of its children's text values.
type WordList struct {
	Parts []Word

	// DoubleQuoted records whether the list came from a "..." run.
	DoubleQuoted bool
	// QuotePos is the range of the surrounding quotes, invalid when
	// DoubleQuoted is false.
	QuotePos Range

	RangeVal Range
}

func (w *WordList) Range() Range { return w.RangeVal }

// NewWordList builds a WordList from parts, rejecting an empty list: an
// empty word must be represented as an empty WordString, not an empty
// WordList, so that every WordList has at least one child to derive a
// range from.
func NewWordList(parts []Word, doubleQuoted bool, quotePos Range) (*WordList, error) {
	if len(parts) == 0 {
		return nil, errEmptyWordList
	}
	r := quotePos
	if !doubleQuoted {
		rs := make([]Range, len(parts))
		for i, p := range parts {
			rs[i] = p.Range()
		}
		r = join(rs...)
	}
	return &WordList{Parts: parts, DoubleQuoted: doubleQuoted, QuotePos: quotePos, RangeVal: r}, nil
}
