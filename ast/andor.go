package ast

// AndOrList is implemented by Pipeline and Binop: a left-associative tree
// of pipelines joined by && or ||.
type AndOrList interface {
	Node
	andOrNode()
}

func (*Pipeline) andOrNode() {}
func (*Binop) andOrNode()    {}

// Pipeline is one or more commands connected by "|", optionally negated
// with a leading "!".
type Pipeline struct {
	Commands []Command
	Bang     bool

	RangeVal Range
}

func (p *Pipeline) Range() Range { return p.RangeVal }

// NewPipeline rejects an empty pipeline (invariant: len(Commands) >= 1).
func NewPipeline(cmds []Command, bang bool, r Range) (*Pipeline, error) {
	if len(cmds) == 0 {
		return nil, errEmptyPipeline
	}
	return &Pipeline{Commands: cmds, Bang: bang, RangeVal: r}, nil
}

// BinopType distinguishes && from ||.
type BinopType int

const (
	BinopAndIf BinopType = iota // &&
	BinopOrIf                   // ||
)

// Binop is a binary && or || node in the left-associative AND-OR tree.
type Binop struct {
	Type        BinopType
	Left, Right AndOrList

	RangeVal Range
}

func (b *Binop) Range() Range { return b.RangeVal }

// CommandList pairs one AND-OR list with its terminator: Ampersand true
// means the list runs asynchronously ("&"), false means synchronously
// (";" or a bare newline/EOF).
type CommandList struct {
	AndOrList AndOrList
	Ampersand bool

	RangeVal Range
}

func (c *CommandList) Range() Range { return c.RangeVal }

// Program is the root of a parsed shell program: an ordered sequence of
// command lists.
type Program struct {
	Body []*CommandList

	RangeVal Range
}

func (p *Program) Range() Range { return p.RangeVal }
