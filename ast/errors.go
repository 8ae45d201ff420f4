package ast

import "errors"

// Construction errors: AST constructors reject impossible combinations by
// returning an error rather than building an inconsistent tree (spec §7).
var (
	errEmptyWordList    = errors.New("ast: word list must have at least one part")
	errEmptyPipeline    = errors.New("ast: pipeline must have at least one command")
	errEmptySimpleCmd   = errors.New("ast: simple command must have a name, an argument, a redirection or an assignment")
	errBadIdentifier    = errors.New("ast: invalid identifier for assignment or function name")
	errHeredocMismatch  = errors.New("ast: here-document body is only valid for << and <<- redirections")
	errEmptyCaseItem    = errors.New("ast: case item must have at least one pattern")
	errBadIONumber      = errors.New("ast: io_number must be -1 or a non-negative file descriptor")
)
