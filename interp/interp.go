// Package interp declares the shapes an evaluator for the core AST would
// need: shell options, variable storage, call frames and run state. It
// contains no execution logic, no builtins and spawns no processes; it
// exists so that a future evaluator package has a settled contract to
// build against, the way expand.Environ settles the variable-lookup
// contract for the reference interpreter.
package interp

import (
	"mrshgo.dev/sh/ast"
	"mrshgo.dev/sh/pattern"
)

// Options is a bitmask of the POSIX "set" options that affect evaluation
// (spec §4.G). Only the options with observable parse/eval-time meaning
// are named here; bash extensions are out of scope.
type Options uint

const (
	// OptAllExport exports every variable assigned after it is set ("set -a").
	OptAllExport Options = 1 << iota
	// OptErrExit exits the shell when a simple command fails ("set -e").
	OptErrExit
	// OptNoExec reads and parses input but never executes it ("set -n").
	OptNoExec
	// OptNoGlob disables pathname expansion of unquoted words ("set -f").
	OptNoGlob
	// OptNoUnset treats an unset parameter expansion as an error ("set -u").
	OptNoUnset
	// OptXTrace traces each command to standard error before running it ("set -x").
	OptXTrace
)

// Has reports whether every option in mask is set in o.
func (o Options) Has(mask Options) bool { return o&mask == mask }

// Set returns o with every option in mask turned on.
func (o Options) Set(mask Options) Options { return o | mask }

// Clear returns o with every option in mask turned off.
func (o Options) Clear(mask Options) Options { return o &^ mask }

// ValueKind describes which of a Variable's value fields is meaningful.
type ValueKind uint8

const (
	// Unknown is the zero value: an undeclared variable.
	Unknown ValueKind = iota
	// ScalarValue is a plain "name=value" string variable.
	ScalarValue
	// IndexedValue is an indexed array, e.g. "name=(a b c)".
	IndexedValue
	// AssociativeValue is an associative array, e.g. "declare -A name".
	AssociativeValue
)

// Variable is the value and attributes a VarStore associates with a name.
type Variable struct {
	IsSet    bool
	Exported bool
	ReadOnly bool

	Kind ValueKind

	Scalar  string
	Indexed []string
	Assoc   map[string]string
}

// VarStore is the lookup/mutation contract an evaluator's variable
// environment must satisfy: get one variable, set or unset one, and
// iterate over everything currently declared (needed to build the
// exported-variable list a child process would inherit).
type VarStore interface {
	Get(name string) Variable
	Set(name string, v Variable) error
	Each(func(name string, v Variable) bool)
}

// CallFrame is one entry in the call stack created by invoking a shell
// function: it holds the function's positional parameters and a VarStore
// scoped to its "local" declarations, and links to the frame it was
// called from so name resolution can walk outward to outer locals and
// eventually to the global scope.
type CallFrame struct {
	FuncName string
	Params   []string
	Locals   VarStore
	Parent   *CallFrame
}

// State is the run-time status an evaluator threads through a single
// shell invocation: the exit status of the last command executed, a
// flag requesting shell exit (set by the "exit" builtin or ErrExit),
// whether the shell is reading from an interactive terminal (affecting
// prompt and job-control behaviour, themselves out of scope here), and
// the innermost active call frame, if any.
type State struct {
	LastStatus  int
	ExitShell   bool
	Interactive bool
	Frame       *CallFrame
}

// Resolve looks up name starting at the innermost call frame and walking
// outward to vars once the frame chain is exhausted, mirroring the scoping
// a "local" declaration introduces inside a function body.
func (s *State) Resolve(name string, vars VarStore) Variable {
	for f := s.Frame; f != nil; f = f.Parent {
		if f.Locals == nil {
			continue
		}
		if v := f.Locals.Get(name); v.IsSet || v.Kind != Unknown {
			return v
		}
	}
	return vars.Get(name)
}

// CaseMode is the pattern.Mode a conforming evaluator must use when
// resolving a CaseClause (spec §4.G): whole-word matching per POSIX 2.10.2,
// with no filename- or globstar-specific restrictions, since a case pattern
// is never a pathname.
const CaseMode pattern.Mode = 0

// MatchCaseItem resolves which item of a CaseClause, if any, a value
// selects, along with the specific pattern text within that item that
// matched. It is the evaluation interface's only point of contact with
// pattern matching (spec §1 Non-goals: "pattern matching ... specified only
// at the level of ... observable output"): expansion of each
// ast.CaseItem.Patterns word into plain text is the caller's job, since
// word expansion itself is out of this package's scope, but once expanded
// the matching rule itself belongs here rather than being reimplemented by
// every evaluator.
//
// expanded must have one []string per entry of items, holding that item's
// patterns already expanded to literal text in the same order they appear
// in Patterns. Items are tried first to last, and within an item patterns
// are tried first to last, stopping at the first match (POSIX: "the first
// one that matches is executed").
func MatchCaseItem(items []*ast.CaseItem, expanded [][]string, value string, mode pattern.Mode) (*ast.CaseItem, string, error) {
	for i, item := range items {
		for _, pat := range expanded[i] {
			ok, err := pattern.MatchCase(pat, value, mode)
			if err != nil {
				return nil, "", err
			}
			if ok {
				return item, pat, nil
			}
		}
	}
	return nil, "", nil
}
