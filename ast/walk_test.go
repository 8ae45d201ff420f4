package ast

import "testing"

type countVisitor struct{ n int }

func (c *countVisitor) Visit(node Node) Visitor {
	if node == nil {
		return nil
	}
	c.n++
	return c
}

func TestWalkCountsEveryNode(t *testing.T) {
	prog := &Program{
		Body: []*CommandList{
			{AndOrList: &Pipeline{Commands: []Command{
				&SimpleCommand{
					Name:      str("echo"),
					Arguments: []Word{str("a"), str("b")},
				},
			}}},
		},
	}

	var c countVisitor
	Walk(&c, prog)

	// Program, CommandList, Pipeline, SimpleCommand, Name, and 2 arguments.
	want := 7
	if c.n != want {
		t.Fatalf("Walk visited %d nodes, want %d", c.n, want)
	}
}

// inspect is a func-based Visitor, mirroring go/ast.Inspect.
type inspectFunc func(Node) bool

func (f inspectFunc) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

func TestWalkStopsWhenVisitorDeclines(t *testing.T) {
	prog := &Program{
		Body: []*CommandList{
			{AndOrList: &Pipeline{Commands: []Command{
				&SimpleCommand{Name: str("echo"), Arguments: []Word{str("a")}},
			}}},
		},
	}

	var sawArgument bool
	Walk(inspectFunc(func(n Node) bool {
		if _, ok := n.(*SimpleCommand); ok {
			return false // don't descend into the simple command's children
		}
		if _, ok := n.(*WordString); ok {
			sawArgument = true
		}
		return true
	}), prog)

	if sawArgument {
		t.Fatalf("Walk descended past a Visitor that returned nil")
	}
}
