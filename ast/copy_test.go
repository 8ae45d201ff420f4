package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCopySimpleCommand(t *testing.T) {
	orig := &SimpleCommand{
		Name:      str("echo"),
		Arguments: []Word{str("foo"), &WordParameter{Name: "x"}},
		Assignments: []*Assignment{
			{Name: "a", Value: str("b")},
		},
	}

	dup := Copy(orig).(*SimpleCommand)

	if dup == orig {
		t.Fatalf("Copy returned the same pointer")
	}
	if FlattenWord(dup.Name) != FlattenWord(orig.Name) {
		t.Fatalf("copy diverged before mutation")
	}

	// Mutating the copy must not reach back into the original (P2).
	dup.Arguments[0].(*WordString).Str = "mutated"
	dup.Assignments[0].Name = "z"

	if orig.Arguments[0].(*WordString).Str != "foo" {
		t.Fatalf("mutating the copy's argument changed the original")
	}
	if orig.Assignments[0].Name != "a" {
		t.Fatalf("mutating the copy's assignment changed the original")
	}
}

func TestCopyProgram(t *testing.T) {
	orig := &Program{
		Body: []*CommandList{
			{AndOrList: &Pipeline{Commands: []Command{
				&SimpleCommand{Name: str("foo")},
			}}},
		},
	}
	dup := Copy(orig).(*Program)
	if &dup.Body[0] == &orig.Body[0] {
		t.Fatalf("Copy aliased the Body slice")
	}
	dupCmd := dup.Body[0].AndOrList.(*Pipeline).Commands[0].(*SimpleCommand)
	dupCmd.Name.(*WordString).Str = "bar"

	origCmd := orig.Body[0].AndOrList.(*Pipeline).Commands[0].(*SimpleCommand)
	if origCmd.Name.(*WordString).Str != "foo" {
		t.Fatalf("mutating the copied program changed the original")
	}
}

// TestCopyDeepEqualThenDiverges uses cmp.Diff instead of field-by-field
// assertions, so a field added to any node in the tree later is still
// covered by the equality check without touching this test.
func TestCopyDeepEqualThenDiverges(t *testing.T) {
	orig := &Program{
		Body: []*CommandList{
			{AndOrList: &Binop{
				Type: BinopAndIf,
				Left: &Pipeline{Commands: []Command{
					&SimpleCommand{Name: str("foo"), Arguments: []Word{str("bar")}},
				}},
				Right: &Pipeline{Commands: []Command{
					&SimpleCommand{Name: str("baz")},
				}},
			}},
		},
	}
	dup := Copy(orig).(*Program)

	if diff := cmp.Diff(orig, dup); diff != "" {
		t.Fatalf("copy diverged from original before mutation (-orig +dup):\n%s", diff)
	}

	dup.Body[0].AndOrList.(*Binop).Right.(*Pipeline).Commands[0].(*SimpleCommand).Name.(*WordString).Str = "mutated"

	if diff := cmp.Diff(orig, dup); diff == "" {
		t.Fatalf("expected original and copy to differ after mutating the copy, but they matched")
	}
}
