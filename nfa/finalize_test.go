package nfa

import (
	"testing"

	"github.com/coregx/regex/ast"
)

func TestFinalizeStartIsAlwaysZero(t *testing.T) {
	n := mustCompile(t, ast.Character{Value: 'a'}, 0, false, DefaultCompilerConfig())
	if n.Start != 0 {
		t.Errorf("Start = %d, want 0 after reindexing", n.Start)
	}
}

func TestFinalizeDropsUnreachableStates(t *testing.T) {
	// "ab" concatenation wires two fragments together with an unconditional
	// epsilon bridge; splice should remove the bridge state entirely so it
	// never appears, reachable or not, in the final state list.
	root := ast.ImplicitGroup{Children: []ast.Node{
		ast.Character{Value: 'a'},
		ast.Character{Value: 'b'},
	}}
	n := mustCompile(t, root, 0, false, DefaultCompilerConfig())
	for id := range n.States {
		s := &n.States[id]
		if len(s.Transitions) != 1 {
			continue
		}
		if ec, ok := s.Transitions[0].Cond.(EpsilonCondition); ok && ec.Guard == nil {
			t.Errorf("state %d still has a bare unconditional-epsilon transition after splicing", id)
		}
	}
}

func TestFinalizePreservesCaptureBoundaries(t *testing.T) {
	root := ast.ImplicitGroup{Children: []ast.Node{
		ast.Character{Value: 'x'},
		ast.Group{Index: 1, Capturing: true, Child: ast.Character{Value: 'y'}},
	}}
	n := mustCompile(t, root, 1, false, DefaultCompilerConfig())
	start, ok := n.CaptureStart(1)
	if !ok {
		t.Fatal("capture group 1's boundary should survive splicing and reindexing")
	}
	if int(start) < 0 || int(start) >= len(n.States) {
		t.Errorf("capture start state %d is out of range (states: %d)", start, len(n.States))
	}
}

func TestFinalizeReindexIsContiguous(t *testing.T) {
	n := mustCompile(t, ast.Character{Value: 'a'}, 0, false, DefaultCompilerConfig())
	for id := range n.States {
		for _, tr := range n.States[id].Transitions {
			if int(tr.To) < 0 || int(tr.To) >= len(n.States) {
				t.Errorf("transition from %d points at out-of-range state %d", id, tr.To)
			}
		}
	}
}
