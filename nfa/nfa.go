// Package nfa compiles an optimized ast.Node tree into an indexed NFA:
// a flat slice of states, each holding an
// ordered list of conditional transitions, with capture-group boundaries
// and the regular/anchored flags recorded alongside. Packages matcher
// import this package to run either the BFS or the DFS engine over the
// compiled result; nfa itself never executes a search.
package nfa

// StateID indexes into NFA.States. The zero value is a valid state (the
// start state is always index 0); InvalidState is the only sentinel.
type StateID int32

// InvalidState marks the absence of a state reference, e.g. an
// as-yet-unassigned capture-group boundary.
const InvalidState StateID = -1

// Transition is one conditional edge out of a State.
type Transition struct {
	To   StateID
	Cond Condition
}

// State is a single NFA state. A state is accepting iff it has no outgoing
// transitions — there is no separate "kind" tag; the transition
// list alone determines behavior.
type State struct {
	Transitions []Transition
}

// IsAccepting reports whether s has no outgoing transitions.
func (s *State) IsAccepting() bool { return len(s.Transitions) == 0 }

// CaptureGroupRecord locates one capturing group's boundary states within
// the compiled NFA. StartState is recorded at the group child's start
// state, not the group's own wrapping epsilon-bridge state, so that
// entering the bridge does not look like entering the group.
type CaptureGroupRecord struct {
	GroupIndex int
	StartState StateID
	EndState   StateID
}

// NFA is the immutable result of compilation. It is safe for concurrent
// read access from multiple matcher invocations: nothing here is
// ever mutated after Compile returns.
type NFA struct {
	States   []State
	Start    StateID
	Captures []CaptureGroupRecord

	// NumCaptures is the total number of capturing groups in the source
	// pattern (the number_of_capture_groups), independent of how many
	// are actually entered by any particular match attempt.
	NumCaptures int

	// IsRegular is false when the pattern contains a backreference or any
	// lazy quantifier; the matcher shell routes such patterns to the DFS
	// backtracking engine instead of the BFS simulator.
	IsRegular bool

	// IsFromStartOfString mirrors the parser's anchored-at-start flag: when
	// true and multiline mode is off, the matcher tries exactly one start
	// position instead of sliding along the input.
	IsFromStartOfString bool
}

// CaptureStart returns the StartState of the capture-group record for
// groupIndex, and whether one exists.
func (n *NFA) CaptureStart(groupIndex int) (StateID, bool) {
	for _, c := range n.Captures {
		if c.GroupIndex == groupIndex {
			return c.StartState, true
		}
	}
	return InvalidState, false
}
