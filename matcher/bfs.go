package matcher

import (
	"github.com/coregx/regex/charclass"
	"github.com/coregx/regex/internal/sparse"
	"github.com/coregx/regex/nfa"
)

// thread is one active path through the NFA during a single BFS generation.
// partial tracks progress through a multi-rune StringCondition: 0 means
// "just arrived at state via epsilon closure, transition not yet started".
// start records where this thread's own match attempt began, so several
// attempts (one per candidate start position) can be simulated in the same
// O(n) pass without restarting the whole walk at every position.
type thread struct {
	state   nfa.StateID
	partial int
	start   int
	caps    capState
}

// bfsSearch runs a Pike-VM-style simulation as a
// single unanchored pass over input, starting no earlier than `from`: a
// fresh thread is injected at the start state for every candidate start
// position, processed alongside every thread already in flight from an
// earlier position, so the whole search is O(len(input) * len(NFA.States))
// instead of restarting independently at each offset — this is what gives
// the regular subset its linear-time property (`a*c` against
// 10,000 'a's).
//
// Threads are kept in strict priority order: threads started earlier are
// higher priority than threads started later, and within one start,
// priority follows the order the compiler wired greedy-vs-lazy branches
// in. Once some thread reaches an accepting state, no new start threads
// are injected (nothing lower priority could ever beat it) and no
// lower-priority thread in that same generation is allowed to continue —
// but any thread still alive that started at or before the match is
// strictly higher priority, so if it later accepts too, it unconditionally
// replaces the recorded match. This is what keeps this engine's results
// identical to the DFS backtracker's leftmost-first semantics instead of
// drifting to POSIX leftmost-longest.
func bfsSearch(n *nfa.NFA, input []rune, from int, multiline bool, prevMatchEnd int) (*Match, bool) {
	startsAt, endsAt := captureBoundaries(n)

	capacity := len(n.States)
	if capacity == 0 {
		capacity = 1
	}

	current := make([]thread, 0, capacity)
	next := make([]thread, 0, capacity)
	curSet := sparse.NewSparseSet(uint32(capacity))
	nextSet := sparse.NewSparseSet(uint32(capacity))

	anchoredSingleShot := n.IsFromStartOfString && !multiline

	matched := false
	bestStart, bestEnd := -1, -1
	var bestSlots []int

	for pos := from; pos <= len(input); pos++ {
		if !matched && (pos == from || !anchoredSingleShot) {
			caps := newCapState(n.NumCaptures).withSlot(0, pos)
			current = addClosure(n, current, curSet, n.Start, pos, caps, input, pos, multiline, prevMatchEnd, startsAt, endsAt)
		}

		for _, t := range current {
			if t.partial == 0 && n.States[t.state].IsAccepting() {
				matched = true
				bestStart = t.start
				bestEnd = pos
				bestSlots = t.caps.withSlot(1, pos).snapshot()
				break
			}
			if pos < len(input) {
				next = stepThread(n, t, input, pos, next, nextSet, startsAt, endsAt, multiline, prevMatchEnd)
			}
		}

		if pos >= len(input) || (len(next) == 0 && (matched || anchoredSingleShot)) {
			break
		}

		current, next = next, current[:0]
		curSet, nextSet = nextSet, curSet
		nextSet.Clear()
	}

	if !matched {
		return nil, false
	}
	return buildMatch(n.NumCaptures, bestStart, bestEnd, bestSlots), true
}

// addClosure expands state through every epsilon transition reachable from
// it (recording capture boundaries as it passes through them), appending
// the accepting or consuming states it bottoms out at to list, each
// stamped with the start position this attempt began at. A state visited
// already this generation is skipped — by construction a state's
// transitions are either all epsilon (a branch point) or a single
// consuming condition (a fragment's core), never a mix.
func addClosure(
	n *nfa.NFA, list []thread, visited *sparse.SparseSet, state nfa.StateID, start int, caps capState,
	input []rune, pos int, multiline bool, prevMatchEnd int,
	startsAt, endsAt map[nfa.StateID][]int,
) []thread {
	if visited.Contains(uint32(state)) {
		return list
	}
	visited.Insert(uint32(state))

	if idxs, ok := startsAt[state]; ok {
		for _, g := range idxs {
			caps = caps.withSlot(g*2, pos)
		}
	}
	if idxs, ok := endsAt[state]; ok {
		for _, g := range idxs {
			caps = caps.withSlot(g*2+1, pos)
		}
	}

	trans := n.States[state].Transitions
	if len(trans) == 0 {
		return append(list, thread{state: state, start: start, caps: caps})
	}

	if len(trans) == 1 {
		t := trans[0]
		ec, isEpsilon := t.Cond.(nfa.EpsilonCondition)
		if !isEpsilon {
			return append(list, thread{state: state, start: start, caps: caps})
		}
		if ec.Guard == nil {
			return addClosure(n, list, visited, t.To, start, caps, input, pos, multiline, prevMatchEnd, startsAt, endsAt)
		}
		ctx := &nfa.EvalContext{Input: input, Pos: pos, StartIndex: start, PrevMatchEnd: prevMatchEnd, Multiline: multiline}
		if ec.Guard(ctx) {
			return addClosure(n, list, visited, t.To, start, caps, input, pos, multiline, prevMatchEnd, startsAt, endsAt)
		}
		return list
	}

	for _, t := range trans {
		ec := t.Cond.(nfa.EpsilonCondition)
		branchCaps := caps.clone()
		if ec.Guard == nil {
			list = addClosure(n, list, visited, t.To, start, branchCaps, input, pos, multiline, prevMatchEnd, startsAt, endsAt)
			continue
		}
		ctx := &nfa.EvalContext{Input: input, Pos: pos, StartIndex: start, PrevMatchEnd: prevMatchEnd, Multiline: multiline}
		if ec.Guard(ctx) {
			list = addClosure(n, list, visited, t.To, start, branchCaps, input, pos, multiline, prevMatchEnd, startsAt, endsAt)
		}
	}
	return list
}

// stepThread advances a single thread across input[pos], scheduling its
// successor(s) into next (and marking nextSet so at most one thread per
// state enters the next generation through an epsilon closure). A thread
// part-way through a StringCondition is kept without marking its state, so
// a new attempt arriving at that state is not mistaken for a duplicate.
func stepThread(
	n *nfa.NFA, t thread, input []rune, pos int, next []thread, nextSet *sparse.SparseSet,
	startsAt, endsAt map[nfa.StateID][]int, multiline bool, prevMatchEnd int,
) []thread {
	trans := n.States[t.state].Transitions
	if len(trans) != 1 {
		return next
	}
	tr := trans[0]

	admit := func(to nfa.StateID) []thread {
		return addClosure(n, next, nextSet, to, t.start, t.caps, input, pos+1, multiline, prevMatchEnd, startsAt, endsAt)
	}

	switch c := tr.Cond.(type) {
	case nfa.CharCondition:
		r := input[pos]
		if r == c.Value || (c.FoldCase && charclass.FoldEqual(r, c.Value)) {
			next = admit(tr.To)
		}
	case nfa.AnyCondition:
		r := input[pos]
		if r != '\n' || c.MatchNewline {
			next = admit(tr.To)
		}
	case nfa.SetCondition:
		if c.Match(input[pos]) {
			next = admit(tr.To)
		}
	case nfa.RangeCondition:
		r := input[pos]
		var ok bool
		if c.FoldCase {
			ok = charclass.FoldContainsRange(c.Lo, c.Hi, r)
		} else {
			ok = charclass.InRange(c.Lo, c.Hi, r)
		}
		if ok {
			next = admit(tr.To)
		}
	case nfa.StringCondition:
		want := c.Value[t.partial]
		r := input[pos]
		matched := r == want || (c.FoldCase && charclass.FoldEqual(r, want))
		if !matched {
			break
		}
		if t.partial+1 == len(c.Value) {
			next = admit(tr.To)
		} else {
			next = append(next, thread{state: t.state, partial: t.partial + 1, start: t.start, caps: t.caps})
		}
	default:
		// BackreferenceCondition never appears on a pattern the compiler
		// marked IsRegular, so it never reaches this engine.
	}
	return next
}
