// Package matcher runs a compiled *nfa.NFA against a rune slice, picking
// one of two engines: the BFS simulator (package-internal
// bfsSearch) for patterns the compiler marked IsRegular, and the DFS
// backtracker (dfsAttempt) for everything else (lazy quantifiers,
// backreferences). Both engines implement leftmost-first ("try the
// higher-priority branch first and commit") semantics, never POSIX
// leftmost-longest, so a pattern's result does not change depending on
// which engine happened to run it.
package matcher

import "github.com/coregx/regex/nfa"

// Match is one successful match attempt. Groups[0] is always the whole
// match; Groups[i] for i>=1 holds the i'th capturing group's [start,end)
// range, or [-1,-1] if that group never participated in this match.
type Match struct {
	Start, End int
	Groups     [][2]int
}

// FindFirst returns the first (leftmost) match in input, or false if there
// is none.
func FindFirst(n *nfa.NFA, input []rune, multiline bool) (*Match, bool) {
	return search(n, input, 0, multiline, -1)
}

// FindFirstFrom is FindFirst starting no earlier than `from`, with no
// previous match for `\G` to compare against.
func FindFirstFrom(n *nfa.NFA, input []rune, multiline bool, from int) (*Match, bool) {
	return search(n, input, from, multiline, -1)
}

// Find is FindFirstFrom with explicit control over previousMatchEnd, the
// cursor value `\G` compares against (the anchor table). The façade
// uses this directly, rather than FindAll, so it can interleave a
// literal.Prefilter lookup between successive matches.
func Find(n *nfa.NFA, input []rune, multiline bool, from, prevMatchEnd int) (*Match, bool) {
	return search(n, input, from, multiline, prevMatchEnd)
}

// FindAll returns every non-overlapping match in input, in order, advancing
// past an empty match by one rune to guarantee forward progress.
func FindAll(n *nfa.NFA, input []rune, multiline bool) []Match {
	var out []Match
	pos := 0
	prevEnd := -1
	for pos <= len(input) {
		m, ok := search(n, input, pos, multiline, prevEnd)
		if !ok {
			break
		}
		out = append(out, *m)
		prevEnd = m.End
		if m.End == m.Start {
			pos = m.End + 1
		} else {
			pos = m.End
		}
	}
	return out
}

// search finds the leftmost match starting no earlier than `from`.
//
// The BFS engine (patterns the compiler marked IsRegular) runs as a single
// unanchored pass that injects one new candidate start position per
// generation rather than restarting a whole simulation at every offset —
// see bfsSearch — which is what keeps it linear in input length.
//
// The DFS backtracker has no such pass: a pattern needs it only when it
// has a backreference or a lazy quantifier, and the linear-time
// guarantee is explicitly scoped to the regular subset, so trying
// successive start positions in a loop here is acceptable. When the
// pattern is anchored to the start of the string and we are not in
// multiline mode, only `from` itself is tried — sliding further along the
// input could never satisfy the leading anchor.
func search(n *nfa.NFA, input []rune, from int, multiline bool, prevMatchEnd int) (*Match, bool) {
	if n.IsRegular {
		return bfsSearch(n, input, from, multiline, prevMatchEnd)
	}
	for start := from; start <= len(input); start++ {
		if m, ok := dfsAttempt(n, input, start, multiline, prevMatchEnd); ok {
			return m, true
		}
		if n.IsFromStartOfString && !multiline {
			return nil, false
		}
	}
	return nil, false
}
