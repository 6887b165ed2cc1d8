package matcher

import "github.com/coregx/regex/nfa"

// dfsAttempt runs the recursive backtracking engine used whenever the
// compiler could not mark the pattern IsRegular (it has a backreference
// or a lazy quantifier). Transitions are tried in
// the order the compiler wired them — the same greedy-vs-lazy priority
// order the BFS engine honors — and the first path that reaches an
// accepting state wins; nothing is weighed by match length.
func dfsAttempt(n *nfa.NFA, input []rune, start int, multiline bool, prevMatchEnd int) (*Match, bool) {
	d := &dfsSearch{
		n:            n,
		input:        input,
		startIndex:   start,
		multiline:    multiline,
		prevMatchEnd: prevMatchEnd,
		groups:       map[int][2]int{0: {start, -1}},
	}
	d.startsAt, d.endsAt = captureBoundaries(n)

	if end, ok := d.run(n.Start, start, map[nfa.StateID]bool{}); ok {
		d.groups[0] = [2]int{start, end}
		return buildMatchFromGroupMap(n.NumCaptures, start, end, d.groups), true
	}
	return nil, false
}

type dfsSearch struct {
	n            *nfa.NFA
	input        []rune
	startIndex   int
	multiline    bool
	prevMatchEnd int
	groups       map[int][2]int
	startsAt     map[nfa.StateID][]int
	endsAt       map[nfa.StateID][]int
}

// run explores state's transitions in priority order, returning the match
// end position on the first path that reaches an accepting state. epsMemo
// records states already entered without consuming a rune since the last
// consumed rune, so a zero-width cycle (an empty-matching group inside a
// star, or a backreference to an empty capture) fails instead of
// recursing forever.
func (d *dfsSearch) run(state nfa.StateID, pos int, epsMemo map[nfa.StateID]bool) (int, bool) {
	s := d.n.States[state]
	if len(s.Transitions) == 0 {
		return pos, true
	}

	for _, t := range s.Transitions {
		var (
			ok       bool
			consumed int
		)
		if ec, isEpsilon := t.Cond.(nfa.EpsilonCondition); isEpsilon {
			if ec.Guard == nil {
				ok = true
			} else {
				ctx := &nfa.EvalContext{
					Input: d.input, Pos: pos, StartIndex: d.startIndex,
					PrevMatchEnd: d.prevMatchEnd, Groups: d.groups, Multiline: d.multiline,
				}
				ok = ec.Guard(ctx)
			}
		} else {
			ctx := &nfa.EvalContext{
				Input: d.input, Pos: pos, StartIndex: d.startIndex,
				PrevMatchEnd: d.prevMatchEnd, Groups: d.groups, Multiline: d.multiline,
			}
			ok, consumed = t.Cond.Eval(ctx)
		}
		if !ok {
			continue
		}

		nextMemo := epsMemo
		if consumed == 0 {
			if epsMemo[t.To] {
				continue
			}
			nextMemo = cloneStateSet(epsMemo)
			nextMemo[t.To] = true
		} else {
			nextMemo = map[nfa.StateID]bool{}
		}

		if end, matched := d.enter(t.To, pos+consumed, nextMemo); matched {
			return end, true
		}
	}
	return 0, false
}

// enter marks any capture-group boundary at `state`, recurses, and
// restores the prior group bounds on failure so a later sibling branch
// does not see a stale capture from a path that didn't pan out.
func (d *dfsSearch) enter(state nfa.StateID, pos int, epsMemo map[nfa.StateID]bool) (int, bool) {
	type saved struct {
		group int
		prev  [2]int
		had   bool
	}
	var restores []saved

	if idxs, ok := d.startsAt[state]; ok {
		for _, g := range idxs {
			prev, had := d.groups[g]
			restores = append(restores, saved{g, prev, had})
			d.groups[g] = [2]int{pos, -1}
		}
	}
	if idxs, ok := d.endsAt[state]; ok {
		for _, g := range idxs {
			prev, had := d.groups[g]
			restores = append(restores, saved{g, prev, had})
			startPos := pos
			if had {
				startPos = prev[0]
			}
			d.groups[g] = [2]int{startPos, pos}
		}
	}

	end, ok := d.run(state, pos, epsMemo)
	if !ok {
		for i := len(restores) - 1; i >= 0; i-- {
			r := restores[i]
			if r.had {
				d.groups[r.group] = r.prev
			} else {
				delete(d.groups, r.group)
			}
		}
	}
	return end, ok
}

func cloneStateSet(m map[nfa.StateID]bool) map[nfa.StateID]bool {
	out := make(map[nfa.StateID]bool, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
