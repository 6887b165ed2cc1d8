package nfa

// finalize runs the peephole epsilon-splicing pass and then re-indexes
// states in BFS order from the start state, so the compiled NFA has no
// unreachable states and no dangling concatenation bridges left over from
// fragment wiring.
func finalize(n *NFA) {
	splice(n)
	reindex(n)
}

// splice repeatedly retargets any transition that points at a state whose
// sole outgoing transition is an unconditional epsilon, skipping straight
// to that epsilon's target. A state referenced by a CaptureGroupRecord is
// never spliced away — doing so would lose the boundary the matcher needs
// to record where a group started or ended.
func splice(n *NFA) {
	protected := make(map[StateID]bool)
	for _, cap := range n.Captures {
		protected[cap.StartState] = true
		protected[cap.EndState] = true
	}

	for changed := true; changed; {
		changed = false
		for i := range n.States {
			for j := range n.States[i].Transitions {
				t := &n.States[i].Transitions[j]
				if protected[t.To] || t.To == StateID(i) {
					continue
				}
				target := n.States[t.To]
				if len(target.Transitions) == 1 && isUnconditionalEpsilon(target.Transitions[0].Cond) {
					t.To = target.Transitions[0].To
					changed = true
				}
			}
		}
	}
}

func isUnconditionalEpsilon(cond Condition) bool {
	ec, ok := cond.(EpsilonCondition)
	return ok && ec.Guard == nil
}

// reindex renumbers states in BFS order starting from n.Start, dropping any
// state the splice pass left unreachable, and rewrites Captures to the new
// numbering.
func reindex(n *NFA) {
	oldToNew := map[StateID]StateID{n.Start: 0}
	order := []StateID{n.Start}

	for i := 0; i < len(order); i++ {
		cur := order[i]
		for _, t := range n.States[cur].Transitions {
			if _, seen := oldToNew[t.To]; !seen {
				oldToNew[t.To] = StateID(len(order))
				order = append(order, t.To)
			}
		}
	}

	newStates := make([]State, len(order))
	for newID, oldID := range order {
		old := n.States[oldID]
		trans := make([]Transition, len(old.Transitions))
		for i, t := range old.Transitions {
			trans[i] = Transition{To: oldToNew[t.To], Cond: t.Cond}
		}
		newStates[newID] = State{Transitions: trans}
	}

	newCaptures := make([]CaptureGroupRecord, len(n.Captures))
	for i, cap := range n.Captures {
		newCaptures[i] = CaptureGroupRecord{
			GroupIndex: cap.GroupIndex,
			StartState: oldToNew[cap.StartState],
			EndState:   oldToNew[cap.EndState],
		}
	}

	n.States = newStates
	n.Start = 0
	n.Captures = newCaptures
}
