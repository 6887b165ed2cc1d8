package matcher

import "github.com/coregx/regex/nfa"

// captureBoundaries indexes n.Captures by state, so the engines can test in
// O(1) whether entering a given state marks the start or end of some
// capturing group, without scanning the capture list on every step.
func captureBoundaries(n *nfa.NFA) (startsAt, endsAt map[nfa.StateID][]int) {
	startsAt = make(map[nfa.StateID][]int)
	endsAt = make(map[nfa.StateID][]int)
	for _, cap := range n.Captures {
		startsAt[cap.StartState] = append(startsAt[cap.StartState], cap.GroupIndex)
		endsAt[cap.EndState] = append(endsAt[cap.EndState], cap.GroupIndex)
	}
	return startsAt, endsAt
}

// capState is a copy-on-write capture-slot vector: most of a generation's
// threads share the same underlying slots, and only the handful that
// actually cross a capture boundary pay for a copy. Slot layout is
// [group0start, group0end, group1start, group1end, ...], with group 0
// reserved for the whole match.
type capState struct {
	shared *sharedCaps
}

type sharedCaps struct {
	data []int
	refs int
}

func newCapState(numGroups int) capState {
	data := make([]int, (numGroups+1)*2)
	for i := range data {
		data[i] = -1
	}
	return capState{shared: &sharedCaps{data: data, refs: 1}}
}

// clone returns a reference to the same backing slots, bumping the
// refcount so a later withSlot knows it must copy before writing.
func (c capState) clone() capState {
	c.shared.refs++
	return c
}

func (c capState) withSlot(slot, pos int) capState {
	if c.shared.refs > 1 {
		data := make([]int, len(c.shared.data))
		copy(data, c.shared.data)
		data[slot] = pos
		c.shared.refs--
		return capState{shared: &sharedCaps{data: data, refs: 1}}
	}
	c.shared.data[slot] = pos
	return c
}

func (c capState) snapshot() []int {
	out := make([]int, len(c.shared.data))
	copy(out, c.shared.data)
	return out
}

func buildMatch(numCaptures, start, end int, slots []int) *Match {
	m := &Match{Start: start, End: end, Groups: make([][2]int, numCaptures+1)}
	m.Groups[0] = [2]int{start, end}
	for g := 1; g <= numCaptures; g++ {
		s, e := slots[g*2], slots[g*2+1]
		if s < 0 || e < 0 {
			m.Groups[g] = [2]int{-1, -1}
		} else {
			m.Groups[g] = [2]int{s, e}
		}
	}
	return m
}

func buildMatchFromGroupMap(numCaptures, start, end int, groups map[int][2]int) *Match {
	m := &Match{Start: start, End: end, Groups: make([][2]int, numCaptures+1)}
	m.Groups[0] = [2]int{start, end}
	for g := 1; g <= numCaptures; g++ {
		if rng, ok := groups[g]; ok && rng[0] >= 0 && rng[1] >= 0 {
			m.Groups[g] = rng
		} else {
			m.Groups[g] = [2]int{-1, -1}
		}
	}
	return m
}
