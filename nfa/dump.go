package nfa

import (
	"fmt"
	"strings"
)

// String renders a one-line summary of n: the fields that distinguish one
// compiled pattern from another.
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, captures: %d, regular: %v, anchored: %v}",
		len(n.States), n.Start, n.NumCaptures, n.IsRegular, n.IsFromStartOfString)
}

// Dump renders every state and its transitions, one per line, for the
// regexdump inspection tool and for debugging compiler output by hand.
func (n *NFA) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", n.String())
	for id := range n.States {
		s := &n.States[id]
		if s.IsAccepting() {
			fmt.Fprintf(&b, "  %d: accept\n", id)
			continue
		}
		for _, t := range s.Transitions {
			fmt.Fprintf(&b, "  %d: %s -> %d\n", id, conditionString(t.Cond), t.To)
		}
	}
	return b.String()
}

func conditionString(c Condition) string {
	switch cond := c.(type) {
	case CharCondition:
		if cond.FoldCase {
			return fmt.Sprintf("char(%q, fold)", cond.Value)
		}
		return fmt.Sprintf("char(%q)", cond.Value)
	case StringCondition:
		return fmt.Sprintf("string(%q)", string(cond.Value))
	case SetCondition:
		return "set(...)"
	case RangeCondition:
		return fmt.Sprintf("range(%q-%q)", cond.Lo, cond.Hi)
	case AnyCondition:
		return fmt.Sprintf("any(newline=%v)", cond.MatchNewline)
	case BackreferenceCondition:
		return fmt.Sprintf("backref(%d)", cond.GroupIndex)
	case EpsilonCondition:
		if cond.Guard == nil {
			return "epsilon"
		}
		return "epsilon(guarded)"
	default:
		return fmt.Sprintf("%T", cond)
	}
}
