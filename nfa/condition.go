package nfa

import "github.com/coregx/regex/charclass"

// EvalContext is the read-only view a Condition needs to decide whether it
// holds at the current cursor position. It deliberately holds only
// primitive data (no pointer back into the matcher's search state) so this
// package has no dependency on package matcher; the matcher engines build
// one of these whenever they evaluate a condition.
type EvalContext struct {
	Input []rune

	// Pos is the current cursor position (an index into Input).
	Pos int

	// StartIndex is where the current search attempt began.
	StartIndex int

	// PrevMatchEnd is the end index of the previous successful match in
	// the current run of successive searches, or -1 if there was none yet
	// (used by \G).
	PrevMatchEnd int

	// Groups holds the captured [start,end) range for each group index
	// entered so far in the current attempt (used by backreferences).
	Groups map[int][2]int

	Multiline bool
}

func (ctx *EvalContext) isEmptyInput() bool { return len(ctx.Input) == 0 }

// Condition is a predicate evaluated against the matcher's cursor. Eval
// returns ok=false for "rejected". When ok is true, consumed is the number
// of runes the transition eats (0 for every epsilon-shaped condition:
// anchors and the unconditional epsilon used to wire up fragments).
type Condition interface {
	Eval(ctx *EvalContext) (ok bool, consumed int)
}

// CharCondition matches a single literal rune, the "literal character"
// and "case-folded character" condition variants unified into one type
// parameterized by FoldCase (matching how the compiler rules describe a
// predicate "parameterized by case-insensitivity").
type CharCondition struct {
	Value    rune
	FoldCase bool
}

func (c CharCondition) Eval(ctx *EvalContext) (bool, int) {
	if ctx.Pos >= len(ctx.Input) {
		return false, 0
	}
	r := ctx.Input[ctx.Pos]
	if c.FoldCase {
		return charclass.FoldEqual(r, c.Value), 1
	}
	return r == c.Value, 1
}

// StringCondition matches a literal multi-rune run in one step, consuming
// len(Value) runes at once.
type StringCondition struct {
	Value    []rune
	FoldCase bool
}

func (c StringCondition) Eval(ctx *EvalContext) (bool, int) {
	if ctx.Pos+len(c.Value) > len(ctx.Input) {
		return false, 0
	}
	for i, want := range c.Value {
		got := ctx.Input[ctx.Pos+i]
		if c.FoldCase {
			if !charclass.FoldEqual(got, want) {
				return false, 0
			}
		} else if got != want {
			return false, 0
		}
	}
	return true, len(c.Value)
}

// SetCondition matches any rune accepted by Match. It is used for escaped
// classes (\d, \w, ...), \p{Name}/\P{Name}, "." (AnyCondition is used for
// that instead, see below), and compiled CharacterGroup predicates — the
// inversion for CharacterGroup is already folded into Match, so there is no
// separate "inverted set" type (the predicate is built respecting
// inversion once, at compile time).
type SetCondition struct {
	Match func(r rune) bool
}

func (c SetCondition) Eval(ctx *EvalContext) (bool, int) {
	if ctx.Pos >= len(ctx.Input) {
		return false, 0
	}
	return c.Match(ctx.Input[ctx.Pos]), 1
}

// RangeCondition matches a single rune in the inclusive scalar range
// [Lo, Hi].
type RangeCondition struct {
	Lo, Hi   rune
	FoldCase bool
}

func (c RangeCondition) Eval(ctx *EvalContext) (bool, int) {
	if ctx.Pos >= len(ctx.Input) {
		return false, 0
	}
	r := ctx.Input[ctx.Pos]
	if c.FoldCase {
		return charclass.FoldContainsRange(c.Lo, c.Hi, r), 1
	}
	return charclass.InRange(c.Lo, c.Hi, r), 1
}

// AnyCondition is ".". MatchNewline controls whether '\n' is accepted,
// driven by the DOT_MATCHES_LINE_SEPARATORS option.
type AnyCondition struct {
	MatchNewline bool
}

func (c AnyCondition) Eval(ctx *EvalContext) (bool, int) {
	if ctx.Pos >= len(ctx.Input) {
		return false, 0
	}
	r := ctx.Input[ctx.Pos]
	if r == '\n' && !c.MatchNewline {
		return false, 0
	}
	return true, 1
}

// BackreferenceCondition matches the text most recently captured by group
// GroupIndex, consuming its length. If the group was never entered during
// this attempt, or is still open (its end boundary not yet reached), the
// condition is rejected rather than treated as matching empty.
type BackreferenceCondition struct {
	GroupIndex int

	// Pos is the rune offset of the backslash that introduced this
	// backreference in the source pattern, carried through solely so an
	// invalid-backreference error can point at the real location.
	Pos int
}

func (c BackreferenceCondition) Eval(ctx *EvalContext) (bool, int) {
	rng, ok := ctx.Groups[c.GroupIndex]
	if !ok || rng[1] < 0 {
		return false, 0
	}
	captured := ctx.Input[rng[0]:rng[1]]
	n := len(captured)
	if ctx.Pos+n > len(ctx.Input) {
		return false, 0
	}
	for i, r := range captured {
		if ctx.Input[ctx.Pos+i] != r {
			return false, 0
		}
	}
	return true, n
}

// EpsilonCondition consumes nothing. A nil Guard is the "unconditional"
// epsilon used to wire fragments together; a non-nil
// Guard implements one of the zero-width anchor assertions.
type EpsilonCondition struct {
	Guard func(ctx *EvalContext) bool
}

func (c EpsilonCondition) Eval(ctx *EvalContext) (bool, int) {
	if c.Guard == nil {
		return true, 0
	}
	return c.Guard(ctx), 0
}

// Unconditional is the shared unconditional-epsilon condition, used for
// every structural (non-anchor) epsilon transition; the peephole pass
// recognizes these by their nil Guard.
var Unconditional = EpsilonCondition{}
