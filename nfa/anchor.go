package nfa

import (
	"github.com/coregx/regex/ast"
	"github.com/coregx/regex/charclass"
)

// anchorGuard returns the positional predicate compiled for the given
// ast.AnchorKind. Two of these assertions (start-of-line and end-of-line)
// are terser than they are precise about which side of the cursor the
// adjacent '\n' must fall on; this
// implementation takes the conventional regex reading used by every other
// engine referenced by this module (Go's regexp, PCRE, .NET): '^' looks at
// the character just consumed to reach this position, '$' looks at the
// character about to be consumed. See DESIGN.md for the full writeup of
// this resolved ambiguity.
func anchorGuard(kind ast.AnchorKind) func(ctx *EvalContext) bool {
	switch kind {
	case ast.AnchorStartOfLine:
		return func(ctx *EvalContext) bool {
			if ctx.isEmptyInput() || ctx.Pos == 0 {
				return true
			}
			return ctx.Multiline && ctx.Input[ctx.Pos-1] == '\n'
		}
	case ast.AnchorEndOfLine:
		return func(ctx *EvalContext) bool {
			if ctx.isEmptyInput() || ctx.Pos == len(ctx.Input) {
				return true
			}
			if ctx.Multiline && ctx.Input[ctx.Pos] == '\n' {
				return true
			}
			return ctx.Pos == len(ctx.Input)-1 && ctx.Input[ctx.Pos] == '\n'
		}
	case ast.AnchorStartOfStringOnly:
		return func(ctx *EvalContext) bool {
			return ctx.Pos == 0
		}
	case ast.AnchorEndOfStringOnlyStrict:
		return func(ctx *EvalContext) bool {
			if ctx.isEmptyInput() || ctx.Pos == len(ctx.Input) {
				return true
			}
			return ctx.Pos == len(ctx.Input)-1 && ctx.Input[ctx.Pos] == '\n'
		}
	case ast.AnchorEndOfStringOnly:
		return func(ctx *EvalContext) bool {
			return ctx.Pos == len(ctx.Input)
		}
	case ast.AnchorWordBoundary:
		return isWordBoundary
	case ast.AnchorNonWordBoundary:
		return func(ctx *EvalContext) bool { return !isWordBoundary(ctx) }
	case ast.AnchorPreviousMatchEnd:
		return func(ctx *EvalContext) bool {
			if ctx.PrevMatchEnd < 0 {
				return ctx.Pos == 0
			}
			return ctx.Pos == ctx.PrevMatchEnd
		}
	default:
		return func(*EvalContext) bool { return false }
	}
}

func isWordBoundary(ctx *EvalContext) bool {
	leftIsWord := ctx.Pos > 0 && charclass.IsWord(ctx.Input[ctx.Pos-1])
	rightIsWord := ctx.Pos < len(ctx.Input) && charclass.IsWord(ctx.Input[ctx.Pos])
	return leftIsWord != rightIsWord
}
