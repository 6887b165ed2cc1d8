package nfa

import (
	"github.com/coregx/regex/ast"
	"github.com/coregx/regex/charclass"
	"github.com/coregx/regex/internal/rerror"
)

// classSetPredicate builds the membership predicate for a CharacterSet node
// (\d, \w, \p{Name}, ...). The compiler's case-insensitivity setting is not
// applied here: \d/\s/\w are already case-agnostic, and \p{Name}/\P{Name}
// test the rune's own category without folding.
func (c *compiler) classSetPredicate(kind ast.SetKind, name string) (func(rune) bool, error) {
	switch kind {
	case ast.SetDigit:
		return charclass.Digit, nil
	case ast.SetNotDigit:
		return charclass.NotDigit, nil
	case ast.SetSpace:
		return charclass.Space, nil
	case ast.SetNotSpace:
		return charclass.NotSpace, nil
	case ast.SetWord:
		return charclass.Word, nil
	case ast.SetNotWord:
		return charclass.NotWord, nil
	case ast.SetUnicodeCat:
		pred, ok := charclass.UnicodeCategory(name)
		if !ok {
			return nil, rerror.At(c.pattern, 0, "unsupported unicode category %q", name)
		}
		return pred, nil
	case ast.SetNotUnicodeCat:
		pred, ok := charclass.UnicodeCategory(name)
		if !ok {
			return nil, rerror.At(c.pattern, 0, "unsupported unicode category %q", name)
		}
		return func(r rune) bool { return !pred(r) }, nil
	default:
		return nil, rerror.At(c.pattern, 0, "unsupported character set kind")
	}
}

// buildGroupPredicate compiles a CharacterGroup's items into a single
// membership predicate, applying inversion last: the predicate is built
// respecting inversion once, at compile time, rather than wrapped around
// at match time by a separate condition type.
func (c *compiler) buildGroupPredicate(cg ast.CharacterGroup) (func(rune) bool, error) {
	preds := make([]func(rune) bool, 0, len(cg.Items))

	for _, item := range cg.Items {
		switch item.Kind {
		case ast.GroupItemChar:
			ch := item.Char
			if c.cfg.CaseInsensitive {
				preds = append(preds, func(r rune) bool { return charclass.FoldEqual(r, ch) })
			} else {
				preds = append(preds, func(r rune) bool { return r == ch })
			}

		case ast.GroupItemRange:
			lo, hi := item.Lo, item.Hi
			if c.cfg.CaseInsensitive {
				preds = append(preds, func(r rune) bool { return charclass.FoldContainsRange(lo, hi, r) })
			} else {
				preds = append(preds, func(r rune) bool { return charclass.InRange(lo, hi, r) })
			}

		case ast.GroupItemSet:
			pred, err := c.classSetPredicate(item.Set.Kind, item.Set.Name)
			if err != nil {
				return nil, err
			}
			preds = append(preds, pred)

		default:
			return nil, rerror.At(c.pattern, 0, "unsupported character group item kind")
		}
	}

	inverted := cg.Inverted
	return func(r rune) bool {
		for _, p := range preds {
			if p(r) {
				return !inverted
			}
		}
		return inverted
	}, nil
}
