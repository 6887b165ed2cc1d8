package parser

import (
	"testing"

	"github.com/coregx/regex/ast"
)

func TestParseLiteralRun(t *testing.T) {
	root, anchored, err := Parse("abc")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if anchored {
		t.Error("isFromStartOfString should be false for a pattern with no leading '^'")
	}
	ig, ok := root.(ast.ImplicitGroup)
	if !ok {
		t.Fatalf("root = %T, want ast.ImplicitGroup", root)
	}
	if len(ig.Children) != 3 {
		t.Fatalf("got %d children, want 3 literal characters", len(ig.Children))
	}
	for i, want := range []rune{'a', 'b', 'c'} {
		ch, ok := ig.Children[i].(ast.Character)
		if !ok || ch.Value != want {
			t.Errorf("child %d = %v, want Character(%q)", i, ig.Children[i], want)
		}
	}
}

func TestParseLeadingCaretSetsAnchorFlag(t *testing.T) {
	_, anchored, err := Parse("^abc")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !anchored {
		t.Error("isFromStartOfString should be true when the pattern begins with '^'")
	}
}

func TestParseAlternation(t *testing.T) {
	root, _, err := Parse("a|b")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	ig, ok := root.(ast.ImplicitGroup)
	if !ok || len(ig.Children) != 1 {
		t.Fatalf("root = %#v, want an ast.ImplicitGroup with one child", root)
	}
	alt, ok := ig.Children[0].(ast.Alternation)
	if !ok {
		t.Fatalf("child = %T, want ast.Alternation", ig.Children[0])
	}
	if len(alt.Alternatives) != 2 {
		t.Fatalf("got %d alternatives, want 2", len(alt.Alternatives))
	}
}

func TestParseGroup(t *testing.T) {
	root, _, err := Parse("(ab)")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	ig := root.(ast.ImplicitGroup)
	g, ok := ig.Children[0].(ast.Group)
	if !ok {
		t.Fatalf("child = %T, want ast.Group", ig.Children[0])
	}
	if !g.Capturing {
		t.Error("an unmarked group should be capturing")
	}
}

func TestParseNonCapturingGroup(t *testing.T) {
	root, _, err := Parse("(?:ab)")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	ig := root.(ast.ImplicitGroup)
	g := ig.Children[0].(ast.Group)
	if g.Capturing {
		t.Error("(?:...) should not be capturing")
	}
}

func TestParseQuantifiers(t *testing.T) {
	tests := []struct {
		pattern string
		kind    ast.QuantifierKind
		lazy    bool
	}{
		{"a*", ast.QuantStar, false},
		{"a*?", ast.QuantStar, true},
		{"a+", ast.QuantPlus, false},
		{"a+?", ast.QuantPlus, true},
		{"a?", ast.QuantOpt, false},
		{"a??", ast.QuantOpt, true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			root, _, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.pattern, err)
			}
			ig, ok := root.(ast.ImplicitGroup)
			if !ok || len(ig.Children) != 1 {
				t.Fatalf("root = %#v, want an ast.ImplicitGroup with one child", root)
			}
			q, ok := ig.Children[0].(ast.Quantified)
			if !ok {
				t.Fatalf("child = %T, want ast.Quantified", ig.Children[0])
			}
			if q.Quantifier.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", q.Quantifier.Kind, tt.kind)
			}
			if q.Quantifier.Lazy != tt.lazy {
				t.Errorf("lazy = %v, want %v", q.Quantifier.Lazy, tt.lazy)
			}
		})
	}
}

func TestParseRangeQuantifier(t *testing.T) {
	tests := []struct {
		pattern      string
		lower, upper int
		bounded      bool
	}{
		{"a{3}", 3, 3, true},
		{"a{2,5}", 2, 5, true},
		{"a{2,}", 2, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			root, _, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.pattern, err)
			}
			q := root.(ast.ImplicitGroup).Children[0].(ast.Quantified).Quantifier
			if q.Lower != tt.lower {
				t.Errorf("lower = %d, want %d", q.Lower, tt.lower)
			}
			if tt.bounded && q.Upper != tt.upper {
				t.Errorf("upper = %d, want %d", q.Upper, tt.upper)
			}
			if q.Bounded != tt.bounded {
				t.Errorf("bounded = %v, want %v", q.Bounded, tt.bounded)
			}
		})
	}
}

func TestParseCharacterGroup(t *testing.T) {
	root, _, err := Parse("[a-fA-F0-9_]")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	cg := root.(ast.ImplicitGroup).Children[0].(ast.CharacterGroup)
	if cg.Inverted {
		t.Error("group should not be inverted")
	}
	if len(cg.Items) != 4 {
		t.Fatalf("got %d items, want 4 (two ranges, a digit range, an underscore)", len(cg.Items))
	}
}

func TestParseInvertedCharacterGroup(t *testing.T) {
	root, _, err := Parse("[^\n]")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	cg := root.(ast.ImplicitGroup).Children[0].(ast.CharacterGroup)
	if !cg.Inverted {
		t.Error("group should be inverted")
	}
}

func TestParseBackreference(t *testing.T) {
	root, _, err := Parse(`(\w)\1`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	ig := root.(ast.ImplicitGroup)
	br, ok := ig.Children[1].(ast.Backreference)
	if !ok {
		t.Fatalf("second child = %T, want ast.Backreference", ig.Children[1])
	}
	if br.Index != 1 {
		t.Errorf("backreference index = %d, want 1", br.Index)
	}
}

func TestParseAnchors(t *testing.T) {
	tests := []struct {
		pattern string
		kind    ast.AnchorKind
	}{
		{"^", ast.AnchorStartOfLine},
		{"$", ast.AnchorEndOfLine},
		{`\A`, ast.AnchorStartOfStringOnly},
		{`\z`, ast.AnchorEndOfStringOnly},
		{`\Z`, ast.AnchorEndOfStringOnlyStrict},
		{`\b`, ast.AnchorWordBoundary},
		{`\B`, ast.AnchorNonWordBoundary},
		{`\G`, ast.AnchorPreviousMatchEnd},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			root, _, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.pattern, err)
			}
			ig, ok := root.(ast.ImplicitGroup)
			if !ok || len(ig.Children) != 1 {
				t.Fatalf("root = %#v, want an ast.ImplicitGroup with one child", root)
			}
			a, ok := ig.Children[0].(ast.Anchor)
			if !ok {
				t.Fatalf("child = %T, want ast.Anchor", ig.Children[0])
			}
			if a.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", a.Kind, tt.kind)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"unmatched opening paren", "(abc"},
		{"unmatched closing paren", "abc)"},
		{"dangling quantifier", "*abc"},
		{"empty character group", "[]"},
		{"unterminated character group", "[abc"},
		{"trailing backslash", `abc\`},
		{"unsupported unicode category", `\p{Zzzz}`},
		{"range quantifier out of order", "a{5,2}"},
		{"character range out of order", "[z-a]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.pattern)
			if err == nil {
				t.Fatalf("Parse(%q) should have failed", tt.pattern)
			}
		})
	}
}

func TestParseEmptyPattern(t *testing.T) {
	root, _, err := Parse("")
	if err != nil {
		t.Fatalf("Parse(\"\") returned error: %v", err)
	}
	ig, ok := root.(ast.ImplicitGroup)
	if !ok || len(ig.Children) != 0 {
		t.Errorf("root = %#v, want an empty ImplicitGroup", root)
	}
}
