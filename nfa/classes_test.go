package nfa

import (
	"testing"

	"github.com/coregx/regex/ast"
)

func TestClassSetPredicateDigit(t *testing.T) {
	c := &compiler{cfg: DefaultCompilerConfig()}
	pred, err := c.classSetPredicate(ast.SetDigit, "")
	if err != nil {
		t.Fatalf("classSetPredicate returned error: %v", err)
	}
	if !pred('5') || pred('x') {
		t.Error("SetDigit predicate classified incorrectly")
	}
}

func TestClassSetPredicateUnsupportedCategory(t *testing.T) {
	c := &compiler{cfg: DefaultCompilerConfig()}
	_, err := c.classSetPredicate(ast.SetUnicodeCat, "Zzzz")
	if err == nil {
		t.Fatal("an unsupported unicode category should error")
	}
}

func TestClassSetPredicateNegatedCategory(t *testing.T) {
	c := &compiler{cfg: DefaultCompilerConfig()}
	pred, err := c.classSetPredicate(ast.SetNotUnicodeCat, "Ll")
	if err != nil {
		t.Fatalf("classSetPredicate returned error: %v", err)
	}
	if pred('a') {
		t.Error("\\P{Ll} should reject a lowercase letter")
	}
	if !pred('A') {
		t.Error("\\P{Ll} should accept an uppercase letter")
	}
}

func TestBuildGroupPredicateInversion(t *testing.T) {
	c := &compiler{cfg: DefaultCompilerConfig()}
	cg := ast.CharacterGroup{
		Inverted: true,
		Items:    []ast.GroupItem{{Kind: ast.GroupItemRange, Lo: 'a', Hi: 'z'}},
	}
	pred, err := c.buildGroupPredicate(cg)
	if err != nil {
		t.Fatalf("buildGroupPredicate returned error: %v", err)
	}
	if pred('m') {
		t.Error("[^a-z] should reject 'm'")
	}
	if !pred('M') {
		t.Error("[^a-z] should accept 'M'")
	}
}

func TestBuildGroupPredicateCaseInsensitive(t *testing.T) {
	cfg := DefaultCompilerConfig()
	cfg.CaseInsensitive = true
	c := &compiler{cfg: cfg}
	cg := ast.CharacterGroup{Items: []ast.GroupItem{{Kind: ast.GroupItemChar, Char: 'k'}}}
	pred, err := c.buildGroupPredicate(cg)
	if err != nil {
		t.Fatalf("buildGroupPredicate returned error: %v", err)
	}
	if !pred('K') {
		t.Error("case-insensitive [k] should accept 'K'")
	}
}

func TestBuildGroupPredicateNestedSet(t *testing.T) {
	c := &compiler{cfg: DefaultCompilerConfig()}
	cg := ast.CharacterGroup{Items: []ast.GroupItem{
		{Kind: ast.GroupItemSet, Set: ast.CharacterSet{Kind: ast.SetDigit}},
	}}
	pred, err := c.buildGroupPredicate(cg)
	if err != nil {
		t.Fatalf("buildGroupPredicate returned error: %v", err)
	}
	if !pred('3') || pred('x') {
		t.Error("[\\d] should behave exactly like \\d")
	}
}
