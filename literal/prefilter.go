// Package literal extracts the mandatory literal prefixes out of a
// pattern's top-level alternatives and builds a multi-pattern search
// accelerator over them, per SPEC_FULL.md's domain-stack wiring of
// github.com/coregx/ahocorasick. A Prefilter lets the matcher shell skip
// straight to the next rune position where a match could possibly begin,
// instead of attempting the (potentially expensive, for the DFS engine)
// NFA simulation at every position in the haystack.
package literal

import (
	"github.com/coregx/ahocorasick"
	"github.com/coregx/regex/ast"
)

// Prefilter reports candidate start positions for a set of mandatory
// literal prefixes. A nil *Prefilter (returned by Extract when no useful
// literal set exists) means "no acceleration available" — callers must
// fall back to trying every position.
type Prefilter struct {
	automaton *ahocorasick.Automaton
}

// Extract builds a Prefilter from root's top-level alternatives (a root
// that is not an Alternation counts as a single branch), or reports
// ok=false when no such accelerator can be built: any branch that does not
// begin with a literal (".*foo|bar" has no mandatory literal for its first
// branch) disqualifies the pattern.
func Extract(root ast.Node) (*Prefilter, bool) {
	branches := topLevelBranches(root)
	builder := ahocorasick.NewBuilder()
	found := 0
	for _, b := range branches {
		lit, ok := mandatoryPrefix(b)
		if !ok || lit == "" {
			return nil, false
		}
		builder.AddPattern([]byte(lit))
		found++
	}
	if found == 0 {
		return nil, false
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &Prefilter{automaton: automaton}, true
}

// topLevelBranches returns root's alternatives, or a single-element slice
// containing root itself when it isn't an Alternation.
func topLevelBranches(root ast.Node) []ast.Node {
	if alt, ok := root.(ast.Alternation); ok {
		return alt.Alternatives
	}
	return []ast.Node{root}
}

// mandatoryPrefix returns the literal text a branch must begin with, if
// any. Only Character, String, and an ImplicitGroup whose first child is
// one of those count; anything else (a class, a quantifier that can match
// zero atoms, an anchor) means there is no mandatory literal to extract.
func mandatoryPrefix(node ast.Node) (string, bool) {
	switch n := node.(type) {
	case ast.Character:
		return string(n.Value), true
	case ast.String:
		return n.Value, true
	case ast.ImplicitGroup:
		if len(n.Children) == 0 {
			return "", false
		}
		return mandatoryPrefix(n.Children[0])
	case ast.Group:
		return mandatoryPrefix(n.Child)
	default:
		return "", false
	}
}

// NextCandidate returns the rune index of the next position at or after
// `from` where some mandatory literal occurs, encoding input as UTF-8 to
// search it and translating the byte match back to a rune index.
func (p *Prefilter) NextCandidate(input []rune, from int) (int, bool) {
	if from >= len(input) {
		return 0, false
	}
	encoded, byteToRune := encode(input, from)
	m := p.automaton.Find(encoded, 0)
	if m == nil {
		return 0, false
	}
	return byteToRune[m.Start], true
}

// encode converts input[from:] to UTF-8 bytes alongside a table mapping
// each byte offset back to the rune index it belongs to.
func encode(input []rune, from int) ([]byte, []int) {
	buf := make([]byte, 0, (len(input)-from)*2)
	byteToRune := make([]int, 0, cap(buf)+1)
	for i := from; i < len(input); i++ {
		var tmp [4]byte
		n := encodeRune(tmp[:], input[i])
		for j := 0; j < n; j++ {
			byteToRune = append(byteToRune, i)
		}
		buf = append(buf, tmp[:n]...)
	}
	byteToRune = append(byteToRune, len(input)) // sentinel for a match ending at EOF
	return buf, byteToRune
}

// encodeRune is a minimal UTF-8 encoder so this package doesn't need to
// round-trip through string() conversions just to get byte lengths.
func encodeRune(dst []byte, r rune) int {
	return copy(dst, string(r))
}
