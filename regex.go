// Package regex implements a small Perl-compatible regular expression
// engine: a recursive-descent parser, an idempotent AST optimizer, a
// Thompson-construction NFA compiler, and a dual-strategy matcher that
// routes each compiled pattern to whichever of its two engines can answer
// it — a BFS Pike-VM simulation in linear time for the regular subset, or
// a backtracking DFS interpreter for the patterns (backreferences, lazy
// quantifiers) that need it.
//
// Compilation is the only place errors happen:
//
//	re, err := regex.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.IsMatch("call 555-1234") // true
//
// A compiled Regex is immutable and safe for concurrent use; every match
// attempt allocates its own thread lists and capture slots.
package regex

import (
	"github.com/coregx/regex/literal"
	"github.com/coregx/regex/matcher"
	"github.com/coregx/regex/nfa"
	"github.com/coregx/regex/optimizer"
	"github.com/coregx/regex/parser"
)

// Regex is a compiled pattern. The zero value is not usable; obtain one
// through Compile, CompileOptions, or MustCompile.
type Regex struct {
	pattern     string
	machine     *nfa.NFA
	numCaptures int
	multiline   bool
	prefilter   *literal.Prefilter
}

// Compile compiles pattern with no options set.
func Compile(pattern string) (*Regex, error) {
	return CompileOptions(pattern, 0)
}

// CompileOptions compiles pattern with the given Options bitset.
func CompileOptions(pattern string, opts Options) (*Regex, error) {
	root, isFromStartOfString, err := parser.Parse(pattern)
	if err != nil {
		return nil, err
	}

	optimized, numCaptures := optimizer.Optimize(root)

	cfg := nfa.DefaultCompilerConfig()
	cfg.CaseInsensitive = opts.has(CaseInsensitive)
	cfg.DotNewline = opts.has(DotMatchesLineSeparators)

	machine, err := nfa.Compile(optimized, numCaptures, isFromStartOfString, cfg, pattern)
	if err != nil {
		return nil, err
	}

	// The prefilter compares literals byte for byte, so it is only built
	// when case folding is off.
	var prefilter *literal.Prefilter
	if !cfg.CaseInsensitive {
		prefilter, _ = literal.Extract(optimized)
	}

	return &Regex{
		pattern:     pattern,
		machine:     machine,
		numCaptures: numCaptures,
		multiline:   opts.has(Multiline),
		prefilter:   prefilter,
	}, nil
}

// MustCompile is Compile, but panics instead of returning an error. It
// exists for patterns known to be valid at compile time, typically stored
// in a package-level var.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("regex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// String returns the source pattern re was compiled from.
func (re *Regex) String() string {
	return re.pattern
}

// NumCaptureGroups returns the number of parenthesized capture groups in
// the pattern, not counting the implicit whole-match group.
func (re *Regex) NumCaptureGroups() int {
	return re.numCaptures
}

// IsMatch reports whether s contains a match of re anywhere in it.
func (re *Regex) IsMatch(s string) bool {
	_, ok := re.FirstMatch(s)
	return ok
}

// FirstMatch returns the leftmost match in s, or ok=false if there is
// none.
func (re *Regex) FirstMatch(s string) (match Match, ok bool) {
	input := []rune(s)
	m, found := re.find(input, 0, -1)
	if !found {
		return Match{}, false
	}
	return buildMatch(input, m), true
}

// Matches returns every non-overlapping match of re in s, in order. An
// empty match is followed by advancing the search one rune forward, so
// the sequence always makes progress (the matches property).
func (re *Regex) Matches(s string) []Match {
	input := []rune(s)
	var out []Match
	pos := 0
	prevEnd := -1
	for pos <= len(input) {
		m, ok := re.find(input, pos, prevEnd)
		if !ok {
			break
		}
		out = append(out, buildMatch(input, m))
		prevEnd = m.End
		if m.End == m.Start {
			pos = m.End + 1
		} else {
			pos = m.End
		}
	}
	return out
}

// find runs the matcher starting no earlier than from, first consulting
// the literal prefilter (if one could be extracted for this pattern) to
// skip straight to the next position some top-level branch's mandatory
// literal prefix occurs at. Every match must begin at such a position, so
// skipping ahead to it never misses a match — the NFA simulation that
// runs afterward still finds the true leftmost match from there on.
func (re *Regex) find(input []rune, from, prevMatchEnd int) (*matcher.Match, bool) {
	start := from
	if re.prefilter != nil {
		cand, ok := re.prefilter.NextCandidate(input, from)
		if !ok {
			return nil, false
		}
		start = cand
	}
	return matcher.Find(re.machine, input, re.multiline, start, prevMatchEnd)
}

// buildMatch converts an internal matcher.Match (rune offsets into input)
// into the public Match record: a full-match slice, an
// ordered sequence of per-group slices, and the match's end index.
func buildMatch(input []rune, m *matcher.Match) Match {
	groups := make([]string, len(m.Groups)-1)
	for i := 1; i < len(m.Groups); i++ {
		g := m.Groups[i]
		if g[0] < 0 || g[1] < 0 {
			groups[i-1] = ""
			continue
		}
		groups[i-1] = string(input[g[0]:g[1]])
	}
	return Match{
		full:       string(input[m.Start:m.End]),
		groups:     groups,
		startIndex: m.Start,
		endIndex:   m.End,
	}
}
