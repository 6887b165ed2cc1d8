package nfa

import (
	"github.com/coregx/regex/ast"
	"github.com/coregx/regex/internal/rerror"
)

// CompilerConfig configures NFA compilation behavior as a plain value
// struct with a Default constructor, never a package-global.
type CompilerConfig struct {
	// CaseInsensitive folds case for Character, String, CharacterGroup and
	// range comparisons (driven by the CASE_INSENSITIVE option).
	CaseInsensitive bool

	// DotNewline makes '.' match '\n' (driven by DOT_MATCHES_LINE_SEPARATORS).
	DotNewline bool

	// MaxRecursionDepth bounds the AST recursion depth during compilation,
	// guarding against a stack overflow on pathologically nested patterns.
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns sensible defaults.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{MaxRecursionDepth: 1000}
}

// Compile lowers an optimized AST into an NFA. pattern is
// only used to annotate any *rerror.CompileError raised along the way.
func Compile(root ast.Node, numCaptures int, isFromStartOfString bool, cfg CompilerConfig, pattern string) (*NFA, error) {
	if cfg.MaxRecursionDepth <= 0 {
		cfg.MaxRecursionDepth = DefaultCompilerConfig().MaxRecursionDepth
	}
	c := &compiler{cfg: cfg, pattern: pattern}

	frag, err := c.compileNode(root, 0)
	if err != nil {
		return nil, err
	}

	out := &NFA{
		States:              c.states,
		Start:               frag.start,
		Captures:            c.captures,
		NumCaptures:         numCaptures,
		IsFromStartOfString: isFromStartOfString,
		IsRegular:           !c.hasLazy && !c.hasBackref,
	}

	if err := validateBackreferences(out, pattern, c.backrefs); err != nil {
		return nil, err
	}

	finalize(out)
	return out, nil
}

type fragment struct {
	start, end StateID
}

type compiler struct {
	states     []State
	cfg        CompilerConfig
	pattern    string
	captures   []CaptureGroupRecord
	hasLazy    bool
	hasBackref bool
	backrefs   []backrefSite
}

// backrefSite records where in the source pattern a \N backreference was
// written, so an invalid reference can be reported against its own
// location rather than a generic one.
type backrefSite struct {
	groupIndex int
	pos        int
}

func (c *compiler) newFragment() fragment {
	s := c.newState()
	e := c.newState()
	return fragment{start: s, end: e}
}

func (c *compiler) newState() StateID {
	c.states = append(c.states, State{})
	return StateID(len(c.states) - 1)
}

func (c *compiler) addTransition(from, to StateID, cond Condition) {
	c.states[from].Transitions = append(c.states[from].Transitions, Transition{To: to, Cond: cond})
}

func (c *compiler) compileNode(node ast.Node, depth int) (fragment, error) {
	if depth > c.cfg.MaxRecursionDepth {
		return fragment{}, rerror.At(c.pattern, 0, "pattern exceeds maximum nesting depth")
	}

	switch n := node.(type) {
	case ast.Character:
		f := c.newFragment()
		c.addTransition(f.start, f.end, CharCondition{Value: n.Value, FoldCase: c.cfg.CaseInsensitive})
		return f, nil

	case ast.String:
		f := c.newFragment()
		c.addTransition(f.start, f.end, StringCondition{Value: []rune(n.Value), FoldCase: c.cfg.CaseInsensitive})
		return f, nil

	case ast.AnyCharacter:
		f := c.newFragment()
		c.addTransition(f.start, f.end, AnyCondition{MatchNewline: c.cfg.DotNewline})
		return f, nil

	case ast.CharacterSet:
		pred, err := c.classSetPredicate(n.Kind, n.Name)
		if err != nil {
			return fragment{}, err
		}
		f := c.newFragment()
		c.addTransition(f.start, f.end, SetCondition{Match: pred})
		return f, nil

	case ast.CharacterGroup:
		pred, err := c.buildGroupPredicate(n)
		if err != nil {
			return fragment{}, err
		}
		f := c.newFragment()
		c.addTransition(f.start, f.end, SetCondition{Match: pred})
		return f, nil

	case ast.ImplicitGroup:
		return c.compileConcat(n.Children, depth)

	case ast.Alternation:
		return c.compileAlternation(n.Alternatives, depth)

	case ast.Group:
		return c.compileGroup(n, depth)

	case ast.Quantified:
		return c.compileQuantified(n, depth)

	case ast.Anchor:
		f := c.newFragment()
		c.addTransition(f.start, f.end, EpsilonCondition{Guard: anchorGuard(n.Kind)})
		return f, nil

	case ast.Backreference:
		c.hasBackref = true
		c.backrefs = append(c.backrefs, backrefSite{groupIndex: n.Index, pos: n.Pos})
		f := c.newFragment()
		c.addTransition(f.start, f.end, BackreferenceCondition{GroupIndex: n.Index, Pos: n.Pos})
		return f, nil

	default:
		return fragment{}, rerror.At(c.pattern, 0, "unsupported AST node %T", node)
	}
}

func (c *compiler) compileConcat(children []ast.Node, depth int) (fragment, error) {
	if len(children) == 0 {
		f := c.newFragment()
		c.addTransition(f.start, f.end, Unconditional)
		return f, nil
	}
	acc, err := c.compileNode(children[0], depth+1)
	if err != nil {
		return fragment{}, err
	}
	for _, child := range children[1:] {
		next, err := c.compileNode(child, depth+1)
		if err != nil {
			return fragment{}, err
		}
		c.addTransition(acc.end, next.start, Unconditional)
		acc.end = next.end
	}
	return acc, nil
}

func (c *compiler) compileAlternation(alts []ast.Node, depth int) (fragment, error) {
	f := c.newFragment()
	for _, alt := range alts {
		af, err := c.compileNode(alt, depth+1)
		if err != nil {
			return fragment{}, err
		}
		c.addTransition(f.start, af.start, Unconditional)
		c.addTransition(af.end, f.end, Unconditional)
	}
	return f, nil
}

func (c *compiler) compileGroup(g ast.Group, depth int) (fragment, error) {
	f := c.newFragment()
	child, err := c.compileNode(g.Child, depth+1)
	if err != nil {
		return fragment{}, err
	}
	c.addTransition(f.start, child.start, Unconditional)
	c.addTransition(child.end, f.end, Unconditional)
	if g.Capturing {
		c.captures = append(c.captures, CaptureGroupRecord{
			GroupIndex: g.Index,
			StartState: child.start,
			EndState:   child.end,
		})
	}
	return f, nil
}

func (c *compiler) compileQuantified(q ast.Quantified, depth int) (fragment, error) {
	switch q.Quantifier.Kind {
	case ast.QuantStar:
		return c.compileStar(q.Child, q.Quantifier.Lazy, depth)
	case ast.QuantPlus:
		return c.compilePlus(q.Child, q.Quantifier.Lazy, depth)
	case ast.QuantOpt:
		return c.compileOpt(q.Child, q.Quantifier.Lazy, depth)
	case ast.QuantRange:
		return c.compileRange(q.Child, q.Quantifier, depth)
	default:
		return fragment{}, rerror.At(c.pattern, 0, "unsupported quantifier kind")
	}
}

// compileStar compiles child* (or child*? when lazy). Lazy reverses the
// order of the branch point's two outgoing transitions so the DFS matcher
// tries the skip path first.
func (c *compiler) compileStar(child ast.Node, lazy bool, depth int) (fragment, error) {
	if lazy {
		c.hasLazy = true
	}
	f := c.newFragment()
	cf, err := c.compileNode(child, depth+1)
	if err != nil {
		return fragment{}, err
	}
	if lazy {
		c.addTransition(f.start, f.end, Unconditional)
		c.addTransition(f.start, cf.start, Unconditional)
	} else {
		c.addTransition(f.start, cf.start, Unconditional)
		c.addTransition(f.start, f.end, Unconditional)
	}
	c.addTransition(cf.end, f.start, Unconditional)
	return f, nil
}

// compilePlus compiles child+. The mandatory first pass always goes
// through the child; the choice lazy/greedy reversal applies to the
// repeat-vs-exit branch at the child's end state.
func (c *compiler) compilePlus(child ast.Node, lazy bool, depth int) (fragment, error) {
	if lazy {
		c.hasLazy = true
	}
	f := c.newFragment()
	cf, err := c.compileNode(child, depth+1)
	if err != nil {
		return fragment{}, err
	}
	c.addTransition(f.start, cf.start, Unconditional)
	if lazy {
		c.addTransition(cf.end, f.end, Unconditional)
		c.addTransition(cf.end, cf.start, Unconditional)
	} else {
		c.addTransition(cf.end, cf.start, Unconditional)
		c.addTransition(cf.end, f.end, Unconditional)
	}
	return f, nil
}

func (c *compiler) compileOpt(child ast.Node, lazy bool, depth int) (fragment, error) {
	if lazy {
		c.hasLazy = true
	}
	f := c.newFragment()
	cf, err := c.compileNode(child, depth+1)
	if err != nil {
		return fragment{}, err
	}
	if lazy {
		c.addTransition(f.start, f.end, Unconditional)
		c.addTransition(f.start, cf.start, Unconditional)
	} else {
		c.addTransition(f.start, cf.start, Unconditional)
		c.addTransition(f.start, f.end, Unconditional)
	}
	c.addTransition(cf.end, f.end, Unconditional)
	return f, nil
}

// compileRange compiles a {n}, {n,} or {n,m} quantifier as a mandatory
// prefix of n copies followed by a suffix for the remaining slack. A
// literal Character/String child gets a single fused String prefix
// instead of n separately-compiled copies.
func (c *compiler) compileRange(child ast.Node, q ast.Quantifier, depth int) (fragment, error) {
	prefix, err := c.compilePrefix(child, q.Lower, depth)
	if err != nil {
		return fragment{}, err
	}

	var suffix fragment
	if !q.Bounded {
		suffix, err = c.compileStar(child, q.Lazy, depth+1)
	} else {
		suffix, err = c.compileOptionalChain(child, q.Upper-q.Lower, q.Lazy, depth+1)
	}
	if err != nil {
		return fragment{}, err
	}

	c.addTransition(prefix.end, suffix.start, Unconditional)
	return fragment{start: prefix.start, end: suffix.end}, nil
}

func (c *compiler) compilePrefix(child ast.Node, n int, depth int) (fragment, error) {
	if n == 0 {
		f := c.newFragment()
		c.addTransition(f.start, f.end, Unconditional)
		return f, nil
	}
	if lit, ok := c.literalRepeat(child, n); ok {
		f := c.newFragment()
		c.addTransition(f.start, f.end, lit)
		return f, nil
	}
	acc, err := c.compileNode(child, depth+1)
	if err != nil {
		return fragment{}, err
	}
	for i := 1; i < n; i++ {
		next, err := c.compileNode(child, depth+1)
		if err != nil {
			return fragment{}, err
		}
		c.addTransition(acc.end, next.start, Unconditional)
		acc.end = next.end
	}
	return acc, nil
}

// literalRepeat builds a single fused StringCondition for n copies of child
// when child is a Character or String literal, avoiding n separately
// compiled fragments for patterns like a{50}.
func (c *compiler) literalRepeat(child ast.Node, n int) (Condition, bool) {
	switch v := child.(type) {
	case ast.Character:
		runes := make([]rune, n)
		for i := range runes {
			runes[i] = v.Value
		}
		return StringCondition{Value: runes, FoldCase: c.cfg.CaseInsensitive}, true
	case ast.String:
		unit := []rune(v.Value)
		runes := make([]rune, 0, len(unit)*n)
		for i := 0; i < n; i++ {
			runes = append(runes, unit...)
		}
		return StringCondition{Value: runes, FoldCase: c.cfg.CaseInsensitive}, true
	default:
		return nil, false
	}
}

// compileOptionalChain builds the right-folded "(x (x (x)?)?)?" nesting
// needed for a bounded {n,m} quantifier's m-n optional copies.
func (c *compiler) compileOptionalChain(child ast.Node, remaining int, lazy bool, depth int) (fragment, error) {
	if remaining == 0 {
		f := c.newFragment()
		c.addTransition(f.start, f.end, Unconditional)
		return f, nil
	}
	cf, err := c.compileNode(child, depth+1)
	if err != nil {
		return fragment{}, err
	}
	rest, err := c.compileOptionalChain(child, remaining-1, lazy, depth+1)
	if err != nil {
		return fragment{}, err
	}
	c.addTransition(cf.end, rest.start, Unconditional)
	inner := fragment{start: cf.start, end: rest.end}

	f := c.newFragment()
	if lazy {
		c.addTransition(f.start, f.end, Unconditional)
		c.addTransition(f.start, inner.start, Unconditional)
	} else {
		c.addTransition(f.start, inner.start, Unconditional)
		c.addTransition(f.start, f.end, Unconditional)
	}
	c.addTransition(inner.end, f.end, Unconditional)
	return f, nil
}

func validateBackreferences(n *NFA, pattern string, sites []backrefSite) error {
	valid := make(map[int]bool, len(n.Captures))
	for _, cap := range n.Captures {
		valid[cap.GroupIndex] = true
	}
	for _, site := range sites {
		if !valid[site.groupIndex] {
			return rerror.At(pattern, site.pos, "The token '\\%d' references a non-existent or invalid subpattern", site.groupIndex)
		}
	}
	return nil
}
