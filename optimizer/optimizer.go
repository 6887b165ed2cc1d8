// Package optimizer rewrites a parsed AST into its canonical form before
// compilation: it is an idempotent tree rewriter, not an
// independent analysis — running it twice produces the same tree as running
// it once.
package optimizer

import "github.com/coregx/regex/ast"

// Optimize rewrites root into its canonical form and returns the rewritten
// tree along with the number of capturing groups found. The rewrite:
//
//  1. Collapses runs of sibling Character nodes inside an ImplicitGroup into
//     a single String node (a lone remaining Character stays a Character).
//  2. Flattens nested Alternation nodes into one ordered list of alternatives.
//  3. Assigns 1-based indices to capturing groups in left-to-right source
//     order (i.e. by position of the opening parenthesis).
//  4. Replaces any ImplicitGroup that has exactly one child with that child.
func Optimize(root ast.Node) (ast.Node, int) {
	rewritten := rewrite(root)
	counter := 0
	indexed := assignIndices(rewritten, &counter)
	return indexed, counter
}

// rewrite performs collapsing, flattening, and single-child unwrapping,
// bottom-up. It does not touch capture-group indices.
func rewrite(node ast.Node) ast.Node {
	switch n := node.(type) {
	case ast.Group:
		return ast.Group{Index: n.Index, Capturing: n.Capturing, Child: rewrite(n.Child)}

	case ast.ImplicitGroup:
		children := make([]ast.Node, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, rewrite(c))
		}
		collapsed := collapseCharacterRuns(children)
		if len(collapsed) == 1 {
			return collapsed[0]
		}
		return ast.ImplicitGroup{Children: collapsed}

	case ast.Alternation:
		var flat []ast.Node
		for _, alt := range n.Alternatives {
			r := rewrite(alt)
			if inner, ok := r.(ast.Alternation); ok {
				flat = append(flat, inner.Alternatives...)
			} else {
				flat = append(flat, r)
			}
		}
		return ast.Alternation{Alternatives: flat}

	case ast.Quantified:
		return ast.Quantified{Child: rewrite(n.Child), Quantifier: n.Quantifier}

	default:
		// Character, String, AnyCharacter, CharacterSet, CharacterGroup,
		// Anchor, Backreference: leaves, nothing to rewrite.
		return node
	}
}

// collapseCharacterRuns merges consecutive Character nodes into a single
// String node, preserving the order and position of every other child.
func collapseCharacterRuns(children []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(children))
	var run []rune

	flush := func() {
		switch len(run) {
		case 0:
			// nothing to do
		case 1:
			out = append(out, ast.Character{Value: run[0]})
		default:
			out = append(out, ast.String{Value: string(run)})
		}
		run = nil
	}

	for _, c := range children {
		if ch, ok := c.(ast.Character); ok {
			run = append(run, ch.Value)
			continue
		}
		flush()
		out = append(out, c)
	}
	flush()
	return out
}

// assignIndices walks the tree in source (pre-)order, assigning the next
// sequential index to every capturing Group. Pre-order visits a group
// before its children, which is also the order its opening parenthesis
// appears in the source text, regardless of how deeply it is nested or
// which alternation branch it lives in.
func assignIndices(node ast.Node, counter *int) ast.Node {
	switch n := node.(type) {
	case ast.Group:
		idx := 0
		if n.Capturing {
			*counter++
			idx = *counter
		}
		return ast.Group{Index: idx, Capturing: n.Capturing, Child: assignIndices(n.Child, counter)}

	case ast.ImplicitGroup:
		children := make([]ast.Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = assignIndices(c, counter)
		}
		return ast.ImplicitGroup{Children: children}

	case ast.Alternation:
		alts := make([]ast.Node, len(n.Alternatives))
		for i, a := range n.Alternatives {
			alts[i] = assignIndices(a, counter)
		}
		return ast.Alternation{Alternatives: alts}

	case ast.Quantified:
		return ast.Quantified{Child: assignIndices(n.Child, counter), Quantifier: n.Quantifier}

	default:
		return node
	}
}
