package ast

import (
	"fmt"
	"strings"
)

// Dump renders node as an indented tree, for the regexdump inspection tool
// and for debugging parser/optimizer output by hand.
func Dump(node Node) string {
	var b strings.Builder
	dump(&b, node, 0)
	return b.String()
}

func dump(b *strings.Builder, node Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case Character:
		fmt.Fprintf(b, "%sCharacter(%q)\n", indent, n.Value)
	case String:
		fmt.Fprintf(b, "%sString(%q)\n", indent, n.Value)
	case AnyCharacter:
		fmt.Fprintf(b, "%sAnyCharacter\n", indent)
	case CharacterSet:
		fmt.Fprintf(b, "%sCharacterSet(kind=%d, name=%q)\n", indent, n.Kind, n.Name)
	case CharacterGroup:
		fmt.Fprintf(b, "%sCharacterGroup(inverted=%v, items=%d)\n", indent, n.Inverted, len(n.Items))
	case Group:
		fmt.Fprintf(b, "%sGroup(index=%d, capturing=%v)\n", indent, n.Index, n.Capturing)
		dump(b, n.Child, depth+1)
	case ImplicitGroup:
		fmt.Fprintf(b, "%sImplicitGroup(children=%d)\n", indent, len(n.Children))
		for _, c := range n.Children {
			dump(b, c, depth+1)
		}
	case Alternation:
		fmt.Fprintf(b, "%sAlternation(alternatives=%d)\n", indent, len(n.Alternatives))
		for _, a := range n.Alternatives {
			dump(b, a, depth+1)
		}
	case Quantified:
		fmt.Fprintf(b, "%sQuantified(kind=%d, lower=%d, upper=%d, bounded=%v, lazy=%v)\n",
			indent, n.Quantifier.Kind, n.Quantifier.Lower, n.Quantifier.Upper, n.Quantifier.Bounded, n.Quantifier.Lazy)
		dump(b, n.Child, depth+1)
	case Anchor:
		fmt.Fprintf(b, "%sAnchor(kind=%d)\n", indent, n.Kind)
	case Backreference:
		fmt.Fprintf(b, "%sBackreference(index=%d)\n", indent, n.Index)
	default:
		fmt.Fprintf(b, "%s%T\n", indent, n)
	}
}
