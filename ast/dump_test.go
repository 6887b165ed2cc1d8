package ast

import (
	"strings"
	"testing"
)

func TestDumpLeafNodes(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"character", Character{Value: 'a'}, `Character('a')`},
		{"string", String{Value: "abc"}, `String("abc")`},
		{"any", AnyCharacter{}, "AnyCharacter"},
		{"backreference", Backreference{Index: 2}, "Backreference(index=2)"},
		{"anchor", Anchor{Kind: AnchorWordBoundary}, "Anchor(kind="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dump(tt.node)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Dump() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestDumpNestedGroup(t *testing.T) {
	node := Group{Index: 1, Capturing: true, Child: Character{Value: 'x'}}
	got := Dump(node)
	if !strings.Contains(got, "Group(index=1, capturing=true)") {
		t.Errorf("Dump() = %q, missing group header", got)
	}
	if !strings.Contains(got, "Character('x')") {
		t.Errorf("Dump() = %q, missing nested child", got)
	}
	// child line must be indented deeper than its parent.
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}
	if strings.HasPrefix(lines[1], " ") == false {
		t.Errorf("child line %q should be indented", lines[1])
	}
}

func TestDumpAlternationListsEveryAlternative(t *testing.T) {
	node := Alternation{Alternatives: []Node{
		Character{Value: 'a'},
		Character{Value: 'b'},
	}}
	got := Dump(node)
	if strings.Count(got, "Character(") != 2 {
		t.Errorf("Dump() = %q, want two Character lines", got)
	}
}
