package regex

// Options is a bitset of compile-time flags. The zero value
// means "none set": case-sensitive, `^`/`$` anchor only at the string's
// edges, and `.` never matches `\n`.
type Options uint8

const (
	// CaseInsensitive folds case when comparing literals, character groups,
	// and ranges.
	CaseInsensitive Options = 1 << iota

	// Multiline makes `^` and `$` match at line boundaries (immediately
	// after or before a `\n`) in addition to the string's edges.
	Multiline

	// DotMatchesLineSeparators makes `.` match `\n` as well as every other
	// character.
	DotMatchesLineSeparators
)

func (o Options) has(flag Options) bool {
	return o&flag != 0
}
