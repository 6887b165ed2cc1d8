// Package rerror defines the single error shape produced while compiling a
// pattern. It exists so that ast, parser, optimizer and nfa can all raise the
// same concrete type without an import cycle through the root regex package,
// which re-exports CompileError as regex.Error.
package rerror

import "fmt"

// CompileError reports a single problem found while parsing, optimizing, or
// compiling a pattern. Index is the 0-based offset into Pattern at which the
// problem was detected.
type CompileError struct {
	Message string
	Index   int
	Pattern string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("regex: %s at index %d in %q", e.Message, e.Index, e.Pattern)
}

// At builds a CompileError for the given pattern and index. Pattern is
// usually filled in lazily by the caller that owns the full pattern string
// (the parser knows it from construction; the compiler and optimizer
// receive it as an argument since they operate on an already-parsed AST).
func At(pattern string, index int, format string, args ...any) *CompileError {
	return &CompileError{
		Message: fmt.Sprintf(format, args...),
		Index:   index,
		Pattern: pattern,
	}
}
