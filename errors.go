package regex

import "github.com/coregx/regex/internal/rerror"

// Error is the single shape every compile-time failure takes: a message,
// the 0-based index into Pattern where the problem was detected, and the
// pattern itself. Matching never fails once a Regex has compiled.
type Error = rerror.CompileError
