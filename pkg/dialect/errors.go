package dialect

import "fmt"

// CompilationError reports a structural problem only detectable at render
// time: a missing FROM target, conflicting ON/USING on a join, an unknown
// join kind, or an uncompilable command kind. Compilation aborts entirely;
// there are no partial results.
type CompilationError struct {
	Message string
}

func (e *CompilationError) Error() string { return e.Message }

func compileErrorf(format string, args ...any) *CompilationError {
	return &CompilationError{Message: fmt.Sprintf(format, args...)}
}
