// Package merrors defines the error taxonomy from SPEC_FULL.md §7: kinds,
// not type names, each carrying an optional byte-range source location.
// Grounded on the teacher's internal/errors.SentraError shape, adapted
// from line/column locations to the byte-range locations this spec's
// tree nodes expose.
package merrors

import "fmt"

// Location is a byte range in the source text that produced an error.
// Zero value means "no location known".
type Location struct {
	Start int
	End   int
}

func (l Location) String() string {
	if l.Start == 0 && l.End == 0 {
		return ""
	}
	return fmt.Sprintf("[%d:%d]", l.Start, l.End)
}

type kind int

const (
	kindParse kind = iota
	kindValidation
	kindFlatten
	kindCompile
	kindExecute
)

var kindNames = [...]string{
	kindParse:      "ParseError",
	kindValidation: "ValidationError",
	kindFlatten:    "FlattenError",
	kindCompile:    "CompileError",
	kindExecute:    "ExecuteError",
}

// Error is a single error value carrying its taxonomy kind, a message,
// and an optional source location. All five SPEC_FULL.md §7 kinds are
// represented by this one type, distinguished by Kind() — matching the
// spec's instruction to treat these as kinds, not distinct Go types,
// while still giving callers errors.As-style dispatch via the Is* helpers
// below.
type Error struct {
	kind     kind
	Message  string
	Location Location
}

func (e *Error) Error() string {
	loc := e.Location.String()
	if loc == "" {
		return fmt.Sprintf("%s: %s", kindNames[e.kind], e.Message)
	}
	return fmt.Sprintf("%s: %s %s", kindNames[e.kind], e.Message, loc)
}

// KindName returns the taxonomy kind name ("ParseError", "ValidationError", …).
func (e *Error) KindName() string {
	return kindNames[e.kind]
}

// At attaches a source location and returns the same error for chaining.
func (e *Error) At(start, end int) *Error {
	e.Location = Location{Start: start, End: end}
	return e
}

func newError(k kind, format string, args ...any) *Error {
	return &Error{kind: k, Message: fmt.Sprintf(format, args...)}
}

func NewParseError(format string, args ...any) *Error      { return newError(kindParse, format, args...) }
func NewValidationError(format string, args ...any) *Error { return newError(kindValidation, format, args...) }
func NewFlattenError(format string, args ...any) *Error    { return newError(kindFlatten, format, args...) }
func NewCompileError(format string, args ...any) *Error    { return newError(kindCompile, format, args...) }
func NewExecuteError(format string, args ...any) *Error    { return newError(kindExecute, format, args...) }

func IsParseError(err error) bool      { return isKind(err, kindParse) }
func IsValidationError(err error) bool { return isKind(err, kindValidation) }
func IsFlattenError(err error) bool    { return isKind(err, kindFlatten) }
func IsCompileError(err error) bool    { return isKind(err, kindCompile) }
func IsExecuteError(err error) bool    { return isKind(err, kindExecute) }

func isKind(err error, k kind) bool {
	e, ok := err.(*Error)
	return ok && e.kind == k
}
