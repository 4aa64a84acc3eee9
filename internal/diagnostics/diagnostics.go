package diagnostics

import "fmt"

// Code is a stable diagnostic identifier. P-codes come from the
// parser, B-codes from the program builder, R-codes from the runtime.
type Code string

const (
	ErrP001 Code = "P001" // unrecognized statement
	ErrP002 Code = "P002" // malformed recipe structure
	ErrP003 Code = "P003" // unrecognized measure
	ErrP004 Code = "P004" // hour-count grammatical disagreement
	ErrP005 Code = "P005" // empty program

	ErrB001 Code = "B001" // loop start never closed
	ErrB002 Code = "B002" // loop end without a matching start
	ErrB003 Code = "B003" // "Set aside" outside any loop
	ErrB004 Code = "B004" // call to an unknown recipe
	ErrB005 Code = "B005" // duplicate recipe title

	ErrR001 Code = "R001" // empty bowl or dish
	ErrR002 Code = "R002" // division by zero
	ErrR003 Code = "R003" // input exhausted or unreadable
	ErrR004 Code = "R004" // undeclared ingredient
	ErrR005 Code = "R005" // internal inconsistency
)

// DiagnosticError is the single error value used by all three stages.
type DiagnosticError struct {
	Code    Code
	Message string
	Line    int    // 0 when no source position applies
	Recipe  string // recipe title, when known
	File    string
}

func NewError(code Code, line int, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Line: line, Message: fmt.Sprintf(format, args...)}
}

func (e *DiagnosticError) WithRecipe(title string) *DiagnosticError {
	e.Recipe = title
	return e
}

func (e *DiagnosticError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Recipe != "" {
		msg += fmt.Sprintf(" (recipe %q)", e.Recipe)
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	return msg
}
