package syntax

import "fmt"

// Severity distinguishes errors from warnings.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Code classifies a parse problem.
type Code string

const (
	CodeLexical                 Code = "lexical-error"
	CodeUnexpectedToken         Code = "unexpected-token"
	CodeExpectedToken           Code = "expected-token"
	CodeMissingSemicolon        Code = "missing-semicolon"
	CodeInvalidAssignmentTarget Code = "invalid-assignment-target"
	CodeMissingFunctionName     Code = "missing-function-name"
	CodeMissingHandler          Code = "missing-handler"
	CodeUnterminatedBlock       Code = "unterminated-block"
	CodeUnexpectedEOF           Code = "unexpected-eof"
	CodeKeywordAsIdentifier     Code = "keyword-as-identifier"
	CodeTooManyErrors           Code = "too-many-errors"
	CodeInternal                Code = "internal-error"
)

// ParseError is a syntax error or warning. Start and End are byte offsets
// forming the half-open range [Start, End). Line and Column are 1-based and
// refer to Start.
type ParseError struct {
	Msg      string
	Start    int
	End      int
	Line     int
	Column   int
	Severity Severity
	Code     Code
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}
