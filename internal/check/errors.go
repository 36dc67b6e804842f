// Package check implements structural semantic checks over Quill syntax
// trees: name resolution, redeclaration and shadowing, const misuse,
// builtin arity, literal operand mismatches and control-flow placement.
package check

import (
	"fmt"

	"github.com/you-not-fish/quill/internal/syntax"
)

// Code identifies the kind of a check diagnostic.
type Code string

const (
	CodeUndefined        Code = "undefined"
	CodeRedeclared       Code = "redeclared"
	CodeShadowed         Code = "shadowed"
	CodeBuiltinShadowed  Code = "builtin-shadowed"
	CodeConstAssign      Code = "const-assign"
	CodeConstInit        Code = "const-init"
	CodeBuiltinArity     Code = "builtin-arity"
	CodeTypeMismatch     Code = "type-mismatch"
	CodeMisplacedControl Code = "misplaced-control"
)

// Error is a problem found by the checker. Start and End are byte
// offsets of the offending node.
type Error struct {
	Msg      string
	Start    int
	End      int
	Severity syntax.Severity
	Code     Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Start, e.Msg)
}

// ErrorHandler is called for each error and warning.
type ErrorHandler func(err *Error)

// errorf reports an error over the range of n.
func (c *Checker) errorf(n syntax.Node, code Code, format string, args ...interface{}) {
	c.report(n, syntax.SeverityError, code, fmt.Sprintf(format, args...))
}

// warnf reports a warning over the range of n.
func (c *Checker) warnf(n syntax.Node, code Code, format string, args ...interface{}) {
	c.report(n, syntax.SeverityWarning, code, fmt.Sprintf(format, args...))
}

func (c *Checker) report(n syntax.Node, sev syntax.Severity, code Code, msg string) {
	if c.disabled[code] {
		return
	}
	err := &Error{Msg: msg, Start: n.Pos(), End: n.End(), Severity: sev, Code: code}

	if sev == syntax.SeverityError {
		if c.errors == 0 {
			c.first = err
		}
		c.errors++
	} else {
		c.warnings++
	}

	if c.conf.Error != nil {
		c.conf.Error(err)
	}
}
