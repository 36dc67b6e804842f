package check

import (
	"fmt"

	"github.com/you-not-fish/quill/internal/syntax"
)

// expr checks an expression. A nil expression is ignored.
func (c *Checker) expr(x syntax.Expr) {
	switch x := x.(type) {
	case nil:
		return

	case *syntax.Identifier:
		c.resolve(x)

	case *syntax.Literal, *syntax.ThisExpression:
		// nothing to do

	case *syntax.TemplateLiteral:
		for _, e := range x.Expressions {
			c.expr(e)
		}

	case *syntax.ArrayExpression:
		for _, e := range x.Elements {
			c.expr(e)
		}

	case *syntax.ObjectExpression:
		for _, p := range x.Properties {
			if p.Computed {
				c.expr(p.Key)
			}
			c.expr(p.Value)
		}

	case *syntax.FunctionExpression:
		c.funcExpr(x)

	case *syntax.UnaryExpression:
		c.expr(x.Argument)

	case *syntax.UpdateExpression:
		c.assignTarget(x.Argument)

	case *syntax.DeleteExpression:
		c.expr(x.Argument)

	case *syntax.BinaryExpression:
		c.expr(x.Left)
		c.expr(x.Right)
		if numericOps[x.Operator] {
			c.numericOperand(x, x.Left)
			c.numericOperand(x, x.Right)
		}

	case *syntax.AssignmentExpression:
		c.expr(x.Right)
		c.assignTarget(x.Left)
		// Compound forms take the operator's operand rules: "-=" as "-".
		if op := x.Operator; op != "=" && numericOps[op[:len(op)-1]] {
			c.numericOperand(x, x.Right)
		}

	case *syntax.ConditionalExpression:
		c.expr(x.Test)
		c.expr(x.Consequent)
		c.expr(x.Alternate)

	case *syntax.CallExpression:
		c.call(x)

	case *syntax.MemberExpression:
		c.expr(x.Object)
		if x.Computed {
			c.expr(x.Property)
		}
	}
}

// numericOps are the binary operators that require numeric operands.
var numericOps = map[string]bool{
	"-": true, "*": true, "/": true, "%": true, "**": true,
	"&": true, "|": true, "^": true,
	"<<": true, ">>": true, ">>>": true,
}

// numericOperand reports operand if it is a literal that can never be a
// number.
func (c *Checker) numericOperand(op syntax.Node, operand syntax.Expr) {
	lit, ok := operand.(*syntax.Literal)
	if !ok {
		return
	}
	if what := literalKind(lit); what != "number" {
		c.errorf(operand, CodeTypeMismatch, "invalid operand for %s: %s", operatorOf(op), what)
	}
}

func operatorOf(n syntax.Node) string {
	switch n := n.(type) {
	case *syntax.BinaryExpression:
		return n.Operator
	case *syntax.AssignmentExpression:
		return n.Operator
	}
	return "?"
}

// literalKind describes the value class of a literal.
func literalKind(lit *syntax.Literal) string {
	if lit.Regex != nil {
		return "regex literal"
	}
	switch lit.Value.(type) {
	case nil:
		return "null"
	case string:
		return "string literal"
	case bool:
		return "boolean literal"
	}
	return "number"
}

// assignTarget checks the target of an assignment, update or for-in.
func (c *Checker) assignTarget(x syntax.Expr) {
	id, ok := x.(*syntax.Identifier)
	if !ok {
		c.expr(x)
		return
	}
	sym := c.resolve(id)
	if sym == nil || sym.Assignable() {
		return
	}
	switch sym.kind {
	case Import:
		c.errorf(id, CodeConstAssign, "cannot assign to import %s", id.Name)
	case Builtin:
		c.errorf(id, CodeConstAssign, "cannot assign to builtin %s", id.Name)
	default:
		c.errorf(id, CodeConstAssign, "cannot assign to const %s", id.Name)
	}
}

// call checks a call expression, including builtin argument counts and
// callees that can never be functions.
func (c *Checker) call(x *syntax.CallExpression) {
	c.expr(x.Callee)
	for _, a := range x.Arguments {
		c.expr(a)
	}

	switch callee := x.Callee.(type) {
	case *syntax.Identifier:
		sym, _ := c.scope.LookupParent(callee.Name)
		if sym != nil && sym.kind == Builtin {
			c.checkArity(x, sym)
		}
	case *syntax.Literal:
		c.errorf(callee, CodeTypeMismatch, "cannot call non-function %s", literalKind(callee))
	case *syntax.ArrayExpression:
		c.errorf(callee, CodeTypeMismatch, "cannot call non-function array literal")
	case *syntax.ObjectExpression:
		c.errorf(callee, CodeTypeMismatch, "cannot call non-function object literal")
	case *syntax.TemplateLiteral:
		c.errorf(callee, CodeTypeMismatch, "cannot call non-function template literal")
	}
}

func (c *Checker) checkArity(x *syntax.CallExpression, b *Symbol) {
	n := len(x.Arguments)
	min, max := b.Arity()
	switch {
	case n < min && min == max:
		c.errorf(x, CodeBuiltinArity, "%s expects %s, got %d", b.name, plural(min), n)
	case n < min:
		c.errorf(x, CodeBuiltinArity, "%s expects at least %s, got %d", b.name, plural(min), n)
	case max >= 0 && n > max && min == max:
		c.errorf(x, CodeBuiltinArity, "%s expects %s, got %d", b.name, plural(max), n)
	case max >= 0 && n > max:
		c.errorf(x, CodeBuiltinArity, "%s expects at most %s, got %d", b.name, plural(max), n)
	}
}

func plural(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", n)
}

// funcExpr checks a function expression. A name given to the expression
// is visible only inside it.
func (c *Checker) funcExpr(f *syntax.FunctionExpression) {
	if f.ID != nil {
		c.scope = NewScope(c.scope, f.Pos(), f.End(), "function name")
		c.declare(Func, f.ID)
		c.funcBody(f, f.Params, f.Body, "function "+f.ID.Name)
		c.closeScope()
		return
	}
	c.funcBody(f, f.Params, f.Body, "function <anonymous>")
}
