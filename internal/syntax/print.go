package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes a textual representation of the AST to w, one node per
// line, children indented under their parent.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(node Node) {
	if isNil(node) {
		return
	}

	if d := details(node); d != "" {
		p.printf("%s %s [%d,%d)\n", node.Type(), d, node.Pos(), node.End())
	} else {
		p.printf("%s [%d,%d)\n", node.Type(), node.Pos(), node.End())
	}

	p.indent++
	self := true
	Walk(node, func(child Node) bool {
		if self {
			self = false
			return true
		}
		p.print(child)
		return false
	})
	p.indent--
}

// details returns the non-child attributes of a node.
func details(node Node) string {
	switch n := node.(type) {
	case *Identifier:
		return n.Name
	case *Literal:
		return literalString(n)
	case *VariableDeclaration:
		return n.Kind
	case *UnaryExpression:
		return n.Operator
	case *BinaryExpression:
		return n.Operator
	case *AssignmentExpression:
		return n.Operator
	case *UpdateExpression:
		if n.Prefix {
			return n.Operator + " prefix"
		}
		return n.Operator + " postfix"
	case *MemberExpression:
		return flags(n.Computed, "computed", n.Optional, "optional")
	case *CallExpression:
		return flags(n.Optional, "optional")
	case *Property:
		return flags(n.Computed, "computed", n.Shorthand, "shorthand")
	case *TextStatement:
		return strconv.Quote(n.Value)
	case *TemplateLiteral:
		q := make([]string, len(n.Quasis))
		for i, s := range n.Quasis {
			q[i] = strconv.Quote(s)
		}
		return strings.Join(q, " ")
	case *SwitchCase:
		if n.Test == nil {
			return "default"
		}
	case *FunctionDeclaration:
		if n.ID == nil {
			return "anonymous"
		}
	}
	return ""
}

// flags joins the names whose preceding bool is true. Arguments alternate
// bool, string.
func flags(pairs ...interface{}) string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if on, _ := pairs[i].(bool); on {
			out = append(out, pairs[i+1].(string))
		}
	}
	return strings.Join(out, " ")
}

// literalString renders a literal the way it would be written.
func literalString(n *Literal) string {
	if n.Regex != nil {
		return "/" + n.Regex.Pattern + "/" + n.Regex.Flags
	}
	switch v := n.Value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprint(n.Value)
}
