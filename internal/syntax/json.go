package syntax

import (
	"encoding/json"
	"io"
	"math"
)

// FprintJSON writes an ESTree-like JSON representation of the AST to w.
// Every object carries "type", "start" and "end".
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if isNil(node) {
		return nil
	}

	m := map[string]interface{}{
		"type":  node.Type(),
		"start": node.Pos(),
		"end":   node.End(),
	}

	switch n := node.(type) {
	case *Program:
		m["body"] = stmtsJSON(n.Body)

	case *BlockStatement:
		m["body"] = stmtsJSON(n.Body)

	case *ExpressionStatement:
		m["expression"] = toJSON(n.Expression)

	case *VariableDeclaration:
		m["kind"] = n.Kind
		decls := make([]interface{}, len(n.Declarations))
		for i, d := range n.Declarations {
			decls[i] = toJSON(d)
		}
		m["declarations"] = decls

	case *VariableDeclarator:
		m["id"] = toJSON(n.ID)
		m["init"] = optJSON(n.Init)

	case *FunctionDeclaration:
		m["id"] = optJSON(n.ID)
		m["params"] = identsJSON(n.Params)
		m["body"] = toJSON(n.Body)

	case *IfStatement:
		m["test"] = toJSON(n.Test)
		m["consequent"] = toJSON(n.Consequent)
		m["alternate"] = optJSON(n.Alternate)

	case *WhileStatement:
		m["test"] = toJSON(n.Test)
		m["body"] = toJSON(n.Body)

	case *ForStatement:
		m["init"] = optJSON(n.Init)
		m["test"] = optJSON(n.Test)
		m["update"] = optJSON(n.Update)
		m["body"] = toJSON(n.Body)

	case *ForInStatement:
		m["left"] = toJSON(n.Left)
		m["right"] = toJSON(n.Right)
		m["body"] = toJSON(n.Body)

	case *ReturnStatement:
		m["argument"] = optJSON(n.Argument)

	case *TryStatement:
		m["block"] = toJSON(n.Block)
		m["handler"] = optJSON(n.Handler)
		m["finalizer"] = optJSON(n.Finalizer)

	case *CatchClause:
		m["param"] = optJSON(n.Param)
		m["body"] = toJSON(n.Body)

	case *SwitchStatement:
		m["discriminant"] = toJSON(n.Discriminant)
		cases := make([]interface{}, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = toJSON(c)
		}
		m["cases"] = cases

	case *SwitchCase:
		m["test"] = optJSON(n.Test)
		m["consequent"] = stmtsJSON(n.Consequent)

	case *ImportDeclaration:
		specs := make([]interface{}, len(n.Specifiers))
		for i, s := range n.Specifiers {
			specs[i] = toJSON(s)
		}
		m["specifiers"] = specs
		m["source"] = toJSON(n.Source)

	case *ImportSpecifier:
		m["imported"] = toJSON(n.Imported)
		m["local"] = toJSON(n.Local)

	case *ImportDefaultSpecifier:
		m["local"] = toJSON(n.Local)

	case *ImportNamespaceSpecifier:
		m["local"] = toJSON(n.Local)

	case *ExportNamedDeclaration:
		m["declaration"] = optJSON(n.Declaration)
		specs := make([]interface{}, len(n.Specifiers))
		for i, s := range n.Specifiers {
			specs[i] = toJSON(s)
		}
		m["specifiers"] = specs
		m["source"] = optJSON(n.Source)

	case *ExportSpecifier:
		m["local"] = toJSON(n.Local)
		m["exported"] = toJSON(n.Exported)

	case *ExportDefaultDeclaration:
		m["declaration"] = toJSON(n.Declaration)

	case *TextStatement:
		m["value"] = n.Value

	case *OutputStatement:
		m["expression"] = toJSON(n.Expression)

	case *Literal:
		m["value"] = literalJSON(n.Value)
		if n.Regex != nil {
			m["regex"] = map[string]interface{}{
				"pattern": n.Regex.Pattern,
				"flags":   n.Regex.Flags,
			}
		}

	case *Identifier:
		m["name"] = n.Name

	case *TemplateLiteral:
		m["quasis"] = n.Quasis
		exprs := make([]interface{}, len(n.Expressions))
		for i, x := range n.Expressions {
			exprs[i] = toJSON(x)
		}
		m["expressions"] = exprs

	case *ArrayExpression:
		elems := make([]interface{}, len(n.Elements))
		for i, x := range n.Elements {
			elems[i] = optJSON(x)
		}
		m["elements"] = elems

	case *ObjectExpression:
		props := make([]interface{}, len(n.Properties))
		for i, p := range n.Properties {
			props[i] = toJSON(p)
		}
		m["properties"] = props

	case *Property:
		m["key"] = toJSON(n.Key)
		m["value"] = toJSON(n.Value)
		m["computed"] = n.Computed
		m["shorthand"] = n.Shorthand

	case *FunctionExpression:
		m["id"] = optJSON(n.ID)
		m["params"] = identsJSON(n.Params)
		m["body"] = toJSON(n.Body)

	case *UnaryExpression:
		m["operator"] = n.Operator
		m["argument"] = toJSON(n.Argument)

	case *UpdateExpression:
		m["operator"] = n.Operator
		m["prefix"] = n.Prefix
		m["argument"] = toJSON(n.Argument)

	case *BinaryExpression:
		m["operator"] = n.Operator
		m["left"] = toJSON(n.Left)
		m["right"] = toJSON(n.Right)

	case *AssignmentExpression:
		m["operator"] = n.Operator
		m["left"] = toJSON(n.Left)
		m["right"] = toJSON(n.Right)

	case *ConditionalExpression:
		m["test"] = toJSON(n.Test)
		m["consequent"] = toJSON(n.Consequent)
		m["alternate"] = toJSON(n.Alternate)

	case *CallExpression:
		m["callee"] = toJSON(n.Callee)
		args := make([]interface{}, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = toJSON(a)
		}
		m["arguments"] = args
		m["optional"] = n.Optional

	case *MemberExpression:
		m["object"] = toJSON(n.Object)
		m["property"] = toJSON(n.Property)
		m["computed"] = n.Computed
		m["optional"] = n.Optional

	case *DeleteExpression:
		m["argument"] = toJSON(n.Argument)
	}

	return m
}

func optJSON(n Node) interface{} {
	if isNil(n) {
		return nil
	}
	return toJSON(n)
}

func stmtsJSON(list []Stmt) []interface{} {
	out := make([]interface{}, len(list))
	for i, s := range list {
		out[i] = toJSON(s)
	}
	return out
}

func identsJSON(list []*Identifier) []interface{} {
	out := make([]interface{}, len(list))
	for i, id := range list {
		out[i] = toJSON(id)
	}
	return out
}

// literalJSON maps values encoding/json cannot represent.
func literalJSON(v interface{}) interface{} {
	if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return nil
	}
	return v
}
