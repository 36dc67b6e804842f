package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
// Nil children, such as array holes, are skipped.
func Walk(node Node, v Visitor) {
	if isNil(node) || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkStmts(n.Body, v)

	case *BlockStatement:
		walkStmts(n.Body, v)

	case *ExpressionStatement:
		Walk(n.Expression, v)

	case *VariableDeclaration:
		for _, d := range n.Declarations {
			Walk(d, v)
		}

	case *VariableDeclarator:
		Walk(n.ID, v)
		walkOpt(n.Init, v)

	case *FunctionDeclaration:
		walkOpt(n.ID, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		Walk(n.Body, v)

	case *IfStatement:
		Walk(n.Test, v)
		Walk(n.Consequent, v)
		walkOpt(n.Alternate, v)

	case *WhileStatement:
		Walk(n.Test, v)
		Walk(n.Body, v)

	case *ForStatement:
		walkOpt(n.Init, v)
		walkOpt(n.Test, v)
		walkOpt(n.Update, v)
		Walk(n.Body, v)

	case *ForInStatement:
		Walk(n.Left, v)
		Walk(n.Right, v)
		Walk(n.Body, v)

	case *ReturnStatement:
		walkOpt(n.Argument, v)

	case *TryStatement:
		Walk(n.Block, v)
		walkOpt(n.Handler, v)
		walkOpt(n.Finalizer, v)

	case *CatchClause:
		walkOpt(n.Param, v)
		Walk(n.Body, v)

	case *SwitchStatement:
		Walk(n.Discriminant, v)
		for _, c := range n.Cases {
			Walk(c, v)
		}

	case *SwitchCase:
		walkOpt(n.Test, v)
		walkStmts(n.Consequent, v)

	case *ImportDeclaration:
		for _, s := range n.Specifiers {
			Walk(s, v)
		}
		Walk(n.Source, v)

	case *ImportSpecifier:
		Walk(n.Imported, v)
		if n.Local != n.Imported {
			Walk(n.Local, v)
		}

	case *ImportDefaultSpecifier:
		Walk(n.Local, v)

	case *ImportNamespaceSpecifier:
		Walk(n.Local, v)

	case *ExportNamedDeclaration:
		walkOpt(n.Declaration, v)
		for _, s := range n.Specifiers {
			Walk(s, v)
		}
		walkOpt(n.Source, v)

	case *ExportSpecifier:
		Walk(n.Local, v)
		if n.Exported != n.Local {
			Walk(n.Exported, v)
		}

	case *ExportDefaultDeclaration:
		Walk(n.Declaration, v)

	case *OutputStatement:
		Walk(n.Expression, v)

	case *TemplateLiteral:
		for _, x := range n.Expressions {
			Walk(x, v)
		}

	case *ArrayExpression:
		for _, x := range n.Elements {
			walkOpt(x, v)
		}

	case *ObjectExpression:
		for _, p := range n.Properties {
			Walk(p, v)
		}

	case *Property:
		Walk(n.Key, v)
		if !n.Shorthand {
			Walk(n.Value, v)
		}

	case *FunctionExpression:
		walkOpt(n.ID, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		Walk(n.Body, v)

	case *UnaryExpression:
		Walk(n.Argument, v)

	case *UpdateExpression:
		Walk(n.Argument, v)

	case *BinaryExpression:
		Walk(n.Left, v)
		Walk(n.Right, v)

	case *AssignmentExpression:
		Walk(n.Left, v)
		Walk(n.Right, v)

	case *ConditionalExpression:
		Walk(n.Test, v)
		Walk(n.Consequent, v)
		Walk(n.Alternate, v)

	case *CallExpression:
		Walk(n.Callee, v)
		for _, a := range n.Arguments {
			Walk(a, v)
		}

	case *MemberExpression:
		Walk(n.Object, v)
		Walk(n.Property, v)

	case *DeleteExpression:
		Walk(n.Argument, v)

		// Leaves: EmptyStatement, BreakStatement, ContinueStatement,
		// TextStatement, Literal, Identifier, ThisExpression.
	}
}

func walkStmts(list []Stmt, v Visitor) {
	for _, s := range list {
		Walk(s, v)
	}
}

// walkOpt walks an optional child.
func walkOpt(n Node, v Visitor) {
	if !isNil(n) {
		Walk(n, v)
	}
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch x := n.(type) {
	case *Identifier:
		return x == nil
	case *BlockStatement:
		return x == nil
	case *CatchClause:
		return x == nil
	case *Literal:
		return x == nil
	case *VariableDeclaration:
		return x == nil
	}
	return false
}

// Inspect traverses an AST in depth-first order, calling f for each node.
// If f returns false, children are not visited.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, f)
}
